package savings

import "github.com/shopspring/decimal"

const (
	StatusPending  = "PENDING"
	StatusApproved = "APPROVED"
)

// Saving is a reduction applied against a budget line's planned amounts. It
// starts PENDING and only counts once approved.
type Saving struct {
	ID           int
	BudgetLineID int
	TotalAmount  decimal.Decimal
	Monthly      [12]decimal.Decimal
	Status       string
	CreatedBy    int
}

// Deferral records the intent to push planned spend from one month range to a
// later one. It is informational and never mutates the plan values.
type Deferral struct {
	ID           int
	BudgetLineID int
	TotalAmount  decimal.Decimal
	StartMonth   int
	EndMonth     int
	CreatedBy    int
}

// ReportSaving and ReportDeferral carry the joined fields the
// savings-deferrals report renders.
type ReportSaving struct {
	Saving
	ExpenseCode   string
	CreatedByName string
}

type ReportDeferral struct {
	Deferral
	ExpenseCode   string
	CreatedByName string
}
