package budgetline

import (
	"github.com/shopspring/decimal"
	"github.com/techbudget/techbudget/pkg/catalog"
	"github.com/techbudget/techbudget/pkg/expense"
)

// BudgetLine ties an expense to one budget and one financial company and
// carries the planned amount for each of the 12 months in the line's
// currency. At most one line exists per (budget, expense, company).
type BudgetLine struct {
	ID                    int
	BudgetID              int
	ExpenseID             int
	FinancialCompanyID    int
	TechnologyDirectionID *int
	Currency              string
	Plan                  [12]decimal.Decimal
}

// MonthTotal sums the 12 monthly plan values.
func (l BudgetLine) MonthTotal() decimal.Decimal {
	total := decimal.Zero
	for _, v := range l.Plan {
		total = total.Add(v)
	}
	return total
}

// MonthValue returns the plan value for month m (1 based), zero for months
// outside 1..12.
func (l BudgetLine) MonthValue(m int) decimal.Decimal {
	if m < 1 || m > 12 {
		return decimal.Zero
	}
	return l.Plan[m-1]
}

// ReportTransaction is the slice of the ledger the report engine needs per
// line.
type ReportTransaction struct {
	ID                      int
	Type                    string
	ServiceDate             string
	PostingDate             string
	ReferenceDocumentNumber string
	Currency                string
	Value                   decimal.Decimal
	USDValue                decimal.Decimal
	Month                   int
	IsCompensated           bool
}

// ReportLine is a budget line with its expense, company and transactions
// loaded, the shape every report aggregates over.
type ReportLine struct {
	BudgetLine
	Expense      expense.Expense
	Company      catalog.FinancialCompany
	Transactions []ReportTransaction
}
