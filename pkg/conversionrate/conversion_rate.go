package conversionrate

import "github.com/shopspring/decimal"

// ConversionRate converts an amount in Currency into USD for one month of one
// budget. USD itself is implicit at 1.0 and never stored.
type ConversionRate struct {
	ID       int
	BudgetID int
	Currency string
	Month    int
	Rate     decimal.Decimal
}
