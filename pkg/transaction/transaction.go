package transaction

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	TypeCommitted = "COMMITTED"
	TypeReal      = "REAL"
)

// Transaction is one ledger entry against a budget line. Value is in the
// transaction's own currency; USDValue is fixed at write time from the
// budget's conversion rate for the transaction month and never recomputed.
//
// A COMMITTED transaction superseded by a matching REAL one is tagged
// IsCompensated instead of being deleted, so open-commitment sums can skip it
// while the audit trail stays intact.
type Transaction struct {
	ID                      int
	BudgetLineID            int
	Type                    string
	ServiceDate             time.Time
	PostingDate             time.Time
	ReferenceDocumentNumber string
	Currency                string
	Value                   decimal.Decimal
	USDValue                decimal.Decimal
	ConversionRate          decimal.Decimal
	Month                   int
	IsCompensated           bool
	CompensatedByID         *int
}
