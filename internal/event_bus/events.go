package event_bus

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	TypeBudgetActivated     EventType = "budget.activated"
	TypeTransactionRecorded EventType = "transaction.recorded"
)

// BudgetActivated is published when a budget becomes the globally active one.
type BudgetActivated struct {
	BudgetID int
	Year     int
	Version  int
}

// TransactionRecorded is published after a ledger transaction is stored with
// its USD value already computed.
type TransactionRecorded struct {
	TransactionID int
	BudgetLineID  int
	Type          string
	Currency      string
	Value         decimal.Decimal
	USDValue      decimal.Decimal
	Month         int
	ServiceDate   time.Time
}
