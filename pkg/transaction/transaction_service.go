package transaction

import (
	"context"
	"errors"

	log "github.com/sirupsen/logrus"
	"github.com/techbudget/techbudget/internal/event_bus"
	"github.com/techbudget/techbudget/internal/rest"
	"github.com/techbudget/techbudget/pkg/budgetline"
	"github.com/techbudget/techbudget/pkg/conversionrate"
)

type Service interface {
	Get(ctx context.Context, id int) (Transaction, error)
	GetAllForLine(ctx context.Context, budgetLineId int) ([]Transaction, error)
	Create(ctx context.Context, tx Transaction) (Transaction, error)
	Compensate(ctx context.Context, committedId int, realId int) error
	Delete(ctx context.Context, id int) error
}

type ServiceImpl struct {
	repo     Repo
	lines    budgetline.Service
	rates    conversionrate.Service
	eventBus *event_bus.EventBus
}

func NewTransactionService(
	repo Repo,
	lines budgetline.Service,
	rates conversionrate.Service,
	eventBus *event_bus.EventBus,
) *ServiceImpl {
	return &ServiceImpl{repo: repo, lines: lines, rates: rates, eventBus: eventBus}
}

func (s *ServiceImpl) Get(ctx context.Context, id int) (Transaction, error) {
	return s.repo.Get(ctx, id)
}

func (s *ServiceImpl) GetAllForLine(ctx context.Context, budgetLineId int) ([]Transaction, error) {
	return s.repo.GetAllForLine(ctx, budgetLineId)
}

// Create fixes the USD value at write time: it resolves the budget's
// conversion rate for the transaction currency and month and stores
// value * rate alongside the original amount.
func (s *ServiceImpl) Create(ctx context.Context, tx Transaction) (Transaction, error) {
	if tx.Type != TypeCommitted && tx.Type != TypeReal {
		return Transaction{}, rest.NewValidationError("transaction type must be COMMITTED or REAL")
	}
	if tx.Month < 1 || tx.Month > 12 {
		return Transaction{}, rest.NewValidationError("month must be between 1 and 12")
	}
	if tx.Currency == "" {
		return Transaction{}, rest.NewValidationError("currency is required")
	}

	line, err := s.lines.Get(ctx, tx.BudgetLineID)
	if err != nil {
		if errors.Is(err, budgetline.ErrLineNotFound) {
			return Transaction{}, rest.NewNotFoundError("budget line not found")
		}
		return Transaction{}, err
	}

	rate, err := s.rates.RateFor(ctx, line.BudgetID, tx.Currency, tx.Month)
	if err != nil {
		return Transaction{}, err
	}
	tx.ConversionRate = rate
	tx.USDValue = tx.Value.Mul(rate)
	tx.IsCompensated = false
	tx.CompensatedByID = nil

	id, err := s.repo.Store(ctx, tx)
	if err != nil {
		return Transaction{}, err
	}
	tx.ID = id

	event := event_bus.NewEvent(ctx, event_bus.TypeTransactionRecorded, event_bus.TransactionRecorded{
		TransactionID: tx.ID,
		BudgetLineID:  tx.BudgetLineID,
		Type:          tx.Type,
		Currency:      tx.Currency,
		Value:         tx.Value,
		USDValue:      tx.USDValue,
		Month:         tx.Month,
		ServiceDate:   tx.ServiceDate,
	})
	if err := s.eventBus.Publish(event); err != nil {
		log.Errorf("could not publish transaction recorded event: %v", err)
	}

	return tx, nil
}

// Compensate tags a COMMITTED transaction as superseded by a REAL one on the
// same budget line. The committed row is kept for audit and skipped by
// open-commitment sums from then on.
func (s *ServiceImpl) Compensate(ctx context.Context, committedId int, realId int) error {
	committed, err := s.repo.Get(ctx, committedId)
	if err != nil {
		return err
	}
	real, err := s.repo.Get(ctx, realId)
	if err != nil {
		return err
	}

	if committed.Type != TypeCommitted {
		return rest.NewValidationError("only COMMITTED transactions can be compensated")
	}
	if committed.IsCompensated {
		return rest.NewValidationError("transaction is already compensated")
	}
	if real.Type != TypeReal {
		return rest.NewValidationError("compensating transaction must be REAL")
	}
	if committed.BudgetLineID != real.BudgetLineID {
		return rest.NewValidationError("transactions must belong to the same budget line")
	}

	return s.repo.MarkCompensated(ctx, committedId, realId)
}

func (s *ServiceImpl) Delete(ctx context.Context, id int) error {
	return s.repo.Delete(ctx, id)
}
