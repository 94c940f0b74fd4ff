package conversionrate

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
	"github.com/techbudget/techbudget/internal/rest"
)

const USD = "USD"

type Service interface {
	GetAllForBudget(ctx context.Context, budgetId int) ([]ConversionRate, error)
	Create(ctx context.Context, rate ConversionRate) (ConversionRate, error)
	Update(ctx context.Context, rate ConversionRate) error
	Delete(ctx context.Context, id int) error
	RateFor(ctx context.Context, budgetId int, currency string, month int) (decimal.Decimal, error)
}

type ServiceImpl struct {
	repo Repo
}

func NewConversionRateService(repo Repo) *ServiceImpl {
	return &ServiceImpl{repo: repo}
}

func (s *ServiceImpl) GetAllForBudget(ctx context.Context, budgetId int) ([]ConversionRate, error) {
	return s.repo.GetAllForBudget(ctx, budgetId)
}

func (s *ServiceImpl) Create(ctx context.Context, rate ConversionRate) (ConversionRate, error) {
	if err := validate(rate); err != nil {
		return ConversionRate{}, err
	}
	id, err := s.repo.Store(ctx, rate)
	if err != nil {
		if errors.Is(err, ErrDuplicateRate) {
			return ConversionRate{}, rest.NewValidationError(err.Error())
		}
		return ConversionRate{}, err
	}
	rate.ID = id
	return rate, nil
}

func (s *ServiceImpl) Update(ctx context.Context, rate ConversionRate) error {
	if !rate.Rate.IsPositive() {
		return rest.NewValidationError("rate must be positive")
	}
	return s.repo.Update(ctx, rate)
}

func (s *ServiceImpl) Delete(ctx context.Context, id int) error {
	return s.repo.Delete(ctx, id)
}

// RateFor resolves the multiplier used to express an amount in USD. USD is
// the identity rate and has no stored row.
func (s *ServiceImpl) RateFor(ctx context.Context, budgetId int, currency string, month int) (decimal.Decimal, error) {
	if currency == USD {
		return decimal.NewFromInt(1), nil
	}
	rate, err := s.repo.Find(ctx, budgetId, currency, month)
	if err != nil {
		if errors.Is(err, ErrRateNotFound) {
			return decimal.Zero, rest.NewNotFoundError("no conversion rate for " + currency)
		}
		return decimal.Zero, err
	}
	return rate.Rate, nil
}

func validate(rate ConversionRate) error {
	if rate.BudgetID == 0 {
		return rest.NewValidationError("budgetId is required")
	}
	if rate.Currency == USD {
		return rest.NewValidationError("USD rate is implicit and cannot be stored")
	}
	if rate.Currency == "" {
		return rest.NewValidationError("currency is required")
	}
	if rate.Month < 1 || rate.Month > 12 {
		return rest.NewValidationError("month must be between 1 and 12")
	}
	if !rate.Rate.IsPositive() {
		return rest.NewValidationError("rate must be positive")
	}
	return nil
}
