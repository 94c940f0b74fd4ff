package budgetline

import (
	"context"
	"errors"

	"github.com/techbudget/techbudget/internal/rest"
)

type Service interface {
	GetAllForBudget(ctx context.Context, budgetId int) ([]BudgetLine, error)
	Get(ctx context.Context, id int) (BudgetLine, error)
	Create(ctx context.Context, line BudgetLine) (BudgetLine, error)
	Update(ctx context.Context, line BudgetLine) error
	Delete(ctx context.Context, id int) error
}

type ServiceImpl struct {
	repo Repo
}

func NewBudgetLineService(repo Repo) *ServiceImpl {
	return &ServiceImpl{repo: repo}
}

func (s *ServiceImpl) GetAllForBudget(ctx context.Context, budgetId int) ([]BudgetLine, error) {
	return s.repo.GetAllForBudget(ctx, budgetId)
}

func (s *ServiceImpl) Get(ctx context.Context, id int) (BudgetLine, error) {
	return s.repo.Get(ctx, id)
}

func (s *ServiceImpl) Create(ctx context.Context, line BudgetLine) (BudgetLine, error) {
	if line.BudgetID == 0 {
		return BudgetLine{}, rest.NewValidationError("budgetId is required")
	}
	if line.ExpenseID == 0 {
		return BudgetLine{}, rest.NewValidationError("expenseId is required")
	}
	if line.Currency == "" {
		return BudgetLine{}, rest.NewValidationError("currency is required")
	}
	id, err := s.repo.Store(ctx, line)
	if err != nil {
		if errors.Is(err, ErrDuplicateLine) {
			return BudgetLine{}, rest.NewValidationError(err.Error())
		}
		return BudgetLine{}, err
	}
	line.ID = id
	return line, nil
}

func (s *ServiceImpl) Update(ctx context.Context, line BudgetLine) error {
	if line.Currency == "" {
		return rest.NewValidationError("currency is required")
	}
	return s.repo.Update(ctx, line)
}

func (s *ServiceImpl) Delete(ctx context.Context, id int) error {
	return s.repo.Delete(ctx, id)
}
