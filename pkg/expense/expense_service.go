package expense

import (
	"context"
	"errors"

	"github.com/techbudget/techbudget/internal/rest"
)

type Service interface {
	GetAll(ctx context.Context, includeInactive bool) ([]Expense, error)
	Get(ctx context.Context, id int) (Expense, error)
	Create(ctx context.Context, expense Expense) (Expense, error)
	Update(ctx context.Context, expense Expense) error
	Deactivate(ctx context.Context, id int) error
}

type ServiceImpl struct {
	repo Repo
}

func NewExpenseService(repo Repo) *ServiceImpl {
	return &ServiceImpl{repo: repo}
}

func (s *ServiceImpl) GetAll(ctx context.Context, includeInactive bool) ([]Expense, error) {
	return s.repo.GetAll(ctx, includeInactive)
}

func (s *ServiceImpl) Get(ctx context.Context, id int) (Expense, error) {
	return s.repo.Get(ctx, id)
}

func (s *ServiceImpl) Create(ctx context.Context, expense Expense) (Expense, error) {
	if expense.Code == "" {
		return Expense{}, rest.NewValidationError("expense code is required")
	}
	expense.Active = true
	id, err := s.repo.Store(ctx, expense)
	if err != nil {
		if errors.Is(err, ErrDuplicateCode) {
			return Expense{}, rest.NewValidationError("expense code already exists")
		}
		return Expense{}, err
	}
	expense.ID = id
	return expense, nil
}

func (s *ServiceImpl) Update(ctx context.Context, expense Expense) error {
	if expense.Code == "" {
		return rest.NewValidationError("expense code is required")
	}
	updated, err := s.repo.Update(ctx, expense)
	if err != nil {
		if errors.Is(err, ErrDuplicateCode) {
			return rest.NewValidationError("expense code already exists")
		}
		return err
	}
	if !updated {
		return ErrExpenseNotFound
	}
	return nil
}

func (s *ServiceImpl) Deactivate(ctx context.Context, id int) error {
	deactivated, err := s.repo.Deactivate(ctx, id)
	if err != nil {
		return err
	}
	if !deactivated {
		return ErrExpenseNotFound
	}
	return nil
}
