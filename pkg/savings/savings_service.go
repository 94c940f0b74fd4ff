package savings

import (
	"context"

	"github.com/techbudget/techbudget/internal/rest"
	"github.com/techbudget/techbudget/pkg/user"
)

type Service interface {
	CreateSaving(ctx context.Context, saving Saving) (Saving, error)
	ApproveSaving(ctx context.Context, id int) error
	DeleteSaving(ctx context.Context, id int) error
	CreateDeferral(ctx context.Context, deferral Deferral) (Deferral, error)
	DeleteDeferral(ctx context.Context, id int) error
	SavingsForBudget(ctx context.Context, budgetId int) ([]ReportSaving, error)
	DeferralsForBudget(ctx context.Context, budgetId int) ([]ReportDeferral, error)
}

type ServiceImpl struct {
	repo Repo
}

func NewSavingsService(repo Repo) *ServiceImpl {
	return &ServiceImpl{repo: repo}
}

func (s *ServiceImpl) CreateSaving(ctx context.Context, saving Saving) (Saving, error) {
	if saving.BudgetLineID == 0 {
		return Saving{}, rest.NewValidationError("budgetLineId is required")
	}
	if !saving.TotalAmount.IsPositive() {
		return Saving{}, rest.NewValidationError("totalAmount must be positive")
	}
	saving.Status = StatusPending
	if userId, err := user.CurrentId(ctx); err == nil {
		saving.CreatedBy = userId
	}

	id, err := s.repo.StoreSaving(ctx, saving)
	if err != nil {
		return Saving{}, err
	}
	saving.ID = id
	return saving, nil
}

// ApproveSaving transitions a saving from PENDING to APPROVED. The transition
// is one way and can only happen once.
func (s *ServiceImpl) ApproveSaving(ctx context.Context, id int) error {
	saving, err := s.repo.GetSaving(ctx, id)
	if err != nil {
		return err
	}
	if saving.Status == StatusApproved {
		return rest.NewValidationError("saving is already approved")
	}
	return s.repo.UpdateSavingStatus(ctx, id, StatusApproved)
}

func (s *ServiceImpl) DeleteSaving(ctx context.Context, id int) error {
	return s.repo.DeleteSaving(ctx, id)
}

func (s *ServiceImpl) CreateDeferral(ctx context.Context, deferral Deferral) (Deferral, error) {
	if deferral.BudgetLineID == 0 {
		return Deferral{}, rest.NewValidationError("budgetLineId is required")
	}
	if deferral.StartMonth < 1 || deferral.StartMonth > 12 || deferral.EndMonth < 1 || deferral.EndMonth > 12 {
		return Deferral{}, rest.NewValidationError("months must be between 1 and 12")
	}
	if deferral.StartMonth > deferral.EndMonth {
		return Deferral{}, rest.NewValidationError("startMonth must not be after endMonth")
	}
	if userId, err := user.CurrentId(ctx); err == nil {
		deferral.CreatedBy = userId
	}

	id, err := s.repo.StoreDeferral(ctx, deferral)
	if err != nil {
		return Deferral{}, err
	}
	deferral.ID = id
	return deferral, nil
}

func (s *ServiceImpl) DeleteDeferral(ctx context.Context, id int) error {
	return s.repo.DeleteDeferral(ctx, id)
}

func (s *ServiceImpl) SavingsForBudget(ctx context.Context, budgetId int) ([]ReportSaving, error) {
	return s.repo.FindSavingsForReport(ctx, budgetId)
}

func (s *ServiceImpl) DeferralsForBudget(ctx context.Context, budgetId int) ([]ReportDeferral, error) {
	return s.repo.FindDeferralsForReport(ctx, budgetId)
}
