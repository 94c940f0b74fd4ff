package budget

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"
	"github.com/techbudget/techbudget/internal/event_bus"
	"github.com/techbudget/techbudget/internal/rest"
)

type Service interface {
	GetAll(ctx context.Context) ([]Budget, error)
	Get(ctx context.Context, id int) (Budget, error)
	Create(ctx context.Context, year int) (Budget, error)
	Clone(ctx context.Context, sourceId int) (Budget, error)
	Activate(ctx context.Context, id int) error
	Delete(ctx context.Context, id int) error
}

type ServiceImpl struct {
	repo     Repo
	eventBus *event_bus.EventBus
}

func NewBudgetService(repo Repo, eventBus *event_bus.EventBus) *ServiceImpl {
	return &ServiceImpl{repo: repo, eventBus: eventBus}
}

func (s *ServiceImpl) GetAll(ctx context.Context) ([]Budget, error) {
	return s.repo.GetAll(ctx)
}

func (s *ServiceImpl) Get(ctx context.Context, id int) (Budget, error) {
	return s.repo.Get(ctx, id)
}

// Create opens a new empty budget for the year as the next version.
func (s *ServiceImpl) Create(ctx context.Context, year int) (Budget, error) {
	if year < 2000 || year > 2100 {
		return Budget{}, rest.NewValidationError("year is out of range")
	}
	maxVersion, err := s.repo.FindMaxVersion(ctx, year)
	if err != nil {
		return Budget{}, err
	}
	budget := Budget{Year: year, Version: maxVersion + 1}
	id, err := s.repo.Store(ctx, budget)
	if err != nil {
		return Budget{}, err
	}
	budget.ID = id
	return budget, nil
}

// Clone copies a source budget's lines and conversion rates into a new
// version of the same year. Budgets are never edited destructively; changes
// go into a fresh version.
func (s *ServiceImpl) Clone(ctx context.Context, sourceId int) (Budget, error) {
	source, err := s.repo.Get(ctx, sourceId)
	if err != nil {
		return Budget{}, err
	}
	maxVersion, err := s.repo.FindMaxVersion(ctx, source.Year)
	if err != nil {
		return Budget{}, err
	}
	target := Budget{Year: source.Year, Version: maxVersion + 1}
	id, err := s.repo.CloneInto(ctx, sourceId, target)
	if err != nil {
		return Budget{}, err
	}
	target.ID = id
	log.Infof("cloned budget %d into new version %d (id %d)", sourceId, target.Version, id)
	return target, nil
}

func (s *ServiceImpl) Activate(ctx context.Context, id int) error {
	budget, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}
	ok, err := s.repo.Activate(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("budget %d not activated", id)
	}

	if err := s.eventBus.Publish(event_bus.NewEvent(ctx, event_bus.TypeBudgetActivated, event_bus.BudgetActivated{
		BudgetID: budget.ID,
		Year:     budget.Year,
		Version:  budget.Version,
	})); err != nil {
		log.Warnf("failed to publish budget activated event: %v", err)
	}
	return nil
}

func (s *ServiceImpl) Delete(ctx context.Context, id int) error {
	activeId, err := s.repo.GetActiveId(ctx)
	if err != nil {
		return err
	}
	if activeId == id {
		return rest.NewValidationError("cannot delete the active budget")
	}
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrBudgetNotFound
	}
	return nil
}
