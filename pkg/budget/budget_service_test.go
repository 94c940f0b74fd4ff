package budget

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/techbudget/techbudget/internal/event_bus"
	"github.com/techbudget/techbudget/internal/rest"
)

func setupTestService(t *testing.T) (context.Context, *ServiceImpl, *StubBudgetRepo, *event_bus.EventBus) {
	ctx := context.Background()
	repo := NewStubBudgetRepo()
	t.Cleanup(repo.Cleanup)
	bus := event_bus.NewEventBus()
	return ctx, NewBudgetService(repo, bus), repo, bus
}

func TestCreateBudget(t *testing.T) {
	t.Run("should create first version for a new year", func(t *testing.T) {
		// given
		ctx, service, _, _ := setupTestService(t)

		// when
		budget, err := service.Create(ctx, 2025)

		// then
		assert.NoError(t, err)
		assert.Equal(t, 2025, budget.Year)
		assert.Equal(t, 1, budget.Version)
	})

	t.Run("should assign the next version within the same year", func(t *testing.T) {
		// given
		ctx, service, _, _ := setupTestService(t)
		_, err := service.Create(ctx, 2025)
		assert.NoError(t, err)

		// when
		second, err := service.Create(ctx, 2025)

		// then
		assert.NoError(t, err)
		assert.Equal(t, 2, second.Version)
	})

	t.Run("should reject a year out of range", func(t *testing.T) {
		// given
		ctx, service, _, _ := setupTestService(t)

		// when
		_, err := service.Create(ctx, 1500)

		// then
		var validationErr *rest.ValidationError
		assert.ErrorAs(t, err, &validationErr)
	})
}

func TestCloneBudget(t *testing.T) {
	t.Run("should clone into the next version of the same year", func(t *testing.T) {
		// given
		ctx, service, repo, _ := setupTestService(t)
		source, err := service.Create(ctx, 2025)
		assert.NoError(t, err)

		// when
		clone, err := service.Clone(ctx, source.ID)

		// then
		assert.NoError(t, err)
		assert.Equal(t, 2025, clone.Year)
		assert.Equal(t, 2, clone.Version)
		assert.Len(t, repo.CloneCalls, 1)
		assert.Equal(t, [2]int{source.ID, clone.ID}, repo.CloneCalls[0])
	})

	t.Run("should fail when the source budget does not exist", func(t *testing.T) {
		// given
		ctx, service, _, _ := setupTestService(t)

		// when
		_, err := service.Clone(ctx, 42)

		// then
		assert.ErrorIs(t, err, ErrBudgetNotFound)
	})
}

func TestActivateBudget(t *testing.T) {
	t.Run("should activate budget and publish event", func(t *testing.T) {
		// given
		ctx, service, _, bus := setupTestService(t)
		budget, err := service.Create(ctx, 2025)
		assert.NoError(t, err)

		var activated event_bus.BudgetActivated
		event_bus.SubscribeTyped(bus, event_bus.TypeBudgetActivated,
			func(e event_bus.EventT[event_bus.BudgetActivated]) error {
				activated = e.Data
				return nil
			})

		// when
		err = service.Activate(ctx, budget.ID)

		// then
		assert.NoError(t, err)
		stored, err := service.Get(ctx, budget.ID)
		assert.NoError(t, err)
		assert.True(t, stored.IsActive)
		assert.Equal(t, budget.ID, activated.BudgetID)
		assert.Equal(t, 2025, activated.Year)
	})

	t.Run("should fail for unknown budget", func(t *testing.T) {
		// given
		ctx, service, _, _ := setupTestService(t)

		// when
		err := service.Activate(ctx, 42)

		// then
		assert.ErrorIs(t, err, ErrBudgetNotFound)
	})
}

func TestDeleteBudget(t *testing.T) {
	t.Run("should refuse to delete the active budget", func(t *testing.T) {
		// given
		ctx, service, _, _ := setupTestService(t)
		budget, err := service.Create(ctx, 2025)
		assert.NoError(t, err)
		assert.NoError(t, service.Activate(ctx, budget.ID))

		// when
		err = service.Delete(ctx, budget.ID)

		// then
		var validationErr *rest.ValidationError
		assert.ErrorAs(t, err, &validationErr)
	})

	t.Run("should delete an inactive budget", func(t *testing.T) {
		// given
		ctx, service, _, _ := setupTestService(t)
		budget, err := service.Create(ctx, 2025)
		assert.NoError(t, err)

		// when
		err = service.Delete(ctx, budget.ID)

		// then
		assert.NoError(t, err)
		_, err = service.Get(ctx, budget.ID)
		assert.ErrorIs(t, err, ErrBudgetNotFound)
	})
}
