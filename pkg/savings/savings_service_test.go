package savings

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/techbudget/techbudget/internal/rest"
	"github.com/techbudget/techbudget/internal/test_utils"
	"github.com/techbudget/techbudget/pkg/user"
)

func TestCreateSaving(t *testing.T) {
	t.Run("should create a pending saving attributed to the request user", func(t *testing.T) {
		// given
		service := NewSavingsService(NewStubSavingsRepo())
		ctx := user.WithUser(context.Background(), user.User{Id: 7})

		// when
		created, err := service.CreateSaving(ctx, Saving{
			BudgetLineID: 1,
			TotalAmount:  decimal.NewFromInt(300),
		})

		// then
		assert.NoError(t, err)
		assert.Equal(t, StatusPending, created.Status)
		assert.Equal(t, 7, created.CreatedBy)
	})

	t.Run("should reject a non positive amount", func(t *testing.T) {
		// given
		service := NewSavingsService(NewStubSavingsRepo())

		// when
		_, err := service.CreateSaving(context.Background(), Saving{BudgetLineID: 1})

		// then
		var validationErr *rest.ValidationError
		assert.ErrorAs(t, err, &validationErr)
	})
}

func TestApproveSaving(t *testing.T) {
	t.Run("should approve a pending saving", func(t *testing.T) {
		// given
		repo := NewStubSavingsRepo()
		service := NewSavingsService(repo)
		created, err := service.CreateSaving(context.Background(), Saving{
			BudgetLineID: 1, TotalAmount: decimal.NewFromInt(300),
		})
		assert.NoError(t, err)

		// when
		err = service.ApproveSaving(context.Background(), created.ID)

		// then
		assert.NoError(t, err)
		saving, err := repo.GetSaving(context.Background(), created.ID)
		assert.NoError(t, err)
		assert.Equal(t, StatusApproved, saving.Status)
	})

	t.Run("should reject approving twice", func(t *testing.T) {
		// given
		service := NewSavingsService(NewStubSavingsRepo())
		created, err := service.CreateSaving(context.Background(), Saving{
			BudgetLineID: 1, TotalAmount: decimal.NewFromInt(300),
		})
		assert.NoError(t, err)
		assert.NoError(t, service.ApproveSaving(context.Background(), created.ID))

		// when
		err = service.ApproveSaving(context.Background(), created.ID)

		// then
		var validationErr *rest.ValidationError
		assert.ErrorAs(t, err, &validationErr)
	})

	t.Run("should fail for an unknown saving", func(t *testing.T) {
		// given
		service := NewSavingsService(NewStubSavingsRepo())

		// when
		err := service.ApproveSaving(context.Background(), 42)

		// then
		assert.ErrorIs(t, err, ErrSavingNotFound)
	})
}

func TestCreateDeferral(t *testing.T) {
	t.Run("should create a deferral attributed to the request user", func(t *testing.T) {
		// given
		service := NewSavingsService(NewStubSavingsRepo())
		ctx := test_utils.WithTestUser(context.Background())

		// when
		created, err := service.CreateDeferral(ctx, Deferral{
			BudgetLineID: 1,
			TotalAmount:  decimal.NewFromInt(500),
			StartMonth:   3,
			EndMonth:     6,
		})

		// then
		assert.NoError(t, err)
		assert.NotZero(t, created.ID)
		assert.Equal(t, 123, created.CreatedBy)
	})

	t.Run("should reject startMonth after endMonth", func(t *testing.T) {
		// given
		service := NewSavingsService(NewStubSavingsRepo())

		// when
		_, err := service.CreateDeferral(context.Background(), Deferral{
			BudgetLineID: 1,
			TotalAmount:  decimal.NewFromInt(500),
			StartMonth:   8,
			EndMonth:     3,
		})

		// then
		var validationErr *rest.ValidationError
		assert.ErrorAs(t, err, &validationErr)
	})
}
