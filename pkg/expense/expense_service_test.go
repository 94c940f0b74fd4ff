package expense

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/techbudget/techbudget/internal/rest"
)

func TestCreateExpense(t *testing.T) {
	t.Run("should create expense as active", func(t *testing.T) {
		// given
		repo := NewStubExpenseRepo()
		service := NewExpenseService(repo)

		// when
		created, err := service.Create(context.Background(), Expense{
			Code:               "INFRA-001",
			ShortDescription:   "Cloud hosting",
			FinancialCompanyID: 1,
		})

		// then
		assert.NoError(t, err)
		assert.NotZero(t, created.ID)
		assert.True(t, created.Active)
	})

	t.Run("should reject expense without code", func(t *testing.T) {
		// given
		repo := NewStubExpenseRepo()
		service := NewExpenseService(repo)

		// when
		_, err := service.Create(context.Background(), Expense{ShortDescription: "No code"})

		// then
		var validationErr *rest.ValidationError
		assert.ErrorAs(t, err, &validationErr)
	})

	t.Run("should reject duplicate code", func(t *testing.T) {
		// given
		repo := NewStubExpenseRepo()
		service := NewExpenseService(repo)
		_, err := service.Create(context.Background(), Expense{Code: "INFRA-001", FinancialCompanyID: 1})
		assert.NoError(t, err)

		// when
		_, err = service.Create(context.Background(), Expense{Code: "INFRA-001", FinancialCompanyID: 2})

		// then
		var validationErr *rest.ValidationError
		assert.ErrorAs(t, err, &validationErr)
	})
}

func TestDeactivateExpense(t *testing.T) {
	t.Run("should keep deactivated expense out of default listing", func(t *testing.T) {
		// given
		repo := NewStubExpenseRepo()
		service := NewExpenseService(repo)
		created, err := service.Create(context.Background(), Expense{Code: "SW-002", FinancialCompanyID: 1})
		assert.NoError(t, err)

		// when
		err = service.Deactivate(context.Background(), created.ID)

		// then
		assert.NoError(t, err)
		active, err := service.GetAll(context.Background(), false)
		assert.NoError(t, err)
		assert.Empty(t, active)
		all, err := service.GetAll(context.Background(), true)
		assert.NoError(t, err)
		assert.Len(t, all, 1)
		assert.False(t, all[0].Active)
	})

	t.Run("should return not found for unknown expense", func(t *testing.T) {
		// given
		service := NewExpenseService(NewStubExpenseRepo())

		// when
		err := service.Deactivate(context.Background(), 999)

		// then
		assert.ErrorIs(t, err, ErrExpenseNotFound)
	})
}
