package budgetline

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/techbudget/techbudget/internal/rest"
)

func TestMonthTotal(t *testing.T) {
	t.Run("should sum all twelve months", func(t *testing.T) {
		// given
		line := BudgetLine{}
		for i := 0; i < 12; i++ {
			line.Plan[i] = decimal.NewFromInt(100)
		}

		// when
		total := line.MonthTotal()

		// then
		assert.True(t, decimal.NewFromInt(1200).Equal(total))
	})

	t.Run("should be zero for an empty line", func(t *testing.T) {
		assert.True(t, BudgetLine{}.MonthTotal().IsZero())
	})
}

func TestMonthValue(t *testing.T) {
	// given
	line := BudgetLine{}
	line.Plan[0] = decimal.NewFromInt(1000)

	// then
	assert.True(t, decimal.NewFromInt(1000).Equal(line.MonthValue(1)))
	assert.True(t, line.MonthValue(2).IsZero())
	assert.True(t, line.MonthValue(0).IsZero())
	assert.True(t, line.MonthValue(13).IsZero())
}

func TestCreateBudgetLine(t *testing.T) {
	t.Run("should reject a duplicate expense and company pair", func(t *testing.T) {
		// given
		repo := NewStubBudgetLineRepo()
		service := NewBudgetLineService(repo)
		line := BudgetLine{BudgetID: 1, ExpenseID: 5, FinancialCompanyID: 2, Currency: "USD"}
		_, err := service.Create(context.Background(), line)
		assert.NoError(t, err)

		// when
		_, err = service.Create(context.Background(), line)

		// then
		var validationErr *rest.ValidationError
		assert.ErrorAs(t, err, &validationErr)
	})

	t.Run("should require a budget id", func(t *testing.T) {
		// given
		service := NewBudgetLineService(NewStubBudgetLineRepo())

		// when
		_, err := service.Create(context.Background(), BudgetLine{ExpenseID: 5, FinancialCompanyID: 2, Currency: "USD"})

		// then
		assert.EqualError(t, err, "budgetId is required")
	})
}
