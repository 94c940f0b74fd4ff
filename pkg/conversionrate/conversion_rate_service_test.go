package conversionrate

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/techbudget/techbudget/internal/rest"
)

func TestCreateConversionRate(t *testing.T) {
	t.Run("should store a rate", func(t *testing.T) {
		// given
		service := NewConversionRateService(NewStubConversionRateRepo())

		// when
		created, err := service.Create(context.Background(), ConversionRate{
			BudgetID: 1, Currency: "EUR", Month: 3, Rate: decimal.NewFromFloat(1.08),
		})

		// then
		assert.NoError(t, err)
		assert.NotZero(t, created.ID)
	})

	t.Run("should reject a USD rate", func(t *testing.T) {
		// given
		service := NewConversionRateService(NewStubConversionRateRepo())

		// when
		_, err := service.Create(context.Background(), ConversionRate{
			BudgetID: 1, Currency: "USD", Month: 3, Rate: decimal.NewFromInt(1),
		})

		// then
		var validationErr *rest.ValidationError
		assert.ErrorAs(t, err, &validationErr)
	})

	t.Run("should reject a duplicate currency and month", func(t *testing.T) {
		// given
		service := NewConversionRateService(NewStubConversionRateRepo())
		rate := ConversionRate{BudgetID: 1, Currency: "EUR", Month: 3, Rate: decimal.NewFromFloat(1.08)}
		_, err := service.Create(context.Background(), rate)
		assert.NoError(t, err)

		// when
		_, err = service.Create(context.Background(), rate)

		// then
		var validationErr *rest.ValidationError
		assert.ErrorAs(t, err, &validationErr)
	})

	t.Run("should reject month outside 1 to 12", func(t *testing.T) {
		// given
		service := NewConversionRateService(NewStubConversionRateRepo())

		// when
		_, err := service.Create(context.Background(), ConversionRate{
			BudgetID: 1, Currency: "EUR", Month: 13, Rate: decimal.NewFromInt(1),
		})

		// then
		var validationErr *rest.ValidationError
		assert.ErrorAs(t, err, &validationErr)
	})
}

func TestRateFor(t *testing.T) {
	t.Run("should return identity for USD without a stored row", func(t *testing.T) {
		// given
		service := NewConversionRateService(NewStubConversionRateRepo())

		// when
		rate, err := service.RateFor(context.Background(), 1, "USD", 7)

		// then
		assert.NoError(t, err)
		assert.True(t, decimal.NewFromInt(1).Equal(rate))
	})

	t.Run("should return the stored rate for a known currency", func(t *testing.T) {
		// given
		service := NewConversionRateService(NewStubConversionRateRepo())
		_, err := service.Create(context.Background(), ConversionRate{
			BudgetID: 1, Currency: "EUR", Month: 7, Rate: decimal.NewFromFloat(1.08),
		})
		assert.NoError(t, err)

		// when
		rate, err := service.RateFor(context.Background(), 1, "EUR", 7)

		// then
		assert.NoError(t, err)
		assert.True(t, decimal.NewFromFloat(1.08).Equal(rate))
	})

	t.Run("should fail for a missing rate", func(t *testing.T) {
		// given
		service := NewConversionRateService(NewStubConversionRateRepo())

		// when
		_, err := service.RateFor(context.Background(), 1, "EUR", 7)

		// then
		var notFoundErr *rest.NotFoundError
		assert.ErrorAs(t, err, &notFoundErr)
	})
}
