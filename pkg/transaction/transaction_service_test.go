package transaction

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/techbudget/techbudget/internal/event_bus"
	"github.com/techbudget/techbudget/internal/rest"
	"github.com/techbudget/techbudget/pkg/budgetline"
	"github.com/techbudget/techbudget/pkg/conversionrate"
)

func newTestService(t *testing.T) (*ServiceImpl, *budgetline.StubBudgetLineRepo, *conversionrate.StubConversionRateRepo) {
	lineRepo := budgetline.NewStubBudgetLineRepo()
	rateRepo := conversionrate.NewStubConversionRateRepo()
	service := NewTransactionService(
		NewStubTransactionRepo(),
		budgetline.NewBudgetLineService(lineRepo),
		conversionrate.NewConversionRateService(rateRepo),
		event_bus.NewEventBus(),
	)
	return service, lineRepo, rateRepo
}

func storeLine(t *testing.T, repo *budgetline.StubBudgetLineRepo) int {
	id, err := repo.Store(context.Background(), budgetline.BudgetLine{
		BudgetID: 1, ExpenseID: 1, FinancialCompanyID: 1, Currency: "USD",
	})
	assert.NoError(t, err)
	return id
}

func TestCreateTransaction(t *testing.T) {
	serviceDate := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	t.Run("should convert USD at identity rate", func(t *testing.T) {
		// given
		service, lineRepo, _ := newTestService(t)
		lineId := storeLine(t, lineRepo)

		// when
		created, err := service.Create(context.Background(), Transaction{
			BudgetLineID: lineId,
			Type:         TypeCommitted,
			ServiceDate:  serviceDate,
			PostingDate:  serviceDate,
			Currency:     "USD",
			Value:        decimal.NewFromInt(500),
			Month:        3,
		})

		// then
		assert.NoError(t, err)
		assert.True(t, decimal.NewFromInt(500).Equal(created.USDValue))
		assert.True(t, decimal.NewFromInt(1).Equal(created.ConversionRate))
	})

	t.Run("should convert foreign currency at the stored rate", func(t *testing.T) {
		// given
		service, lineRepo, rateRepo := newTestService(t)
		lineId := storeLine(t, lineRepo)
		_, err := rateRepo.Store(context.Background(), conversionrate.ConversionRate{
			BudgetID: 1, Currency: "EUR", Month: 3, Rate: decimal.NewFromFloat(1.1),
		})
		assert.NoError(t, err)

		// when
		created, err := service.Create(context.Background(), Transaction{
			BudgetLineID: lineId,
			Type:         TypeReal,
			ServiceDate:  serviceDate,
			PostingDate:  serviceDate,
			Currency:     "EUR",
			Value:        decimal.NewFromInt(1000),
			Month:        3,
		})

		// then
		assert.NoError(t, err)
		assert.True(t, decimal.NewFromInt(1100).Equal(created.USDValue))
	})

	t.Run("should reject unknown type", func(t *testing.T) {
		// given
		service, lineRepo, _ := newTestService(t)
		lineId := storeLine(t, lineRepo)

		// when
		_, err := service.Create(context.Background(), Transaction{
			BudgetLineID: lineId, Type: "PLANNED", Currency: "USD",
			Value: decimal.NewFromInt(1), Month: 3,
		})

		// then
		var validationErr *rest.ValidationError
		assert.ErrorAs(t, err, &validationErr)
	})

	t.Run("should reject month outside 1 to 12", func(t *testing.T) {
		// given
		service, lineRepo, _ := newTestService(t)
		lineId := storeLine(t, lineRepo)

		// when
		_, err := service.Create(context.Background(), Transaction{
			BudgetLineID: lineId, Type: TypeReal, Currency: "USD",
			Value: decimal.NewFromInt(1), Month: 0,
		})

		// then
		var validationErr *rest.ValidationError
		assert.ErrorAs(t, err, &validationErr)
	})

	t.Run("should fail when the conversion rate is missing", func(t *testing.T) {
		// given
		service, lineRepo, _ := newTestService(t)
		lineId := storeLine(t, lineRepo)

		// when
		_, err := service.Create(context.Background(), Transaction{
			BudgetLineID: lineId, Type: TypeReal, ServiceDate: serviceDate,
			PostingDate: serviceDate, Currency: "EUR",
			Value: decimal.NewFromInt(1), Month: 3,
		})

		// then
		var notFoundErr *rest.NotFoundError
		assert.ErrorAs(t, err, &notFoundErr)
	})
}

func TestCompensate(t *testing.T) {
	serviceDate := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	create := func(t *testing.T, service *ServiceImpl, lineId int, txType string) Transaction {
		created, err := service.Create(context.Background(), Transaction{
			BudgetLineID: lineId, Type: txType, ServiceDate: serviceDate,
			PostingDate: serviceDate, Currency: "USD",
			Value: decimal.NewFromInt(100), Month: 3,
		})
		assert.NoError(t, err)
		return created
	}

	t.Run("should compensate a committed transaction with a real one", func(t *testing.T) {
		// given
		service, lineRepo, _ := newTestService(t)
		lineId := storeLine(t, lineRepo)
		committed := create(t, service, lineId, TypeCommitted)
		real := create(t, service, lineId, TypeReal)

		// when
		err := service.Compensate(context.Background(), committed.ID, real.ID)

		// then
		assert.NoError(t, err)
		updated, err := service.Get(context.Background(), committed.ID)
		assert.NoError(t, err)
		assert.True(t, updated.IsCompensated)
		assert.Equal(t, &real.ID, updated.CompensatedByID)
	})

	t.Run("should reject compensating a real transaction", func(t *testing.T) {
		// given
		service, lineRepo, _ := newTestService(t)
		lineId := storeLine(t, lineRepo)
		real1 := create(t, service, lineId, TypeReal)
		real2 := create(t, service, lineId, TypeReal)

		// when
		err := service.Compensate(context.Background(), real1.ID, real2.ID)

		// then
		var validationErr *rest.ValidationError
		assert.ErrorAs(t, err, &validationErr)
	})

	t.Run("should reject a compensation across budget lines", func(t *testing.T) {
		// given
		service, lineRepo, _ := newTestService(t)
		lineId := storeLine(t, lineRepo)
		otherLineId, err := lineRepo.Store(context.Background(), budgetline.BudgetLine{
			BudgetID: 1, ExpenseID: 2, FinancialCompanyID: 1, Currency: "USD",
		})
		assert.NoError(t, err)
		committed := create(t, service, lineId, TypeCommitted)
		real := create(t, service, otherLineId, TypeReal)

		// when
		err = service.Compensate(context.Background(), committed.ID, real.ID)

		// then
		var validationErr *rest.ValidationError
		assert.ErrorAs(t, err, &validationErr)
	})

	t.Run("should reject compensating twice", func(t *testing.T) {
		// given
		service, lineRepo, _ := newTestService(t)
		lineId := storeLine(t, lineRepo)
		committed := create(t, service, lineId, TypeCommitted)
		real := create(t, service, lineId, TypeReal)
		assert.NoError(t, service.Compensate(context.Background(), committed.ID, real.ID))

		// when
		err := service.Compensate(context.Background(), committed.ID, real.ID)

		// then
		var validationErr *rest.ValidationError
		assert.ErrorAs(t, err, &validationErr)
	})
}
