package report

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/techbudget/techbudget/internal/utils"
	"github.com/techbudget/techbudget/pkg/budgetline"
	"github.com/techbudget/techbudget/pkg/catalog"
	"github.com/techbudget/techbudget/pkg/expense"
	"github.com/techbudget/techbudget/pkg/savings"
)

const testBudgetId = 1

type testFixture struct {
	service     *ServiceImpl
	lineRepo    *budgetline.StubBudgetLineRepo
	savingsRepo *savings.StubSavingsRepo
	clock       *utils.MockClock
	cloudId     int
	dataId      int
	financeId   int
	hrId        int
}

// newTestFixture seeds two budget lines:
//
//	INFRA-001 at Acme: plan 1000 in January, an open commitment of 200, a
//	compensated commitment of 300 and a real payment of 300.
//	SW-002 at Beta: plan 500 in February, no transactions.
//
// INFRA-001 belongs to both tech directions and the Finance area; SW-002
// only to Cloud and HR.
func newTestFixture(t *testing.T) *testFixture {
	ctx := context.Background()

	catalogRepo := catalog.NewStubCatalogRepo()
	catalogService := catalog.NewCatalogService(catalogRepo)
	cloud, err := catalogService.CreateTechDirection(ctx, catalog.TechnologyDirection{Name: "Cloud"})
	assert.NoError(t, err)
	data, err := catalogService.CreateTechDirection(ctx, catalog.TechnologyDirection{Name: "Data"})
	assert.NoError(t, err)
	finance, err := catalogService.CreateUserArea(ctx, catalog.UserArea{Name: "Finance"})
	assert.NoError(t, err)
	hr, err := catalogService.CreateUserArea(ctx, catalog.UserArea{Name: "HR"})
	assert.NoError(t, err)

	lineRepo := budgetline.NewStubBudgetLineRepo()
	infraLine := budgetline.ReportLine{
		BudgetLine: budgetline.BudgetLine{
			ID: 1, BudgetID: testBudgetId, ExpenseID: 1, FinancialCompanyID: 1, Currency: "USD",
		},
		Expense: expense.Expense{
			ID: 1, Code: "INFRA-001", ShortDescription: "Cloud hosting", Active: true,
			TechnologyDirectionIDs: []int{cloud.ID, data.ID},
			UserAreaIDs:            []int{finance.ID},
		},
		Company: catalog.FinancialCompany{ID: 1, Code: "ACME", Name: "Acme"},
		Transactions: []budgetline.ReportTransaction{
			{ID: 1, Type: "COMMITTED", ServiceDate: "2025-01-10", Month: 1, USDValue: decimal.NewFromInt(200)},
			{ID: 2, Type: "COMMITTED", ServiceDate: "2025-01-12", Month: 1, USDValue: decimal.NewFromInt(300), IsCompensated: true},
			{ID: 3, Type: "REAL", ServiceDate: "2025-01-20", Month: 1, USDValue: decimal.NewFromInt(300)},
		},
	}
	infraLine.Plan[0] = decimal.NewFromInt(1000)

	swLine := budgetline.ReportLine{
		BudgetLine: budgetline.BudgetLine{
			ID: 2, BudgetID: testBudgetId, ExpenseID: 2, FinancialCompanyID: 2, Currency: "USD",
		},
		Expense: expense.Expense{
			ID: 2, Code: "SW-002", ShortDescription: "Licenses", Active: true,
			TechnologyDirectionIDs: []int{cloud.ID},
			UserAreaIDs:            []int{hr.ID},
		},
		Company: catalog.FinancialCompany{ID: 2, Code: "BETA", Name: "Beta"},
	}
	swLine.Plan[1] = decimal.NewFromInt(500)

	lineRepo.ReportLines[testBudgetId] = []budgetline.ReportLine{infraLine, swLine}

	savingsRepo := savings.NewStubSavingsRepo()
	clock := &utils.MockClock{FixedNow: time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)}

	return &testFixture{
		service:     NewReportService(lineRepo, savings.NewSavingsService(savingsRepo), catalogService, clock),
		lineRepo:    lineRepo,
		savingsRepo: savingsRepo,
		clock:       clock,
		cloudId:     cloud.ID,
		dataId:      data.ID,
		financeId:   finance.ID,
		hrId:        hr.ID,
	}
}

func TestGetReportValidation(t *testing.T) {
	t.Run("should require a budget id for every type", func(t *testing.T) {
		// given
		f := newTestFixture(t)

		// when
		_, err := f.service.GetReport(context.Background(), TypeExecutiveSummary, Filters{})

		// then
		assert.EqualError(t, err, "budgetId is required")
	})

	t.Run("should reject an unknown report type", func(t *testing.T) {
		// given
		f := newTestFixture(t)

		// when
		_, err := f.service.GetReport(context.Background(), "not-a-real-type", Filters{BudgetID: testBudgetId})

		// then
		assert.EqualError(t, err, "Invalid report type")
	})
}

func TestExecutiveSummary(t *testing.T) {
	t.Run("should total plan and exclude compensated commitments", func(t *testing.T) {
		// given
		f := newTestFixture(t)

		// when
		result, err := f.service.GetReport(context.Background(), TypeExecutiveSummary, Filters{BudgetID: testBudgetId})

		// then
		assert.NoError(t, err)
		assert.Len(t, result.Rows, 1)
		row := result.Rows[0]
		assert.Equal(t, 1500.0, row["totalPlan"])
		assert.Equal(t, 200.0, row["totalCommitted"])
		assert.Equal(t, 300.0, row["totalReal"])
		assert.Equal(t, 1000.0, row["balance"])
		assert.InDelta(t, 33.33, row["executionPercent"].(float64), 0.01)
	})

	t.Run("should return zeros for an empty budget", func(t *testing.T) {
		// given
		f := newTestFixture(t)

		// when
		result, err := f.service.GetReport(context.Background(), TypeExecutiveSummary, Filters{BudgetID: 99})

		// then
		assert.NoError(t, err)
		row := result.Rows[0]
		assert.Equal(t, 0.0, row["totalPlan"])
		assert.Equal(t, 0.0, row["executionPercent"])
	})
}

func TestBudgetExecution(t *testing.T) {
	t.Run("should return one row per budget line", func(t *testing.T) {
		// given
		f := newTestFixture(t)

		// when
		result, err := f.service.GetReport(context.Background(), TypeBudgetExecution, Filters{BudgetID: testBudgetId})

		// then
		assert.NoError(t, err)
		assert.Len(t, result.Rows, 2)
		assert.Equal(t, "INFRA-001", result.Rows[0]["expenseCode"])
		assert.Equal(t, 500.0, result.Rows[0]["balance"])
	})

	t.Run("should narrow to one financial company", func(t *testing.T) {
		// given
		f := newTestFixture(t)
		companyId := 2

		// when
		result, err := f.service.GetReport(context.Background(), TypeBudgetExecution,
			Filters{BudgetID: testBudgetId, FinancialCompanyID: &companyId})

		// then
		assert.NoError(t, err)
		assert.Len(t, result.Rows, 1)
		assert.Equal(t, "SW-002", result.Rows[0]["expenseCode"])
	})
}

func TestPlanVsReal(t *testing.T) {
	t.Run("should default to all twelve months", func(t *testing.T) {
		// given
		f := newTestFixture(t)

		// when
		result, err := f.service.GetReport(context.Background(), TypePlanVsReal, Filters{BudgetID: testBudgetId})

		// then
		assert.NoError(t, err)
		assert.Len(t, result.Rows, 12)
		january := result.Rows[0]
		assert.Equal(t, 1000.0, january["plan"])
		assert.Equal(t, 200.0, january["committed"])
		assert.Equal(t, 300.0, january["real"])
		assert.Equal(t, 500.0, january["difference"])
	})

	t.Run("should honour the month range", func(t *testing.T) {
		// given
		f := newTestFixture(t)

		// when
		result, err := f.service.GetReport(context.Background(), TypePlanVsReal,
			Filters{BudgetID: testBudgetId, MonthFrom: 2, MonthTo: 3})

		// then
		assert.NoError(t, err)
		assert.Len(t, result.Rows, 2)
		assert.Equal(t, 2, result.Rows[0]["month"])
		assert.Equal(t, 500.0, result.Rows[0]["plan"])
	})
}

func TestByFinancialCompany(t *testing.T) {
	t.Run("should group totals per company with plan share", func(t *testing.T) {
		// given
		f := newTestFixture(t)

		// when
		result, err := f.service.GetReport(context.Background(), TypeByFinancialCompany, Filters{BudgetID: testBudgetId})

		// then
		assert.NoError(t, err)
		assert.Len(t, result.Rows, 2)

		percentSum := 0.0
		for _, row := range result.Rows {
			percentSum += row["planPercent"].(float64)
		}
		assert.InDelta(t, 100.0, percentSum, 0.01)
	})
}

func TestByTechDirection(t *testing.T) {
	t.Run("should fan an expense out over all its directions", func(t *testing.T) {
		// given
		f := newTestFixture(t)

		// when
		result, err := f.service.GetReport(context.Background(), TypeByTechDirection, Filters{BudgetID: testBudgetId})

		// then
		assert.NoError(t, err)
		byName := map[string]map[string]any{}
		for _, row := range result.Rows {
			byName[row["technologyDirection"].(string)] = row
		}
		// INFRA-001 contributes to both Cloud and Data; totals overlap on
		// purpose.
		assert.Equal(t, 1500.0, byName["Cloud"]["plan"])
		assert.Equal(t, 2, byName["Cloud"]["count"])
		assert.Equal(t, 1000.0, byName["Data"]["plan"])
		assert.Equal(t, 1, byName["Data"]["count"])
	})
}

func TestByUserArea(t *testing.T) {
	t.Run("should group by user area membership", func(t *testing.T) {
		// given
		f := newTestFixture(t)

		// when
		result, err := f.service.GetReport(context.Background(), TypeByUserArea, Filters{BudgetID: testBudgetId})

		// then
		assert.NoError(t, err)
		byName := map[string]map[string]any{}
		for _, row := range result.Rows {
			byName[row["userArea"].(string)] = row
		}
		assert.Equal(t, 1000.0, byName["Finance"]["plan"])
		assert.Equal(t, 500.0, byName["HR"]["plan"])
	})
}

func TestDetailedTransactions(t *testing.T) {
	t.Run("should list every transaction sorted by month and date", func(t *testing.T) {
		// given
		f := newTestFixture(t)

		// when
		result, err := f.service.GetReport(context.Background(), TypeDetailedTransactions, Filters{BudgetID: testBudgetId})

		// then
		assert.NoError(t, err)
		assert.Len(t, result.Rows, 3)
		assert.Equal(t, "2025-01-10", result.Rows[0]["serviceDate"])
		assert.Equal(t, true, result.Rows[1]["isCompensated"])
	})
}

func TestVarianceAnalysis(t *testing.T) {
	t.Run("should label variance bands", func(t *testing.T) {
		// given
		f := newTestFixture(t)

		// when
		result, err := f.service.GetReport(context.Background(), TypeVarianceAnalysis, Filters{BudgetID: testBudgetId})

		// then
		assert.NoError(t, err)
		byCode := map[string]map[string]any{}
		for _, row := range result.Rows {
			byCode[row["expenseCode"].(string)] = row
		}
		// All transactions count here, including compensated ones:
		// 200 + 300 + 300 = 800 against a plan of 1000.
		infra := byCode["INFRA-001"]
		assert.Equal(t, 800.0, infra["actual"])
		assert.Equal(t, 200.0, infra["variance"])
		assert.Equal(t, 20.0, infra["variancePercent"])
		assert.Equal(t, "Subejecutado", infra["status"])

		sw := byCode["SW-002"]
		assert.Equal(t, "Subejecutado", sw["status"])
	})

	t.Run("should label an overspent line Sobreejecutado", func(t *testing.T) {
		// given
		f := newTestFixture(t)
		lines := f.lineRepo.ReportLines[testBudgetId]
		lines[1].Transactions = []budgetline.ReportTransaction{
			{ID: 9, Type: "REAL", ServiceDate: "2025-02-01", Month: 2, USDValue: decimal.NewFromInt(700)},
		}

		// when
		result, err := f.service.GetReport(context.Background(), TypeVarianceAnalysis, Filters{BudgetID: testBudgetId})

		// then
		assert.NoError(t, err)
		for _, row := range result.Rows {
			if row["expenseCode"] == "SW-002" {
				assert.Equal(t, "Sobreejecutado", row["status"])
			}
		}
	})
}

func TestSavingsDeferrals(t *testing.T) {
	t.Run("should union savings and deferral rows", func(t *testing.T) {
		// given
		f := newTestFixture(t)
		f.savingsRepo.LineBudget[1] = testBudgetId
		_, err := f.savingsRepo.StoreSaving(context.Background(), savings.Saving{
			BudgetLineID: 1, TotalAmount: decimal.NewFromInt(250), Status: savings.StatusPending,
		})
		assert.NoError(t, err)
		_, err = f.savingsRepo.StoreDeferral(context.Background(), savings.Deferral{
			BudgetLineID: 1, TotalAmount: decimal.NewFromInt(400), StartMonth: 3, EndMonth: 6,
		})
		assert.NoError(t, err)

		// when
		result, err := f.service.GetReport(context.Background(), TypeSavingsDeferrals, Filters{BudgetID: testBudgetId})

		// then
		assert.NoError(t, err)
		assert.Len(t, result.Rows, 2)
		assert.Equal(t, "SAVING", result.Rows[0]["kind"])
		assert.Equal(t, "PENDING", result.Rows[0]["status"])
		assert.Equal(t, "DEFERRAL", result.Rows[1]["kind"])
		assert.Equal(t, "M3-M6", result.Rows[1]["period"])
	})
}

func TestAnnualProjection(t *testing.T) {
	t.Run("should split the year at the current month", func(t *testing.T) {
		// given
		f := newTestFixture(t)
		f.clock.SetNow(time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC))

		// when
		result, err := f.service.GetReport(context.Background(), TypeAnnualProjection, Filters{BudgetID: testBudgetId})

		// then
		assert.NoError(t, err)
		assert.Len(t, result.Rows, 12)
		for _, row := range result.Rows {
			month := row["month"].(int)
			if month <= 6 {
				assert.NotNil(t, row["actual"], "month %d", month)
				assert.Nil(t, row["projected"], "month %d", month)
			} else {
				assert.Nil(t, row["actual"], "month %d", month)
				assert.NotNil(t, row["projected"], "month %d", month)
			}
		}

		// Actuals in January are 200 + 300 = 500; no plan carries forward
		// after June because all plan sits in January and February.
		assert.Equal(t, 500.0, result.Rows[0]["actual"])
		assert.Equal(t, 500.0, result.Rows[11]["cumulativeActual"])
		assert.Equal(t, 1500.0, result.Rows[11]["cumulativePlan"])
	})

	t.Run("should carry plan forward as projection", func(t *testing.T) {
		// given
		f := newTestFixture(t)
		f.clock.SetNow(time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC))

		// when
		result, err := f.service.GetReport(context.Background(), TypeAnnualProjection, Filters{BudgetID: testBudgetId})

		// then
		assert.NoError(t, err)
		// February's plan of 500 is still ahead, so it shows as projection
		// and lands in the cumulative actual.
		assert.Equal(t, 500.0, result.Rows[1]["projected"])
		assert.Equal(t, 1000.0, result.Rows[11]["cumulativeActual"])
	})
}

func TestGetReportIdempotence(t *testing.T) {
	t.Run("should return identical output for identical input", func(t *testing.T) {
		// given
		f := newTestFixture(t)

		for _, reportType := range []string{
			TypeExecutiveSummary, TypeBudgetExecution, TypePlanVsReal,
			TypeByFinancialCompany, TypeByTechDirection, TypeByUserArea,
			TypeDetailedTransactions, TypeVarianceAnalysis, TypeSavingsDeferrals,
			TypeAnnualProjection,
		} {
			// when
			first, err := f.service.GetReport(context.Background(), reportType, Filters{BudgetID: testBudgetId})
			assert.NoError(t, err)
			second, err := f.service.GetReport(context.Background(), reportType, Filters{BudgetID: testBudgetId})
			assert.NoError(t, err)

			// then
			assert.Equal(t, first, second, reportType)
		}
	})
}
