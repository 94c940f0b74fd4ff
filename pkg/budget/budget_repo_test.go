package budget

import (
	"context"
	"os"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/techbudget/techbudget/internal/test_utils"
)

var db *pgx.Conn

func TestMain(m *testing.M) {
	var cleanup func()
	db, cleanup = test_utils.TestWithDB()
	defer cleanup()
	code := m.Run()
	os.Exit(code)
}

func setupTestRepository(t *testing.T) (context.Context, *RepoImpl) {
	ctx := context.Background()
	tables := []string{
		"budget_transaction", "saving", "deferral", "conversion_rate",
		"budget_line", "budget_active", "budget",
		"expense_tech_direction", "expense_user_area", "expense", "financial_company",
	}
	for _, table := range tables {
		_, err := db.Exec(ctx, "DELETE FROM "+table)
		assert.NoError(t, err)
	}
	return ctx, NewBudgetRepo(db)
}

func TestRepoImpl_StoreAndGet(t *testing.T) {
	// given
	ctx, repo := setupTestRepository(t)

	// when
	id, err := repo.Store(ctx, Budget{Year: 2025, Version: 1})
	assert.NoError(t, err)

	// then
	stored, err := repo.Get(ctx, id)
	assert.NoError(t, err)
	assert.Equal(t, 2025, stored.Year)
	assert.Equal(t, 1, stored.Version)
	assert.False(t, stored.IsActive)
	assert.False(t, stored.CreatedAt.IsZero())
}

func TestRepoImpl_Get_ShouldReturnNotFoundForUnknownId(t *testing.T) {
	// given
	ctx, repo := setupTestRepository(t)

	// when
	_, err := repo.Get(ctx, 99999)

	// then
	assert.ErrorIs(t, err, ErrBudgetNotFound)
}

func TestRepoImpl_FindMaxVersion(t *testing.T) {
	// given
	ctx, repo := setupTestRepository(t)

	// when no budgets exist for the year
	maxVersion, err := repo.FindMaxVersion(ctx, 2025)
	assert.NoError(t, err)
	assert.Equal(t, 0, maxVersion)

	// when two versions exist
	_, err = repo.Store(ctx, Budget{Year: 2025, Version: 1})
	assert.NoError(t, err)
	_, err = repo.Store(ctx, Budget{Year: 2025, Version: 2})
	assert.NoError(t, err)

	// then
	maxVersion, err = repo.FindMaxVersion(ctx, 2025)
	assert.NoError(t, err)
	assert.Equal(t, 2, maxVersion)
}

func TestRepoImpl_Activate_ShouldSwapActivePointer(t *testing.T) {
	// given
	ctx, repo := setupTestRepository(t)
	firstId, err := repo.Store(ctx, Budget{Year: 2025, Version: 1})
	assert.NoError(t, err)
	secondId, err := repo.Store(ctx, Budget{Year: 2025, Version: 2})
	assert.NoError(t, err)

	// when
	ok, err := repo.Activate(ctx, firstId)
	assert.NoError(t, err)
	assert.True(t, ok)
	ok, err = repo.Activate(ctx, secondId)
	assert.NoError(t, err)
	assert.True(t, ok)

	// then only the second budget is active
	activeId, err := repo.GetActiveId(ctx)
	assert.NoError(t, err)
	assert.Equal(t, secondId, activeId)

	first, err := repo.Get(ctx, firstId)
	assert.NoError(t, err)
	assert.False(t, first.IsActive)
	second, err := repo.Get(ctx, secondId)
	assert.NoError(t, err)
	assert.True(t, second.IsActive)
}

func TestRepoImpl_Activate_ShouldFailForUnknownBudget(t *testing.T) {
	// given
	ctx, repo := setupTestRepository(t)

	// when
	_, err := repo.Activate(ctx, 99999)

	// then
	assert.ErrorIs(t, err, ErrBudgetNotFound)
}

func TestRepoImpl_GetActiveId_ShouldReturnZeroWhenNothingActive(t *testing.T) {
	// given
	ctx, repo := setupTestRepository(t)

	// when
	activeId, err := repo.GetActiveId(ctx)

	// then
	assert.NoError(t, err)
	assert.Equal(t, 0, activeId)
}

func TestRepoImpl_Delete(t *testing.T) {
	// given
	ctx, repo := setupTestRepository(t)
	id, err := repo.Store(ctx, Budget{Year: 2025, Version: 1})
	assert.NoError(t, err)

	// when
	deleted, err := repo.Delete(ctx, id)
	assert.NoError(t, err)
	assert.True(t, deleted)

	// then
	_, err = repo.Get(ctx, id)
	assert.ErrorIs(t, err, ErrBudgetNotFound)

	deleted, err = repo.Delete(ctx, id)
	assert.NoError(t, err)
	assert.False(t, deleted)
}

func TestRepoImpl_CloneInto_ShouldCopyLinesAndRates(t *testing.T) {
	// given
	ctx, repo := setupTestRepository(t)
	sourceId, err := repo.Store(ctx, Budget{Year: 2025, Version: 1})
	assert.NoError(t, err)

	var companyId int
	err = db.QueryRow(ctx,
		`INSERT INTO financial_company (code, name) VALUES ('ACME', 'Acme Corp') RETURNING id`).Scan(&companyId)
	assert.NoError(t, err)

	var expenseId int
	err = db.QueryRow(ctx,
		`INSERT INTO expense (code, short_description, financial_company_id)
		 VALUES ('INFRA-001', 'Cloud hosting', $1) RETURNING id`, companyId).Scan(&expenseId)
	assert.NoError(t, err)

	_, err = db.Exec(ctx,
		`INSERT INTO budget_line (budget_id, expense_id, financial_company_id, currency, plan_m1)
		 VALUES ($1, $2, $3, 'EUR', $4)`, sourceId, expenseId, companyId, decimal.NewFromInt(1000))
	assert.NoError(t, err)

	_, err = db.Exec(ctx,
		`INSERT INTO conversion_rate (budget_id, currency, month, rate)
		 VALUES ($1, 'EUR', 1, 1.1)`, sourceId)
	assert.NoError(t, err)

	// when
	cloneId, err := repo.CloneInto(ctx, sourceId, Budget{Year: 2025, Version: 2})
	assert.NoError(t, err)

	// then the clone is a distinct budget with copied lines and rates
	assert.NotEqual(t, sourceId, cloneId)

	var lineCount int
	err = db.QueryRow(ctx,
		`SELECT COUNT(*) FROM budget_line WHERE budget_id = $1`, cloneId).Scan(&lineCount)
	assert.NoError(t, err)
	assert.Equal(t, 1, lineCount)

	var plan decimal.Decimal
	err = db.QueryRow(ctx,
		`SELECT plan_m1 FROM budget_line WHERE budget_id = $1`, cloneId).Scan(&plan)
	assert.NoError(t, err)
	assert.True(t, plan.Equal(decimal.NewFromInt(1000)))

	var rateCount int
	err = db.QueryRow(ctx,
		`SELECT COUNT(*) FROM conversion_rate WHERE budget_id = $1`, cloneId).Scan(&rateCount)
	assert.NoError(t, err)
	assert.Equal(t, 1, rateCount)
}
