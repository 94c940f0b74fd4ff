package budget

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	log "github.com/sirupsen/logrus"
	"github.com/techbudget/techbudget/internal/database"
)

var ErrBudgetNotFound = errors.New("budget not found")

type Repo interface {
	Store(ctx context.Context, budget Budget) (int, error)
	Get(ctx context.Context, id int) (Budget, error)
	GetAll(ctx context.Context) ([]Budget, error)
	GetActiveId(ctx context.Context) (int, error)
	FindMaxVersion(ctx context.Context, year int) (int, error)
	Activate(ctx context.Context, id int) (bool, error)
	Delete(ctx context.Context, id int) (bool, error)
	CloneInto(ctx context.Context, sourceId int, target Budget) (int, error)
}

type RepoImpl struct {
	db database.DB
}

func NewBudgetRepo(db database.DB) *RepoImpl {
	return &RepoImpl{db: db}
}

func (r *RepoImpl) Store(ctx context.Context, budget Budget) (int, error) {
	query := `INSERT INTO budget (year, version) VALUES ($1, $2) RETURNING id`

	var id int
	err := r.db.QueryRow(ctx, query, budget.Year, budget.Version).Scan(&id)
	if err != nil {
		err := fmt.Errorf("could not execute query: %w", err)
		log.Error(err)
		return 0, err
	}
	return id, nil
}

func (r *RepoImpl) Get(ctx context.Context, id int) (Budget, error) {
	query := `SELECT b.id, b.year, b.version, b.created_at, (ba.budget_id IS NOT NULL) AS is_active
	          FROM budget b
	          LEFT JOIN budget_active ba ON ba.budget_id = b.id
	          WHERE b.id = $1`

	var budget Budget
	err := r.db.QueryRow(ctx, query, id).
		Scan(&budget.ID, &budget.Year, &budget.Version, &budget.CreatedAt, &budget.IsActive)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Budget{}, ErrBudgetNotFound
		}
		err := fmt.Errorf("could not scan budget: %w", err)
		log.Error(err)
		return Budget{}, err
	}
	return budget, nil
}

func (r *RepoImpl) GetAll(ctx context.Context) ([]Budget, error) {
	query := `SELECT b.id, b.year, b.version, b.created_at, (ba.budget_id IS NOT NULL) AS is_active
	          FROM budget b
	          LEFT JOIN budget_active ba ON ba.budget_id = b.id
	          ORDER BY b.year DESC, b.version DESC`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		err := fmt.Errorf("could not query budgets: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	var budgets []Budget
	for rows.Next() {
		var budget Budget
		if err := rows.Scan(&budget.ID, &budget.Year, &budget.Version, &budget.CreatedAt, &budget.IsActive); err != nil {
			err := fmt.Errorf("could not scan budget: %w", err)
			log.Error(err)
			return nil, err
		}
		budgets = append(budgets, budget)
	}
	if err := rows.Err(); err != nil {
		err := fmt.Errorf("error iterating over rows: %w", err)
		log.Error(err)
		return nil, err
	}
	return budgets, nil
}

func (r *RepoImpl) GetActiveId(ctx context.Context) (int, error) {
	query := `SELECT budget_id FROM budget_active`
	var id int
	err := r.db.QueryRow(ctx, query).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug("no active budget, returning 0")
			return 0, nil
		}
		err := fmt.Errorf("could not get active budget id: %w", err)
		log.Error(err)
		return 0, err
	}
	return id, nil
}

func (r *RepoImpl) FindMaxVersion(ctx context.Context, year int) (int, error) {
	query := `SELECT COALESCE(MAX(version), 0) FROM budget WHERE year = $1`
	var maxVersion int
	err := r.db.QueryRow(ctx, query, year).Scan(&maxVersion)
	if err != nil {
		err := fmt.Errorf("could not find max version: %w", err)
		log.Error(err)
		return 0, err
	}
	return maxVersion, nil
}

// Activate swaps the single-row active pointer to the given budget. The
// budget_active table holds at most one row (singleton primary key), so the
// store serializes concurrent activations.
func (r *RepoImpl) Activate(ctx context.Context, id int) (bool, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return false, err
	}
	defer tx.Rollback(ctx)

	var exists bool
	if err := tx.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM budget WHERE id = $1)`, id).Scan(&exists); err != nil {
		err := fmt.Errorf("could not check budget existence: %w", err)
		log.Error(err)
		return false, err
	}
	if !exists {
		return false, ErrBudgetNotFound
	}

	query := `INSERT INTO budget_active (singleton, budget_id) VALUES (TRUE, $1)
	          ON CONFLICT (singleton) DO UPDATE SET budget_id = EXCLUDED.budget_id`
	if _, err := tx.Exec(ctx, query, id); err != nil {
		err := fmt.Errorf("could not execute query: %w", err)
		log.Error(err)
		return false, err
	}

	if err := tx.Commit(ctx); err != nil {
		return false, fmt.Errorf("could not commit transaction: %w", err)
	}
	return true, nil
}

func (r *RepoImpl) Delete(ctx context.Context, id int) (bool, error) {
	query := `DELETE FROM budget WHERE id = $1`
	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		err := fmt.Errorf("could not execute query: %w", err)
		log.Error(err)
		return false, err
	}
	return result.RowsAffected() == 1, nil
}

// CloneInto creates the target budget and copies the source budget's lines
// and conversion rates into it, all in one transaction.
func (r *RepoImpl) CloneInto(ctx context.Context, sourceId int, target Budget) (int, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback(ctx)

	var id int
	insertBudget := `INSERT INTO budget (year, version) VALUES ($1, $2) RETURNING id`
	if err := tx.QueryRow(ctx, insertBudget, target.Year, target.Version).Scan(&id); err != nil {
		err := fmt.Errorf("could not execute query: %w", err)
		log.Error(err)
		return 0, err
	}

	copyLines := `INSERT INTO budget_line (
	                  budget_id, expense_id, financial_company_id, technology_direction_id, currency,
	                  plan_m1, plan_m2, plan_m3, plan_m4, plan_m5, plan_m6,
	                  plan_m7, plan_m8, plan_m9, plan_m10, plan_m11, plan_m12)
	              SELECT $1, expense_id, financial_company_id, technology_direction_id, currency,
	                  plan_m1, plan_m2, plan_m3, plan_m4, plan_m5, plan_m6,
	                  plan_m7, plan_m8, plan_m9, plan_m10, plan_m11, plan_m12
	              FROM budget_line WHERE budget_id = $2`
	if _, err := tx.Exec(ctx, copyLines, id, sourceId); err != nil {
		err := fmt.Errorf("could not copy budget lines: %w", err)
		log.Error(err)
		return 0, err
	}

	copyRates := `INSERT INTO conversion_rate (budget_id, currency, month, rate)
	              SELECT $1, currency, month, rate FROM conversion_rate WHERE budget_id = $2`
	if _, err := tx.Exec(ctx, copyRates, id, sourceId); err != nil {
		err := fmt.Errorf("could not copy conversion rates: %w", err)
		log.Error(err)
		return 0, err
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("could not commit transaction: %w", err)
	}
	return id, nil
}
