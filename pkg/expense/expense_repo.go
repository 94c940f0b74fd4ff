package expense

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	log "github.com/sirupsen/logrus"
	"github.com/techbudget/techbudget/internal/database"
)

var ErrExpenseNotFound = errors.New("expense not found")
var ErrDuplicateCode = errors.New("expense code already exists")

const uniqueViolation = "23505"

type Repo interface {
	Store(ctx context.Context, expense Expense) (int, error)
	Get(ctx context.Context, id int) (Expense, error)
	GetAll(ctx context.Context, includeInactive bool) ([]Expense, error)
	Update(ctx context.Context, expense Expense) (bool, error)
	Deactivate(ctx context.Context, id int) (bool, error)
}

type RepoImpl struct {
	db database.DB
}

func NewExpenseRepo(db database.DB) *RepoImpl {
	return &RepoImpl{db: db}
}

func (r *RepoImpl) Store(ctx context.Context, expense Expense) (int, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback(ctx)

	query := `INSERT INTO expense (
	              code, short_description, long_description, financial_company_id, parent_expense_id, active
	          ) VALUES ($1, $2, $3, $4, $5, TRUE) RETURNING id`

	var id int
	err = tx.QueryRow(ctx, query,
		expense.Code,
		expense.ShortDescription,
		expense.LongDescription,
		expense.FinancialCompanyID,
		expense.ParentExpenseID,
	).Scan(&id)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, ErrDuplicateCode
		}
		err := fmt.Errorf("could not execute query: %w", err)
		log.Error(err)
		return 0, err
	}

	if err := r.storeMemberships(ctx, tx, id, expense); err != nil {
		return 0, err
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("could not commit transaction: %w", err)
	}
	return id, nil
}

func (r *RepoImpl) Get(ctx context.Context, id int) (Expense, error) {
	expenses, err := r.query(ctx, `WHERE e.id = $1`, id)
	if err != nil {
		return Expense{}, err
	}
	if len(expenses) == 0 {
		return Expense{}, ErrExpenseNotFound
	}
	return expenses[0], nil
}

func (r *RepoImpl) GetAll(ctx context.Context, includeInactive bool) ([]Expense, error) {
	if includeInactive {
		return r.query(ctx, "")
	}
	return r.query(ctx, `WHERE e.active`)
}

func (r *RepoImpl) Update(ctx context.Context, expense Expense) (bool, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return false, err
	}
	defer tx.Rollback(ctx)

	query := `UPDATE expense SET
	              code = $1,
	              short_description = $2,
	              long_description = $3,
	              financial_company_id = $4,
	              parent_expense_id = $5,
	              active = $6
	          WHERE id = $7`
	result, err := tx.Exec(ctx, query,
		expense.Code,
		expense.ShortDescription,
		expense.LongDescription,
		expense.FinancialCompanyID,
		expense.ParentExpenseID,
		expense.Active,
		expense.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return false, ErrDuplicateCode
		}
		err := fmt.Errorf("could not execute query: %w", err)
		log.Error(err)
		return false, err
	}
	if result.RowsAffected() == 0 {
		return false, nil
	}

	if _, err := tx.Exec(ctx, `DELETE FROM expense_tech_direction WHERE expense_id = $1`, expense.ID); err != nil {
		err := fmt.Errorf("could not clear tech direction memberships: %w", err)
		log.Error(err)
		return false, err
	}
	if _, err := tx.Exec(ctx, `DELETE FROM expense_user_area WHERE expense_id = $1`, expense.ID); err != nil {
		err := fmt.Errorf("could not clear user area memberships: %w", err)
		log.Error(err)
		return false, err
	}
	if err := r.storeMemberships(ctx, tx, expense.ID, expense); err != nil {
		return false, err
	}

	if err := tx.Commit(ctx); err != nil {
		return false, fmt.Errorf("could not commit transaction: %w", err)
	}
	return true, nil
}

// Deactivate soft-deletes an expense. Budget lines referencing it stay in
// place but reports skip them.
func (r *RepoImpl) Deactivate(ctx context.Context, id int) (bool, error) {
	result, err := r.db.Exec(ctx, `UPDATE expense SET active = FALSE WHERE id = $1`, id)
	if err != nil {
		err := fmt.Errorf("could not execute query: %w", err)
		log.Error(err)
		return false, err
	}
	return result.RowsAffected() == 1, nil
}

func (r *RepoImpl) storeMemberships(ctx context.Context, tx pgx.Tx, expenseId int, expense Expense) error {
	for _, directionId := range expense.TechnologyDirectionIDs {
		query := `INSERT INTO expense_tech_direction (expense_id, technology_direction_id) VALUES ($1, $2)`
		if _, err := tx.Exec(ctx, query, expenseId, directionId); err != nil {
			err := fmt.Errorf("could not store tech direction membership: %w", err)
			log.Error(err)
			return err
		}
	}
	for _, areaId := range expense.UserAreaIDs {
		query := `INSERT INTO expense_user_area (expense_id, user_area_id) VALUES ($1, $2)`
		if _, err := tx.Exec(ctx, query, expenseId, areaId); err != nil {
			err := fmt.Errorf("could not store user area membership: %w", err)
			log.Error(err)
			return err
		}
	}
	return nil
}

func (r *RepoImpl) query(ctx context.Context, where string, args ...any) ([]Expense, error) {
	query := fmt.Sprintf(`SELECT
	            e.id, e.code, e.short_description, e.long_description,
	            e.financial_company_id, e.parent_expense_id, e.active,
	            COALESCE((SELECT array_agg(technology_direction_id) FROM expense_tech_direction WHERE expense_id = e.id), '{}'),
	            COALESCE((SELECT array_agg(user_area_id) FROM expense_user_area WHERE expense_id = e.id), '{}')
	        FROM expense e %s ORDER BY e.code`, where)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		err := fmt.Errorf("could not query expenses: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	var expenses []Expense
	for rows.Next() {
		var expense Expense
		if err := rows.Scan(
			&expense.ID,
			&expense.Code,
			&expense.ShortDescription,
			&expense.LongDescription,
			&expense.FinancialCompanyID,
			&expense.ParentExpenseID,
			&expense.Active,
			&expense.TechnologyDirectionIDs,
			&expense.UserAreaIDs,
		); err != nil {
			err := fmt.Errorf("could not scan expense: %w", err)
			log.Error(err)
			return nil, err
		}
		expenses = append(expenses, expense)
	}
	if err := rows.Err(); err != nil {
		err := fmt.Errorf("error iterating over rows: %w", err)
		log.Error(err)
		return nil, err
	}
	return expenses, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}
