package savings

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	log "github.com/sirupsen/logrus"
	"github.com/techbudget/techbudget/internal/database"
)

var ErrSavingNotFound = errors.New("saving not found")
var ErrDeferralNotFound = errors.New("deferral not found")

type Repo interface {
	StoreSaving(ctx context.Context, saving Saving) (int, error)
	GetSaving(ctx context.Context, id int) (Saving, error)
	UpdateSavingStatus(ctx context.Context, id int, status string) error
	DeleteSaving(ctx context.Context, id int) error
	StoreDeferral(ctx context.Context, deferral Deferral) (int, error)
	GetDeferral(ctx context.Context, id int) (Deferral, error)
	DeleteDeferral(ctx context.Context, id int) error
	FindSavingsForReport(ctx context.Context, budgetId int) ([]ReportSaving, error)
	FindDeferralsForReport(ctx context.Context, budgetId int) ([]ReportDeferral, error)
}

type RepoImpl struct {
	db database.DB
}

func NewSavingsRepo(db database.DB) *RepoImpl {
	return &RepoImpl{db: db}
}

const monthlyColumns = `monthly_m1, monthly_m2, monthly_m3, monthly_m4, monthly_m5, monthly_m6,
	monthly_m7, monthly_m8, monthly_m9, monthly_m10, monthly_m11, monthly_m12`

func (r *RepoImpl) StoreSaving(ctx context.Context, saving Saving) (int, error) {
	query := fmt.Sprintf(`INSERT INTO saving (
	              budget_line_id, total_amount, status, created_by, %s
	          ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
	          RETURNING id`, monthlyColumns)

	args := []any{saving.BudgetLineID, saving.TotalAmount, saving.Status, saving.CreatedBy}
	for _, v := range saving.Monthly {
		args = append(args, v)
	}

	var id int
	if err := r.db.QueryRow(ctx, query, args...).Scan(&id); err != nil {
		err := fmt.Errorf("could not execute query: %w", err)
		log.Error(err)
		return 0, err
	}
	return id, nil
}

func (r *RepoImpl) GetSaving(ctx context.Context, id int) (Saving, error) {
	query := fmt.Sprintf(`SELECT id, budget_line_id, total_amount, status, created_by, %s
	    FROM saving WHERE id = $1`, monthlyColumns)

	var saving Saving
	dest := []any{&saving.ID, &saving.BudgetLineID, &saving.TotalAmount, &saving.Status, &saving.CreatedBy}
	for i := range saving.Monthly {
		dest = append(dest, &saving.Monthly[i])
	}
	err := r.db.QueryRow(ctx, query, id).Scan(dest...)
	if errors.Is(err, pgx.ErrNoRows) {
		return Saving{}, ErrSavingNotFound
	}
	if err != nil {
		err := fmt.Errorf("could not fetch saving: %w", err)
		log.Error(err)
		return Saving{}, err
	}
	return saving, nil
}

func (r *RepoImpl) UpdateSavingStatus(ctx context.Context, id int, status string) error {
	result, err := r.db.Exec(ctx, `UPDATE saving SET status = $1 WHERE id = $2`, status, id)
	if err != nil {
		err := fmt.Errorf("could not execute query: %w", err)
		log.Error(err)
		return err
	}
	if result.RowsAffected() == 0 {
		return ErrSavingNotFound
	}
	return nil
}

func (r *RepoImpl) DeleteSaving(ctx context.Context, id int) error {
	result, err := r.db.Exec(ctx, `DELETE FROM saving WHERE id = $1`, id)
	if err != nil {
		err := fmt.Errorf("could not execute query: %w", err)
		log.Error(err)
		return err
	}
	if result.RowsAffected() == 0 {
		return ErrSavingNotFound
	}
	return nil
}

func (r *RepoImpl) StoreDeferral(ctx context.Context, deferral Deferral) (int, error) {
	query := `INSERT INTO deferral (budget_line_id, total_amount, start_month, end_month, created_by)
	          VALUES ($1, $2, $3, $4, $5) RETURNING id`

	var id int
	err := r.db.QueryRow(ctx, query,
		deferral.BudgetLineID,
		deferral.TotalAmount,
		deferral.StartMonth,
		deferral.EndMonth,
		deferral.CreatedBy,
	).Scan(&id)
	if err != nil {
		err := fmt.Errorf("could not execute query: %w", err)
		log.Error(err)
		return 0, err
	}
	return id, nil
}

func (r *RepoImpl) GetDeferral(ctx context.Context, id int) (Deferral, error) {
	query := `SELECT id, budget_line_id, total_amount, start_month, end_month, created_by
	          FROM deferral WHERE id = $1`

	var deferral Deferral
	err := r.db.QueryRow(ctx, query, id).Scan(
		&deferral.ID,
		&deferral.BudgetLineID,
		&deferral.TotalAmount,
		&deferral.StartMonth,
		&deferral.EndMonth,
		&deferral.CreatedBy,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return Deferral{}, ErrDeferralNotFound
	}
	if err != nil {
		err := fmt.Errorf("could not fetch deferral: %w", err)
		log.Error(err)
		return Deferral{}, err
	}
	return deferral, nil
}

func (r *RepoImpl) DeleteDeferral(ctx context.Context, id int) error {
	result, err := r.db.Exec(ctx, `DELETE FROM deferral WHERE id = $1`, id)
	if err != nil {
		err := fmt.Errorf("could not execute query: %w", err)
		log.Error(err)
		return err
	}
	if result.RowsAffected() == 0 {
		return ErrDeferralNotFound
	}
	return nil
}

func (r *RepoImpl) FindSavingsForReport(ctx context.Context, budgetId int) ([]ReportSaving, error) {
	query := `SELECT s.id, s.budget_line_id, s.total_amount, s.status, s.created_by,
	        s.monthly_m1, s.monthly_m2, s.monthly_m3, s.monthly_m4, s.monthly_m5, s.monthly_m6,
	        s.monthly_m7, s.monthly_m8, s.monthly_m9, s.monthly_m10, s.monthly_m11, s.monthly_m12,
	        e.code, COALESCE(u.full_name, '')
	    FROM saving s
	    JOIN budget_line l ON l.id = s.budget_line_id
	    JOIN expense e ON e.id = l.expense_id
	    LEFT JOIN app_user u ON u.id = s.created_by
	    WHERE l.budget_id = $1 ORDER BY e.code`

	rows, err := r.db.Query(ctx, query, budgetId)
	if err != nil {
		err := fmt.Errorf("could not query savings: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	var savings []ReportSaving
	for rows.Next() {
		var s ReportSaving
		dest := []any{&s.ID, &s.BudgetLineID, &s.TotalAmount, &s.Status, &s.CreatedBy}
		for i := range s.Monthly {
			dest = append(dest, &s.Monthly[i])
		}
		dest = append(dest, &s.ExpenseCode, &s.CreatedByName)
		if err := rows.Scan(dest...); err != nil {
			err := fmt.Errorf("could not scan saving: %w", err)
			log.Error(err)
			return nil, err
		}
		savings = append(savings, s)
	}
	if err := rows.Err(); err != nil {
		err := fmt.Errorf("error iterating over rows: %w", err)
		log.Error(err)
		return nil, err
	}
	return savings, nil
}

func (r *RepoImpl) FindDeferralsForReport(ctx context.Context, budgetId int) ([]ReportDeferral, error) {
	query := `SELECT d.id, d.budget_line_id, d.total_amount, d.start_month, d.end_month, d.created_by,
	        e.code, COALESCE(u.full_name, '')
	    FROM deferral d
	    JOIN budget_line l ON l.id = d.budget_line_id
	    JOIN expense e ON e.id = l.expense_id
	    LEFT JOIN app_user u ON u.id = d.created_by
	    WHERE l.budget_id = $1 ORDER BY e.code`

	rows, err := r.db.Query(ctx, query, budgetId)
	if err != nil {
		err := fmt.Errorf("could not query deferrals: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	var deferrals []ReportDeferral
	for rows.Next() {
		var d ReportDeferral
		if err := rows.Scan(
			&d.ID, &d.BudgetLineID, &d.TotalAmount, &d.StartMonth, &d.EndMonth,
			&d.CreatedBy, &d.ExpenseCode, &d.CreatedByName,
		); err != nil {
			err := fmt.Errorf("could not scan deferral: %w", err)
			log.Error(err)
			return nil, err
		}
		deferrals = append(deferrals, d)
	}
	if err := rows.Err(); err != nil {
		err := fmt.Errorf("error iterating over rows: %w", err)
		log.Error(err)
		return nil, err
	}
	return deferrals, nil
}
