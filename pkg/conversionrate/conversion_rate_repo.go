package conversionrate

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	log "github.com/sirupsen/logrus"
	"github.com/techbudget/techbudget/internal/database"
)

var ErrRateNotFound = errors.New("conversion rate not found")
var ErrDuplicateRate = errors.New("conversion rate already exists for this currency and month")

const uniqueViolation = "23505"

type Repo interface {
	Store(ctx context.Context, rate ConversionRate) (int, error)
	GetAllForBudget(ctx context.Context, budgetId int) ([]ConversionRate, error)
	Find(ctx context.Context, budgetId int, currency string, month int) (ConversionRate, error)
	Update(ctx context.Context, rate ConversionRate) error
	Delete(ctx context.Context, id int) error
}

type RepoImpl struct {
	db database.DB
}

func NewConversionRateRepo(db database.DB) *RepoImpl {
	return &RepoImpl{db: db}
}

func (r *RepoImpl) Store(ctx context.Context, rate ConversionRate) (int, error) {
	query := `INSERT INTO conversion_rate (budget_id, currency, month, rate)
	          VALUES ($1, $2, $3, $4) RETURNING id`

	var id int
	err := r.db.QueryRow(ctx, query, rate.BudgetID, rate.Currency, rate.Month, rate.Rate).Scan(&id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return 0, ErrDuplicateRate
		}
		err := fmt.Errorf("could not execute query: %w", err)
		log.Error(err)
		return 0, err
	}
	return id, nil
}

func (r *RepoImpl) GetAllForBudget(ctx context.Context, budgetId int) ([]ConversionRate, error) {
	query := `SELECT id, budget_id, currency, month, rate FROM conversion_rate
	          WHERE budget_id = $1 ORDER BY currency, month`

	rows, err := r.db.Query(ctx, query, budgetId)
	if err != nil {
		err := fmt.Errorf("could not query conversion rates: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	var rates []ConversionRate
	for rows.Next() {
		var rate ConversionRate
		if err := rows.Scan(&rate.ID, &rate.BudgetID, &rate.Currency, &rate.Month, &rate.Rate); err != nil {
			err := fmt.Errorf("could not scan conversion rate: %w", err)
			log.Error(err)
			return nil, err
		}
		rates = append(rates, rate)
	}
	if err := rows.Err(); err != nil {
		err := fmt.Errorf("error iterating over rows: %w", err)
		log.Error(err)
		return nil, err
	}
	return rates, nil
}

func (r *RepoImpl) Find(ctx context.Context, budgetId int, currency string, month int) (ConversionRate, error) {
	query := `SELECT id, budget_id, currency, month, rate FROM conversion_rate
	          WHERE budget_id = $1 AND currency = $2 AND month = $3`

	var rate ConversionRate
	err := r.db.QueryRow(ctx, query, budgetId, currency, month).
		Scan(&rate.ID, &rate.BudgetID, &rate.Currency, &rate.Month, &rate.Rate)
	if errors.Is(err, pgx.ErrNoRows) {
		return ConversionRate{}, ErrRateNotFound
	}
	if err != nil {
		err := fmt.Errorf("could not fetch conversion rate: %w", err)
		log.Error(err)
		return ConversionRate{}, err
	}
	return rate, nil
}

func (r *RepoImpl) Update(ctx context.Context, rate ConversionRate) error {
	result, err := r.db.Exec(ctx, `UPDATE conversion_rate SET rate = $1 WHERE id = $2`, rate.Rate, rate.ID)
	if err != nil {
		err := fmt.Errorf("could not execute query: %w", err)
		log.Error(err)
		return err
	}
	if result.RowsAffected() == 0 {
		return ErrRateNotFound
	}
	return nil
}

func (r *RepoImpl) Delete(ctx context.Context, id int) error {
	result, err := r.db.Exec(ctx, `DELETE FROM conversion_rate WHERE id = $1`, id)
	if err != nil {
		err := fmt.Errorf("could not execute query: %w", err)
		log.Error(err)
		return err
	}
	if result.RowsAffected() == 0 {
		return ErrRateNotFound
	}
	return nil
}
