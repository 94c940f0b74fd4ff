package transaction

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	log "github.com/sirupsen/logrus"
	"github.com/techbudget/techbudget/internal/database"
)

var ErrTransactionNotFound = errors.New("transaction not found")

type Repo interface {
	Store(ctx context.Context, tx Transaction) (int, error)
	Get(ctx context.Context, id int) (Transaction, error)
	GetAllForLine(ctx context.Context, budgetLineId int) ([]Transaction, error)
	MarkCompensated(ctx context.Context, committedId int, realId int) error
	Delete(ctx context.Context, id int) error
}

type RepoImpl struct {
	db database.DB
}

func NewTransactionRepo(db database.DB) *RepoImpl {
	return &RepoImpl{db: db}
}

const columns = `id, budget_line_id, type, service_date, posting_date,
	reference_document_number, currency, value, usd_value, conversion_rate,
	month, is_compensated, compensated_by_id`

func (r *RepoImpl) Store(ctx context.Context, tx Transaction) (int, error) {
	query := `INSERT INTO budget_transaction (
	              budget_line_id, type, service_date, posting_date,
	              reference_document_number, currency, value, usd_value,
	              conversion_rate, month, is_compensated
	          ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, FALSE)
	          RETURNING id`

	var id int
	err := r.db.QueryRow(ctx, query,
		tx.BudgetLineID,
		tx.Type,
		tx.ServiceDate,
		tx.PostingDate,
		tx.ReferenceDocumentNumber,
		tx.Currency,
		tx.Value,
		tx.USDValue,
		tx.ConversionRate,
		tx.Month,
	).Scan(&id)
	if err != nil {
		err := fmt.Errorf("could not execute query: %w", err)
		log.Error(err)
		return 0, err
	}
	return id, nil
}

func (r *RepoImpl) Get(ctx context.Context, id int) (Transaction, error) {
	query := fmt.Sprintf(`SELECT %s FROM budget_transaction WHERE id = $1`, columns)

	tx, err := scanTransaction(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return Transaction{}, ErrTransactionNotFound
	}
	if err != nil {
		err := fmt.Errorf("could not fetch transaction: %w", err)
		log.Error(err)
		return Transaction{}, err
	}
	return tx, nil
}

func (r *RepoImpl) GetAllForLine(ctx context.Context, budgetLineId int) ([]Transaction, error) {
	query := fmt.Sprintf(`SELECT %s FROM budget_transaction
	    WHERE budget_line_id = $1 ORDER BY month, service_date`, columns)

	rows, err := r.db.Query(ctx, query, budgetLineId)
	if err != nil {
		err := fmt.Errorf("could not query transactions: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	var transactions []Transaction
	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			err := fmt.Errorf("could not scan transaction: %w", err)
			log.Error(err)
			return nil, err
		}
		transactions = append(transactions, tx)
	}
	if err := rows.Err(); err != nil {
		err := fmt.Errorf("error iterating over rows: %w", err)
		log.Error(err)
		return nil, err
	}
	return transactions, nil
}

func (r *RepoImpl) MarkCompensated(ctx context.Context, committedId int, realId int) error {
	query := `UPDATE budget_transaction SET is_compensated = TRUE, compensated_by_id = $1
	          WHERE id = $2`
	result, err := r.db.Exec(ctx, query, realId, committedId)
	if err != nil {
		err := fmt.Errorf("could not execute query: %w", err)
		log.Error(err)
		return err
	}
	if result.RowsAffected() == 0 {
		return ErrTransactionNotFound
	}
	return nil
}

func (r *RepoImpl) Delete(ctx context.Context, id int) error {
	result, err := r.db.Exec(ctx, `DELETE FROM budget_transaction WHERE id = $1`, id)
	if err != nil {
		err := fmt.Errorf("could not execute query: %w", err)
		log.Error(err)
		return err
	}
	if result.RowsAffected() == 0 {
		return ErrTransactionNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTransaction(row rowScanner) (Transaction, error) {
	var tx Transaction
	err := row.Scan(
		&tx.ID,
		&tx.BudgetLineID,
		&tx.Type,
		&tx.ServiceDate,
		&tx.PostingDate,
		&tx.ReferenceDocumentNumber,
		&tx.Currency,
		&tx.Value,
		&tx.USDValue,
		&tx.ConversionRate,
		&tx.Month,
		&tx.IsCompensated,
		&tx.CompensatedByID,
	)
	return tx, err
}
