package budgetline

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	log "github.com/sirupsen/logrus"
	"github.com/techbudget/techbudget/internal/database"
)

var ErrLineNotFound = errors.New("budget line not found")
var ErrDuplicateLine = errors.New("budget line already exists for this expense and company")

const uniqueViolation = "23505"

type Repo interface {
	Store(ctx context.Context, line BudgetLine) (int, error)
	Get(ctx context.Context, id int) (BudgetLine, error)
	GetAllForBudget(ctx context.Context, budgetId int) ([]BudgetLine, error)
	Update(ctx context.Context, line BudgetLine) error
	Delete(ctx context.Context, id int) error
	FindForReport(ctx context.Context, budgetId int, companyId *int) ([]ReportLine, error)
}

type RepoImpl struct {
	db database.DB
}

func NewBudgetLineRepo(db database.DB) *RepoImpl {
	return &RepoImpl{db: db}
}

const planColumns = `plan_m1, plan_m2, plan_m3, plan_m4, plan_m5, plan_m6,
	plan_m7, plan_m8, plan_m9, plan_m10, plan_m11, plan_m12`

func (r *RepoImpl) Store(ctx context.Context, line BudgetLine) (int, error) {
	query := fmt.Sprintf(`INSERT INTO budget_line (
	              budget_id, expense_id, financial_company_id, technology_direction_id, currency, %s
	          ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
	          RETURNING id`, planColumns)

	args := []any{line.BudgetID, line.ExpenseID, line.FinancialCompanyID, line.TechnologyDirectionID, line.Currency}
	for _, v := range line.Plan {
		args = append(args, v)
	}

	var id int
	if err := r.db.QueryRow(ctx, query, args...).Scan(&id); err != nil {
		if isUniqueViolation(err) {
			return 0, ErrDuplicateLine
		}
		err := fmt.Errorf("could not execute query: %w", err)
		log.Error(err)
		return 0, err
	}
	return id, nil
}

func (r *RepoImpl) Get(ctx context.Context, id int) (BudgetLine, error) {
	query := fmt.Sprintf(`SELECT id, budget_id, expense_id, financial_company_id,
	        technology_direction_id, currency, %s
	    FROM budget_line WHERE id = $1`, planColumns)

	line, err := scanLine(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return BudgetLine{}, ErrLineNotFound
	}
	if err != nil {
		err := fmt.Errorf("could not fetch budget line: %w", err)
		log.Error(err)
		return BudgetLine{}, err
	}
	return line, nil
}

func (r *RepoImpl) GetAllForBudget(ctx context.Context, budgetId int) ([]BudgetLine, error) {
	query := fmt.Sprintf(`SELECT id, budget_id, expense_id, financial_company_id,
	        technology_direction_id, currency, %s
	    FROM budget_line WHERE budget_id = $1 ORDER BY id`, planColumns)

	rows, err := r.db.Query(ctx, query, budgetId)
	if err != nil {
		err := fmt.Errorf("could not query budget lines: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	var lines []BudgetLine
	for rows.Next() {
		line, err := scanLine(rows)
		if err != nil {
			err := fmt.Errorf("could not scan budget line: %w", err)
			log.Error(err)
			return nil, err
		}
		lines = append(lines, line)
	}
	if err := rows.Err(); err != nil {
		err := fmt.Errorf("error iterating over rows: %w", err)
		log.Error(err)
		return nil, err
	}
	return lines, nil
}

func (r *RepoImpl) Update(ctx context.Context, line BudgetLine) error {
	query := `UPDATE budget_line SET
	              technology_direction_id = $1,
	              currency = $2,
	              plan_m1 = $3, plan_m2 = $4, plan_m3 = $5, plan_m4 = $6,
	              plan_m5 = $7, plan_m6 = $8, plan_m7 = $9, plan_m8 = $10,
	              plan_m9 = $11, plan_m10 = $12, plan_m11 = $13, plan_m12 = $14
	          WHERE id = $15`

	args := []any{line.TechnologyDirectionID, line.Currency}
	for _, v := range line.Plan {
		args = append(args, v)
	}
	args = append(args, line.ID)

	result, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		err := fmt.Errorf("could not execute query: %w", err)
		log.Error(err)
		return err
	}
	if result.RowsAffected() == 0 {
		return ErrLineNotFound
	}
	return nil
}

func (r *RepoImpl) Delete(ctx context.Context, id int) error {
	result, err := r.db.Exec(ctx, `DELETE FROM budget_line WHERE id = $1`, id)
	if err != nil {
		err := fmt.Errorf("could not execute query: %w", err)
		log.Error(err)
		return err
	}
	if result.RowsAffected() == 0 {
		return ErrLineNotFound
	}
	return nil
}

// FindForReport loads the lines of a budget together with their expense,
// memberships, company and transactions. Lines whose expense is inactive are
// skipped. companyId narrows the result to one financial company.
func (r *RepoImpl) FindForReport(ctx context.Context, budgetId int, companyId *int) ([]ReportLine, error) {
	query := fmt.Sprintf(`SELECT
	        l.id, l.budget_id, l.expense_id, l.financial_company_id,
	        l.technology_direction_id, l.currency, %s,
	        e.code, e.short_description, e.long_description, e.parent_expense_id, e.active,
	        COALESCE((SELECT array_agg(technology_direction_id) FROM expense_tech_direction WHERE expense_id = e.id), '{}'),
	        COALESCE((SELECT array_agg(user_area_id) FROM expense_user_area WHERE expense_id = e.id), '{}'),
	        c.id, c.code, c.name
	    FROM budget_line l
	    JOIN expense e ON e.id = l.expense_id
	    JOIN financial_company c ON c.id = l.financial_company_id
	    WHERE l.budget_id = $1 AND e.active AND ($2::int IS NULL OR l.financial_company_id = $2)
	    ORDER BY e.code`, planColumns)

	rows, err := r.db.Query(ctx, query, budgetId, companyId)
	if err != nil {
		err := fmt.Errorf("could not query report lines: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	var lines []ReportLine
	byId := map[int]int{}
	for rows.Next() {
		var line ReportLine
		if err := rows.Scan(
			&line.ID, &line.BudgetID, &line.ExpenseID, &line.FinancialCompanyID,
			&line.TechnologyDirectionID, &line.Currency,
			&line.Plan[0], &line.Plan[1], &line.Plan[2], &line.Plan[3],
			&line.Plan[4], &line.Plan[5], &line.Plan[6], &line.Plan[7],
			&line.Plan[8], &line.Plan[9], &line.Plan[10], &line.Plan[11],
			&line.Expense.Code, &line.Expense.ShortDescription, &line.Expense.LongDescription,
			&line.Expense.ParentExpenseID, &line.Expense.Active,
			&line.Expense.TechnologyDirectionIDs, &line.Expense.UserAreaIDs,
			&line.Company.ID, &line.Company.Code, &line.Company.Name,
		); err != nil {
			err := fmt.Errorf("could not scan report line: %w", err)
			log.Error(err)
			return nil, err
		}
		line.Expense.ID = line.ExpenseID
		line.Expense.FinancialCompanyID = line.FinancialCompanyID
		byId[line.ID] = len(lines)
		lines = append(lines, line)
	}
	if err := rows.Err(); err != nil {
		err := fmt.Errorf("error iterating over rows: %w", err)
		log.Error(err)
		return nil, err
	}
	if len(lines) == 0 {
		return lines, nil
	}

	if err := r.attachTransactions(ctx, budgetId, companyId, lines, byId); err != nil {
		return nil, err
	}
	return lines, nil
}

func (r *RepoImpl) attachTransactions(ctx context.Context, budgetId int, companyId *int, lines []ReportLine, byId map[int]int) error {
	query := `SELECT t.id, t.budget_line_id, t.type,
	        to_char(t.service_date, 'YYYY-MM-DD'), to_char(t.posting_date, 'YYYY-MM-DD'),
	        t.reference_document_number, t.currency, t.value, t.usd_value, t.month, t.is_compensated
	    FROM budget_transaction t
	    JOIN budget_line l ON l.id = t.budget_line_id
	    WHERE l.budget_id = $1 AND ($2::int IS NULL OR l.financial_company_id = $2)
	    ORDER BY t.month, t.service_date`

	rows, err := r.db.Query(ctx, query, budgetId, companyId)
	if err != nil {
		err := fmt.Errorf("could not query report transactions: %w", err)
		log.Error(err)
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var tx ReportTransaction
		var lineId int
		if err := rows.Scan(
			&tx.ID, &lineId, &tx.Type, &tx.ServiceDate, &tx.PostingDate,
			&tx.ReferenceDocumentNumber, &tx.Currency, &tx.Value, &tx.USDValue,
			&tx.Month, &tx.IsCompensated,
		); err != nil {
			err := fmt.Errorf("could not scan report transaction: %w", err)
			log.Error(err)
			return err
		}
		if idx, ok := byId[lineId]; ok {
			lines[idx].Transactions = append(lines[idx].Transactions, tx)
		}
	}
	if err := rows.Err(); err != nil {
		err := fmt.Errorf("error iterating over rows: %w", err)
		log.Error(err)
		return err
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanLine(row rowScanner) (BudgetLine, error) {
	var line BudgetLine
	err := row.Scan(
		&line.ID, &line.BudgetID, &line.ExpenseID, &line.FinancialCompanyID,
		&line.TechnologyDirectionID, &line.Currency,
		&line.Plan[0], &line.Plan[1], &line.Plan[2], &line.Plan[3],
		&line.Plan[4], &line.Plan[5], &line.Plan[6], &line.Plan[7],
		&line.Plan[8], &line.Plan[9], &line.Plan[10], &line.Plan[11],
	)
	return line, err
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}
