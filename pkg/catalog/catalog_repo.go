package catalog

import (
	"context"
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"
	"github.com/techbudget/techbudget/internal/database"
)

var ErrEntryNotFound = errors.New("catalog entry not found")

type Repo interface {
	ListCompanies(ctx context.Context) ([]FinancialCompany, error)
	StoreCompany(ctx context.Context, company FinancialCompany) (int, error)
	UpdateCompany(ctx context.Context, company FinancialCompany) (bool, error)
	DeleteCompany(ctx context.Context, id int) (bool, error)

	ListTechDirections(ctx context.Context) ([]TechnologyDirection, error)
	StoreTechDirection(ctx context.Context, direction TechnologyDirection) (int, error)
	DeleteTechDirection(ctx context.Context, id int) (bool, error)

	ListUserAreas(ctx context.Context) ([]UserArea, error)
	StoreUserArea(ctx context.Context, area UserArea) (int, error)
	DeleteUserArea(ctx context.Context, id int) (bool, error)
}

type RepoImpl struct {
	db database.DB
}

func NewCatalogRepo(db database.DB) *RepoImpl {
	return &RepoImpl{db: db}
}

func (r *RepoImpl) ListCompanies(ctx context.Context) ([]FinancialCompany, error) {
	query := `SELECT id, code, name FROM financial_company ORDER BY name`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		err := fmt.Errorf("could not query companies: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	var companies []FinancialCompany
	for rows.Next() {
		var company FinancialCompany
		if err := rows.Scan(&company.ID, &company.Code, &company.Name); err != nil {
			err := fmt.Errorf("could not scan company: %w", err)
			log.Error(err)
			return nil, err
		}
		companies = append(companies, company)
	}
	if err := rows.Err(); err != nil {
		err := fmt.Errorf("error iterating over rows: %w", err)
		log.Error(err)
		return nil, err
	}
	return companies, nil
}

func (r *RepoImpl) StoreCompany(ctx context.Context, company FinancialCompany) (int, error) {
	query := `INSERT INTO financial_company (code, name) VALUES ($1, $2) RETURNING id`
	var id int
	if err := r.db.QueryRow(ctx, query, company.Code, company.Name).Scan(&id); err != nil {
		err := fmt.Errorf("could not execute query: %w", err)
		log.Error(err)
		return 0, err
	}
	return id, nil
}

func (r *RepoImpl) UpdateCompany(ctx context.Context, company FinancialCompany) (bool, error) {
	query := `UPDATE financial_company SET code = $1, name = $2 WHERE id = $3`
	result, err := r.db.Exec(ctx, query, company.Code, company.Name, company.ID)
	if err != nil {
		err := fmt.Errorf("could not execute query: %w", err)
		log.Error(err)
		return false, err
	}
	return result.RowsAffected() == 1, nil
}

func (r *RepoImpl) DeleteCompany(ctx context.Context, id int) (bool, error) {
	return r.deleteById(ctx, `DELETE FROM financial_company WHERE id = $1`, id)
}

func (r *RepoImpl) ListTechDirections(ctx context.Context) ([]TechnologyDirection, error) {
	query := `SELECT id, name FROM technology_direction ORDER BY name`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		err := fmt.Errorf("could not query tech directions: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	var directions []TechnologyDirection
	for rows.Next() {
		var direction TechnologyDirection
		if err := rows.Scan(&direction.ID, &direction.Name); err != nil {
			err := fmt.Errorf("could not scan tech direction: %w", err)
			log.Error(err)
			return nil, err
		}
		directions = append(directions, direction)
	}
	if err := rows.Err(); err != nil {
		err := fmt.Errorf("error iterating over rows: %w", err)
		log.Error(err)
		return nil, err
	}
	return directions, nil
}

func (r *RepoImpl) StoreTechDirection(ctx context.Context, direction TechnologyDirection) (int, error) {
	return r.storeNamed(ctx, `INSERT INTO technology_direction (name) VALUES ($1) RETURNING id`, direction.Name)
}

func (r *RepoImpl) DeleteTechDirection(ctx context.Context, id int) (bool, error) {
	return r.deleteById(ctx, `DELETE FROM technology_direction WHERE id = $1`, id)
}

func (r *RepoImpl) ListUserAreas(ctx context.Context) ([]UserArea, error) {
	query := `SELECT id, name FROM user_area ORDER BY name`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		err := fmt.Errorf("could not query user areas: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	var areas []UserArea
	for rows.Next() {
		var area UserArea
		if err := rows.Scan(&area.ID, &area.Name); err != nil {
			err := fmt.Errorf("could not scan user area: %w", err)
			log.Error(err)
			return nil, err
		}
		areas = append(areas, area)
	}
	if err := rows.Err(); err != nil {
		err := fmt.Errorf("error iterating over rows: %w", err)
		log.Error(err)
		return nil, err
	}
	return areas, nil
}

func (r *RepoImpl) StoreUserArea(ctx context.Context, area UserArea) (int, error) {
	return r.storeNamed(ctx, `INSERT INTO user_area (name) VALUES ($1) RETURNING id`, area.Name)
}

func (r *RepoImpl) DeleteUserArea(ctx context.Context, id int) (bool, error) {
	return r.deleteById(ctx, `DELETE FROM user_area WHERE id = $1`, id)
}

func (r *RepoImpl) storeNamed(ctx context.Context, query string, name string) (int, error) {
	var id int
	if err := r.db.QueryRow(ctx, query, name).Scan(&id); err != nil {
		err := fmt.Errorf("could not execute query: %w", err)
		log.Error(err)
		return 0, err
	}
	return id, nil
}

func (r *RepoImpl) deleteById(ctx context.Context, query string, id int) (bool, error) {
	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		err := fmt.Errorf("could not execute query: %w", err)
		log.Error(err)
		return false, err
	}
	return result.RowsAffected() == 1, nil
}
