package catalog

import (
	"context"

	"github.com/techbudget/techbudget/internal/rest"
)

type Service interface {
	ListCompanies(ctx context.Context) ([]FinancialCompany, error)
	CreateCompany(ctx context.Context, company FinancialCompany) (FinancialCompany, error)
	UpdateCompany(ctx context.Context, company FinancialCompany) error
	DeleteCompany(ctx context.Context, id int) error

	ListTechDirections(ctx context.Context) ([]TechnologyDirection, error)
	CreateTechDirection(ctx context.Context, direction TechnologyDirection) (TechnologyDirection, error)
	DeleteTechDirection(ctx context.Context, id int) error

	ListUserAreas(ctx context.Context) ([]UserArea, error)
	CreateUserArea(ctx context.Context, area UserArea) (UserArea, error)
	DeleteUserArea(ctx context.Context, id int) error

	// Lookup maps used by the report engine to resolve names without joins.
	TechDirectionNames(ctx context.Context) (map[int]string, error)
	UserAreaNames(ctx context.Context) (map[int]string, error)
	CompanyNames(ctx context.Context) (map[int]string, error)
}

type ServiceImpl struct {
	repo Repo
}

func NewCatalogService(repo Repo) *ServiceImpl {
	return &ServiceImpl{repo: repo}
}

func (s *ServiceImpl) ListCompanies(ctx context.Context) ([]FinancialCompany, error) {
	return s.repo.ListCompanies(ctx)
}

func (s *ServiceImpl) CreateCompany(ctx context.Context, company FinancialCompany) (FinancialCompany, error) {
	if company.Name == "" {
		return FinancialCompany{}, rest.NewValidationError("company name is required")
	}
	id, err := s.repo.StoreCompany(ctx, company)
	if err != nil {
		return FinancialCompany{}, err
	}
	company.ID = id
	return company, nil
}

func (s *ServiceImpl) UpdateCompany(ctx context.Context, company FinancialCompany) error {
	updated, err := s.repo.UpdateCompany(ctx, company)
	if err != nil {
		return err
	}
	if !updated {
		return ErrEntryNotFound
	}
	return nil
}

func (s *ServiceImpl) DeleteCompany(ctx context.Context, id int) error {
	deleted, err := s.repo.DeleteCompany(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrEntryNotFound
	}
	return nil
}

func (s *ServiceImpl) ListTechDirections(ctx context.Context) ([]TechnologyDirection, error) {
	return s.repo.ListTechDirections(ctx)
}

func (s *ServiceImpl) CreateTechDirection(ctx context.Context, direction TechnologyDirection) (TechnologyDirection, error) {
	if direction.Name == "" {
		return TechnologyDirection{}, rest.NewValidationError("tech direction name is required")
	}
	id, err := s.repo.StoreTechDirection(ctx, direction)
	if err != nil {
		return TechnologyDirection{}, err
	}
	direction.ID = id
	return direction, nil
}

func (s *ServiceImpl) DeleteTechDirection(ctx context.Context, id int) error {
	deleted, err := s.repo.DeleteTechDirection(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrEntryNotFound
	}
	return nil
}

func (s *ServiceImpl) ListUserAreas(ctx context.Context) ([]UserArea, error) {
	return s.repo.ListUserAreas(ctx)
}

func (s *ServiceImpl) CreateUserArea(ctx context.Context, area UserArea) (UserArea, error) {
	if area.Name == "" {
		return UserArea{}, rest.NewValidationError("user area name is required")
	}
	id, err := s.repo.StoreUserArea(ctx, area)
	if err != nil {
		return UserArea{}, err
	}
	area.ID = id
	return area, nil
}

func (s *ServiceImpl) DeleteUserArea(ctx context.Context, id int) error {
	deleted, err := s.repo.DeleteUserArea(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrEntryNotFound
	}
	return nil
}

func (s *ServiceImpl) TechDirectionNames(ctx context.Context) (map[int]string, error) {
	directions, err := s.repo.ListTechDirections(ctx)
	if err != nil {
		return nil, err
	}
	names := make(map[int]string, len(directions))
	for _, d := range directions {
		names[d.ID] = d.Name
	}
	return names, nil
}

func (s *ServiceImpl) UserAreaNames(ctx context.Context) (map[int]string, error) {
	areas, err := s.repo.ListUserAreas(ctx)
	if err != nil {
		return nil, err
	}
	names := make(map[int]string, len(areas))
	for _, a := range areas {
		names[a.ID] = a.Name
	}
	return names, nil
}

func (s *ServiceImpl) CompanyNames(ctx context.Context) (map[int]string, error) {
	companies, err := s.repo.ListCompanies(ctx)
	if err != nil {
		return nil, err
	}
	names := make(map[int]string, len(companies))
	for _, c := range companies {
		names[c.ID] = c.Name
	}
	return names, nil
}
