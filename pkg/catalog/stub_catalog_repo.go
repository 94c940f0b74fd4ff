package catalog

import "context"

type StubCatalogRepo struct {
	nextId     int
	companies  map[int]FinancialCompany
	directions map[int]TechnologyDirection
	areas      map[int]UserArea
}

func NewStubCatalogRepo() *StubCatalogRepo {
	return &StubCatalogRepo{
		companies:  map[int]FinancialCompany{},
		directions: map[int]TechnologyDirection{},
		areas:      map[int]UserArea{},
	}
}

func (s *StubCatalogRepo) ListCompanies(ctx context.Context) ([]FinancialCompany, error) {
	companies := make([]FinancialCompany, 0, len(s.companies))
	for _, c := range s.companies {
		companies = append(companies, c)
	}
	return companies, nil
}

func (s *StubCatalogRepo) StoreCompany(ctx context.Context, company FinancialCompany) (int, error) {
	s.nextId++
	company.ID = s.nextId
	s.companies[company.ID] = company
	return company.ID, nil
}

func (s *StubCatalogRepo) UpdateCompany(ctx context.Context, company FinancialCompany) (bool, error) {
	if _, ok := s.companies[company.ID]; !ok {
		return false, nil
	}
	s.companies[company.ID] = company
	return true, nil
}

func (s *StubCatalogRepo) DeleteCompany(ctx context.Context, id int) (bool, error) {
	if _, ok := s.companies[id]; !ok {
		return false, nil
	}
	delete(s.companies, id)
	return true, nil
}

func (s *StubCatalogRepo) ListTechDirections(ctx context.Context) ([]TechnologyDirection, error) {
	directions := make([]TechnologyDirection, 0, len(s.directions))
	for _, d := range s.directions {
		directions = append(directions, d)
	}
	return directions, nil
}

func (s *StubCatalogRepo) StoreTechDirection(ctx context.Context, direction TechnologyDirection) (int, error) {
	s.nextId++
	direction.ID = s.nextId
	s.directions[direction.ID] = direction
	return direction.ID, nil
}

func (s *StubCatalogRepo) DeleteTechDirection(ctx context.Context, id int) (bool, error) {
	if _, ok := s.directions[id]; !ok {
		return false, nil
	}
	delete(s.directions, id)
	return true, nil
}

func (s *StubCatalogRepo) ListUserAreas(ctx context.Context) ([]UserArea, error) {
	areas := make([]UserArea, 0, len(s.areas))
	for _, a := range s.areas {
		areas = append(areas, a)
	}
	return areas, nil
}

func (s *StubCatalogRepo) StoreUserArea(ctx context.Context, area UserArea) (int, error) {
	s.nextId++
	area.ID = s.nextId
	s.areas[area.ID] = area
	return area.ID, nil
}

func (s *StubCatalogRepo) DeleteUserArea(ctx context.Context, id int) (bool, error) {
	if _, ok := s.areas[id]; !ok {
		return false, nil
	}
	delete(s.areas, id)
	return true, nil
}

func (s *StubCatalogRepo) Cleanup() {
	s.companies = map[int]FinancialCompany{}
	s.directions = map[int]TechnologyDirection{}
	s.areas = map[int]UserArea{}
	s.nextId = 0
}
