package budgetline

import "context"

type StubBudgetLineRepo struct {
	nextId      int
	data        map[int]BudgetLine
	ReportLines map[int][]ReportLine
}

func NewStubBudgetLineRepo() *StubBudgetLineRepo {
	return &StubBudgetLineRepo{
		data:        map[int]BudgetLine{},
		ReportLines: map[int][]ReportLine{},
	}
}

func (s *StubBudgetLineRepo) Store(ctx context.Context, line BudgetLine) (int, error) {
	for _, existing := range s.data {
		if existing.BudgetID == line.BudgetID &&
			existing.ExpenseID == line.ExpenseID &&
			existing.FinancialCompanyID == line.FinancialCompanyID {
			return 0, ErrDuplicateLine
		}
	}
	s.nextId++
	line.ID = s.nextId
	s.data[line.ID] = line
	return line.ID, nil
}

func (s *StubBudgetLineRepo) Get(ctx context.Context, id int) (BudgetLine, error) {
	line, ok := s.data[id]
	if !ok {
		return BudgetLine{}, ErrLineNotFound
	}
	return line, nil
}

func (s *StubBudgetLineRepo) GetAllForBudget(ctx context.Context, budgetId int) ([]BudgetLine, error) {
	var lines []BudgetLine
	for _, line := range s.data {
		if line.BudgetID == budgetId {
			lines = append(lines, line)
		}
	}
	return lines, nil
}

func (s *StubBudgetLineRepo) Update(ctx context.Context, line BudgetLine) error {
	if _, ok := s.data[line.ID]; !ok {
		return ErrLineNotFound
	}
	s.data[line.ID] = line
	return nil
}

func (s *StubBudgetLineRepo) Delete(ctx context.Context, id int) error {
	if _, ok := s.data[id]; !ok {
		return ErrLineNotFound
	}
	delete(s.data, id)
	return nil
}

func (s *StubBudgetLineRepo) FindForReport(ctx context.Context, budgetId int, companyId *int) ([]ReportLine, error) {
	lines := s.ReportLines[budgetId]
	if companyId == nil {
		return lines, nil
	}
	var filtered []ReportLine
	for _, line := range lines {
		if line.FinancialCompanyID == *companyId {
			filtered = append(filtered, line)
		}
	}
	return filtered, nil
}

func (s *StubBudgetLineRepo) Cleanup() {
	s.data = map[int]BudgetLine{}
	s.ReportLines = map[int][]ReportLine{}
	s.nextId = 0
}
