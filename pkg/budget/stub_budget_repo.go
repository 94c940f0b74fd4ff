package budget

import "context"

type StubBudgetRepo struct {
	nextId   int
	activeId int
	data     map[int]Budget
	// CloneCalls records (sourceId, newId) pairs for assertions.
	CloneCalls [][2]int
}

func NewStubBudgetRepo() *StubBudgetRepo {
	return &StubBudgetRepo{data: map[int]Budget{}}
}

func (s *StubBudgetRepo) Store(ctx context.Context, budget Budget) (int, error) {
	s.nextId++
	budget.ID = s.nextId
	s.data[budget.ID] = budget
	return budget.ID, nil
}

func (s *StubBudgetRepo) Get(ctx context.Context, id int) (Budget, error) {
	budget, ok := s.data[id]
	if !ok {
		return Budget{}, ErrBudgetNotFound
	}
	budget.IsActive = s.activeId == id
	return budget, nil
}

func (s *StubBudgetRepo) GetAll(ctx context.Context) ([]Budget, error) {
	budgets := make([]Budget, 0, len(s.data))
	for _, budget := range s.data {
		budget.IsActive = s.activeId == budget.ID
		budgets = append(budgets, budget)
	}
	return budgets, nil
}

func (s *StubBudgetRepo) GetActiveId(ctx context.Context) (int, error) {
	return s.activeId, nil
}

func (s *StubBudgetRepo) FindMaxVersion(ctx context.Context, year int) (int, error) {
	maxVersion := 0
	for _, budget := range s.data {
		if budget.Year == year && budget.Version > maxVersion {
			maxVersion = budget.Version
		}
	}
	return maxVersion, nil
}

func (s *StubBudgetRepo) Activate(ctx context.Context, id int) (bool, error) {
	if _, ok := s.data[id]; !ok {
		return false, ErrBudgetNotFound
	}
	s.activeId = id
	return true, nil
}

func (s *StubBudgetRepo) Delete(ctx context.Context, id int) (bool, error) {
	if _, ok := s.data[id]; !ok {
		return false, nil
	}
	delete(s.data, id)
	return true, nil
}

func (s *StubBudgetRepo) CloneInto(ctx context.Context, sourceId int, target Budget) (int, error) {
	if _, ok := s.data[sourceId]; !ok {
		return 0, ErrBudgetNotFound
	}
	id, _ := s.Store(ctx, target)
	s.CloneCalls = append(s.CloneCalls, [2]int{sourceId, id})
	return id, nil
}

func (s *StubBudgetRepo) Cleanup() {
	s.data = map[int]Budget{}
	s.activeId = 0
	s.nextId = 0
	s.CloneCalls = nil
}
