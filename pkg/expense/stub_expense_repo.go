package expense

import "context"

type StubExpenseRepo struct {
	nextId int
	data   map[int]Expense
}

func NewStubExpenseRepo() *StubExpenseRepo {
	return &StubExpenseRepo{data: map[int]Expense{}}
}

func (s *StubExpenseRepo) Store(ctx context.Context, expense Expense) (int, error) {
	for _, existing := range s.data {
		if existing.Code == expense.Code {
			return 0, ErrDuplicateCode
		}
	}
	s.nextId++
	expense.ID = s.nextId
	s.data[expense.ID] = expense
	return expense.ID, nil
}

func (s *StubExpenseRepo) Get(ctx context.Context, id int) (Expense, error) {
	expense, ok := s.data[id]
	if !ok {
		return Expense{}, ErrExpenseNotFound
	}
	return expense, nil
}

func (s *StubExpenseRepo) GetAll(ctx context.Context, includeInactive bool) ([]Expense, error) {
	expenses := make([]Expense, 0, len(s.data))
	for _, expense := range s.data {
		if expense.Active || includeInactive {
			expenses = append(expenses, expense)
		}
	}
	return expenses, nil
}

func (s *StubExpenseRepo) Update(ctx context.Context, expense Expense) (bool, error) {
	if _, ok := s.data[expense.ID]; !ok {
		return false, nil
	}
	for _, existing := range s.data {
		if existing.ID != expense.ID && existing.Code == expense.Code {
			return false, ErrDuplicateCode
		}
	}
	s.data[expense.ID] = expense
	return true, nil
}

func (s *StubExpenseRepo) Deactivate(ctx context.Context, id int) (bool, error) {
	expense, ok := s.data[id]
	if !ok {
		return false, nil
	}
	expense.Active = false
	s.data[id] = expense
	return true, nil
}

func (s *StubExpenseRepo) Cleanup() {
	s.data = map[int]Expense{}
	s.nextId = 0
}
