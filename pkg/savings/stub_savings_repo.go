package savings

import "context"

type StubSavingsRepo struct {
	nextId    int
	savings   map[int]Saving
	deferrals map[int]Deferral

	// LineBudget maps a budget line id onto its budget id so the report
	// lookups can filter without a real join.
	LineBudget map[int]int
}

func NewStubSavingsRepo() *StubSavingsRepo {
	return &StubSavingsRepo{
		savings:    map[int]Saving{},
		deferrals:  map[int]Deferral{},
		LineBudget: map[int]int{},
	}
}

func (s *StubSavingsRepo) StoreSaving(ctx context.Context, saving Saving) (int, error) {
	s.nextId++
	saving.ID = s.nextId
	s.savings[saving.ID] = saving
	return saving.ID, nil
}

func (s *StubSavingsRepo) GetSaving(ctx context.Context, id int) (Saving, error) {
	saving, ok := s.savings[id]
	if !ok {
		return Saving{}, ErrSavingNotFound
	}
	return saving, nil
}

func (s *StubSavingsRepo) UpdateSavingStatus(ctx context.Context, id int, status string) error {
	saving, ok := s.savings[id]
	if !ok {
		return ErrSavingNotFound
	}
	saving.Status = status
	s.savings[id] = saving
	return nil
}

func (s *StubSavingsRepo) DeleteSaving(ctx context.Context, id int) error {
	if _, ok := s.savings[id]; !ok {
		return ErrSavingNotFound
	}
	delete(s.savings, id)
	return nil
}

func (s *StubSavingsRepo) StoreDeferral(ctx context.Context, deferral Deferral) (int, error) {
	s.nextId++
	deferral.ID = s.nextId
	s.deferrals[deferral.ID] = deferral
	return deferral.ID, nil
}

func (s *StubSavingsRepo) GetDeferral(ctx context.Context, id int) (Deferral, error) {
	deferral, ok := s.deferrals[id]
	if !ok {
		return Deferral{}, ErrDeferralNotFound
	}
	return deferral, nil
}

func (s *StubSavingsRepo) DeleteDeferral(ctx context.Context, id int) error {
	if _, ok := s.deferrals[id]; !ok {
		return ErrDeferralNotFound
	}
	delete(s.deferrals, id)
	return nil
}

func (s *StubSavingsRepo) FindSavingsForReport(ctx context.Context, budgetId int) ([]ReportSaving, error) {
	var out []ReportSaving
	for _, saving := range s.savings {
		if s.LineBudget[saving.BudgetLineID] == budgetId {
			out = append(out, ReportSaving{Saving: saving})
		}
	}
	return out, nil
}

func (s *StubSavingsRepo) FindDeferralsForReport(ctx context.Context, budgetId int) ([]ReportDeferral, error) {
	var out []ReportDeferral
	for _, deferral := range s.deferrals {
		if s.LineBudget[deferral.BudgetLineID] == budgetId {
			out = append(out, ReportDeferral{Deferral: deferral})
		}
	}
	return out, nil
}

func (s *StubSavingsRepo) Cleanup() {
	s.savings = map[int]Saving{}
	s.deferrals = map[int]Deferral{}
	s.LineBudget = map[int]int{}
	s.nextId = 0
}
