package conversionrate

import "context"

type StubConversionRateRepo struct {
	nextId int
	data   map[int]ConversionRate
}

func NewStubConversionRateRepo() *StubConversionRateRepo {
	return &StubConversionRateRepo{data: map[int]ConversionRate{}}
}

func (s *StubConversionRateRepo) Store(ctx context.Context, rate ConversionRate) (int, error) {
	for _, existing := range s.data {
		if existing.BudgetID == rate.BudgetID && existing.Currency == rate.Currency && existing.Month == rate.Month {
			return 0, ErrDuplicateRate
		}
	}
	s.nextId++
	rate.ID = s.nextId
	s.data[rate.ID] = rate
	return rate.ID, nil
}

func (s *StubConversionRateRepo) GetAllForBudget(ctx context.Context, budgetId int) ([]ConversionRate, error) {
	var rates []ConversionRate
	for _, rate := range s.data {
		if rate.BudgetID == budgetId {
			rates = append(rates, rate)
		}
	}
	return rates, nil
}

func (s *StubConversionRateRepo) Find(ctx context.Context, budgetId int, currency string, month int) (ConversionRate, error) {
	for _, rate := range s.data {
		if rate.BudgetID == budgetId && rate.Currency == currency && rate.Month == month {
			return rate, nil
		}
	}
	return ConversionRate{}, ErrRateNotFound
}

func (s *StubConversionRateRepo) Update(ctx context.Context, rate ConversionRate) error {
	existing, ok := s.data[rate.ID]
	if !ok {
		return ErrRateNotFound
	}
	existing.Rate = rate.Rate
	s.data[rate.ID] = existing
	return nil
}

func (s *StubConversionRateRepo) Delete(ctx context.Context, id int) error {
	if _, ok := s.data[id]; !ok {
		return ErrRateNotFound
	}
	delete(s.data, id)
	return nil
}

func (s *StubConversionRateRepo) Cleanup() {
	s.data = map[int]ConversionRate{}
	s.nextId = 0
}
