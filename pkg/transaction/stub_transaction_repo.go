package transaction

import "context"

type StubTransactionRepo struct {
	nextId int
	data   map[int]Transaction
}

func NewStubTransactionRepo() *StubTransactionRepo {
	return &StubTransactionRepo{data: map[int]Transaction{}}
}

func (s *StubTransactionRepo) Store(ctx context.Context, tx Transaction) (int, error) {
	s.nextId++
	tx.ID = s.nextId
	s.data[tx.ID] = tx
	return tx.ID, nil
}

func (s *StubTransactionRepo) Get(ctx context.Context, id int) (Transaction, error) {
	tx, ok := s.data[id]
	if !ok {
		return Transaction{}, ErrTransactionNotFound
	}
	return tx, nil
}

func (s *StubTransactionRepo) GetAllForLine(ctx context.Context, budgetLineId int) ([]Transaction, error) {
	var transactions []Transaction
	for _, tx := range s.data {
		if tx.BudgetLineID == budgetLineId {
			transactions = append(transactions, tx)
		}
	}
	return transactions, nil
}

func (s *StubTransactionRepo) MarkCompensated(ctx context.Context, committedId int, realId int) error {
	tx, ok := s.data[committedId]
	if !ok {
		return ErrTransactionNotFound
	}
	tx.IsCompensated = true
	tx.CompensatedByID = &realId
	s.data[committedId] = tx
	return nil
}

func (s *StubTransactionRepo) Delete(ctx context.Context, id int) error {
	if _, ok := s.data[id]; !ok {
		return ErrTransactionNotFound
	}
	delete(s.data, id)
	return nil
}

func (s *StubTransactionRepo) Cleanup() {
	s.data = map[int]Transaction{}
	s.nextId = 0
}
