package comparison

import (
	"context"

	"github.com/techbudget/techbudget/internal/rest"
	"github.com/techbudget/techbudget/pkg/budget"
	"github.com/techbudget/techbudget/pkg/budgetline"
)

// Result is one full comparison run: the classified rows plus their summary.
type Result struct {
	BudgetA Snapshot  `json:"-"`
	BudgetB Snapshot  `json:"-"`
	Rows    []Row     `json:"rows"`
	Summary Summary   `json:"summary"`
}

type Service interface {
	Compare(ctx context.Context, budgetAId int, budgetBId int) (Result, error)
}

type ServiceImpl struct {
	budgets budget.Repo
	lines   budgetline.Repo
}

func NewComparisonService(budgets budget.Repo, lines budgetline.Repo) *ServiceImpl {
	return &ServiceImpl{budgets: budgets, lines: lines}
}

// Compare loads both budgets' snapshots and classifies their expenses.
// Comparing budgets from different years is rejected; versions of the same
// year are what the comparison is for.
func (s *ServiceImpl) Compare(ctx context.Context, budgetAId int, budgetBId int) (Result, error) {
	budgetA, err := s.budgets.Get(ctx, budgetAId)
	if err != nil {
		return Result{}, err
	}
	budgetB, err := s.budgets.Get(ctx, budgetBId)
	if err != nil {
		return Result{}, err
	}
	if budgetA.Year != budgetB.Year {
		return Result{}, rest.NewValidationError("budgets must be from the same year")
	}

	snapshotA, err := s.loadSnapshot(ctx, budgetA)
	if err != nil {
		return Result{}, err
	}
	snapshotB, err := s.loadSnapshot(ctx, budgetB)
	if err != nil {
		return Result{}, err
	}

	rows := ClassifyExpenses(snapshotA, snapshotB)
	return Result{
		BudgetA: snapshotA,
		BudgetB: snapshotB,
		Rows:    rows,
		Summary: CalculateSummary(rows),
	}, nil
}

func (s *ServiceImpl) loadSnapshot(ctx context.Context, b budget.Budget) (Snapshot, error) {
	lines, err := s.lines.FindForReport(ctx, b.ID, nil)
	if err != nil {
		return Snapshot{}, err
	}

	snapshot := Snapshot{BudgetID: b.ID, Year: b.Year, Version: b.Version}
	for _, line := range lines {
		snapshot.Expenses = append(snapshot.Expenses, SnapshotExpense{
			Code:        line.Expense.Code,
			Description: line.Expense.ShortDescription,
			Monthly:     line.Plan,
		})
	}
	return snapshot, nil
}
