package comparison

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func snapshotExpense(code string, monthly ...float64) SnapshotExpense {
	e := SnapshotExpense{Code: code}
	for i := 0; i < 12 && i < len(monthly); i++ {
		e.Monthly[i] = decimal.NewFromFloat(monthly[i])
	}
	return e
}

func TestClassifyExpenses(t *testing.T) {
	t.Run("should mark every code unchanged when a budget is compared to itself", func(t *testing.T) {
		// given
		snapshot := Snapshot{Expenses: []SnapshotExpense{
			snapshotExpense("INFRA-001", 1000),
			snapshotExpense("SW-002", 0, 500),
		}}

		// when
		rows := ClassifyExpenses(snapshot, snapshot)

		// then
		assert.Len(t, rows, 2)
		for _, row := range rows {
			assert.Equal(t, StatusUnchanged, row.Status)
			assert.True(t, row.Difference.IsZero())
		}
		summary := CalculateSummary(rows)
		assert.True(t, summary.Difference.IsZero())
		assert.Equal(t, 0.0, summary.PercentChange)
		assert.Equal(t, 2, summary.UnchangedCount)
	})

	t.Run("should classify a changed monthly value as modified", func(t *testing.T) {
		// given
		a := Snapshot{Expenses: []SnapshotExpense{snapshotExpense("INFRA-001", 1000)}}
		b := Snapshot{Expenses: []SnapshotExpense{snapshotExpense("INFRA-001", 1200)}}

		// when
		rows := ClassifyExpenses(a, b)

		// then
		assert.Len(t, rows, 1)
		row := rows[0]
		assert.Equal(t, StatusModified, row.Status)
		assert.True(t, decimal.NewFromInt(1000).Equal(row.TotalA))
		assert.True(t, decimal.NewFromInt(1200).Equal(row.TotalB))
		assert.True(t, decimal.NewFromInt(200).Equal(row.Difference))
		assert.Equal(t, 20.0, row.PercentChange)
	})

	t.Run("should swap new and removed when arguments swap", func(t *testing.T) {
		// given
		a := Snapshot{Expenses: []SnapshotExpense{
			snapshotExpense("ONLY-A", 100),
			snapshotExpense("SHARED", 300),
		}}
		b := Snapshot{Expenses: []SnapshotExpense{
			snapshotExpense("ONLY-B", 200),
			snapshotExpense("SHARED", 300),
		}}

		// when
		forward := CalculateSummary(ClassifyExpenses(a, b))
		backward := CalculateSummary(ClassifyExpenses(b, a))

		// then
		assert.Equal(t, 1, forward.NewCount)
		assert.Equal(t, 1, forward.RemovedCount)
		assert.Equal(t, forward.NewCount, backward.RemovedCount)
		assert.Equal(t, forward.RemovedCount, backward.NewCount)
		assert.Equal(t, forward.ModifiedCount, backward.ModifiedCount)
		assert.Equal(t, forward.UnchangedCount, backward.UnchangedCount)
	})

	t.Run("should zero-fill months for a code missing on one side", func(t *testing.T) {
		// given
		a := Snapshot{}
		b := Snapshot{Expenses: []SnapshotExpense{snapshotExpense("NEW-001", 0, 0, 750)}}

		// when
		rows := ClassifyExpenses(a, b)

		// then
		assert.Len(t, rows, 1)
		row := rows[0]
		assert.Equal(t, StatusNew, row.Status)
		assert.True(t, row.TotalA.IsZero())
		assert.True(t, decimal.NewFromInt(750).Equal(row.TotalB))
		// totalA is zero, so the percent change is zero guarded.
		assert.Equal(t, 0.0, row.PercentChange)
		for m := 0; m < 12; m++ {
			assert.True(t, row.MonthlyA[m].IsZero())
		}
	})

	t.Run("should sum lines sharing one expense code", func(t *testing.T) {
		// given
		a := Snapshot{Expenses: []SnapshotExpense{
			snapshotExpense("INFRA-001", 1000),
			snapshotExpense("INFRA-001", 0, 500),
		}}
		b := Snapshot{Expenses: []SnapshotExpense{
			snapshotExpense("INFRA-001", 1000, 500),
		}}

		// when
		rows := ClassifyExpenses(a, b)

		// then
		assert.Len(t, rows, 1)
		assert.Equal(t, StatusUnchanged, rows[0].Status)
		assert.True(t, decimal.NewFromInt(1500).Equal(rows[0].TotalA))
	})

	t.Run("should yield no rows for two empty budgets", func(t *testing.T) {
		// when
		rows := ClassifyExpenses(Snapshot{}, Snapshot{})

		// then
		assert.Empty(t, rows)
		summary := CalculateSummary(rows)
		assert.Equal(t, 0, summary.NewCount+summary.RemovedCount+summary.ModifiedCount+summary.UnchangedCount)
	})
}
