package comparison

import (
	"sort"

	"github.com/shopspring/decimal"
)

const (
	StatusNew       = "new"
	StatusRemoved   = "removed"
	StatusModified  = "modified"
	StatusUnchanged = "unchanged"
)

// SnapshotExpense is one expense code's 12-month plan vector within a budget
// snapshot. Codes appearing on several budget lines are already summed.
type SnapshotExpense struct {
	Code        string
	Description string
	Monthly     [12]decimal.Decimal
}

func (e SnapshotExpense) Total() decimal.Decimal {
	total := decimal.Zero
	for _, v := range e.Monthly {
		total = total.Add(v)
	}
	return total
}

// Snapshot is one budget's full expense set, the unit the comparison runs
// over.
type Snapshot struct {
	BudgetID int
	Year     int
	Version  int
	Expenses []SnapshotExpense
}

// Row is the classification of one expense code across two budgets.
type Row struct {
	Code          string              `json:"code"`
	Description   string              `json:"description"`
	Status        string              `json:"status"`
	MonthlyA      [12]decimal.Decimal `json:"-"`
	MonthlyB      [12]decimal.Decimal `json:"-"`
	TotalA        decimal.Decimal     `json:"totalA"`
	TotalB        decimal.Decimal     `json:"totalB"`
	Difference    decimal.Decimal     `json:"difference"`
	PercentChange float64             `json:"percentChange"`
}

type Summary struct {
	TotalA         decimal.Decimal `json:"totalA"`
	TotalB         decimal.Decimal `json:"totalB"`
	Difference     decimal.Decimal `json:"difference"`
	PercentChange  float64         `json:"percentChange"`
	NewCount       int             `json:"newCount"`
	RemovedCount   int             `json:"removedCount"`
	ModifiedCount  int             `json:"modifiedCount"`
	UnchangedCount int             `json:"unchangedCount"`
}

// ClassifyExpenses diffs two budget snapshots over the union of their expense
// codes. A code only in B is new, only in A is removed, in both with any
// monthly value differing is modified, otherwise unchanged. The difference is
// always B minus A. Rows come back sorted by code.
func ClassifyExpenses(a, b Snapshot) []Row {
	byCodeA := indexByCode(a)
	byCodeB := indexByCode(b)

	codes := make([]string, 0, len(byCodeA)+len(byCodeB))
	seen := map[string]bool{}
	for code := range byCodeA {
		codes = append(codes, code)
		seen[code] = true
	}
	for code := range byCodeB {
		if !seen[code] {
			codes = append(codes, code)
		}
	}
	sort.Strings(codes)

	rows := make([]Row, 0, len(codes))
	for _, code := range codes {
		expenseA, inA := byCodeA[code]
		expenseB, inB := byCodeB[code]

		row := Row{Code: code}
		switch {
		case !inA:
			row.Status = StatusNew
			row.Description = expenseB.Description
		case !inB:
			row.Status = StatusRemoved
			row.Description = expenseA.Description
		default:
			row.Description = expenseB.Description
			row.Status = StatusUnchanged
			for m := 0; m < 12; m++ {
				if !expenseA.Monthly[m].Equal(expenseB.Monthly[m]) {
					row.Status = StatusModified
					break
				}
			}
		}

		row.MonthlyA = expenseA.Monthly
		row.MonthlyB = expenseB.Monthly
		row.TotalA = expenseA.Total()
		row.TotalB = expenseB.Total()
		row.Difference = row.TotalB.Sub(row.TotalA)
		row.PercentChange = percentChange(row.Difference, row.TotalA)
		rows = append(rows, row)
	}
	return rows
}

// CalculateSummary totals both sides across all rows and counts them by
// status.
func CalculateSummary(rows []Row) Summary {
	summary := Summary{
		TotalA:     decimal.Zero,
		TotalB:     decimal.Zero,
		Difference: decimal.Zero,
	}
	for _, row := range rows {
		summary.TotalA = summary.TotalA.Add(row.TotalA)
		summary.TotalB = summary.TotalB.Add(row.TotalB)
		switch row.Status {
		case StatusNew:
			summary.NewCount++
		case StatusRemoved:
			summary.RemovedCount++
		case StatusModified:
			summary.ModifiedCount++
		case StatusUnchanged:
			summary.UnchangedCount++
		}
	}
	summary.Difference = summary.TotalB.Sub(summary.TotalA)
	summary.PercentChange = percentChange(summary.Difference, summary.TotalA)
	return summary
}

func percentChange(difference, base decimal.Decimal) float64 {
	if base.IsZero() {
		return 0
	}
	return difference.Div(base).Mul(decimal.NewFromInt(100)).Round(2).InexactFloat64()
}

func indexByCode(snapshot Snapshot) map[string]SnapshotExpense {
	byCode := make(map[string]SnapshotExpense, len(snapshot.Expenses))
	for _, e := range snapshot.Expenses {
		existing, ok := byCode[e.Code]
		if !ok {
			byCode[e.Code] = e
			continue
		}
		for m := 0; m < 12; m++ {
			existing.Monthly[m] = existing.Monthly[m].Add(e.Monthly[m])
		}
		byCode[e.Code] = existing
	}
	return byCode
}
