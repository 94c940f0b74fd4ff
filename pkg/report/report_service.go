package report

import (
	"context"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
	"github.com/techbudget/techbudget/internal/rest"
	"github.com/techbudget/techbudget/internal/utils"
	"github.com/techbudget/techbudget/pkg/budgetline"
	"github.com/techbudget/techbudget/pkg/catalog"
	"github.com/techbudget/techbudget/pkg/savings"
)

type Service interface {
	GetReport(ctx context.Context, reportType string, filters Filters) (Report, error)
}

type ServiceImpl struct {
	lines   budgetline.Repo
	savings savings.Service
	catalog catalog.Service
	clock   utils.Clock
}

func NewReportService(
	lines budgetline.Repo,
	savingsService savings.Service,
	catalogService catalog.Service,
	clock utils.Clock,
) *ServiceImpl {
	return &ServiceImpl{
		lines:   lines,
		savings: savingsService,
		catalog: catalogService,
		clock:   clock,
	}
}

// GetReport recomputes the requested rollup from the budget's lines and
// transactions on every call. Nothing is cached.
func (s *ServiceImpl) GetReport(ctx context.Context, reportType string, filters Filters) (Report, error) {
	if filters.BudgetID == 0 {
		return Report{}, rest.NewValidationError("budgetId is required")
	}

	switch reportType {
	case TypeExecutiveSummary:
		return s.executiveSummary(ctx, filters)
	case TypeBudgetExecution:
		return s.budgetExecution(ctx, filters)
	case TypePlanVsReal:
		return s.planVsReal(ctx, filters)
	case TypeByFinancialCompany:
		return s.byFinancialCompany(ctx, filters)
	case TypeByTechDirection:
		return s.byTechDirection(ctx, filters)
	case TypeByUserArea:
		return s.byUserArea(ctx, filters)
	case TypeDetailedTransactions:
		return s.detailedTransactions(ctx, filters)
	case TypeVarianceAnalysis:
		return s.varianceAnalysis(ctx, filters)
	case TypeSavingsDeferrals:
		return s.savingsDeferrals(ctx, filters)
	case TypeAnnualProjection:
		return s.annualProjection(ctx, filters)
	default:
		return Report{}, rest.NewValidationError("Invalid report type")
	}
}

// committedTotal sums USD values of COMMITTED transactions, skipping
// compensated ones. Compensated commitments stay in the ledger for audit but
// never count as open commitment.
func committedTotal(line budgetline.ReportLine) decimal.Decimal {
	total := decimal.Zero
	for _, tx := range line.Transactions {
		if tx.Type == "COMMITTED" && !tx.IsCompensated {
			total = total.Add(tx.USDValue)
		}
	}
	return total
}

// realTotal sums USD values of all REAL transactions unconditionally.
func realTotal(line budgetline.ReportLine) decimal.Decimal {
	total := decimal.Zero
	for _, tx := range line.Transactions {
		if tx.Type == "REAL" {
			total = total.Add(tx.USDValue)
		}
	}
	return total
}

// percentOf guards against a zero denominator and returns 0 instead.
func percentOf(part, whole decimal.Decimal) float64 {
	if whole.IsZero() {
		return 0
	}
	return round2(part.Div(whole).Mul(decimal.NewFromInt(100)))
}

func round2(v decimal.Decimal) float64 {
	return v.Round(2).InexactFloat64()
}

func (s *ServiceImpl) executiveSummary(ctx context.Context, filters Filters) (Report, error) {
	lines, err := s.lines.FindForReport(ctx, filters.BudgetID, filters.FinancialCompanyID)
	if err != nil {
		return Report{}, err
	}

	plan, committed, real := decimal.Zero, decimal.Zero, decimal.Zero
	for _, line := range lines {
		plan = plan.Add(line.MonthTotal())
		committed = committed.Add(committedTotal(line))
		real = real.Add(realTotal(line))
	}
	balance := plan.Sub(committed).Sub(real)

	return Report{
		Columns: []string{"totalPlan", "totalCommitted", "totalReal", "executionPercent", "balance"},
		Rows: []map[string]any{{
			"totalPlan":        round2(plan),
			"totalCommitted":   round2(committed),
			"totalReal":        round2(real),
			"executionPercent": percentOf(committed.Add(real), plan),
			"balance":          round2(balance),
		}},
	}, nil
}

func (s *ServiceImpl) budgetExecution(ctx context.Context, filters Filters) (Report, error) {
	lines, err := s.lines.FindForReport(ctx, filters.BudgetID, filters.FinancialCompanyID)
	if err != nil {
		return Report{}, err
	}

	rows := make([]map[string]any, 0, len(lines))
	for _, line := range lines {
		plan := line.MonthTotal()
		committed := committedTotal(line)
		real := realTotal(line)
		rows = append(rows, map[string]any{
			"expenseCode":      line.Expense.Code,
			"expense":          line.Expense.ShortDescription,
			"financialCompany": line.Company.Name,
			"plan":             round2(plan),
			"committed":        round2(committed),
			"real":             round2(real),
			"balance":          round2(plan.Sub(committed).Sub(real)),
			"executionPercent": percentOf(committed.Add(real), plan),
		})
	}

	return Report{
		Columns: []string{"expenseCode", "expense", "financialCompany", "plan", "committed", "real", "balance", "executionPercent"},
		Rows:    rows,
	}, nil
}

func (s *ServiceImpl) planVsReal(ctx context.Context, filters Filters) (Report, error) {
	lines, err := s.lines.FindForReport(ctx, filters.BudgetID, filters.FinancialCompanyID)
	if err != nil {
		return Report{}, err
	}

	from, to := filters.MonthFrom, filters.MonthTo
	if from < 1 || from > 12 {
		from = 1
	}
	if to < 1 || to > 12 {
		to = 12
	}
	if from > to {
		return Report{}, rest.NewValidationError("monthFrom must not be after monthTo")
	}

	var rows []map[string]any
	for m := from; m <= to; m++ {
		plan, committed, real := decimal.Zero, decimal.Zero, decimal.Zero
		for _, line := range lines {
			plan = plan.Add(line.MonthValue(m))
			for _, tx := range line.Transactions {
				if tx.Month != m {
					continue
				}
				if tx.Type == "COMMITTED" && !tx.IsCompensated {
					committed = committed.Add(tx.USDValue)
				} else if tx.Type == "REAL" {
					real = real.Add(tx.USDValue)
				}
			}
		}
		rows = append(rows, map[string]any{
			"month":      m,
			"plan":       round2(plan),
			"committed":  round2(committed),
			"real":       round2(real),
			"difference": round2(plan.Sub(committed).Sub(real)),
		})
	}

	return Report{
		Columns: []string{"month", "plan", "committed", "real", "difference"},
		Rows:    rows,
	}, nil
}

type groupTotals struct {
	plan      decimal.Decimal
	committed decimal.Decimal
	real      decimal.Decimal
	count     int
}

func (s *ServiceImpl) byFinancialCompany(ctx context.Context, filters Filters) (Report, error) {
	lines, err := s.lines.FindForReport(ctx, filters.BudgetID, filters.FinancialCompanyID)
	if err != nil {
		return Report{}, err
	}

	groups := map[string]*groupTotals{}
	totalPlan := decimal.Zero
	for _, line := range lines {
		g := groups[line.Company.Name]
		if g == nil {
			g = &groupTotals{plan: decimal.Zero, committed: decimal.Zero, real: decimal.Zero}
			groups[line.Company.Name] = g
		}
		plan := line.MonthTotal()
		g.plan = g.plan.Add(plan)
		g.committed = g.committed.Add(committedTotal(line))
		g.real = g.real.Add(realTotal(line))
		g.count++
		totalPlan = totalPlan.Add(plan)
	}

	rows := groupRows(groups, "financialCompany", func(row map[string]any, g *groupTotals) {
		row["planPercent"] = percentOf(g.plan, totalPlan)
	})
	return Report{
		Columns: []string{"financialCompany", "plan", "committed", "real", "count", "planPercent"},
		Rows:    rows,
	}, nil
}

func (s *ServiceImpl) byTechDirection(ctx context.Context, filters Filters) (Report, error) {
	names, err := s.catalog.TechDirectionNames(ctx)
	if err != nil {
		return Report{}, err
	}
	return s.groupedByMembership(ctx, filters, "technologyDirection", names, func(line budgetline.ReportLine) []int {
		return line.Expense.TechnologyDirectionIDs
	})
}

func (s *ServiceImpl) byUserArea(ctx context.Context, filters Filters) (Report, error) {
	names, err := s.catalog.UserAreaNames(ctx)
	if err != nil {
		return Report{}, err
	}
	return s.groupedByMembership(ctx, filters, "userArea", names, func(line budgetline.ReportLine) []int {
		return line.Expense.UserAreaIDs
	})
}

// groupedByMembership fans each line out over every group its expense belongs
// to. An expense in three technology directions contributes its full totals
// to all three, so group totals intentionally overlap.
func (s *ServiceImpl) groupedByMembership(
	ctx context.Context,
	filters Filters,
	keyColumn string,
	names map[int]string,
	membership func(budgetline.ReportLine) []int,
) (Report, error) {
	lines, err := s.lines.FindForReport(ctx, filters.BudgetID, filters.FinancialCompanyID)
	if err != nil {
		return Report{}, err
	}

	groups := map[string]*groupTotals{}
	for _, line := range lines {
		for _, id := range membership(line) {
			name, ok := names[id]
			if !ok {
				name = fmt.Sprintf("#%d", id)
			}
			g := groups[name]
			if g == nil {
				g = &groupTotals{plan: decimal.Zero, committed: decimal.Zero, real: decimal.Zero}
				groups[name] = g
			}
			g.plan = g.plan.Add(line.MonthTotal())
			g.committed = g.committed.Add(committedTotal(line))
			g.real = g.real.Add(realTotal(line))
			g.count++
		}
	}

	return Report{
		Columns: []string{keyColumn, "plan", "committed", "real", "count"},
		Rows:    groupRows(groups, keyColumn, nil),
	}, nil
}

// groupRows renders a group map as rows sorted by group name so repeated
// calls return identical output.
func groupRows(groups map[string]*groupTotals, keyColumn string, extend func(map[string]any, *groupTotals)) []map[string]any {
	names := make([]string, 0, len(groups))
	for name := range groups {
		names = append(names, name)
	}
	sort.Strings(names)

	rows := make([]map[string]any, 0, len(groups))
	for _, name := range names {
		g := groups[name]
		row := map[string]any{
			keyColumn:   name,
			"plan":      round2(g.plan),
			"committed": round2(g.committed),
			"real":      round2(g.real),
			"count":     g.count,
		}
		if extend != nil {
			extend(row, g)
		}
		rows = append(rows, row)
	}
	return rows
}

func (s *ServiceImpl) detailedTransactions(ctx context.Context, filters Filters) (Report, error) {
	lines, err := s.lines.FindForReport(ctx, filters.BudgetID, filters.FinancialCompanyID)
	if err != nil {
		return Report{}, err
	}

	var rows []map[string]any
	for _, line := range lines {
		for _, tx := range line.Transactions {
			rows = append(rows, map[string]any{
				"expenseCode":             line.Expense.Code,
				"financialCompany":        line.Company.Name,
				"type":                    tx.Type,
				"month":                   tx.Month,
				"serviceDate":             tx.ServiceDate,
				"postingDate":             tx.PostingDate,
				"referenceDocumentNumber": tx.ReferenceDocumentNumber,
				"currency":                tx.Currency,
				"value":                   round2(tx.Value),
				"usdValue":                round2(tx.USDValue),
				"isCompensated":           tx.IsCompensated,
			})
		}
	}
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i]["month"].(int) != rows[j]["month"].(int) {
			return rows[i]["month"].(int) < rows[j]["month"].(int)
		}
		return rows[i]["serviceDate"].(string) < rows[j]["serviceDate"].(string)
	})

	return Report{
		Columns: []string{"expenseCode", "financialCompany", "type", "month", "serviceDate", "postingDate",
			"referenceDocumentNumber", "currency", "value", "usdValue", "isCompensated"},
		Rows: rows,
	}, nil
}

func (s *ServiceImpl) varianceAnalysis(ctx context.Context, filters Filters) (Report, error) {
	lines, err := s.lines.FindForReport(ctx, filters.BudgetID, filters.FinancialCompanyID)
	if err != nil {
		return Report{}, err
	}

	rows := make([]map[string]any, 0, len(lines))
	for _, line := range lines {
		plan := line.MonthTotal()
		actual := decimal.Zero
		for _, tx := range line.Transactions {
			actual = actual.Add(tx.USDValue)
		}
		variance := plan.Sub(actual)
		variancePercent := percentOf(variance, plan)
		status := "Normal"
		if variancePercent > 10 {
			status = "Subejecutado"
		} else if variancePercent < -10 {
			status = "Sobreejecutado"
		}
		rows = append(rows, map[string]any{
			"expenseCode":     line.Expense.Code,
			"expense":         line.Expense.ShortDescription,
			"plan":            round2(plan),
			"actual":          round2(actual),
			"variance":        round2(variance),
			"variancePercent": variancePercent,
			"status":          status,
		})
	}

	return Report{
		Columns: []string{"expenseCode", "expense", "plan", "actual", "variance", "variancePercent", "status"},
		Rows:    rows,
	}, nil
}

func (s *ServiceImpl) savingsDeferrals(ctx context.Context, filters Filters) (Report, error) {
	budgetSavings, err := s.savings.SavingsForBudget(ctx, filters.BudgetID)
	if err != nil {
		return Report{}, err
	}
	deferrals, err := s.savings.DeferralsForBudget(ctx, filters.BudgetID)
	if err != nil {
		return Report{}, err
	}

	rows := make([]map[string]any, 0, len(budgetSavings)+len(deferrals))
	for _, saving := range budgetSavings {
		rows = append(rows, map[string]any{
			"kind":        "SAVING",
			"expenseCode": saving.ExpenseCode,
			"amount":      round2(saving.TotalAmount),
			"status":      saving.Status,
			"period":      "",
			"createdBy":   saving.CreatedByName,
		})
	}
	for _, deferral := range deferrals {
		rows = append(rows, map[string]any{
			"kind":        "DEFERRAL",
			"expenseCode": deferral.ExpenseCode,
			"amount":      round2(deferral.TotalAmount),
			"status":      "",
			"period":      fmt.Sprintf("M%d-M%d", deferral.StartMonth, deferral.EndMonth),
			"createdBy":   deferral.CreatedByName,
		})
	}

	return Report{
		Columns: []string{"kind", "expenseCode", "amount", "status", "period", "createdBy"},
		Rows:    rows,
	}, nil
}

// annualProjection reports actuals for months up to the current one and
// carries the plan forward as the projection for the rest of the year.
func (s *ServiceImpl) annualProjection(ctx context.Context, filters Filters) (Report, error) {
	lines, err := s.lines.FindForReport(ctx, filters.BudgetID, filters.FinancialCompanyID)
	if err != nil {
		return Report{}, err
	}

	currentMonth := int(s.clock.Now().Month())

	cumPlan, cumActual := decimal.Zero, decimal.Zero
	rows := make([]map[string]any, 0, 12)
	for m := 1; m <= 12; m++ {
		plan := decimal.Zero
		actual := decimal.Zero
		for _, line := range lines {
			plan = plan.Add(line.MonthValue(m))
			for _, tx := range line.Transactions {
				if tx.Month != m {
					continue
				}
				if tx.Type == "COMMITTED" && !tx.IsCompensated {
					actual = actual.Add(tx.USDValue)
				} else if tx.Type == "REAL" {
					actual = actual.Add(tx.USDValue)
				}
			}
		}

		cumPlan = cumPlan.Add(plan)
		row := map[string]any{
			"month":          m,
			"plan":           round2(plan),
			"cumulativePlan": round2(cumPlan),
		}
		if m <= currentMonth {
			cumActual = cumActual.Add(actual)
			row["actual"] = round2(actual)
			row["projected"] = nil
		} else {
			cumActual = cumActual.Add(plan)
			row["actual"] = nil
			row["projected"] = round2(plan)
		}
		row["cumulativeActual"] = round2(cumActual)
		rows = append(rows, row)
	}

	return Report{
		Columns: []string{"month", "plan", "actual", "projected", "cumulativePlan", "cumulativeActual"},
		Rows:    rows,
	}, nil
}
