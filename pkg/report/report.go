package report

// Report is a rectangular result ready for rendering or export. Rows are
// keyed by the column names.
type Report struct {
	Columns []string         `json:"columns"`
	Rows    []map[string]any `json:"rows"`
}

// Filters narrows a report. BudgetID is mandatory for every report type.
type Filters struct {
	BudgetID           int
	FinancialCompanyID *int
	MonthFrom          int
	MonthTo            int
}

const (
	TypeExecutiveSummary     = "executive-summary"
	TypeBudgetExecution      = "budget-execution"
	TypePlanVsReal           = "plan-vs-real"
	TypeByFinancialCompany   = "by-financial-company"
	TypeByTechDirection      = "by-tech-direction"
	TypeByUserArea           = "by-user-area"
	TypeDetailedTransactions = "detailed-transactions"
	TypeVarianceAnalysis     = "variance-analysis"
	TypeSavingsDeferrals     = "savings-deferrals"
	TypeAnnualProjection     = "annual-projection"
)
