package expense

// Expense is a catalog entry budget lines refer to. An expense can belong to
// several technology directions and user areas at once; grouped reports count
// it in every group it belongs to. Sub-expenses point at their parent but
// reports treat them as flat rows.
type Expense struct {
	ID                     int
	Code                   string
	ShortDescription       string
	LongDescription        string
	FinancialCompanyID     int
	ParentExpenseID        *int
	Active                 bool
	TechnologyDirectionIDs []int
	UserAreaIDs            []int
}
