package catalog

// Master data referenced by expenses, budget lines, and the report engine.

type FinancialCompany struct {
	ID   int
	Code string
	Name string
}

type TechnologyDirection struct {
	ID   int
	Name string
}

type UserArea struct {
	ID   int
	Name string
}
