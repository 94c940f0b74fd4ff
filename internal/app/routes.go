package app

import (
	"github.com/gorilla/mux"
	"github.com/techbudget/techbudget/internal/config"
)

// RegisterRoutes registers all API endpoints.
func RegisterRoutes(r *mux.Router, deps *Dependencies, cfg config.Application) {

	// Budgets
	r.HandleFunc("/api/budget", deps.BudgetHandler.GetAll).Methods("GET")
	r.HandleFunc("/api/budget", deps.BudgetHandler.Create).Methods("POST")
	r.HandleFunc("/api/budget/{id}", deps.BudgetHandler.Get).Methods("GET")
	r.HandleFunc("/api/budget/{id}/activate", deps.BudgetHandler.Activate).Methods("PUT")
	r.HandleFunc("/api/budget/{id}", deps.BudgetHandler.Delete).Methods("DELETE")

	// Budget lines
	r.HandleFunc("/api/budgetline", deps.BudgetLineHandler.GetAllForBudget).Queries("budgetId", "{budgetId}").Methods("GET")
	r.HandleFunc("/api/budgetline", deps.BudgetLineHandler.Create).Methods("POST")
	r.HandleFunc("/api/budgetline/{id}", deps.BudgetLineHandler.Get).Methods("GET")
	r.HandleFunc("/api/budgetline/{id}", deps.BudgetLineHandler.Update).Methods("PUT")
	r.HandleFunc("/api/budgetline/{id}", deps.BudgetLineHandler.Delete).Methods("DELETE")

	// Expense catalog
	r.HandleFunc("/api/expense", deps.ExpenseHandler.GetAll).Methods("GET")
	r.HandleFunc("/api/expense", deps.ExpenseHandler.Create).Methods("POST")
	r.HandleFunc("/api/expense/{id}", deps.ExpenseHandler.Get).Methods("GET")
	r.HandleFunc("/api/expense/{id}", deps.ExpenseHandler.Update).Methods("PUT")
	r.HandleFunc("/api/expense/{id}", deps.ExpenseHandler.Deactivate).Methods("DELETE")

	// Master data
	r.HandleFunc("/api/company", deps.CatalogHandler.ListCompanies).Methods("GET")
	r.HandleFunc("/api/company", deps.CatalogHandler.CreateCompany).Methods("POST")
	r.HandleFunc("/api/company/{id}", deps.CatalogHandler.UpdateCompany).Methods("PUT")
	r.HandleFunc("/api/company/{id}", deps.CatalogHandler.DeleteCompany).Methods("DELETE")
	r.HandleFunc("/api/techdirection", deps.CatalogHandler.ListTechDirections).Methods("GET")
	r.HandleFunc("/api/techdirection", deps.CatalogHandler.CreateTechDirection).Methods("POST")
	r.HandleFunc("/api/techdirection/{id}", deps.CatalogHandler.DeleteTechDirection).Methods("DELETE")
	r.HandleFunc("/api/userarea", deps.CatalogHandler.ListUserAreas).Methods("GET")
	r.HandleFunc("/api/userarea", deps.CatalogHandler.CreateUserArea).Methods("POST")
	r.HandleFunc("/api/userarea/{id}", deps.CatalogHandler.DeleteUserArea).Methods("DELETE")

	// Conversion rates
	r.HandleFunc("/api/conversionrate", deps.ConversionRateHandler.GetAllForBudget).Queries("budgetId", "{budgetId}").Methods("GET")
	r.HandleFunc("/api/conversionrate", deps.ConversionRateHandler.Create).Methods("POST")
	r.HandleFunc("/api/conversionrate/{id}", deps.ConversionRateHandler.Update).Methods("PUT")
	r.HandleFunc("/api/conversionrate/{id}", deps.ConversionRateHandler.Delete).Methods("DELETE")

	// Transactions
	r.HandleFunc("/api/transaction", deps.TransactionHandler.GetAllForLine).Queries("budgetLineId", "{budgetLineId}").Methods("GET")
	r.HandleFunc("/api/transaction", deps.TransactionHandler.Create).Methods("POST")
	r.HandleFunc("/api/transaction/compensate", deps.TransactionHandler.Compensate).Methods("POST")
	r.HandleFunc("/api/transaction/{id}", deps.TransactionHandler.Get).Methods("GET")
	r.HandleFunc("/api/transaction/{id}", deps.TransactionHandler.Delete).Methods("DELETE")

	// Savings and deferrals
	r.HandleFunc("/api/saving", deps.SavingsHandler.CreateSaving).Methods("POST")
	r.HandleFunc("/api/saving/{id}/approve", deps.SavingsHandler.ApproveSaving).Methods("PUT")
	r.HandleFunc("/api/saving/{id}", deps.SavingsHandler.DeleteSaving).Methods("DELETE")
	r.HandleFunc("/api/deferral", deps.SavingsHandler.CreateDeferral).Methods("POST")
	r.HandleFunc("/api/deferral/{id}", deps.SavingsHandler.DeleteDeferral).Methods("DELETE")

	// Reports
	r.HandleFunc("/api/report", deps.ReportHandler.GetReport).Methods("GET")
	r.HandleFunc("/api/report/export", deps.SheetsHandler.Export).Methods("POST")

	// Budget comparison
	r.HandleFunc("/api/comparison", deps.ComparisonHandler.Compare).
		Queries("budgetA", "{budgetA}", "budgetB", "{budgetB}").Methods("GET")

	// User management
	r.HandleFunc("/api/user/current", deps.UserHandler.CurrentUser).Methods("GET")
	r.HandleFunc("/api/user", deps.UserHandler.CreateUser).Methods("POST")
	r.HandleFunc("/api/user", deps.UserHandler.GetAllUsers).Methods("GET")
	r.HandleFunc("/api/user/{id}", deps.UserHandler.DeleteUser).Methods("DELETE")
}
