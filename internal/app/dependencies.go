package app

import (
	log "github.com/sirupsen/logrus"
	"github.com/techbudget/techbudget/internal/config"
	"github.com/techbudget/techbudget/internal/database"
	"github.com/techbudget/techbudget/internal/event_bus"
	"github.com/techbudget/techbudget/internal/utils"
	"github.com/techbudget/techbudget/pkg/budget"
	"github.com/techbudget/techbudget/pkg/budgetline"
	"github.com/techbudget/techbudget/pkg/catalog"
	"github.com/techbudget/techbudget/pkg/comparison"
	"github.com/techbudget/techbudget/pkg/conversionrate"
	"github.com/techbudget/techbudget/pkg/expense"
	"github.com/techbudget/techbudget/pkg/report"
	"github.com/techbudget/techbudget/pkg/savings"
	"github.com/techbudget/techbudget/pkg/sheets"
	"github.com/techbudget/techbudget/pkg/transaction"
	"github.com/techbudget/techbudget/pkg/user"
)

// Dependencies holds all services and handlers for the application.
type Dependencies struct {
	EventBus *event_bus.EventBus
	Clock    utils.Clock

	UserService user.Service
	UserHandler *user.Handler

	BudgetRepo    budget.Repo
	BudgetService budget.Service
	BudgetHandler *budget.Handler

	CatalogService catalog.Service
	CatalogHandler *catalog.Handler

	ExpenseService expense.Service
	ExpenseHandler *expense.Handler

	BudgetLineRepo    budgetline.Repo
	BudgetLineService budgetline.Service
	BudgetLineHandler *budgetline.Handler

	ConversionRateService conversionrate.Service
	ConversionRateHandler *conversionrate.Handler

	TransactionService transaction.Service
	TransactionHandler *transaction.Handler

	SavingsService savings.Service
	SavingsHandler *savings.Handler

	ReportService     report.Service
	CsvReportRenderer *report.CsvReportRendererImpl
	ReportHandler     *report.Handler

	ComparisonService comparison.Service
	ComparisonHandler *comparison.Handler

	SheetsExporter sheets.Exporter
	SheetsHandler  *sheets.Handler
}

// BuildDependencies initializes and wires all application services and handlers.
func BuildDependencies(db database.DB, cfg config.Application) *Dependencies {
	deps := &Dependencies{}

	deps.EventBus = event_bus.NewEventBus()
	deps.Clock = &utils.SystemClock{}

	deps.UserService = user.NewUserService(user.NewUserRepo(db))
	deps.UserHandler = user.NewHandler(deps.UserService)

	deps.BudgetRepo = budget.NewBudgetRepo(db)
	deps.BudgetService = budget.NewBudgetService(deps.BudgetRepo, deps.EventBus)
	deps.BudgetHandler = budget.NewHandler(deps.BudgetService)

	deps.CatalogService = catalog.NewCatalogService(catalog.NewCatalogRepo(db))
	deps.CatalogHandler = catalog.NewHandler(deps.CatalogService)

	deps.ExpenseService = expense.NewExpenseService(expense.NewExpenseRepo(db))
	deps.ExpenseHandler = expense.NewHandler(deps.ExpenseService)

	deps.BudgetLineRepo = budgetline.NewBudgetLineRepo(db)
	deps.BudgetLineService = budgetline.NewBudgetLineService(deps.BudgetLineRepo)
	deps.BudgetLineHandler = budgetline.NewHandler(deps.BudgetLineService)

	deps.ConversionRateService = conversionrate.NewConversionRateService(conversionrate.NewConversionRateRepo(db))
	deps.ConversionRateHandler = conversionrate.NewHandler(deps.ConversionRateService)

	deps.TransactionService = transaction.NewTransactionService(
		transaction.NewTransactionRepo(db),
		deps.BudgetLineService,
		deps.ConversionRateService,
		deps.EventBus,
	)
	deps.TransactionHandler = transaction.NewHandler(deps.TransactionService)

	deps.SavingsService = savings.NewSavingsService(savings.NewSavingsRepo(db))
	deps.SavingsHandler = savings.NewHandler(deps.SavingsService)

	deps.ReportService = report.NewReportService(deps.BudgetLineRepo, deps.SavingsService, deps.CatalogService, deps.Clock)
	deps.CsvReportRenderer = report.NewCsvReportRenderer()
	deps.ReportHandler = report.NewHandler(deps.ReportService, deps.CsvReportRenderer)

	deps.ComparisonService = comparison.NewComparisonService(deps.BudgetRepo, deps.BudgetLineRepo)
	deps.ComparisonHandler = comparison.NewHandler(deps.ComparisonService)

	deps.SheetsExporter = sheets.NewGoogleSheetsExporter(cfg.Google)
	deps.SheetsHandler = sheets.NewHandler(deps.ReportService, deps.SheetsExporter)

	subscribeAuditLog(deps.EventBus)

	return deps
}

// subscribeAuditLog logs every domain event with its payload so budget and
// ledger changes leave a trace in the application log.
func subscribeAuditLog(bus *event_bus.EventBus) {
	event_bus.SubscribeTyped(bus, event_bus.TypeBudgetActivated,
		func(e event_bus.EventT[event_bus.BudgetActivated]) error {
			log.Infof("budget %d activated (year %d, version %d)", e.Data.BudgetID, e.Data.Year, e.Data.Version)
			return nil
		})
	event_bus.SubscribeTyped(bus, event_bus.TypeTransactionRecorded,
		func(e event_bus.EventT[event_bus.TransactionRecorded]) error {
			log.Infof("transaction %d recorded on line %d: %s %s %s (%s USD)",
				e.Data.TransactionID, e.Data.BudgetLineID, e.Data.Type,
				e.Data.Value.String(), e.Data.Currency, e.Data.USDValue.String())
			return nil
		})
}
