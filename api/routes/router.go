package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mfadlih/cukurid-backend/api/controllers"
	"github.com/mfadlih/cukurid-backend/api/middleware"
	attendancesvc "github.com/mfadlih/cukurid-backend/internal/attendance"
	catalogsvc "github.com/mfadlih/cukurid-backend/internal/catalog"
	checkoutsvc "github.com/mfadlih/cukurid-backend/internal/checkout"
	commissionsvc "github.com/mfadlih/cukurid-backend/internal/commissions"
	expensesvc "github.com/mfadlih/cukurid-backend/internal/expenses"
	payrollsvc "github.com/mfadlih/cukurid-backend/internal/payroll"
	"github.com/mfadlih/cukurid-backend/internal/printing"
	receiptsvc "github.com/mfadlih/cukurid-backend/internal/receipts"
	reportsvc "github.com/mfadlih/cukurid-backend/internal/reports"
	stocksvc "github.com/mfadlih/cukurid-backend/internal/stock"
	txsvc "github.com/mfadlih/cukurid-backend/internal/transactions"
	"github.com/mfadlih/cukurid-backend/pkg/config"
	"github.com/mfadlih/cukurid-backend/pkg/enums"
	"github.com/mfadlih/cukurid-backend/pkg/logger"
	"github.com/mfadlih/cukurid-backend/pkg/redis"
)

// Services bundles everything the router mounts.
type Services struct {
	Catalog      catalogsvc.Service
	Stock        stocksvc.Service
	Checkout     checkoutsvc.Service
	Transactions txsvc.Service
	Commissions  commissionsvc.Service
	Receipts     receiptsvc.Service
	Printing     *printing.Bridge
	Attendance   attendancesvc.Service
	Payroll      payrollsvc.Service
	Expenses     expensesvc.Service
	Reports      reportsvc.Service
}

// Health carries the readiness probes for infra dependencies.
type Health struct {
	DB    controllers.Pinger
	Redis controllers.Pinger
	GCS   controllers.Pinger
}

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	redisClient *redis.Client,
	registry *prometheus.Registry,
	health Health,
	services Services,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, controllers.ReadinessDeps(health.DB, health.Redis, health.GCS)))
	})

	if registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	}

	managerRoles := []string{string(enums.RoleAdmin), string(enums.RoleManager)}
	tillRoles := append([]string{string(enums.RoleCashier)}, managerRoles...)
	allRoles := append([]string{string(enums.RoleBarber)}, tillRoles...)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, logg))
		r.Use(middleware.Idempotency(redisClient, logg))

		r.Route("/catalog", func(r chi.Router) {
			r.With(middleware.RequireRole(logg, allRoles...)).Get("/", controllers.CatalogList(services.Catalog, logg))
			r.With(middleware.RequireRole(logg, allRoles...)).Get("/items/{itemId}", controllers.CatalogGetItem(services.Catalog, logg))
			r.With(middleware.RequireRole(logg, managerRoles...)).Post("/items", controllers.CatalogCreateItem(services.Catalog, logg))
			r.With(middleware.RequireRole(logg, managerRoles...)).Patch("/items/{itemId}", controllers.CatalogUpdateItem(services.Catalog, logg))
			r.With(middleware.RequireRole(logg, managerRoles...)).Delete("/items/{itemId}", controllers.CatalogDeactivateItem(services.Catalog, logg))
			r.With(middleware.RequireRole(logg, managerRoles...)).Post("/categories", controllers.CatalogCreateCategory(services.Catalog, logg))
		})

		r.Route("/stock/{outletId}", func(r chi.Router) {
			r.With(middleware.RequireRole(logg, allRoles...)).Get("/", controllers.StockList(services.Stock, logg))
			r.With(middleware.RequireRole(logg, allRoles...)).Get("/low", controllers.StockLowList(services.Stock, logg))
			r.With(middleware.RequireRole(logg, managerRoles...)).Put("/items/{itemId}", controllers.StockSet(services.Stock, logg))
			r.With(middleware.RequireRole(logg, managerRoles...)).Post("/items/{itemId}/restock", controllers.StockRestock(services.Stock, logg))
		})

		r.With(middleware.RequireRole(logg, tillRoles...)).
			Post("/checkout", controllers.Checkout(services.Checkout, services.Catalog, services.Receipts, logg))

		r.Route("/transactions", func(r chi.Router) {
			r.Use(middleware.RequireRole(logg, tillRoles...))
			r.Get("/", controllers.TransactionList(services.Transactions, logg))
			r.Get("/{transactionId}", controllers.TransactionGet(services.Transactions, logg))
			r.Patch("/{transactionId}", controllers.TransactionUpdate(services.Transactions, logg))
			r.Delete("/{transactionId}", controllers.TransactionDelete(services.Transactions, logg))
			r.Get("/{transactionId}/receipt", controllers.ReceiptRender(services.Receipts, logg))
		})

		r.Route("/commissions", func(r chi.Router) {
			r.Use(middleware.RequireRole(logg, managerRoles...))
			r.Get("/employees/{employeeId}/rules", controllers.CommissionRuleList(services.Commissions, logg))
			r.Put("/rules", controllers.CommissionRuleUpsert(services.Commissions, logg))
			r.Delete("/rules/{ruleId}", controllers.CommissionRuleDelete(services.Commissions, logg))
		})

		r.Route("/outlets/{outletId}", func(r chi.Router) {
			r.With(middleware.RequireRole(logg, tillRoles...)).Get("/receipt-template", controllers.ReceiptTemplateGet(services.Receipts, logg))
			r.With(middleware.RequireRole(logg, managerRoles...)).Put("/receipt-template", controllers.ReceiptTemplateUpdate(services.Receipts, logg))

			r.Route("/printer", func(r chi.Router) {
				r.Use(middleware.RequireRole(logg, tillRoles...))
				r.Get("/", controllers.PrinterStatus(services.Printing, logg))
				r.Post("/connect", controllers.PrinterConnect(services.Printing, logg))
				r.Post("/disconnect", controllers.PrinterDisconnect(services.Printing, logg))
				r.Post("/print", controllers.PrinterPrintReceipt(services.Printing, services.Receipts, logg))
			})

			r.With(middleware.RequireRole(logg, managerRoles...)).Get("/attendance", controllers.AttendanceListDay(services.Attendance, logg))

			r.Route("/reports", func(r chi.Router) {
				r.Use(middleware.RequireRole(logg, managerRoles...))
				r.Get("/sales", controllers.ReportSales(services.Reports, logg))
				r.Get("/top-items", controllers.ReportTopItems(services.Reports, logg))
				r.Get("/commissions", controllers.ReportCommissions(services.Reports, logg))
			})
		})

		r.Route("/attendance", func(r chi.Router) {
			r.Use(middleware.RequireRole(logg, allRoles...))
			r.Post("/clock-in", controllers.AttendanceClockIn(services.Attendance, logg))
			r.Post("/clock-out", controllers.AttendanceClockOut(services.Attendance, logg))
		})

		r.Route("/payroll", func(r chi.Router) {
			r.Use(middleware.RequireRole(logg, managerRoles...))
			r.Post("/adjustments", controllers.PayrollCreateAdjustment(services.Payroll, logg))
			r.Delete("/adjustments/{adjustmentId}", controllers.PayrollDeleteAdjustment(services.Payroll, logg))
			r.Get("/employees/{employeeId}/adjustments", controllers.PayrollListAdjustments(services.Payroll, logg))
			r.Get("/employees/{employeeId}/summary", controllers.PayrollSummary(services.Payroll, logg))
		})

		r.Route("/expenses", func(r chi.Router) {
			r.With(middleware.RequireRole(logg, allRoles...)).Post("/", controllers.ExpenseSubmit(services.Expenses, logg))
			r.With(middleware.RequireRole(logg, allRoles...)).Get("/", controllers.ExpenseList(services.Expenses, logg))
			r.With(middleware.RequireRole(logg, allRoles...)).Get("/{expenseId}", controllers.ExpenseGet(services.Expenses, logg))
			r.With(middleware.RequireRole(logg, managerRoles...)).Post("/{expenseId}/review", controllers.ExpenseReview(services.Expenses, logg))
			r.With(middleware.RequireRole(logg, allRoles...)).Delete("/{expenseId}", controllers.ExpenseDelete(services.Expenses, logg))
		})
	})

	return r
}
