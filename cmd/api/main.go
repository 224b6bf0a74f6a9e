package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/mfadlih/cukurid-backend/api/routes"
	"github.com/mfadlih/cukurid-backend/internal/attendance"
	"github.com/mfadlih/cukurid-backend/internal/catalog"
	"github.com/mfadlih/cukurid-backend/internal/checkout"
	"github.com/mfadlih/cukurid-backend/internal/commissions"
	"github.com/mfadlih/cukurid-backend/internal/expenses"
	"github.com/mfadlih/cukurid-backend/internal/payroll"
	"github.com/mfadlih/cukurid-backend/internal/printing"
	"github.com/mfadlih/cukurid-backend/internal/receipts"
	"github.com/mfadlih/cukurid-backend/internal/reports"
	"github.com/mfadlih/cukurid-backend/internal/stock"
	"github.com/mfadlih/cukurid-backend/internal/transactions"
	"github.com/mfadlih/cukurid-backend/pkg/config"
	"github.com/mfadlih/cukurid-backend/pkg/db"
	"github.com/mfadlih/cukurid-backend/pkg/logger"
	"github.com/mfadlih/cukurid-backend/pkg/metrics"
	"github.com/mfadlih/cukurid-backend/pkg/migrate"
	"github.com/mfadlih/cukurid-backend/pkg/outbox"
	"github.com/mfadlih/cukurid-backend/pkg/redis"
	"github.com/mfadlih/cukurid-backend/pkg/storage/gcs"
)

const shutdownTimeout = 15 * time.Second

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	// Photo uploads (attendance proof, expense receipts) go straight to GCS,
	// so the bucket is a hard dependency of the API.
	gcsClient, err := gcs.NewClient(context.Background(), cfg.GCS, cfg.GCP, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap gcs", err)
		os.Exit(1)
	}
	defer func() {
		if err := gcsClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing gcs client", err)
		}
	}()

	gormDB := dbClient.DB()
	outboxSvc := outbox.NewService(outbox.NewRepository(gormDB), logg)

	catalogRepo := catalog.NewRepository(gormDB)
	stockRepo := stock.NewRepository(gormDB)
	commissionsRepo := commissions.NewRepository(gormDB)
	checkoutRepo := checkout.NewRepository(gormDB)
	transactionsRepo := transactions.NewRepository(gormDB)

	registry := prometheus.NewRegistry()
	checkoutSvc, err := checkout.NewService(
		dbClient,
		checkout.NewStore(checkoutRepo),
		checkout.NewStockStore(stockRepo),
		checkout.NewRuleStore(commissionsRepo),
		checkout.NewRedisNumberSource(redisClient),
		outboxSvc,
		logg,
		metrics.NewCheckoutMetrics(registry),
	)
	if err != nil {
		logg.Error(context.Background(), "failed to create checkout service", err)
		os.Exit(1)
	}

	services := routes.Services{
		Catalog:      catalog.NewService(catalogRepo),
		Stock:        stock.NewService(stockRepo, catalogRepo),
		Checkout:     checkoutSvc,
		Transactions: transactions.NewService(transactionsRepo, dbClient, outboxSvc),
		Commissions:  commissions.NewService(commissionsRepo),
		Receipts:     receipts.NewService(receipts.NewRepository(gormDB), transactionsRepo, checkoutRepo, cfg.Receipt),
		Printing:     printing.NewBridge(logg),
		Attendance:   attendance.NewService(attendance.NewRepository(gormDB), gcsClient),
		Payroll:      payroll.NewService(payroll.NewRepository(gormDB)),
		Expenses:     expenses.NewService(expenses.NewRepository(gormDB), dbClient, outboxSvc, gcsClient),
		Reports:      reports.NewService(reports.NewRepository(gormDB)),
	}
	health := routes.Health{
		DB:    dbClient,
		Redis: redisClient,
		GCS:   gcsClient,
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	ctx = logg.WithFields(ctx, map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr:    addr,
		Handler: routes.NewRouter(cfg, logg, redisClient, registry, health, services),
	}

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if err != nil && err != http.ErrServerClosed {
			logg.Error(ctx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logg.Error(ctx, "api server shutdown failed", err)
			os.Exit(1)
		}
		logg.Info(ctx, "api server shut down gracefully")
	}
}
