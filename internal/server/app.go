// Package server wires configuration, storage, services and the HTTP API
// into a runnable application.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/receiptkeeper/internal/logging"
	"github.com/dmitrijs2005/receiptkeeper/internal/server/config"
	"github.com/dmitrijs2005/receiptkeeper/internal/server/httpapi"
	"github.com/dmitrijs2005/receiptkeeper/internal/server/metrics"
	"github.com/dmitrijs2005/receiptkeeper/internal/server/normalize"
	"github.com/dmitrijs2005/receiptkeeper/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/receiptkeeper/internal/server/services"
	_ "github.com/jackc/pgx/v5/stdlib"
)

// Seams for tests.
var (
	logOutput  io.Writer = os.Stdout
	openDB               = func(dsn string) (*sql.DB, error) { return sql.Open("pgx", dsn) }
	newRepoMgr           = repomanager.NewPostgresRepositoryManager
)

type App struct {
	config *config.Config
	logger logging.Logger
	db     *sql.DB
	server *httpapi.Server
}

// NewApp validates cfg, opens the database, applies the baseline schema
// and builds the HTTP server. The caller owns the returned App and must
// call Close.
func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger, err := logging.New(cfg.LogFormat, cfg.LogLevel, logOutput)
	if err != nil {
		return nil, fmt.Errorf("logger init error: %w", err)
	}

	db, err := openDB(cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm := newRepoMgr()
	if err := rm.RunMigrations(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrations error: %w", err)
	}

	accounts := services.NewAccountService(db, rm, cfg, logger)
	receipts := services.NewReceiptService(db, rm, normalize.NewNormalizer(logger), logger)
	expenses := services.NewExpenseService(receipts)

	router := httpapi.NewRouter(httpapi.Deps{
		Accounts: accounts,
		Receipts: receipts,
		Expenses: expenses,
		DB:       db,
		Metrics:  metrics.NewMetrics(),
		Logger:   logger,
	})

	return &App{
		config: cfg,
		logger: logger,
		db:     db,
		server: httpapi.NewServer(cfg.EndpointAddr, router, cfg.ShutdownTimeout, logger),
	}, nil
}

// Run serves until ctx is cancelled or SIGINT/SIGTERM/SIGQUIT arrives.
func (app *App) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	app.logger.Info(ctx, "Starting app...", "address", app.config.EndpointAddr)

	if err := app.server.Run(ctx); err != nil {
		app.logger.Error(ctx, "server stopped with error", "error", err)
		return err
	}

	app.logger.Info(ctx, "App stopped")
	return nil
}

// Close releases the database pool and flushes buffered logs.
func (app *App) Close() error {
	if s, ok := app.logger.(interface{ Sync() error }); ok {
		_ = s.Sync()
	}
	return app.db.Close()
}
