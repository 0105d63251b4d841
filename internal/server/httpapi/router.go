// Package httpapi exposes the receipt services over HTTP with a chi router.
package httpapi

import (
	"context"
	"net/http"

	"github.com/dmitrijs2005/receiptkeeper/internal/logging"
	"github.com/dmitrijs2005/receiptkeeper/internal/server/metrics"
	"github.com/dmitrijs2005/receiptkeeper/internal/server/models"
	"github.com/dmitrijs2005/receiptkeeper/internal/server/normalize"
	"github.com/dmitrijs2005/receiptkeeper/internal/server/services"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/shopspring/decimal"
)

type AccountService interface {
	Register(ctx context.Context, name, secret string) (*models.Account, error)
	Login(ctx context.Context, name, secret string) (string, error)
	Authenticate(token string) (int64, error)
}

type ReceiptService interface {
	Submit(ctx context.Context, raw normalize.RawReceipt, accountID int64) (int64, error)
	Get(ctx context.Context, accountID, receiptID int64) (*models.Receipt, error)
	List(ctx context.Context, accountID int64) ([]*models.Receipt, error)
}

type ExpenseService interface {
	Summary(ctx context.Context, accountID int64, start, end models.Date) (map[string]decimal.Decimal, error)
	Chart(ctx context.Context, accountID int64, start, end models.Date) (*services.Chart, error)
}

// Pinger reports database liveness; *sql.DB satisfies it.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Deps are the collaborators of the router. DB may be nil, in which case
// /healthz only reports the process as alive.
type Deps struct {
	Accounts AccountService
	Receipts ReceiptService
	Expenses ExpenseService
	DB       Pinger
	Metrics  *metrics.Metrics
	Logger   logging.Logger
}

// NewRouter creates the HTTP router with all routes and middleware.
func NewRouter(d Deps) http.Handler {
	h := &handlers{
		accounts: d.Accounts,
		receipts: d.Receipts,
		expenses: d.Expenses,
		db:       d.DB,
		metrics:  d.Metrics,
		logger:   d.Logger.With("module", "http"),
	}

	r := chi.NewRouter()

	r.Use(requestIDMiddleware)
	r.Use(middleware.RealIP)
	r.Use(accessLogMiddleware(h.logger, h.metrics))
	r.Use(middleware.Recoverer)

	r.Get("/healthz", h.healthz)
	r.Handle("/metrics", promhttp.HandlerFor(d.Metrics.Registry, promhttp.HandlerOpts{}))

	r.Post("/register", h.register)
	r.Post("/login", h.login)

	r.Group(func(r chi.Router) {
		r.Use(authMiddleware(d.Accounts, h.logger))

		r.Post("/receipts", h.createReceipt)
		r.Get("/receipts", h.listReceipts)
		r.Get("/receipts/{id}", h.getReceipt)

		r.Get("/expenses", h.expenseSummary)
		r.Get("/charts/expenses", h.expenseChart)
	})

	return r
}

type handlers struct {
	accounts AccountService
	receipts ReceiptService
	expenses ExpenseService
	db       Pinger
	metrics  *metrics.Metrics
	logger   logging.Logger
}
