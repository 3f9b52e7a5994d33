package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/pineos/rewardledger/internal/adapter/http/handler"
	"github.com/pineos/rewardledger/internal/adapter/http/middleware"
	"github.com/pineos/rewardledger/internal/infrastructure/metrics"
	"github.com/pineos/rewardledger/internal/usecase"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	LedgerHandler         *handler.LedgerHandler
	RulesHandler          *handler.RulesHandler
	FlowHandler           *handler.FlowHandler
	ReconciliationHandler *handler.ReconciliationHandler
	HealthHandler         *handler.HealthHandler
	IdempotencyStore      usecase.IdempotencyStore
	Metrics               *metrics.Metrics
	Logger                zerolog.Logger
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewLoggingMiddleware(cfg.Logger).Wrap)
	r.Use(middleware.Recovery)
	if cfg.Metrics != nil {
		r.Use(middleware.NewMetricsMiddleware(cfg.Metrics).Wrap)
	}

	// Health and metrics endpoints
	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)
	r.Handle("/metrics", promhttp.Handler())

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		// Idempotency middleware for mutating requests
		if cfg.IdempotencyStore != nil {
			idempotencyMiddleware := middleware.NewIdempotencyMiddleware(cfg.IdempotencyStore)
			r.Use(idempotencyMiddleware.Wrap)
		}

		// Ledger
		r.Route("/transactions", func(r chi.Router) {
			r.Post("/credit", cfg.LedgerHandler.Credit)
			r.Post("/reverse", cfg.LedgerHandler.Reverse)
			r.Get("/by-reference/{referenceID}", cfg.LedgerHandler.GetTransaction)
		})

		// Accounts
		r.Route("/accounts", func(r chi.Router) {
			r.Get("/{id}/balance", cfg.LedgerHandler.GetBalance)
			r.Get("/{id}/entries", cfg.LedgerHandler.ListEntries)
		})

		// Rules
		r.Route("/rules", func(r chi.Router) {
			r.Post("/evaluate", cfg.RulesHandler.Evaluate)
			r.Post("/suggest", cfg.RulesHandler.Suggest)
		})

		// Flows
		r.Route("/flows", func(r chi.Router) {
			r.Put("/{id}", cfg.FlowHandler.Save)
			r.Get("/{id}", cfg.FlowHandler.Get)
			r.Post("/{id}/execute", cfg.FlowHandler.Execute)
		})

		// Ledger-wide checks
		r.Route("/ledger", func(r chi.Router) {
			r.Get("/consistency", cfg.ReconciliationHandler.CheckConsistency)
			r.Get("/reconciliation", cfg.ReconciliationHandler.Report)
		})
	})

	return r
}
