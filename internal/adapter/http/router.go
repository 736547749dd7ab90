package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/iho/opencap/internal/adapter/http/handler"
	"github.com/iho/opencap/internal/adapter/http/middleware"
	"github.com/iho/opencap/internal/usecase"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	ChainHandler     *handler.ChainHandler
	CalcHandler      *handler.CalcHandler
	SummaryHandler   *handler.SummaryHandler
	HealthHandler    *handler.HealthHandler
	IdempotencyStore usecase.IdempotencyStore
	IdempotencyTTL   time.Duration
	// RateLimiter applies to every request; SummaryLimiter only to /summary.
	RateLimiter    *middleware.RateLimiter
	SummaryLimiter *middleware.RateLimiter
	MetricsHandler http.Handler
	// TrustProxyHeaders rewrites RemoteAddr from X-Forwarded-For and
	// X-Real-IP. Enable only behind a proxy that sets them.
	TrustProxyHeaders bool
	Logger            zerolog.Logger
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	if cfg.TrustProxyHeaders {
		r.Use(chimiddleware.RealIP)
	}
	r.Use(middleware.NewLoggingMiddleware(cfg.Logger).Wrap)
	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(middleware.Metrics)
	if cfg.RateLimiter != nil {
		r.Use(cfg.RateLimiter.Limit)
	}

	// Health endpoints
	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)
	if cfg.MetricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", cfg.MetricsHandler)
	}

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		// Idempotency middleware for mutating requests
		if cfg.IdempotencyStore != nil {
			idempotencyMiddleware := middleware.NewIdempotencyMiddleware(cfg.IdempotencyStore, cfg.IdempotencyTTL, cfg.Logger)
			r.Use(idempotencyMiddleware.Wrap)
		}

		// Round chain
		r.Route("/chain", func(r chi.Router) {
			r.Get("/", cfg.ChainHandler.Get)
			r.Post("/", cfg.ChainHandler.Start)
			r.Post("/rounds", cfg.ChainHandler.AddRound)
			r.Post("/rounds/preview", cfg.ChainHandler.Preview)
			r.Delete("/rounds/{id}", cfg.ChainHandler.Remove)
		})

		// Round form helpers
		r.Route("/calc", func(r chi.Router) {
			r.Post("/sync", cfg.CalcHandler.Sync)
			r.Get("/normalize", cfg.CalcHandler.Normalize)
		})

		summary := http.HandlerFunc(cfg.SummaryHandler.Get)
		if cfg.SummaryLimiter != nil {
			r.Method(http.MethodGet, "/summary", cfg.SummaryLimiter.Limit(summary))
		} else {
			r.Method(http.MethodGet, "/summary", summary)
		}
	})

	return r
}
