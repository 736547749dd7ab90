package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/iho/opencap/internal/adapter/advisor"
	httpAdapter "github.com/iho/opencap/internal/adapter/http"
	"github.com/iho/opencap/internal/adapter/http/handler"
	"github.com/iho/opencap/internal/adapter/http/middleware"
	"github.com/iho/opencap/internal/adapter/repository/memory"
	redisRepo "github.com/iho/opencap/internal/adapter/repository/redis"
	"github.com/iho/opencap/internal/domain"
	"github.com/iho/opencap/internal/infrastructure/config"
	"github.com/iho/opencap/internal/infrastructure/logger"
	"github.com/iho/opencap/internal/infrastructure/metrics"
	"github.com/iho/opencap/internal/infrastructure/redis"
	"github.com/iho/opencap/internal/usecase"
)

// limiterIdle is how long a client may stay silent before its rate limiter
// is dropped.
const limiterIdle = 10 * time.Minute

func main() {
	// Optional .env for local development
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("server failed")
	}
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	registry := prometheus.NewRegistry()

	a, err := newApp(ctx, cfg, log, registry)
	if err != nil {
		return err
	}
	defer a.Close()

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      a.router,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	go a.sweepLimiters(ctx, limiterIdle)

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.HTTPPort).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("listen: %w", err)
		}
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	log.Info().Msg("server stopped")
	return nil
}

// app holds the wired dependency graph of the server.
type app struct {
	router         http.Handler
	summaryLimiter *middleware.RateLimiter
	redisClient    *goredis.Client
	log            zerolog.Logger
}

func newApp(ctx context.Context, cfg *config.Config, log zerolog.Logger, registry *prometheus.Registry) (*app, error) {
	defaultCurrency, err := domain.ParseCurrency(cfg.DefaultCurrency)
	if err != nil {
		return nil, fmt.Errorf("DEFAULT_CURRENCY: %w", err)
	}

	a := &app{log: log}

	// Redis is optional: without it summaries are not cached and
	// Idempotency-Key is ignored.
	var (
		summaryCache     usecase.SummaryCache
		idempotencyStore usecase.IdempotencyStore
		redisPinger      handler.Pinger
	)
	if cfg.RedisURL != "" {
		client, err := redis.NewClient(ctx, cfg.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		a.redisClient = client
		cache := redisRepo.NewSummaryCache(client)
		summaryCache = cache
		idempotencyStore = redisRepo.NewIdempotencyStore(client)
		redisPinger = cache
		log.Info().Msg("connected to redis")
	}

	var summaryAdvisor usecase.Advisor
	if cfg.GeminiAPIKey != "" {
		gemini, err := advisor.NewGemini(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			a.Close()
			return nil, fmt.Errorf("failed to create gemini client: %w", err)
		}
		retrier := advisor.NewRetrier(cfg.SummaryMaxRetries, log)
		summaryAdvisor = advisor.New(gemini, retrier, log).WithTimeout(cfg.SummaryTimeout)
		log.Info().Str("model", cfg.GeminiModel).Msg("narrative summary enabled")
	} else {
		log.Warn().Msg("GEMINI_API_KEY not set, narrative summary disabled")
	}

	recorder := metrics.New(registry)

	chainRepo := memory.NewChainRepository()
	idGen := memory.NewULIDGenerator()

	chainUC := usecase.NewChainUseCase(chainRepo, idGen, recorder, log)
	summaryUC := usecase.NewSummaryUseCase(chainRepo, summaryAdvisor, summaryCache, cfg.SummaryCacheTTL, recorder, log)

	if cfg.SummaryRateLimit > 0 {
		a.summaryLimiter = middleware.NewRateLimiter(cfg.SummaryRateLimit, cfg.SummaryRateBurst)
	}

	// HTTP middleware metrics live in the default registry.
	metricsHandler := promhttp.HandlerFor(
		prometheus.Gatherers{prometheus.DefaultGatherer, registry},
		promhttp.HandlerOpts{},
	)

	a.router = httpAdapter.NewRouter(httpAdapter.RouterConfig{
		ChainHandler:      handler.NewChainHandler(chainUC),
		CalcHandler:       handler.NewCalcHandler(),
		SummaryHandler:    handler.NewSummaryHandler(summaryUC, defaultCurrency),
		HealthHandler:     handler.NewHealthHandler(redisPinger),
		IdempotencyStore:  idempotencyStore,
		IdempotencyTTL:    cfg.IdempotencyTTL,
		SummaryLimiter:    a.summaryLimiter,
		MetricsHandler:    metricsHandler,
		TrustProxyHeaders: cfg.TrustProxyHeaders,
		Logger:            log,
	})

	return a, nil
}

// sweepLimiters periodically forgets idle summary clients until ctx ends.
func (a *app) sweepLimiters(ctx context.Context, idle time.Duration) {
	if a.summaryLimiter == nil {
		return
	}

	ticker := time.NewTicker(idle)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := a.summaryLimiter.CleanupLimiters(idle); n > 0 {
				a.log.Debug().Int("removed", n).Msg("idle rate limiters removed")
			}
		}
	}
}

func (a *app) Close() {
	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			a.log.Warn().Err(err).Msg("failed to close redis client")
		}
	}
}
