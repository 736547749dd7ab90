package config

import (
	"time"

	"github.com/caarlos0/env/v10"
)

// Config holds all application configuration.
type Config struct {
	// Redis (empty disables summary caching and idempotency)
	RedisURL string `env:"REDIS_URL" envDefault:""`

	// HTTP Server
	HTTPPort            string        `env:"HTTP_PORT"             envDefault:"8080"`
	HTTPReadTimeout     time.Duration `env:"HTTP_READ_TIMEOUT"     envDefault:"30s"`
	HTTPWriteTimeout    time.Duration `env:"HTTP_WRITE_TIMEOUT"    envDefault:"60s"`
	HTTPIdleTimeout     time.Duration `env:"HTTP_IDLE_TIMEOUT"     envDefault:"60s"`
	HTTPShutdownTimeout time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT" envDefault:"10s"`
	TrustProxyHeaders   bool          `env:"TRUST_PROXY_HEADERS"   envDefault:"false"`

	// Logging
	LogLevel  string `env:"LOG_LEVEL"  envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`

	// Idempotency
	IdempotencyTTL time.Duration `env:"IDEMPOTENCY_TTL" envDefault:"24h"`

	// Narrative summary (leave GEMINI_API_KEY empty to disable)
	GeminiAPIKey      string        `env:"GEMINI_API_KEY"      envDefault:""`
	GeminiModel       string        `env:"GEMINI_MODEL"        envDefault:"gemini-2.5-flash"`
	SummaryTimeout    time.Duration `env:"SUMMARY_TIMEOUT"     envDefault:"30s"`
	SummaryMaxRetries int           `env:"SUMMARY_MAX_RETRIES" envDefault:"3"`
	SummaryCacheTTL   time.Duration `env:"SUMMARY_CACHE_TTL"   envDefault:"1h"`
	SummaryRateLimit  float64       `env:"SUMMARY_RATE_LIMIT"  envDefault:"0.5"`
	SummaryRateBurst  int           `env:"SUMMARY_RATE_BURST"  envDefault:"3"`

	DefaultCurrency string `env:"DEFAULT_CURRENCY" envDefault:"USD"`
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	err := env.Parse(cfg)
	if err != nil {
		return nil, err
	}

	return cfg, nil
}
