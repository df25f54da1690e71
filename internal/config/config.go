package config

import (
	"fmt"
	"time"

	pkgconfig "github.com/tadarrab/storefront/pkg/config"
)

// Storage backends for the snapshot store.
const (
	StoreFile  = "file"
	StoreRedis = "redis"
)

// Config holds all configuration for the storefront state service.
type Config struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`

	// HTTP server
	HTTPPort        int           `env:"HTTP_PORT" envDefault:"8080"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`

	// Marketplace backend
	MarketplaceURL     string        `env:"MARKETPLACE_API_URL" envDefault:"http://localhost:4000"`
	MarketplaceTimeout time.Duration `env:"MARKETPLACE_TIMEOUT" envDefault:"30s"`

	// Snapshot store
	StateStore string `env:"STATE_STORE" envDefault:"file"`
	StateDir   string `env:"STATE_DIR" envDefault:"./data"`

	// Redis (used when STATE_STORE=redis)
	RedisAddr string        `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPass string        `env:"REDIS_PASSWORD" envDefault:""`
	RedisDB   int           `env:"REDIS_DB" envDefault:"0"`
	StateTTL  time.Duration `env:"STATE_TTL" envDefault:"720h"`

	// Session token lifetime (default: 7 days)
	TokenTTL time.Duration `env:"TOKEN_TTL" envDefault:"168h"`

	// Startup hydration
	HydrationGrace time.Duration `env:"HYDRATION_GRACE" envDefault:"100ms"`

	// Cart defaults
	DefaultCurrency string `env:"DEFAULT_CURRENCY" envDefault:"SAR"`

	// Tracing
	TracingEnabled  bool    `env:"TRACING_ENABLED" envDefault:"false"`
	OTLPEndpoint    string  `env:"OTLP_ENDPOINT" envDefault:"localhost:4318"`
	TraceSampleRate float64 `env:"TRACE_SAMPLE_RATE" envDefault:"1.0"`
}

// Load reads configuration from environment variables. Invariants beyond
// the `env` tags are enforced by Validate via the loader.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := pkgconfig.Load(cfg); err != nil {
		return nil, fmt.Errorf("load storefront config: %w", err)
	}
	return cfg, nil
}

// Validate checks configuration invariants.
func (c *Config) Validate() error {
	if c.HTTPPort < 1 || c.HTTPPort > 65535 {
		return fmt.Errorf("invalid HTTP port: %d", c.HTTPPort)
	}
	if c.StateStore != StoreFile && c.StateStore != StoreRedis {
		return fmt.Errorf("invalid state store %q: must be %q or %q", c.StateStore, StoreFile, StoreRedis)
	}
	if c.MarketplaceURL == "" {
		return fmt.Errorf("marketplace API URL is required")
	}
	if c.TokenTTL <= 0 {
		return fmt.Errorf("token TTL must be positive")
	}
	return nil
}
