package config

import "time"

// Config is the root configuration for the governance layer.
type Config struct {
	// Admin configures the operational HTTP server (health, status,
	// metrics). It serves dashboards and alerting, never provider
	// traffic.
	Admin AdminConfig `yaml:"admin"`

	// Logging configures structured logging output.
	Logging LoggingConfig `yaml:"logging"`

	// Ledger configures the append-only cost ledger store.
	Ledger LedgerConfig `yaml:"ledger"`

	// Budget configures the monthly spending caps and reporting.
	Budget BudgetConfig `yaml:"budget"`

	// RateLimits maps call categories to token bucket parameters.
	// Categories not listed here are admitted without rate limiting.
	RateLimits map[string]RateLimitConfig `yaml:"rate_limits"`

	// Retry configures the retry policy applied to provider calls.
	Retry RetryConfig `yaml:"retry"`

	// Costs configures the per-service cost estimate table.
	Costs CostsConfig `yaml:"costs"`
}

// AdminConfig contains configuration for the admin HTTP server.
type AdminConfig struct {
	// ListenAddress is the address and port to listen on.
	// Default: "127.0.0.1:9090"
	ListenAddress string `yaml:"listen_address"`

	// ReadTimeout is the maximum duration for reading a request.
	// Default: 10s
	ReadTimeout time.Duration `yaml:"read_timeout"`

	// WriteTimeout is the maximum duration for writing a response.
	// Default: 10s
	WriteTimeout time.Duration `yaml:"write_timeout"`

	// ShutdownTimeout is the maximum duration for graceful shutdown.
	// Default: 10s
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// LoggingConfig contains configuration for structured logging.
type LoggingConfig struct {
	// Level is the minimum log level ("debug", "info", "warn", "error").
	// Default: "info"
	Level string `yaml:"level"`

	// Format is the output format ("json", "text").
	// Default: "json"
	Format string `yaml:"format"`

	// AddSource includes file:line in log records.
	// Default: false
	AddSource bool `yaml:"add_source"`
}

// LedgerConfig contains configuration for the cost ledger store.
type LedgerConfig struct {
	// Backend selects the store implementation ("memory", "sqlite").
	// Default: "sqlite"
	Backend string `yaml:"backend"`

	// SQLitePath is the database file path for the sqlite backend.
	// Default: "data/ledger.db"
	SQLitePath string `yaml:"sqlite_path"`

	// SQLiteBusyTimeout is how long to wait for database locks.
	// Default: 5s
	SQLiteBusyTimeout time.Duration `yaml:"sqlite_busy_timeout"`
}

// BudgetConfig contains configuration for monthly spending caps.
// Units are the smallest integer currency unit (hundredths).
type BudgetConfig struct {
	// SoftLimitUnits is the advisory monthly cap. Crossing it warns
	// but never blocks.
	SoftLimitUnits int64 `yaml:"soft_limit_units"`

	// HardLimitUnits is the blocking monthly cap.
	HardLimitUnits int64 `yaml:"hard_limit_units"`

	// ReportSchedule is a cron expression for periodic budget status
	// reports. Empty disables reporting.
	// Default: "0 * * * *" (hourly)
	ReportSchedule string `yaml:"report_schedule"`
}

// RateLimitConfig contains token bucket parameters for one category.
type RateLimitConfig struct {
	// Capacity is the maximum number of tokens (burst size).
	Capacity int64 `yaml:"capacity"`

	// RefillRatePerMs is the number of tokens added per millisecond.
	RefillRatePerMs float64 `yaml:"refill_rate_per_ms"`
}

// RetryConfig contains the retry policy for provider calls.
type RetryConfig struct {
	// MaxAttempts is the maximum number of invocations per call.
	// Default: 3
	MaxAttempts int `yaml:"max_attempts"`

	// BaseDelay is the backoff before the second attempt; each
	// subsequent delay doubles.
	// Default: 250ms
	BaseDelay time.Duration `yaml:"base_delay"`

	// RateLimitMultiplier is the extra backoff factor for
	// provider-signaled rate limit rejections.
	// Default: 3
	RateLimitMultiplier float64 `yaml:"rate_limit_multiplier"`
}

// CostsConfig contains the per-service cost estimate table.
type CostsConfig struct {
	// EstimateUnits maps service identifiers to estimated cost per
	// call in integer cost units.
	EstimateUnits map[string]int64 `yaml:"estimate_units"`
}
