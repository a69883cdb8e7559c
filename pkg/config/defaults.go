package config

import "time"

// Default values for configuration fields.
const (
	// Admin defaults
	DefaultAdminListenAddress   = "127.0.0.1:9090"
	DefaultAdminReadTimeout     = 10 * time.Second
	DefaultAdminWriteTimeout    = 10 * time.Second
	DefaultAdminShutdownTimeout = 10 * time.Second

	// Logging defaults
	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"

	// Ledger defaults
	DefaultLedgerBackend     = "sqlite"
	DefaultLedgerSQLitePath  = "data/ledger.db"
	DefaultLedgerBusyTimeout = 5 * time.Second

	// Budget defaults
	DefaultReportSchedule = "0 * * * *"

	// Retry defaults
	DefaultRetryMaxAttempts         = 3
	DefaultRetryBaseDelay           = 250 * time.Millisecond
	DefaultRetryRateLimitMultiplier = 3.0
)

// ApplyDefaults fills in default values for unset configuration fields.
// Zero budget caps and an empty rate limit map are left alone: caps are
// deployment decisions with no sensible default, and an unlisted
// category is deliberately unlimited.
func ApplyDefaults(cfg *Config) {
	if cfg.Admin.ListenAddress == "" {
		cfg.Admin.ListenAddress = DefaultAdminListenAddress
	}
	if cfg.Admin.ReadTimeout == 0 {
		cfg.Admin.ReadTimeout = DefaultAdminReadTimeout
	}
	if cfg.Admin.WriteTimeout == 0 {
		cfg.Admin.WriteTimeout = DefaultAdminWriteTimeout
	}
	if cfg.Admin.ShutdownTimeout == 0 {
		cfg.Admin.ShutdownTimeout = DefaultAdminShutdownTimeout
	}

	if cfg.Logging.Level == "" {
		cfg.Logging.Level = DefaultLogLevel
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = DefaultLogFormat
	}

	if cfg.Ledger.Backend == "" {
		cfg.Ledger.Backend = DefaultLedgerBackend
	}
	if cfg.Ledger.SQLitePath == "" {
		cfg.Ledger.SQLitePath = DefaultLedgerSQLitePath
	}
	if cfg.Ledger.SQLiteBusyTimeout == 0 {
		cfg.Ledger.SQLiteBusyTimeout = DefaultLedgerBusyTimeout
	}

	if cfg.Budget.ReportSchedule == "" {
		cfg.Budget.ReportSchedule = DefaultReportSchedule
	}

	if cfg.Retry.MaxAttempts == 0 {
		cfg.Retry.MaxAttempts = DefaultRetryMaxAttempts
	}
	if cfg.Retry.BaseDelay == 0 {
		cfg.Retry.BaseDelay = DefaultRetryBaseDelay
	}
	if cfg.Retry.RateLimitMultiplier == 0 {
		cfg.Retry.RateLimitMultiplier = DefaultRetryRateLimitMultiplier
	}
}
