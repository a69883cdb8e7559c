package config

import (
	"fmt"

	"github.com/robfig/cron/v3"
)

// Validate checks the configuration for errors. It returns the first
// problem found rather than collecting all of them.
func Validate(cfg *Config) error {
	if err := validateAdmin(&cfg.Admin); err != nil {
		return err
	}
	if err := validateLogging(&cfg.Logging); err != nil {
		return err
	}
	if err := validateLedger(&cfg.Ledger); err != nil {
		return err
	}
	if err := validateBudget(&cfg.Budget); err != nil {
		return err
	}
	if err := validateRateLimits(cfg.RateLimits); err != nil {
		return err
	}
	if err := validateRetry(&cfg.Retry); err != nil {
		return err
	}
	if err := validateCosts(&cfg.Costs); err != nil {
		return err
	}
	return nil
}

func validateAdmin(cfg *AdminConfig) error {
	if cfg.ListenAddress == "" {
		return fmt.Errorf("admin.listen_address cannot be empty")
	}
	if cfg.ReadTimeout <= 0 {
		return fmt.Errorf("admin.read_timeout must be positive, got %v", cfg.ReadTimeout)
	}
	if cfg.WriteTimeout <= 0 {
		return fmt.Errorf("admin.write_timeout must be positive, got %v", cfg.WriteTimeout)
	}
	if cfg.ShutdownTimeout <= 0 {
		return fmt.Errorf("admin.shutdown_timeout must be positive, got %v", cfg.ShutdownTimeout)
	}
	return nil
}

func validateLogging(cfg *LoggingConfig) error {
	switch cfg.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be one of debug, info, warn, error, got %q", cfg.Level)
	}
	switch cfg.Format {
	case "json", "text":
	default:
		return fmt.Errorf("logging.format must be json or text, got %q", cfg.Format)
	}
	return nil
}

func validateLedger(cfg *LedgerConfig) error {
	switch cfg.Backend {
	case "memory":
	case "sqlite":
		if cfg.SQLitePath == "" {
			return fmt.Errorf("ledger.sqlite_path cannot be empty for the sqlite backend")
		}
		if cfg.SQLiteBusyTimeout <= 0 {
			return fmt.Errorf("ledger.sqlite_busy_timeout must be positive, got %v", cfg.SQLiteBusyTimeout)
		}
	default:
		return fmt.Errorf("ledger.backend must be memory or sqlite, got %q", cfg.Backend)
	}
	return nil
}

func validateBudget(cfg *BudgetConfig) error {
	if cfg.SoftLimitUnits < 0 {
		return fmt.Errorf("budget.soft_limit_units cannot be negative, got %d", cfg.SoftLimitUnits)
	}
	if cfg.HardLimitUnits < 0 {
		return fmt.Errorf("budget.hard_limit_units cannot be negative, got %d", cfg.HardLimitUnits)
	}
	if cfg.SoftLimitUnits > 0 && cfg.HardLimitUnits > 0 && cfg.HardLimitUnits < cfg.SoftLimitUnits {
		return fmt.Errorf("budget.hard_limit_units (%d) cannot be below budget.soft_limit_units (%d)",
			cfg.HardLimitUnits, cfg.SoftLimitUnits)
	}
	if cfg.ReportSchedule != "" {
		if _, err := cron.ParseStandard(cfg.ReportSchedule); err != nil {
			return fmt.Errorf("budget.report_schedule is not a valid cron expression: %w", err)
		}
	}
	return nil
}

func validateRateLimits(limits map[string]RateLimitConfig) error {
	for category, rl := range limits {
		if category == "" {
			return fmt.Errorf("rate_limits contains an empty category name")
		}
		if rl.Capacity <= 0 {
			return fmt.Errorf("rate_limits[%s].capacity must be positive, got %d", category, rl.Capacity)
		}
		if rl.RefillRatePerMs < 0 {
			return fmt.Errorf("rate_limits[%s].refill_rate_per_ms cannot be negative, got %v", category, rl.RefillRatePerMs)
		}
	}
	return nil
}

func validateRetry(cfg *RetryConfig) error {
	if cfg.MaxAttempts < 1 {
		return fmt.Errorf("retry.max_attempts must be at least 1, got %d", cfg.MaxAttempts)
	}
	if cfg.BaseDelay < 0 {
		return fmt.Errorf("retry.base_delay cannot be negative, got %v", cfg.BaseDelay)
	}
	if cfg.RateLimitMultiplier < 1 {
		return fmt.Errorf("retry.rate_limit_multiplier must be at least 1, got %v", cfg.RateLimitMultiplier)
	}
	return nil
}

func validateCosts(cfg *CostsConfig) error {
	for service, units := range cfg.EstimateUnits {
		if service == "" {
			return fmt.Errorf("costs.estimate_units contains an empty service name")
		}
		if units < 0 {
			return fmt.Errorf("costs.estimate_units[%s] cannot be negative, got %d", service, units)
		}
	}
	return nil
}
