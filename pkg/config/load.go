package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// LoadConfig loads configuration from a YAML file at the specified
// path. It applies default values, environment variable overrides, and
// validation, in that order.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read configuration file %q: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse configuration file %q: %w", path, err)
	}

	ApplyDefaults(&cfg)
	applyEnvOverrides(&cfg)

	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}

// applyEnvOverrides applies environment variable overrides to the
// configuration. Environment variables use the format
// AIGOVERNOR_SECTION_FIELD and always take precedence over file values.
func applyEnvOverrides(cfg *Config) {
	if val := os.Getenv("AIGOVERNOR_ADMIN_LISTEN_ADDRESS"); val != "" {
		cfg.Admin.ListenAddress = val
	}

	if val := os.Getenv("AIGOVERNOR_LOGGING_LEVEL"); val != "" {
		cfg.Logging.Level = val
	}
	if val := os.Getenv("AIGOVERNOR_LOGGING_FORMAT"); val != "" {
		cfg.Logging.Format = val
	}

	if val := os.Getenv("AIGOVERNOR_LEDGER_BACKEND"); val != "" {
		cfg.Ledger.Backend = val
	}
	if val := os.Getenv("AIGOVERNOR_LEDGER_SQLITE_PATH"); val != "" {
		cfg.Ledger.SQLitePath = val
	}

	if val := os.Getenv("AIGOVERNOR_BUDGET_SOFT_LIMIT_UNITS"); val != "" {
		if units, err := strconv.ParseInt(val, 10, 64); err == nil {
			cfg.Budget.SoftLimitUnits = units
		}
	}
	if val := os.Getenv("AIGOVERNOR_BUDGET_HARD_LIMIT_UNITS"); val != "" {
		if units, err := strconv.ParseInt(val, 10, 64); err == nil {
			cfg.Budget.HardLimitUnits = units
		}
	}

	if val := os.Getenv("AIGOVERNOR_RETRY_MAX_ATTEMPTS"); val != "" {
		if attempts, err := strconv.Atoi(val); err == nil {
			cfg.Retry.MaxAttempts = attempts
		}
	}
	if val := os.Getenv("AIGOVERNOR_RETRY_BASE_DELAY"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			cfg.Retry.BaseDelay = d
		}
	}
}
