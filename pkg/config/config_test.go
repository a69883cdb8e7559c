package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}
	return path
}

const validConfig = `
admin:
  listen_address: "127.0.0.1:9191"

logging:
  level: debug
  format: text

ledger:
  backend: sqlite
  sqlite_path: /tmp/test-ledger.db

budget:
  soft_limit_units: 50000
  hard_limit_units: 100000
  report_schedule: "0 8 * * *"

rate_limits:
  vision:
    capacity: 10
    refill_rate_per_ms: 0.01

retry:
  max_attempts: 5
  base_delay: 100ms
  rate_limit_multiplier: 2

costs:
  estimate_units:
    vision.proof-verification: 12
`

func TestLoadConfig_Valid(t *testing.T) {
	path := writeConfigFile(t, validConfig)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.Admin.ListenAddress != "127.0.0.1:9191" {
		t.Errorf("ListenAddress = %q", cfg.Admin.ListenAddress)
	}
	if cfg.Logging.Level != "debug" || cfg.Logging.Format != "text" {
		t.Errorf("logging = %q/%q", cfg.Logging.Level, cfg.Logging.Format)
	}
	if cfg.Budget.SoftLimitUnits != 50000 || cfg.Budget.HardLimitUnits != 100000 {
		t.Errorf("caps = %d/%d", cfg.Budget.SoftLimitUnits, cfg.Budget.HardLimitUnits)
	}
	if cfg.RateLimits["vision"].Capacity != 10 {
		t.Errorf("vision capacity = %d", cfg.RateLimits["vision"].Capacity)
	}
	if cfg.Retry.MaxAttempts != 5 || cfg.Retry.BaseDelay != 100*time.Millisecond {
		t.Errorf("retry = %+v", cfg.Retry)
	}
	if cfg.Costs.EstimateUnits["vision.proof-verification"] != 12 {
		t.Errorf("estimate = %d", cfg.Costs.EstimateUnits["vision.proof-verification"])
	}
}

func TestLoadConfig_DefaultsFillGaps(t *testing.T) {
	path := writeConfigFile(t, "ledger:\n  backend: memory\n")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.Admin.ListenAddress != DefaultAdminListenAddress {
		t.Errorf("ListenAddress = %q, expected default", cfg.Admin.ListenAddress)
	}
	if cfg.Logging.Level != DefaultLogLevel || cfg.Logging.Format != DefaultLogFormat {
		t.Errorf("logging defaults not applied: %q/%q", cfg.Logging.Level, cfg.Logging.Format)
	}
	if cfg.Retry.MaxAttempts != DefaultRetryMaxAttempts {
		t.Errorf("MaxAttempts = %d, expected default %d", cfg.Retry.MaxAttempts, DefaultRetryMaxAttempts)
	}
	if cfg.Retry.BaseDelay != DefaultRetryBaseDelay {
		t.Errorf("BaseDelay = %v, expected default %v", cfg.Retry.BaseDelay, DefaultRetryBaseDelay)
	}
	// Zero caps stay zero: no cap is in force until an operator sets one
	if cfg.Budget.SoftLimitUnits != 0 || cfg.Budget.HardLimitUnits != 0 {
		t.Errorf("caps defaulted to %d/%d, expected 0/0", cfg.Budget.SoftLimitUnits, cfg.Budget.HardLimitUnits)
	}
}

func TestLoadConfig_MissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("LoadConfig succeeded for a missing file")
	}
}

func TestLoadConfig_MalformedYAML(t *testing.T) {
	path := writeConfigFile(t, "admin: [not a mapping")
	if _, err := LoadConfig(path); err == nil {
		t.Fatal("LoadConfig accepted malformed YAML")
	}
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	path := writeConfigFile(t, validConfig)

	t.Setenv("AIGOVERNOR_BUDGET_SOFT_LIMIT_UNITS", "70000")
	t.Setenv("AIGOVERNOR_BUDGET_HARD_LIMIT_UNITS", "140000")
	t.Setenv("AIGOVERNOR_LOGGING_LEVEL", "warn")
	t.Setenv("AIGOVERNOR_LEDGER_BACKEND", "memory")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.Budget.SoftLimitUnits != 70000 || cfg.Budget.HardLimitUnits != 140000 {
		t.Errorf("caps = %d/%d, env overrides not applied", cfg.Budget.SoftLimitUnits, cfg.Budget.HardLimitUnits)
	}
	if cfg.Logging.Level != "warn" {
		t.Errorf("Level = %q, env override not applied", cfg.Logging.Level)
	}
	if cfg.Ledger.Backend != "memory" {
		t.Errorf("Backend = %q, env override not applied", cfg.Ledger.Backend)
	}
}

func TestValidate_CapOrdering(t *testing.T) {
	path := writeConfigFile(t, `
budget:
  soft_limit_units: 1000
  hard_limit_units: 500
`)
	if _, err := LoadConfig(path); err == nil {
		t.Fatal("LoadConfig accepted a hard cap below the soft cap")
	}
}

func TestValidate_RateLimits(t *testing.T) {
	path := writeConfigFile(t, `
rate_limits:
  vision:
    capacity: 0
    refill_rate_per_ms: 0.01
`)
	if _, err := LoadConfig(path); err == nil {
		t.Fatal("LoadConfig accepted a zero-capacity bucket")
	}

	path = writeConfigFile(t, `
rate_limits:
  vision:
    capacity: 10
    refill_rate_per_ms: -1
`)
	if _, err := LoadConfig(path); err == nil {
		t.Fatal("LoadConfig accepted a negative refill rate")
	}
}

func TestValidate_LedgerBackend(t *testing.T) {
	path := writeConfigFile(t, "ledger:\n  backend: postgres\n")
	if _, err := LoadConfig(path); err == nil {
		t.Fatal("LoadConfig accepted an unknown ledger backend")
	}
}

func TestValidate_ReportSchedule(t *testing.T) {
	path := writeConfigFile(t, `
budget:
  report_schedule: "not cron"
`)
	if _, err := LoadConfig(path); err == nil {
		t.Fatal("LoadConfig accepted an invalid cron schedule")
	}
}

func TestValidate_Retry(t *testing.T) {
	path := writeConfigFile(t, `
retry:
  max_attempts: -1
`)
	if _, err := LoadConfig(path); err == nil {
		t.Fatal("LoadConfig accepted negative max_attempts")
	}

	path = writeConfigFile(t, `
retry:
  rate_limit_multiplier: 0.5
`)
	if _, err := LoadConfig(path); err == nil {
		t.Fatal("LoadConfig accepted a rate limit multiplier below 1")
	}
}

func TestValidate_NegativeCostEstimate(t *testing.T) {
	path := writeConfigFile(t, `
costs:
  estimate_units:
    vision.proof-verification: -5
`)
	if _, err := LoadConfig(path); err == nil {
		t.Fatal("LoadConfig accepted a negative cost estimate")
	}
}

func TestValidate_LogLevel(t *testing.T) {
	path := writeConfigFile(t, "logging:\n  level: loud\n")
	if _, err := LoadConfig(path); err == nil {
		t.Fatal("LoadConfig accepted an unknown log level")
	}
}
