package cli

import (
	"errors"
	"strings"
	"testing"
)

func TestConfigError(t *testing.T) {
	err := NewConfigError("budget.hard_limit_units", "must be at least the soft cap")
	if !strings.Contains(err.Error(), "budget.hard_limit_units") {
		t.Errorf("ConfigError message missing field: %q", err.Error())
	}

	// Field is optional
	err = NewConfigError("", "failed to load config")
	if !strings.Contains(err.Error(), "failed to load config") {
		t.Errorf("ConfigError message = %q", err.Error())
	}
}

func TestCommandError(t *testing.T) {
	cause := errors.New("ledger unavailable")
	err := NewCommandError("status", cause)

	if !strings.Contains(err.Error(), "status") {
		t.Errorf("CommandError message missing command: %q", err.Error())
	}
	if !errors.Is(err, cause) {
		t.Error("CommandError does not unwrap to its cause")
	}
}
