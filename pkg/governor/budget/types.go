package budget

import (
	"fmt"
	"time"
)

// Decision is the admission verdict for a single call.
type Decision string

const (
	// DecisionProceed admits the call with spend comfortably in bounds.
	DecisionProceed Decision = "proceed"

	// DecisionWarn admits the call but the soft cap has been crossed.
	DecisionWarn Decision = "warn"

	// DecisionReject blocks the call: the hard cap is exhausted.
	DecisionReject Decision = "reject"
)

// Verdict is the result of an admission check.
type Verdict struct {
	// Decision is the admission decision.
	Decision Decision

	// Reason explains a warn or reject decision.
	Reason string

	// MonthToDateUnits is the spend observed when the check ran.
	MonthToDateUnits int64

	// Degraded indicates the ledger was unreachable and the check
	// failed open without a trustworthy spend figure.
	Degraded bool
}

// Status is the month-to-date budget picture, computed fresh from the
// ledger on every query. It is never cached: admission decisions and
// dashboards must both reflect the latest recorded spend.
type Status struct {
	// MonthToDateUnits is the total spend recorded this calendar month.
	MonthToDateUnits int64 `json:"month_to_date_units"`

	// RemainingUnits is the soft cap minus month-to-date spend,
	// clamped at zero.
	RemainingUnits int64 `json:"remaining_units"`

	// PercentUsed is month-to-date spend as a percentage of the soft cap.
	PercentUsed float64 `json:"percent_used"`

	// SoftLimitUnits and HardLimitUnits echo the caps in force when the
	// status was computed.
	SoftLimitUnits int64 `json:"soft_limit_units"`
	HardLimitUnits int64 `json:"hard_limit_units"`

	// IsNearLimit is true once more than 80% of the soft cap is used.
	IsNearLimit bool `json:"is_near_limit"`

	// IsOverSoftLimit is true once spend exceeds the soft cap.
	IsOverSoftLimit bool `json:"is_over_soft_limit"`

	// IsOverHardLimit is true once spend exceeds the hard cap.
	IsOverHardLimit bool `json:"is_over_hard_limit"`

	// ByService breaks month-to-date spend down per service.
	ByService map[string]int64 `json:"by_service,omitempty"`

	// Recommendations are advisory strings for operators (e.g. raise
	// the manual-review threshold once spending nears the cap).
	Recommendations []string `json:"recommendations,omitempty"`

	// ComputedAt is when this status was derived.
	ComputedAt time.Time `json:"computed_at"`
}

// ExceededError is returned to callers when the hard cap blocks a call.
// The call was never attempted and no ledger entry was appended.
type ExceededError struct {
	// Service is the service the rejected call was for.
	Service string

	// MonthToDateUnits is the spend observed at rejection time.
	MonthToDateUnits int64

	// HardLimitUnits is the hard cap in force.
	HardLimitUnits int64
}

// Error implements the error interface.
func (e *ExceededError) Error() string {
	return fmt.Sprintf("monthly AI budget exhausted for %q: spent %d of hard cap %d units",
		e.Service, e.MonthToDateUnits, e.HardLimitUnits)
}
