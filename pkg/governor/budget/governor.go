package budget

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/weareasocialyazilim/aigovernor/pkg/costs"
	"github.com/weareasocialyazilim/aigovernor/pkg/ledger"
	"github.com/weareasocialyazilim/aigovernor/pkg/telemetry/metrics"
)

// Config contains configuration for the budget governor.
type Config struct {
	// SoftLimitUnits is the advisory monthly cap in cost units.
	// Crossing it warns; it never blocks.
	SoftLimitUnits int64

	// HardLimitUnits is the blocking monthly cap in cost units.
	HardLimitUnits int64

	// Now overrides the clock. Nil means time.Now. Tests inject a
	// fixed clock to pin the month boundary.
	Now func() time.Time

	// Metrics receives budget observations. Nil disables metrics.
	Metrics *metrics.Metrics
}

// Governor enforces the monthly spending caps against the cost ledger.
type Governor struct {
	store ledger.Store
	table *costs.Table

	now     func() time.Time
	logger  *slog.Logger
	metrics *metrics.Metrics

	// caps are mutex-guarded for hot reload
	softLimitUnits int64
	hardLimitUnits int64
	mu             sync.RWMutex
}

// NewGovernor creates a budget governor backed by the given ledger
// store and cost estimate table.
func NewGovernor(store ledger.Store, table *costs.Table, cfg Config) *Governor {
	now := cfg.Now
	if now == nil {
		now = time.Now
	}

	return &Governor{
		store:          store,
		table:          table,
		now:            now,
		logger:         slog.Default().With("component", "governor.budget"),
		metrics:        cfg.Metrics,
		softLimitUnits: cfg.SoftLimitUnits,
		hardLimitUnits: cfg.HardLimitUnits,
	}
}

// SetLimits replaces the caps. Called by the config watcher on reload.
func (g *Governor) SetLimits(softUnits, hardUnits int64) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.softLimitUnits = softUnits
	g.hardLimitUnits = hardUnits
}

// Limits returns the caps currently in force.
func (g *Governor) Limits() (softUnits, hardUnits int64) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.softLimitUnits, g.hardLimitUnits
}

// Check returns the admission verdict for a call without recording any
// spend. Month-to-date spend is re-aggregated from the ledger on every
// call; nothing is cached.
//
// If the ledger store is unreachable, Check fails open with a proceed
// verdict and logs the degraded-mode event loudly. Ledger availability
// must never block all AI functionality.
func (g *Governor) Check(ctx context.Context, service string) Verdict {
	soft, hard := g.Limits()

	spend, err := g.store.SumSince(ctx, monthStartAt(g.now()))
	if err != nil {
		g.logger.Error("cost ledger unreachable, failing open",
			"service", service,
			"error", err,
		)
		g.metrics.RecordDegradedEvent()
		g.metrics.RecordBudgetCheck(service, string(DecisionProceed))
		return Verdict{
			Decision: DecisionProceed,
			Reason:   "ledger unreachable, admission degraded to fail-open",
			Degraded: true,
		}
	}

	// A zero cap means no cap is in force.
	if hard > 0 && spend > hard {
		g.metrics.RecordBudgetCheck(service, string(DecisionReject))
		return Verdict{
			Decision:         DecisionReject,
			Reason:           fmt.Sprintf("hard monthly cap exceeded: %d of %d units spent", spend, hard),
			MonthToDateUnits: spend,
		}
	}

	if soft > 0 && spend > soft {
		g.logger.Warn("soft monthly cap exceeded, admitting call",
			"service", service,
			"month_to_date_units", spend,
			"soft_limit_units", soft,
			"hard_limit_units", hard,
		)
		g.metrics.RecordBudgetCheck(service, string(DecisionWarn))
		return Verdict{
			Decision:         DecisionWarn,
			Reason:           fmt.Sprintf("soft monthly cap exceeded: %d of %d units spent", spend, soft),
			MonthToDateUnits: spend,
		}
	}

	g.metrics.RecordBudgetCheck(service, string(DecisionProceed))
	return Verdict{
		Decision:         DecisionProceed,
		MonthToDateUnits: spend,
	}
}

// Track appends the service's estimated cost to the ledger.
//
// An unknown service is a configuration error and is returned to the
// caller; admitting calls with no estimate would silently undercount
// spend. A store failure is logged as a degraded-mode event and
// otherwise ignored, matching the fail-open admission policy.
func (g *Governor) Track(ctx context.Context, service string, metadata map[string]string) error {
	units, err := g.table.Estimate(service)
	if err != nil {
		return err
	}

	entry := &ledger.Entry{
		Service:    service,
		CostUnits:  units,
		RecordedAt: g.now(),
		Metadata:   metadata,
	}
	if err := g.store.Append(ctx, entry); err != nil {
		g.logger.Error("failed to record cost, spend will undercount until ledger recovers",
			"service", service,
			"cost_units", units,
			"error", err,
		)
		g.metrics.RecordDegradedEvent()
		return nil
	}

	g.metrics.RecordSpend(service, units)
	return nil
}

// CheckAndTrack checks admission and, unless rejected, records the
// call's estimated cost. Rejected calls append nothing.
func (g *Governor) CheckAndTrack(ctx context.Context, service string, metadata map[string]string) (Verdict, error) {
	verdict := g.Check(ctx, service)
	if verdict.Decision == DecisionReject {
		return verdict, nil
	}

	if err := g.Track(ctx, service, metadata); err != nil {
		return verdict, err
	}
	return verdict, nil
}

// Status recomputes the month-to-date budget picture from the ledger.
// Used by dashboards and alerting; admission decisions do not read it.
func (g *Governor) Status(ctx context.Context) (*Status, error) {
	soft, hard := g.Limits()
	now := g.now()
	monthStart := monthStartAt(now)

	spend, err := g.store.SumSince(ctx, monthStart)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate month-to-date spend: %w", err)
	}

	byService, err := g.store.SumByServiceSince(ctx, monthStart)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate per-service spend: %w", err)
	}

	status := &Status{
		MonthToDateUnits: spend,
		SoftLimitUnits:   soft,
		HardLimitUnits:   hard,
		ByService:        byService,
		ComputedAt:       now,
	}

	if soft > 0 {
		status.PercentUsed = float64(spend) / float64(soft) * 100
	}
	if remaining := soft - spend; remaining > 0 {
		status.RemainingUnits = remaining
	}

	status.IsNearLimit = status.PercentUsed > 80
	status.IsOverSoftLimit = soft > 0 && spend > soft
	status.IsOverHardLimit = hard > 0 && spend > hard

	if status.IsNearLimit {
		status.Recommendations = append(status.Recommendations,
			"increase the manual-review threshold to reduce AI verification volume")
	}
	if status.IsOverSoftLimit {
		status.Recommendations = append(status.Recommendations,
			"switch to auto-approve for low-risk content until the month resets")
	}
	if status.IsOverHardLimit {
		status.Recommendations = append(status.Recommendations,
			"hard cap reached: AI calls are blocked until the month resets or the cap is raised")
	}

	g.metrics.SetBudgetUsage(status.PercentUsed, spend)

	return status, nil
}

// monthStartAt returns the start of the calendar month containing t,
// in t's location. Entries are partitioned by when they were recorded,
// not by when they are queried.
func monthStartAt(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}
