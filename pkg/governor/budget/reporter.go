package budget

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/robfig/cron/v3"
)

// Reporter periodically recomputes the budget status and logs it,
// refreshing the budget gauges as a side effect. It exists so
// operators get a month-to-date picture even when no dashboard is
// polling the status endpoint.
type Reporter struct {
	governor *Governor
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger
	running  bool
	mu       sync.Mutex
}

// NewReporter creates a reporter running on the given cron schedule.
//
// Common schedules:
//   - "0 * * * *"   - Hourly on the hour
//   - "0 8 * * *"   - Daily at 8 AM
//   - "0 8 1 * *"   - Monthly on the 1st at 8 AM
func NewReporter(governor *Governor, schedule string) *Reporter {
	return &Reporter{
		governor: governor,
		schedule: schedule,
		cron:     cron.New(),
		logger:   slog.Default().With("component", "governor.budget.reporter"),
	}
}

// Start begins scheduled reporting. An empty schedule disables the
// reporter. Stops automatically when ctx is cancelled.
func (r *Reporter) Start(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.schedule == "" {
		r.logger.Info("report schedule not configured, skipping reporter")
		return nil
	}

	if _, err := cron.ParseStandard(r.schedule); err != nil {
		return fmt.Errorf("invalid cron schedule %q: %w", r.schedule, err)
	}

	if _, err := r.cron.AddFunc(r.schedule, func() {
		r.runReport(ctx)
	}); err != nil {
		return fmt.Errorf("failed to schedule budget report: %w", err)
	}

	r.cron.Start()
	r.running = true

	r.logger.Info("budget reporter started", "schedule", r.schedule)

	go func() {
		<-ctx.Done()
		r.Stop()
	}()

	return nil
}

// Stop halts scheduled reporting.
func (r *Reporter) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.running {
		return
	}

	r.cron.Stop()
	r.running = false
	r.logger.Info("budget reporter stopped")
}

// runReport computes and logs one status snapshot.
func (r *Reporter) runReport(ctx context.Context) {
	status, err := r.governor.Status(ctx)
	if err != nil {
		r.logger.Error("budget report failed", "error", err)
		return
	}

	level := slog.LevelInfo
	if status.IsOverSoftLimit {
		level = slog.LevelWarn
	}

	r.logger.Log(ctx, level, "monthly budget report",
		"month_to_date_units", status.MonthToDateUnits,
		"soft_limit_units", status.SoftLimitUnits,
		"hard_limit_units", status.HardLimitUnits,
		"percent_used", fmt.Sprintf("%.1f", status.PercentUsed),
		"near_limit", status.IsNearLimit,
		"over_soft_limit", status.IsOverSoftLimit,
		"over_hard_limit", status.IsOverHardLimit,
	)

	for _, rec := range status.Recommendations {
		r.logger.Warn("budget recommendation", "recommendation", rec)
	}
}
