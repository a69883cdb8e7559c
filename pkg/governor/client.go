package governor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/weareasocialyazilim/aigovernor/pkg/governor/budget"
	"github.com/weareasocialyazilim/aigovernor/pkg/governor/ratelimit"
	"github.com/weareasocialyazilim/aigovernor/pkg/governor/retry"
	"github.com/weareasocialyazilim/aigovernor/pkg/telemetry/metrics"
)

// Config contains the components a Client composes. Limiter and Budget
// are required; the zero Retry policy falls back to retry.DefaultPolicy.
type Config struct {
	// Limiter is the per-category admission gate.
	Limiter *ratelimit.Limiter

	// Budget is the monthly spending governor.
	Budget *budget.Governor

	// Retry is the policy applied to every call's execution.
	Retry retry.Policy

	// Classifier reduces provider errors to retry classes.
	// Nil defaults to provider.Classify.
	Classifier retry.Classifier

	// Metrics receives call observations. Nil disables metrics.
	Metrics *metrics.Metrics
}

// Client is the governed front door for outbound AI calls.
type Client struct {
	limiter  *ratelimit.Limiter
	budget   *budget.Governor
	executor *retry.Executor
	metrics  *metrics.Metrics
	logger   *slog.Logger
}

// NewClient creates a governed client from its components.
func NewClient(cfg Config) (*Client, error) {
	if cfg.Limiter == nil {
		return nil, fmt.Errorf("limiter is required")
	}
	if cfg.Budget == nil {
		return nil, fmt.Errorf("budget governor is required")
	}

	policy := cfg.Retry
	if policy.MaxAttempts == 0 {
		policy = retry.DefaultPolicy()
	}

	return &Client{
		limiter:  cfg.Limiter,
		budget:   cfg.Budget,
		executor: retry.NewExecutor(policy, cfg.Classifier),
		metrics:  cfg.Metrics,
		logger:   slog.Default().With("component", "governor.client"),
	}, nil
}

// Call executes one governed provider call.
//
// Sequence: budget admission check, rate limiter acquire, optimistic
// cost record, retried execution. The caller captures its result by
// closing over it in op.
//
// A caller-imposed deadline is honored at every suspension point: a
// call that times out while waiting on the rate limiter or during a
// retry backoff returns ctx.Err(). Cost is only recorded once the call
// has passed both admission gates, so a call that never reached the
// provider because its deadline elapsed in the rate limiter queue
// leaves no ledger entry.
func (c *Client) Call(ctx context.Context, category, service string, op retry.Operation) error {
	start := time.Now()

	// Budget admission first: a hard-capped call must not consume a
	// rate limiter token or touch the provider.
	verdict := c.budget.Check(ctx, service)
	if verdict.Decision == budget.DecisionReject {
		_, hard := c.budget.Limits()
		c.metrics.RecordCall(category, "budget_rejected", time.Since(start).Seconds())
		return &budget.ExceededError{
			Service:          service,
			MonthToDateUnits: verdict.MonthToDateUnits,
			HardLimitUnits:   hard,
		}
	}

	waitStart := time.Now()
	if err := c.limiter.Acquire(ctx, category); err != nil {
		c.metrics.RecordAdmission(category, "timeout")
		c.metrics.RecordCall(category, "rate_limit_timeout", time.Since(start).Seconds())
		return fmt.Errorf("deadline elapsed waiting for %q rate limit slot: %w", category, err)
	}
	c.metrics.RecordAdmission(category, "admitted")
	c.metrics.ObserveAcquireWait(category, time.Since(waitStart).Seconds())

	// Record cost at admission time, before the operation runs. This
	// overcounts failed calls slightly in exchange for never
	// undercounting: a provider that bills a request it later rejects
	// is the worst case to under-budget for.
	if err := c.budget.Track(ctx, service, map[string]string{"category": category}); err != nil {
		c.metrics.RecordCall(category, "config_error", time.Since(start).Seconds())
		return fmt.Errorf("cannot record cost for service %q: %w", service, err)
	}

	err := c.executor.Run(ctx, op)
	outcome := callOutcome(err)
	c.metrics.RecordRetryOutcome(outcome)
	c.metrics.RecordCall(category, outcome, time.Since(start).Seconds())

	if err != nil {
		c.logger.Debug("governed call failed",
			"category", category,
			"service", service,
			"outcome", outcome,
			"error", err,
		)
	}
	return err
}

// Status returns the current month-to-date budget picture.
func (c *Client) Status(ctx context.Context) (*budget.Status, error) {
	return c.budget.Status(ctx)
}

// callOutcome maps a terminal call error to its metrics label.
func callOutcome(err error) string {
	if err == nil {
		return "success"
	}

	var fatalErr *retry.FatalError
	if errors.As(err, &fatalErr) {
		return "fatal"
	}

	var rateLimitErr *retry.RateLimitExhaustedError
	if errors.As(err, &rateLimitErr) {
		return "rate_limit_exhausted"
	}

	var transientErr *retry.TransientExhaustedError
	if errors.As(err, &transientErr) {
		return "transient_exhausted"
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return "cancelled"
	}

	return "error"
}
