package retry

import (
	"context"
	"log/slog"
	"math"
	"time"

	"github.com/weareasocialyazilim/aigovernor/pkg/provider"
)

// Policy is the immutable retry configuration for an executor.
type Policy struct {
	// MaxAttempts is the maximum number of times the operation is
	// invoked, including the first attempt. Must be >= 1.
	MaxAttempts int

	// BaseDelay is the backoff delay before the second attempt; each
	// subsequent delay doubles.
	BaseDelay time.Duration

	// RateLimitMultiplier is the extra backoff factor applied when the
	// provider itself signaled a rate-limit rejection. Must be > 1 for
	// rate-limited delays to exceed transient delays at the same
	// attempt index.
	RateLimitMultiplier float64
}

// DefaultPolicy returns the retry policy used when none is configured.
func DefaultPolicy() Policy {
	return Policy{
		MaxAttempts:         3,
		BaseDelay:           250 * time.Millisecond,
		RateLimitMultiplier: 3,
	}
}

// Operation is a single asynchronous provider invocation. Callers
// capture their result by closing over it.
type Operation func(ctx context.Context) error

// Classifier reduces an operation error to its retry classification.
// Produced at the provider-adapter boundary (provider.Classify); the
// executor never inspects provider-specific error shapes itself.
type Classifier func(error) provider.Class

// Executor runs operations under a retry policy.
type Executor struct {
	policy   Policy
	classify Classifier
	logger   *slog.Logger
}

// NewExecutor creates an executor with the given policy and classifier.
// A nil classifier defaults to provider.Classify.
func NewExecutor(policy Policy, classify Classifier) *Executor {
	if policy.MaxAttempts < 1 {
		policy.MaxAttempts = 1
	}
	if classify == nil {
		classify = provider.Classify
	}
	return &Executor{
		policy:   policy,
		classify: classify,
		logger:   slog.Default().With("component", "governor.retry"),
	}
}

// Run invokes the operation, retrying per the policy.
//
// The operation is invoked at most MaxAttempts times. A fatal
// classification aborts immediately with FatalError. Exhausting all
// attempts surfaces RateLimitExhaustedError or TransientExhaustedError
// depending on the last failure's classification. Cancellation during
// a backoff sleep returns ctx.Err(); an operation already in flight is
// never aborted mid-call, only the next attempt is skipped.
func (e *Executor) Run(ctx context.Context, op Operation) error {
	var lastErr error
	var lastClass provider.Class

	for attempt := 0; attempt < e.policy.MaxAttempts; attempt++ {
		err := op(ctx)
		if err == nil {
			return nil
		}

		lastErr = err
		lastClass = e.classify(err)

		if lastClass == provider.ClassFatal {
			return &FatalError{Err: err}
		}

		// Last attempt: no point computing or sleeping a delay.
		if attempt == e.policy.MaxAttempts-1 {
			break
		}

		delay := e.delayFor(attempt, lastClass)
		e.logger.Debug("operation failed, backing off",
			"attempt", attempt+1,
			"max_attempts", e.policy.MaxAttempts,
			"class", string(lastClass),
			"delay", delay,
		)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
	}

	if lastClass == provider.ClassRateLimited {
		return &RateLimitExhaustedError{
			Attempts: e.policy.MaxAttempts,
			Err:      lastErr,
		}
	}
	return &TransientExhaustedError{
		Attempts: e.policy.MaxAttempts,
		Err:      lastErr,
	}
}

// delayFor computes the deterministic backoff delay after the failure
// of the given 0-indexed attempt.
func (e *Executor) delayFor(attempt int, class provider.Class) time.Duration {
	delay := float64(e.policy.BaseDelay) * math.Pow(2, float64(attempt))
	if class == provider.ClassRateLimited {
		delay *= e.policy.RateLimitMultiplier
	}
	return time.Duration(delay)
}
