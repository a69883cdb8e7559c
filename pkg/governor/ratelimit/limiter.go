package ratelimit

import (
	"context"
	"time"
)

// Config contains the token bucket parameters for one call category.
type Config struct {
	// Capacity is the maximum number of tokens in the bucket (burst size).
	Capacity int64

	// RefillRatePerMs is the number of tokens added per millisecond.
	// A rate of 0 means the bucket never refills: once drained, every
	// Acquire blocks until its context expires.
	RefillRatePerMs float64
}

// Limiter is the per-category admission gate.
//
// The category set is fixed at construction; categories without a
// configured bucket are admitted immediately. Each bucket has its own
// mutex, so waiting on one category never delays another.
type Limiter struct {
	buckets map[string]*tokenBucket
}

// NewLimiter creates a limiter with one bucket per configured category.
//
// Example:
//
//	limiter := NewLimiter(map[string]Config{
//	    "chat":      {Capacity: 10, RefillRatePerMs: 0.01},
//	    "embedding": {Capacity: 20, RefillRatePerMs: 0.05},
//	})
func NewLimiter(configs map[string]Config) *Limiter {
	buckets := make(map[string]*tokenBucket, len(configs))
	for category, cfg := range configs {
		buckets[category] = newTokenBucket(cfg.Capacity, cfg.RefillRatePerMs)
	}
	return &Limiter{buckets: buckets}
}

// Acquire blocks until a token is available for the category, then
// consumes it. Returns ctx.Err() if the context expires first; in that
// case no token has been consumed.
//
// Acquire never fails for any other reason. Categories with no
// configured bucket are admitted immediately.
func (l *Limiter) Acquire(ctx context.Context, category string) error {
	bucket, ok := l.buckets[category]
	if !ok {
		return nil // No rate limit configured for this category
	}

	for {
		admitted, wait := bucket.reserve()
		if admitted {
			return nil
		}

		if wait <= 0 {
			// Zero refill rate: nothing will ever accrue, so only the
			// caller's deadline can end the wait.
			<-ctx.Done()
			return ctx.Err()
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
			// Re-reserve: another caller may have taken the token that
			// accrued while we slept.
		}
	}
}

// Remaining returns the current token balance for a category, refilled
// to the present moment. Categories with no bucket report -1.
func (l *Limiter) Remaining(category string) float64 {
	bucket, ok := l.buckets[category]
	if !ok {
		return -1
	}
	return bucket.remaining()
}

// Categories returns the configured category names.
func (l *Limiter) Categories() []string {
	categories := make([]string, 0, len(l.buckets))
	for category := range l.buckets {
		categories = append(categories, category)
	}
	return categories
}
