// Package ratelimit provides per-category token bucket admission gates
// for outbound AI calls.
//
// # Overview
//
// Each call category (e.g. "chat", "embedding", "moderation") gets an
// independently configured bucket: a capped pool of tokens replenished
// continuously at a fixed per-millisecond rate. Refill is lazy, computed
// on access from elapsed time, with no background timer.
//
// Acquire blocks until a token is available or the caller's context
// expires. Admission order is not strictly FIFO across concurrent
// callers (each caller independently polls and waits), but no caller is
// admitted while the bucket holds less than one token, so the long-run
// admitted rate never exceeds the refill rate.
//
// # Usage
//
//	limiter := ratelimit.NewLimiter(map[string]ratelimit.Config{
//	    "chat":       {Capacity: 10, RefillRatePerMs: 0.01}, // 10/sec avg
//	    "moderation": {Capacity: 5, RefillRatePerMs: 0.002},
//	})
//
//	if err := limiter.Acquire(ctx, "chat"); err != nil {
//	    return err // context expired while waiting
//	}
//
// # Thread Safety
//
// Buckets are thread-safe with one mutex per category, so exhausting
// one category never blocks acquires on another.
package ratelimit
