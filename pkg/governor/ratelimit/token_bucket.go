package ratelimit

import (
	"math"
	"sync"
	"time"
)

// tokenBucket holds the admission state for a single call category.
//
// The balance is a float so sub-token refill accrues between accesses;
// it never exceeds capacity and refill is computed lazily from elapsed
// time on every access.
type tokenBucket struct {
	capacity        float64 // Maximum tokens in bucket
	tokens          float64 // Current available tokens
	refillRatePerMs float64 // Tokens added per millisecond
	lastRefill      time.Time
	mu              sync.Mutex
}

// newTokenBucket creates a bucket starting at full capacity.
func newTokenBucket(capacity int64, refillRatePerMs float64) *tokenBucket {
	return &tokenBucket{
		capacity:        float64(capacity),
		tokens:          float64(capacity),
		refillRatePerMs: refillRatePerMs,
		lastRefill:      time.Now(),
	}
}

// reserve refills the bucket and tries to consume one token.
//
// Returns (true, 0) if a token was consumed. Otherwise returns the
// duration until one token will have accrued at the current refill
// rate; a zero refill rate returns (false, 0) and the caller decides
// how to wait.
func (tb *tokenBucket) reserve() (bool, time.Duration) {
	tb.mu.Lock()
	defer tb.mu.Unlock()

	tb.refillLocked(time.Now())

	if tb.tokens >= 1 {
		tb.tokens--
		return true, 0
	}

	if tb.refillRatePerMs <= 0 {
		return false, 0
	}

	waitMs := math.Ceil((1 - tb.tokens) / tb.refillRatePerMs)
	return false, time.Duration(waitMs) * time.Millisecond
}

// remaining returns the current token balance after a refill.
func (tb *tokenBucket) remaining() float64 {
	tb.mu.Lock()
	defer tb.mu.Unlock()

	tb.refillLocked(time.Now())
	return tb.tokens
}

// refillLocked adds tokens based on elapsed time since last refill,
// clamped to capacity. Caller must hold lock.
func (tb *tokenBucket) refillLocked(now time.Time) {
	elapsed := now.Sub(tb.lastRefill)
	if elapsed <= 0 {
		return
	}

	elapsedMs := float64(elapsed) / float64(time.Millisecond)
	tb.tokens += elapsedMs * tb.refillRatePerMs
	if tb.tokens > tb.capacity {
		tb.tokens = tb.capacity
	}
	tb.lastRefill = now
}
