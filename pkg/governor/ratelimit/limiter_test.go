package ratelimit

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestAcquire_WithinCapacity(t *testing.T) {
	limiter := NewLimiter(map[string]Config{
		"chat": {Capacity: 5, RefillRatePerMs: 0.001},
	})

	ctx := context.Background()

	// All 5 burst tokens should admit immediately
	for i := 0; i < 5; i++ {
		start := time.Now()
		if err := limiter.Acquire(ctx, "chat"); err != nil {
			t.Fatalf("Acquire %d failed: %v", i, err)
		}
		if elapsed := time.Since(start); elapsed > 50*time.Millisecond {
			t.Fatalf("Acquire %d blocked for %v, expected immediate admission", i, elapsed)
		}
	}
}

func TestAcquire_BlocksUntilRefill(t *testing.T) {
	// One token capacity, one token every 50ms
	limiter := NewLimiter(map[string]Config{
		"chat": {Capacity: 1, RefillRatePerMs: 0.02},
	})

	ctx := context.Background()

	if err := limiter.Acquire(ctx, "chat"); err != nil {
		t.Fatalf("first Acquire failed: %v", err)
	}

	// Second acquire must wait for a token to accrue
	start := time.Now()
	if err := limiter.Acquire(ctx, "chat"); err != nil {
		t.Fatalf("second Acquire failed: %v", err)
	}
	elapsed := time.Since(start)

	if elapsed < 30*time.Millisecond {
		t.Errorf("second Acquire returned after %v, expected a wait near 50ms", elapsed)
	}
}

func TestAcquire_ContextDeadline(t *testing.T) {
	// Slow refill: one token every 10 seconds
	limiter := NewLimiter(map[string]Config{
		"chat": {Capacity: 1, RefillRatePerMs: 0.0001},
	})

	if err := limiter.Acquire(context.Background(), "chat"); err != nil {
		t.Fatalf("first Acquire failed: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	err := limiter.Acquire(ctx, "chat")
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected context.DeadlineExceeded, got %v", err)
	}
}

func TestAcquire_ZeroRefillRate(t *testing.T) {
	limiter := NewLimiter(map[string]Config{
		"batch": {Capacity: 2, RefillRatePerMs: 0},
	})

	ctx := context.Background()

	// The initial burst drains normally
	for i := 0; i < 2; i++ {
		if err := limiter.Acquire(ctx, "batch"); err != nil {
			t.Fatalf("Acquire %d failed: %v", i, err)
		}
	}

	// With nothing refilling, only the deadline can end the wait
	deadlineCtx, cancel := context.WithTimeout(ctx, 50*time.Millisecond)
	defer cancel()

	start := time.Now()
	err := limiter.Acquire(deadlineCtx, "batch")
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected context.DeadlineExceeded, got %v", err)
	}
	if elapsed := time.Since(start); elapsed < 40*time.Millisecond {
		t.Errorf("Acquire returned after %v, expected to hold until the deadline", elapsed)
	}
}

func TestAcquire_UnknownCategory(t *testing.T) {
	limiter := NewLimiter(map[string]Config{
		"chat": {Capacity: 1, RefillRatePerMs: 0.001},
	})

	// Unlisted categories are admitted without limiting
	for i := 0; i < 100; i++ {
		if err := limiter.Acquire(context.Background(), "unlisted"); err != nil {
			t.Fatalf("Acquire for unlisted category failed: %v", err)
		}
	}
}

func TestAcquire_CategoryIndependence(t *testing.T) {
	limiter := NewLimiter(map[string]Config{
		"slow": {Capacity: 1, RefillRatePerMs: 0.0001},
		"fast": {Capacity: 10, RefillRatePerMs: 1},
	})

	ctx := context.Background()

	// Drain the slow category
	if err := limiter.Acquire(ctx, "slow"); err != nil {
		t.Fatalf("Acquire slow failed: %v", err)
	}

	// Park a waiter on the drained slow bucket
	waiterCtx, cancel := context.WithTimeout(ctx, 200*time.Millisecond)
	defer cancel()
	done := make(chan struct{})
	go func() {
		limiter.Acquire(waiterCtx, "slow")
		close(done)
	}()

	// The fast category must not be delayed by the slow waiter
	start := time.Now()
	for i := 0; i < 10; i++ {
		if err := limiter.Acquire(ctx, "fast"); err != nil {
			t.Fatalf("Acquire fast %d failed: %v", i, err)
		}
	}
	if elapsed := time.Since(start); elapsed > 100*time.Millisecond {
		t.Errorf("fast category stalled for %v while slow category waiter was parked", elapsed)
	}

	<-done
}

func TestAcquire_ConcurrentBurstBound(t *testing.T) {
	// 10 tokens, negligible refill: exactly 10 of 50 goroutines may pass
	limiter := NewLimiter(map[string]Config{
		"chat": {Capacity: 10, RefillRatePerMs: 0.000001},
	})

	var admitted atomic.Int64
	var wg sync.WaitGroup

	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
			defer cancel()
			if err := limiter.Acquire(ctx, "chat"); err == nil {
				admitted.Add(1)
			}
		}()
	}
	wg.Wait()

	if got := admitted.Load(); got != 10 {
		t.Errorf("admitted %d calls, expected exactly the burst capacity of 10", got)
	}
}

func TestAcquire_CancelledWaiterConsumesNothing(t *testing.T) {
	limiter := NewLimiter(map[string]Config{
		"chat": {Capacity: 1, RefillRatePerMs: 0.01},
	})

	ctx := context.Background()
	if err := limiter.Acquire(ctx, "chat"); err != nil {
		t.Fatalf("first Acquire failed: %v", err)
	}

	// A waiter that gives up must not have taken a token
	cancelCtx, cancel := context.WithCancel(ctx)
	errCh := make(chan error, 1)
	go func() {
		errCh <- limiter.Acquire(cancelCtx, "chat")
	}()
	time.Sleep(10 * time.Millisecond)
	cancel()

	if err := <-errCh; !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}

	// The token accruing over the next 100ms goes to the next caller
	nextCtx, nextCancel := context.WithTimeout(ctx, 500*time.Millisecond)
	defer nextCancel()
	if err := limiter.Acquire(nextCtx, "chat"); err != nil {
		t.Fatalf("Acquire after cancelled waiter failed: %v", err)
	}
}

func TestRemaining(t *testing.T) {
	limiter := NewLimiter(map[string]Config{
		"chat": {Capacity: 3, RefillRatePerMs: 0.000001},
	})

	if got := limiter.Remaining("chat"); got < 2.9 {
		t.Errorf("Remaining = %v before any Acquire, expected about 3", got)
	}

	if err := limiter.Acquire(context.Background(), "chat"); err != nil {
		t.Fatalf("Acquire failed: %v", err)
	}

	if got := limiter.Remaining("chat"); got < 1.9 || got > 2.1 {
		t.Errorf("Remaining = %v after one Acquire, expected about 2", got)
	}

	if got := limiter.Remaining("unlisted"); got != -1 {
		t.Errorf("Remaining for unlisted category = %v, expected -1", got)
	}
}

func TestCategories(t *testing.T) {
	limiter := NewLimiter(map[string]Config{
		"chat":   {Capacity: 1, RefillRatePerMs: 0.001},
		"vision": {Capacity: 1, RefillRatePerMs: 0.001},
	})

	categories := limiter.Categories()
	if len(categories) != 2 {
		t.Fatalf("Categories returned %d entries, expected 2", len(categories))
	}
}
