package ledger

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

func TestMemoryStore_AppendAndSum(t *testing.T) {
	store := NewMemoryStore()
	defer store.Close()

	ctx := context.Background()
	base := time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC)

	entries := []*Entry{
		{Service: "vision.proof-verification", CostUnits: 12, RecordedAt: base},
		{Service: "vision.proof-verification", CostUnits: 12, RecordedAt: base.Add(time.Hour)},
		{Service: "chat.recommendations", CostUnits: 600, RecordedAt: base.Add(2 * time.Hour)},
	}
	for i, e := range entries {
		if err := store.Append(ctx, e); err != nil {
			t.Fatalf("Append %d failed: %v", i, err)
		}
	}

	sum, err := store.SumSince(ctx, base)
	if err != nil {
		t.Fatalf("SumSince failed: %v", err)
	}
	if sum != 624 {
		t.Errorf("SumSince = %d, expected 624", sum)
	}

	// The boundary is inclusive: entries at exactly `since` count
	sum, err = store.SumSince(ctx, base.Add(time.Hour))
	if err != nil {
		t.Fatalf("SumSince failed: %v", err)
	}
	if sum != 612 {
		t.Errorf("SumSince from second entry = %d, expected 612", sum)
	}
}

func TestMemoryStore_SumByService(t *testing.T) {
	store := NewMemoryStore()
	defer store.Close()

	ctx := context.Background()
	now := time.Now()

	store.Append(ctx, &Entry{Service: "a", CostUnits: 5, RecordedAt: now})
	store.Append(ctx, &Entry{Service: "a", CostUnits: 7, RecordedAt: now})
	store.Append(ctx, &Entry{Service: "b", CostUnits: 3, RecordedAt: now})

	sums, err := store.SumByServiceSince(ctx, now.Add(-time.Minute))
	if err != nil {
		t.Fatalf("SumByServiceSince failed: %v", err)
	}
	if sums["a"] != 12 || sums["b"] != 3 {
		t.Errorf("sums = %v, expected a=12 b=3", sums)
	}
}

func TestMemoryStore_AssignsIDAndTimestamp(t *testing.T) {
	store := NewMemoryStore()
	defer store.Close()

	entry := &Entry{Service: "a", CostUnits: 1}
	if err := store.Append(context.Background(), entry); err != nil {
		t.Fatalf("Append failed: %v", err)
	}

	sum, err := store.SumSince(context.Background(), time.Now().Add(-time.Minute))
	if err != nil {
		t.Fatalf("SumSince failed: %v", err)
	}
	if sum != 1 {
		t.Errorf("entry with zero RecordedAt not stamped with the current time: sum = %d", sum)
	}
}

func TestMemoryStore_RejectsInvalidEntries(t *testing.T) {
	store := NewMemoryStore()
	defer store.Close()

	if err := store.Append(context.Background(), nil); err == nil {
		t.Error("Append accepted a nil entry")
	}
	if err := store.Append(context.Background(), &Entry{CostUnits: 1}); err == nil {
		t.Error("Append accepted an entry with no service")
	}
}

func TestMemoryStore_Closed(t *testing.T) {
	store := NewMemoryStore()
	store.Close()

	if err := store.Append(context.Background(), &Entry{Service: "a", CostUnits: 1}); !errors.Is(err, ErrClosed) {
		t.Errorf("Append after Close = %v, expected ErrClosed", err)
	}
	if _, err := store.SumSince(context.Background(), time.Time{}); !errors.Is(err, ErrClosed) {
		t.Errorf("SumSince after Close = %v, expected ErrClosed", err)
	}
}

func TestMemoryStore_ConcurrentAppend(t *testing.T) {
	store := NewMemoryStore()
	defer store.Close()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				store.Append(context.Background(), &Entry{Service: "a", CostUnits: 1})
			}
		}()
	}
	wg.Wait()

	if got := store.Len(); got != 1000 {
		t.Errorf("Len = %d after concurrent appends, expected 1000", got)
	}
}
