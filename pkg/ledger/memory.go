package ledger

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryStore implements Store using in-memory storage.
// This is the default backend for tests and single-shot tooling.
// All entries are lost when the process exits.
//
// MemoryStore is thread-safe and supports concurrent access using sync.RWMutex.
type MemoryStore struct {
	entries []*Entry
	closed  bool
	mu      sync.RWMutex
}

// NewMemoryStore creates a new in-memory ledger store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Append adds an entry to the in-memory ledger.
func (m *MemoryStore) Append(ctx context.Context, entry *Entry) error {
	if entry == nil {
		return fmt.Errorf("entry cannot be nil")
	}
	if entry.Service == "" {
		return fmt.Errorf("service cannot be empty")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrClosed
	}

	stored := *entry
	if stored.ID == "" {
		stored.ID = uuid.NewString()
	}
	if stored.RecordedAt.IsZero() {
		stored.RecordedAt = time.Now()
	}

	m.entries = append(m.entries, &stored)
	return nil
}

// SumSince returns the total cost units recorded at or after the given time.
func (m *MemoryStore) SumSince(ctx context.Context, since time.Time) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return 0, ErrClosed
	}

	var sum int64
	for _, e := range m.entries {
		if !e.RecordedAt.Before(since) {
			sum += e.CostUnits
		}
	}
	return sum, nil
}

// SumByServiceSince returns per-service totals recorded at or after the given time.
func (m *MemoryStore) SumByServiceSince(ctx context.Context, since time.Time) (map[string]int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return nil, ErrClosed
	}

	sums := make(map[string]int64)
	for _, e := range m.entries {
		if !e.RecordedAt.Before(since) {
			sums[e.Service] += e.CostUnits
		}
	}
	return sums, nil
}

// Len returns the number of entries in the store. Primarily for tests.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}

// Close marks the store as closed. Subsequent operations return ErrClosed.
func (m *MemoryStore) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}
