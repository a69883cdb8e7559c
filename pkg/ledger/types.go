package ledger

import (
	"context"
	"errors"
	"time"
)

// Entry is a single append-only cost ledger record.
type Entry struct {
	// ID is a unique identifier assigned when the entry is appended.
	ID string

	// Service is the identifier the cost estimate was looked up under
	// (e.g. "proof-verification", "chat", "moderation").
	Service string

	// CostUnits is the estimated cost in the smallest integer currency
	// unit (hundredths). Integer units avoid floating-point drift when
	// aggregating.
	CostUnits int64

	// RecordedAt is when the entry was appended. Monthly aggregation
	// partitions on this timestamp, not on query time.
	RecordedAt time.Time

	// Metadata is an opaque key/value bag carried with the entry.
	Metadata map[string]string
}

// Store defines the interface for cost ledger persistence.
// Implementations must be thread-safe and support concurrent access.
type Store interface {
	// Append adds an entry to the ledger. Entries are immutable once
	// appended. The store assigns ID and RecordedAt if unset.
	Append(ctx context.Context, entry *Entry) error

	// SumSince returns the total cost units of all entries with
	// RecordedAt at or after the given time.
	SumSince(ctx context.Context, since time.Time) (int64, error)

	// SumByServiceSince returns per-service cost unit totals for all
	// entries with RecordedAt at or after the given time.
	SumByServiceSince(ctx context.Context, since time.Time) (map[string]int64, error)

	// Close releases any resources held by the store.
	// The store should not be used after calling Close.
	Close() error
}

// ErrClosed is returned when an operation is attempted on a closed store.
var ErrClosed = errors.New("ledger store is closed")
