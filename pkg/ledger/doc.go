// Package ledger provides the append-only cost ledger for AI spend.
//
// # Overview
//
// Every admitted AI call appends one Entry with its estimated cost in
// integer cost units (hundredths of a currency unit). Entries are never
// mutated or deleted by the governance layer; retention is an external
// concern.
//
// The ledger is the single source of truth for month-to-date spend.
// Admission decisions re-aggregate from the store on every check rather
// than trusting an in-memory running total, so spend survives process
// restarts and stays consistent across instances sharing a backend.
//
// # Backends
//
//   - Memory: fast in-process store, lost on exit (default, tests)
//   - SQLite: file-based persistence with WAL mode
//
// # Usage
//
//	store, err := ledger.NewSQLiteStore(ledger.SQLiteConfig{Path: "data/ledger.db"})
//
//	err = store.Append(ctx, &ledger.Entry{
//	    Service:   "proof-verification",
//	    CostUnits: 150,
//	})
//
//	spend, err := store.SumSince(ctx, monthStart)
//
// # Thread Safety
//
// All backends are thread-safe and support concurrent appends and sums
// from multiple goroutines.
package ledger
