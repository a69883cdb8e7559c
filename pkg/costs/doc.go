// Package costs provides the static per-service cost estimate table.
//
// Costs are estimated per call type from configuration, not measured
// from provider responses. Estimates are held in integer cost units
// (hundredths of a currency unit) so ledger aggregation never
// accumulates floating-point drift.
//
// The table is loaded at startup and immutable to callers; Replace
// exists only so the config watcher can swap in reloaded pricing.
package costs
