// Package budget enforces the monthly AI spending caps.
//
// # Overview
//
// The Governor decides whether a call may proceed given the configured
// soft and hard monthly caps, and appends the call's estimated cost to
// the ledger once it is admitted. Spend is always re-aggregated from
// the ledger store for the current calendar month (process-local time,
// partitioned by when entries were recorded); there is no cached
// running total that could drift from the persisted sum across
// restarts or instances.
//
// The soft cap is informational only: crossing it logs a warning and
// the call proceeds. Only the hard cap blocks. If the ledger store is
// unreachable the Governor fails open, logging the degraded-mode event
// loudly: availability of the ledger must never become a single point
// of failure for the product.
//
// # Usage
//
//	gov := budget.NewGovernor(store, table, budget.Config{
//	    SoftLimitUnits: 20000, // 200.00 in currency units
//	    HardLimitUnits: 25000,
//	})
//
//	verdict, err := gov.CheckAndTrack(ctx, "proof-verification", nil)
//	if verdict.Decision == budget.DecisionReject {
//	    // Hard cap reached; do not call the provider.
//	}
//
// # Thread Safety
//
// The Governor is thread-safe. Cap values are mutex-guarded so the
// config watcher can adjust them at runtime.
package budget
