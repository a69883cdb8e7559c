// Package metrics provides Prometheus metrics for the governance layer.
//
// Metrics cover the three governance concerns end to end: rate limiter
// admissions and wait times, budget check decisions and recorded spend,
// and retry outcomes, plus a counter for fail-open degraded events.
//
// All recording methods tolerate a nil *Metrics receiver so callers can
// disable observability without guarding every call site.
package metrics
