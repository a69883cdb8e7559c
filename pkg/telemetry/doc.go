// Package telemetry provides observability for the governance layer.
//
// # Components
//
//   - logging: structured logging on log/slog
//   - metrics: Prometheus metrics for admissions, budget, retries, and
//     governed calls
//
// Components receive their logger via slog.Default and their metrics
// via an injected *metrics.Metrics; a nil metrics handle disables
// recording without branching at call sites.
package telemetry
