// Package retry executes a single provider operation with bounded,
// classified retries and exponential backoff.
//
// # Overview
//
// The executor is oblivious to cost and rate governance; the only thing
// it knows about a failure is its classification (fatal, rate-limited,
// transient), produced by the classifier injected at construction:
//
//   - Fatal failures abort immediately with no delay.
//   - Rate-limited failures back off base * 2^attempt * multiplier,
//     strictly longer than a transient failure at the same attempt,
//     because the provider explicitly asked for more time.
//   - Transient failures back off base * 2^attempt.
//
// Delays are deterministic (no jitter) so behavior is reproducible in
// tests; deployments fanning out many concurrent callers can layer
// jitter outside this contract.
//
// # Terminal errors
//
// Run returns FatalError when a fatal failure short-circuits, and
// RateLimitExhaustedError or TransientExhaustedError when MaxAttempts
// is spent, each wrapping the last observed provider error. Context
// cancellation during a backoff sleep returns ctx.Err() unwrapped.
package retry
