// Package governor composes rate limiting, budget governance, and
// classified retries into a single front door for outbound AI calls.
//
// # Overview
//
// Every outbound call to the AI provider enters through Client.Call,
// which sequences the three governance concerns so no caller has to
// reason about any of them:
//
//	budget check -> rate limiter acquire -> cost track -> retried execution
//
// A hard-cap rejection returns budget.ExceededError before the provider
// is ever touched. Cost is recorded optimistically once the call is
// admitted, before the operation runs: failed calls overcount slightly,
// but spend is never undercounted. A call cancelled while still waiting
// on the rate limiter records nothing and consumes no token.
//
// # Error taxonomy
//
// Terminal errors are typed and never swallowed; the caller decides the
// product-level fallback (e.g. queue a proof for manual review):
//
//   - *budget.ExceededError: hard cap reached, call never attempted
//   - *retry.FatalError: auth/malformed-request class, not retried
//   - *retry.RateLimitExhaustedError: provider rate limited through all attempts
//   - *retry.TransientExhaustedError: transient failure through all attempts
//   - ctx.Err(): deadline elapsed while waiting or backing off
//
// Ledger unavailability is handled locally (fail open, logged loudly)
// and never surfaces as a call failure.
//
// # Usage
//
//	client, err := governor.NewClient(governor.Config{
//	    Limiter: limiter,
//	    Budget:  budgetGov,
//	    Retry:   retry.DefaultPolicy(),
//	})
//
//	err := client.Call(ctx, "vision", "proof-verification", func(ctx context.Context) error {
//	    result, err = invokeProvider(ctx, req)
//	    return err
//	})
package governor
