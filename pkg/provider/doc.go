// Package provider defines the adapter boundary between the governance
// layer and the external AI provider.
//
// # Overview
//
// The governance layer never inspects provider-specific error shapes.
// Instead, the adapter that performs the actual provider call maps
// transport-level failures (HTTP status codes, network errors) into the
// typed errors defined here, and Classify reduces those types to a
// closed three-way classification:
//
//   - ClassFatal: authentication/authorization/malformed-request errors.
//     Never retried.
//   - ClassRateLimited: the provider explicitly asked for more time
//     (HTTP 429). Retried with extended backoff.
//   - ClassTransient: network errors, timeouts, 5xx responses. Retried
//     with standard backoff.
//
// # Usage
//
//	resp, err := callProvider(ctx, req)
//	if err != nil {
//	    err = provider.FromStatusCode("openai", statusCode, body, retryAfter)
//	}
//
//	switch provider.Classify(err) {
//	case provider.ClassFatal:
//	    // Surface immediately
//	case provider.ClassRateLimited:
//	    // Back off longer
//	case provider.ClassTransient:
//	    // Back off, retry
//	}
package provider
