package retry

import "fmt"

// FatalError wraps a provider failure classified as fatal.
// The operation was invoked exactly once for the attempt that failed;
// no retries were made and no delay was applied.
type FatalError struct {
	// Err is the provider error that was classified as fatal.
	Err error
}

// Error implements the error interface.
func (e *FatalError) Error() string {
	return fmt.Sprintf("fatal provider error, not retried: %v", e.Err)
}

// Unwrap returns the underlying error for error chain support.
func (e *FatalError) Unwrap() error {
	return e.Err
}

// RateLimitExhaustedError means the provider signaled rate limiting
// through every allotted attempt.
type RateLimitExhaustedError struct {
	// Attempts is the number of times the operation was invoked.
	Attempts int

	// Err is the last observed provider error.
	Err error
}

// Error implements the error interface.
func (e *RateLimitExhaustedError) Error() string {
	return fmt.Sprintf("provider rate limited through %d attempts: %v", e.Attempts, e.Err)
}

// Unwrap returns the underlying error for error chain support.
func (e *RateLimitExhaustedError) Unwrap() error {
	return e.Err
}

// TransientExhaustedError means a retryable failure persisted through
// every allotted attempt.
type TransientExhaustedError struct {
	// Attempts is the number of times the operation was invoked.
	Attempts int

	// Err is the last observed provider error.
	Err error
}

// Error implements the error interface.
func (e *TransientExhaustedError) Error() string {
	return fmt.Sprintf("transient failure persisted through %d attempts: %v", e.Attempts, e.Err)
}

// Unwrap returns the underlying error for error chain support.
func (e *TransientExhaustedError) Unwrap() error {
	return e.Err
}
