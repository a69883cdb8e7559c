package provider

import (
	"errors"
	"net/http"
	"time"
)

// Class is the closed failure classification consumed by the retry
// executor. Classification happens once, here, at the adapter boundary.
type Class string

const (
	// ClassFatal means the call will never succeed as issued and must
	// not be retried (authentication, authorization, malformed request).
	ClassFatal Class = "fatal"

	// ClassRateLimited means the provider signaled a rate-limit
	// rejection and retries should use extended backoff.
	ClassRateLimited Class = "rate_limited"

	// ClassTransient means the failure is likely temporary (network
	// error, timeout, server error) and standard retry applies.
	ClassTransient Class = "transient"
)

// Classify reduces a provider error to its retry classification.
//
// Unknown error types classify as transient: an error the adapter did
// not recognize is more likely a hiccup than a permanent rejection, and
// the attempt cap bounds the damage of guessing wrong.
func Classify(err error) Class {
	var authErr *AuthError
	if errors.As(err, &authErr) {
		return ClassFatal
	}

	var badReqErr *BadRequestError
	if errors.As(err, &badReqErr) {
		return ClassFatal
	}

	var rateLimitErr *RateLimitError
	if errors.As(err, &rateLimitErr) {
		return ClassRateLimited
	}

	var provErr *Error
	if errors.As(err, &provErr) {
		return classifyStatus(provErr.StatusCode)
	}

	return ClassTransient
}

// classifyStatus maps an HTTP status code to a classification for
// generic provider errors that carry only a status.
func classifyStatus(status int) Class {
	switch {
	case status == http.StatusUnauthorized, status == http.StatusForbidden, status == http.StatusBadRequest:
		return ClassFatal
	case status == http.StatusTooManyRequests:
		return ClassRateLimited
	default:
		return ClassTransient
	}
}

// FromStatusCode maps a non-2xx provider response to a typed error.
// This is the single place transport status codes become governance
// errors; callers pass the parsed Retry-After duration if present.
func FromStatusCode(providerName string, status int, message string, retryAfter time.Duration) error {
	switch status {
	case http.StatusUnauthorized, http.StatusForbidden:
		return &AuthError{
			Provider: providerName,
			Message:  message,
		}

	case http.StatusBadRequest:
		return &BadRequestError{
			Provider: providerName,
			Message:  message,
		}

	case http.StatusTooManyRequests:
		return &RateLimitError{
			Provider:   providerName,
			RetryAfter: retryAfter,
			Message:    message,
		}

	default:
		return &Error{
			Provider:   providerName,
			StatusCode: status,
			Message:    message,
		}
	}
}
