package provider

import (
	"errors"
	"fmt"
	"testing"
	"time"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want Class
	}{
		{
			name: "auth error is fatal",
			err:  &AuthError{Provider: "openai", Message: "invalid api key"},
			want: ClassFatal,
		},
		{
			name: "bad request is fatal",
			err:  &BadRequestError{Provider: "openai", Message: "unknown model"},
			want: ClassFatal,
		},
		{
			name: "rate limit error",
			err:  &RateLimitError{Provider: "anthropic", RetryAfter: time.Second},
			want: ClassRateLimited,
		},
		{
			name: "timeout is transient",
			err:  &TimeoutError{Provider: "openai", Timeout: 30 * time.Second},
			want: ClassTransient,
		},
		{
			name: "server error is transient",
			err:  &Error{Provider: "openai", StatusCode: 500, Message: "internal"},
			want: ClassTransient,
		},
		{
			name: "generic 401 is fatal",
			err:  &Error{Provider: "openai", StatusCode: 401, Message: "unauthorized"},
			want: ClassFatal,
		},
		{
			name: "generic 429 is rate limited",
			err:  &Error{Provider: "openai", StatusCode: 429, Message: "slow down"},
			want: ClassRateLimited,
		},
		{
			name: "unknown error is transient",
			err:  errors.New("connection reset"),
			want: ClassTransient,
		},
		{
			name: "wrapped auth error is fatal",
			err:  fmt.Errorf("call failed: %w", &AuthError{Provider: "openai"}),
			want: ClassFatal,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Classify(tc.err); got != tc.want {
				t.Errorf("Classify = %s, expected %s", got, tc.want)
			}
		})
	}
}

func TestFromStatusCode(t *testing.T) {
	if err := FromStatusCode("openai", 401, "bad key", 0); Classify(err) != ClassFatal {
		t.Error("401 did not map to a fatal error")
	}
	if err := FromStatusCode("openai", 403, "forbidden", 0); Classify(err) != ClassFatal {
		t.Error("403 did not map to a fatal error")
	}
	if err := FromStatusCode("openai", 400, "bad body", 0); Classify(err) != ClassFatal {
		t.Error("400 did not map to a fatal error")
	}

	err := FromStatusCode("anthropic", 429, "rate limited", 2*time.Second)
	var rateErr *RateLimitError
	if !errors.As(err, &rateErr) {
		t.Fatalf("429 mapped to %T, expected *RateLimitError", err)
	}
	if rateErr.RetryAfter != 2*time.Second {
		t.Errorf("RetryAfter = %v, expected 2s", rateErr.RetryAfter)
	}

	err = FromStatusCode("openai", 503, "overloaded", 0)
	var provErr *Error
	if !errors.As(err, &provErr) {
		t.Fatalf("503 mapped to %T, expected *Error", err)
	}
	if provErr.StatusCode != 503 {
		t.Errorf("StatusCode = %d, expected 503", provErr.StatusCode)
	}
}
