package apierror

import (
	"errors"
	"strings"
	"time"
)

// Transient wraps an error that is plausibly resolved by retrying the same
// request unchanged: network failures, 5xx responses, malformed payloads.
// RetryAfter carries the server's Retry-After hint when one was present,
// zero otherwise.
type Transient struct {
	Err        error
	RetryAfter time.Duration
}

// Error returns the wrapped error's message.
func (t *Transient) Error() string { return t.Err.Error() }

// Unwrap returns the wrapped error for errors.Is/As chains.
func (t *Transient) Unwrap() error { return t.Err }

// IsTransient marks the error as retryable for chain inspection.
func (t *Transient) IsTransient() bool { return true }

// Inspector provides methods for analyzing GitHub API errors.
type Inspector interface {
	// IsNotFoundError returns true if the error represents a resource not found error.
	IsNotFoundError(err error) bool

	// IsRateLimitError returns true if the error represents an exhausted rate limit.
	IsRateLimitError(err error) bool

	// IsNetworkError returns true if the error represents a network connectivity error.
	IsNetworkError(err error) bool

	// IsTransient returns true if retrying the same request unchanged could succeed.
	IsTransient(err error) bool
}

// APIErrorInspector implements the Inspector interface for GitHub API errors.
type APIErrorInspector struct{}

// NewInspector creates a new APIErrorInspector.
func NewInspector() Inspector {
	return &APIErrorInspector{}
}

// IsNotFoundError checks if the error is a not found error.
func (i *APIErrorInspector) IsNotFoundError(err error) bool {
	if err == nil {
		return false
	}
	errStr := strings.ToLower(err.Error())
	return strings.Contains(errStr, "404") ||
		strings.Contains(errStr, "not found")
}

// IsRateLimitError checks if the error is a rate limit error.
func (i *APIErrorInspector) IsRateLimitError(err error) bool {
	if err == nil {
		return false
	}
	errStr := strings.ToLower(err.Error())
	return strings.Contains(errStr, "rate limit") ||
		strings.Contains(errStr, "api rate limit exceeded")
}

// IsNetworkError checks if the error is a network connectivity error.
func (i *APIErrorInspector) IsNetworkError(err error) bool {
	if err == nil {
		return false
	}
	errStr := strings.ToLower(err.Error())
	return strings.Contains(errStr, "connection refused") ||
		strings.Contains(errStr, "connection reset") ||
		strings.Contains(errStr, "no such host") ||
		strings.Contains(errStr, "timeout") ||
		strings.Contains(errStr, "temporary failure") ||
		strings.Contains(errStr, "dial tcp") ||
		strings.Contains(errStr, "tls handshake") ||
		strings.Contains(errStr, "unexpected eof") ||
		strings.Contains(errStr, "network is unreachable")
}

// IsTransient checks if the error is worth retrying. At the string level only
// network failures qualify; typed transient errors are recognized by the
// chain inspector.
func (i *APIErrorInspector) IsTransient(err error) bool {
	return i.IsNetworkError(err)
}

// ErrorChainInspector wraps a base inspector and adds support for checking errors
// in the error chain using errors.Is and errors.As.
type ErrorChainInspector struct {
	base Inspector
}

// NewErrorChainInspector creates a new ErrorChainInspector that checks both
// the error chain and falls back to string-based inspection.
func NewErrorChainInspector(base Inspector) Inspector {
	return &ErrorChainInspector{base: base}
}

// IsNotFoundError checks the error chain first, then falls back to base inspector.
func (e *ErrorChainInspector) IsNotFoundError(err error) bool {
	var notFoundErr interface{ IsNotFoundError() bool }
	if errors.As(err, &notFoundErr) && notFoundErr.IsNotFoundError() {
		return true
	}
	return e.base.IsNotFoundError(err)
}

// IsRateLimitError checks the error chain first, then falls back to base inspector.
func (e *ErrorChainInspector) IsRateLimitError(err error) bool {
	var rateLimitErr interface{ IsRateLimitError() bool }
	if errors.As(err, &rateLimitErr) && rateLimitErr.IsRateLimitError() {
		return true
	}
	return e.base.IsRateLimitError(err)
}

// IsNetworkError checks the error chain first, then falls back to base inspector.
func (e *ErrorChainInspector) IsNetworkError(err error) bool {
	var networkErr interface{ IsNetworkError() bool }
	if errors.As(err, &networkErr) && networkErr.IsNetworkError() {
		return true
	}
	return e.base.IsNetworkError(err)
}

// IsTransient checks the error chain first, then falls back to base inspector.
// Terminal classifications win over transient ones so a wrapped 404 never
// gets retried by accident.
func (e *ErrorChainInspector) IsTransient(err error) bool {
	if e.IsNotFoundError(err) || e.IsRateLimitError(err) {
		return false
	}
	var transientErr interface{ IsTransient() bool }
	if errors.As(err, &transientErr) && transientErr.IsTransient() {
		return true
	}
	return e.base.IsTransient(err)
}

// RetryAfterHint extracts the server-suggested wait from a transient error
// chain. Returns zero when no hint was attached.
func RetryAfterHint(err error) time.Duration {
	var t *Transient
	if errors.As(err, &t) {
		return t.RetryAfter
	}
	return 0
}
