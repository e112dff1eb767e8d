package gateway

import "fmt"

// RateLimitedError indicates the upstream returned HTTP 429: the account
// is sending requests faster than its plan allows.
type RateLimitedError struct {
	// Message is the error body returned by the upstream, if any
	Message string
}

// Error implements the error interface.
func (e *RateLimitedError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("gateway rate limited: %s", e.Message)
	}
	return "gateway rate limited"
}

// QuotaError indicates the upstream returned HTTP 402: the account's
// credits are exhausted.
type QuotaError struct {
	// Message is the error body returned by the upstream, if any
	Message string
}

// Error implements the error interface.
func (e *QuotaError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("gateway quota exhausted: %s", e.Message)
	}
	return "gateway quota exhausted"
}

// UpstreamError represents any other non-2xx response from the upstream.
type UpstreamError struct {
	// StatusCode is the HTTP status returned by the upstream
	StatusCode int

	// Message is the error body returned by the upstream, if any
	Message string
}

// Error implements the error interface.
func (e *UpstreamError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("gateway upstream error (status %d): %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("gateway upstream error (status %d)", e.StatusCode)
}

// TransportError represents a network-level failure: the request never
// produced an HTTP response.
type TransportError struct {
	// Cause is the underlying transport error
	Cause error
}

// Error implements the error interface.
func (e *TransportError) Error() string {
	return fmt.Sprintf("gateway transport error: %v", e.Cause)
}

// Unwrap returns the underlying error for error chain support.
func (e *TransportError) Unwrap() error {
	return e.Cause
}

// ParseError represents a malformed 2xx response from the upstream.
type ParseError struct {
	// Cause describes what was wrong with the response
	Cause error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("gateway response parse error: %v", e.Cause)
}

// Unwrap returns the underlying error for error chain support.
func (e *ParseError) Unwrap() error {
	return e.Cause
}
