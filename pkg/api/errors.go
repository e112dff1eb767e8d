package api

import (
	"errors"
	"fmt"
	"net/http"

	"ideaforge-hq/ideaforge/pkg/extract"
	"ideaforge-hq/ideaforge/pkg/gateway"
	"ideaforge-hq/ideaforge/pkg/ideas"
)

// Stable caller-facing messages. These are part of the API contract and
// never carry internal detail.
const (
	MsgInvalidBody      = "Invalid request body"
	MsgBodyTooLarge     = "Request body too large"
	MsgMethodNotAllowed = "Method not allowed"
	MsgRateLimited      = "Rate limit exceeded. Please try again later."
	MsgQuotaExhausted   = "AI credits exhausted. Please contact support."
	MsgUnavailable      = "AI service temporarily unavailable. Please try again."
	MsgRecoveryFailed   = "Failed to generate ideas. Please try again."
	MsgInternal         = "An internal error occurred. Please try again later."
)

// Error is the caller-facing form of any pipeline failure.
type Error struct {
	// Status is the HTTP status code, one of 400, 402, 413, 429, 500
	Status int

	// Message is the stable caller-facing message
	Message string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("api error (status %d): %s", e.Status, e.Message)
}

// BadRequestError indicates the inbound body could not be decoded.
type BadRequestError struct {
	// Message is the caller-facing message
	Message string

	// Cause is the underlying decode error
	Cause error
}

// Error implements the error interface.
func (e *BadRequestError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("bad request: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("bad request: %s", e.Message)
}

// Unwrap returns the underlying error for error chain support.
func (e *BadRequestError) Unwrap() error {
	return e.Cause
}

// BodyTooLargeError indicates the request body exceeded the byte cap.
type BodyTooLargeError struct {
	// Limit is the configured cap in bytes
	Limit int64
}

// Error implements the error interface.
func (e *BodyTooLargeError) Error() string {
	return fmt.Sprintf("request body exceeds %d bytes", e.Limit)
}

// HandleError converts any pipeline error into its caller-facing form.
// Unknown errors collapse to a generic 500 so nothing internal leaks.
func HandleError(err error) *Error {
	var validationErr *ideas.ValidationError
	if errors.As(err, &validationErr) {
		return &Error{Status: http.StatusBadRequest, Message: validationErr.Message}
	}

	var badReqErr *BadRequestError
	if errors.As(err, &badReqErr) {
		return &Error{Status: http.StatusBadRequest, Message: badReqErr.Message}
	}

	var tooLargeErr *BodyTooLargeError
	if errors.As(err, &tooLargeErr) {
		return &Error{Status: http.StatusRequestEntityTooLarge, Message: MsgBodyTooLarge}
	}

	var rateLimitedErr *gateway.RateLimitedError
	if errors.As(err, &rateLimitedErr) {
		return &Error{Status: http.StatusTooManyRequests, Message: MsgRateLimited}
	}

	var quotaErr *gateway.QuotaError
	if errors.As(err, &quotaErr) {
		return &Error{Status: http.StatusPaymentRequired, Message: MsgQuotaExhausted}
	}

	var upstreamErr *gateway.UpstreamError
	if errors.As(err, &upstreamErr) {
		return &Error{Status: http.StatusInternalServerError, Message: MsgUnavailable}
	}

	var transportErr *gateway.TransportError
	if errors.As(err, &transportErr) {
		return &Error{Status: http.StatusInternalServerError, Message: MsgUnavailable}
	}

	var parseErr *gateway.ParseError
	if errors.As(err, &parseErr) {
		return &Error{Status: http.StatusInternalServerError, Message: MsgUnavailable}
	}

	if errors.Is(err, extract.ErrNoDocument) || errors.Is(err, extract.ErrMissingIdeas) {
		return &Error{Status: http.StatusInternalServerError, Message: MsgRecoveryFailed}
	}

	return &Error{Status: http.StatusInternalServerError, Message: MsgInternal}
}
