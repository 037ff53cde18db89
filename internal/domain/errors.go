package domain

import (
	"context"
	"errors"
	"fmt"
)

// Sentinel errors identifying each failure class. Typed errors below match
// their sentinel through errors.Is.
var (
	// ErrInvalidRequest indicates the caller supplied invalid search or filter input.
	ErrInvalidRequest = errors.New("invalid request")

	// ErrAuth indicates the credential exchange with the upstream failed.
	ErrAuth = errors.New("upstream authentication failed")

	// ErrQuery indicates the upstream flight-offers query failed.
	ErrQuery = errors.New("upstream flight search failed")

	// ErrMalformedOffer indicates a single upstream offer could not be normalized.
	ErrMalformedOffer = errors.New("malformed offer")

	// ErrCancelled indicates the search was superseded or aborted by its caller.
	ErrCancelled = errors.New("search cancelled")

	// ErrSessionNotFound indicates the search session does not exist or has expired.
	ErrSessionNotFound = errors.New("search session not found")
)

// AuthError is returned when the token exchange fails.
// StatusCode is zero when no HTTP response was received.
type AuthError struct {
	StatusCode int
	Err        error
}

// NewAuthError creates an AuthError for the given upstream status.
func NewAuthError(statusCode int, err error) *AuthError {
	return &AuthError{StatusCode: statusCode, Err: err}
}

func (e *AuthError) Error() string {
	return describe(ErrAuth, e.StatusCode, e.Err)
}

func (e *AuthError) Unwrap() error { return e.Err }

// Is matches ErrAuth.
func (e *AuthError) Is(target error) bool { return target == ErrAuth }

// QueryError is returned when the offers query fails.
// StatusCode carries the upstream HTTP status, zero when no response was received.
type QueryError struct {
	StatusCode int
	Err        error
}

// NewQueryError creates a QueryError for the given upstream status.
func NewQueryError(statusCode int, err error) *QueryError {
	return &QueryError{StatusCode: statusCode, Err: err}
}

func (e *QueryError) Error() string {
	return describe(ErrQuery, e.StatusCode, e.Err)
}

func (e *QueryError) Unwrap() error { return e.Err }

// Is matches ErrQuery.
func (e *QueryError) Is(target error) bool { return target == ErrQuery }

// MalformedOfferError describes why one upstream offer was rejected.
type MalformedOfferError struct {
	OfferID string
	Reason  string
}

// NewMalformedOfferError creates a MalformedOfferError.
func NewMalformedOfferError(offerID, format string, args ...interface{}) *MalformedOfferError {
	return &MalformedOfferError{OfferID: offerID, Reason: fmt.Sprintf(format, args...)}
}

func (e *MalformedOfferError) Error() string {
	if e.OfferID == "" {
		return fmt.Sprintf("%s: %s", ErrMalformedOffer, e.Reason)
	}
	return fmt.Sprintf("%s %q: %s", ErrMalformedOffer, e.OfferID, e.Reason)
}

// Is matches ErrMalformedOffer.
func (e *MalformedOfferError) Is(target error) bool { return target == ErrMalformedOffer }

// CancelledError is returned when the caller's context ends before the search completes.
// Cause is the context error (context.Canceled or context.DeadlineExceeded).
type CancelledError struct {
	Cause error
}

// NewCancelledError wraps a context error.
func NewCancelledError(cause error) *CancelledError {
	if cause == nil {
		cause = context.Canceled
	}
	return &CancelledError{Cause: cause}
}

func (e *CancelledError) Error() string {
	return fmt.Sprintf("%s: %v", ErrCancelled, e.Cause)
}

func (e *CancelledError) Unwrap() error { return e.Cause }

// Is matches ErrCancelled.
func (e *CancelledError) Is(target error) bool { return target == ErrCancelled }

// ValidationError is a single field-level validation failure.
type ValidationError struct {
	Field   string
	Message string
}

// NewValidationError creates a ValidationError.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

// Is matches ErrInvalidRequest.
func (e *ValidationError) Is(target error) bool { return target == ErrInvalidRequest }

// WrapInvalidRequest formats a message wrapped with ErrInvalidRequest.
func WrapInvalidRequest(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidRequest, fmt.Sprintf(format, args...))
}

// IsInvalidRequest reports whether err is an invalid request error.
func IsInvalidRequest(err error) bool { return errors.Is(err, ErrInvalidRequest) }

// IsAuthError reports whether err is an upstream authentication failure.
func IsAuthError(err error) bool { return errors.Is(err, ErrAuth) }

// IsQueryError reports whether err is an upstream query failure.
func IsQueryError(err error) bool { return errors.Is(err, ErrQuery) }

// IsMalformedOffer reports whether err is a malformed offer error.
func IsMalformedOffer(err error) bool { return errors.Is(err, ErrMalformedOffer) }

// IsCancelled reports whether err is a cancellation.
func IsCancelled(err error) bool { return errors.Is(err, ErrCancelled) }

// IsDeadline reports whether err was caused by an expired deadline.
func IsDeadline(err error) bool { return errors.Is(err, context.DeadlineExceeded) }

func describe(kind error, status int, err error) string {
	msg := kind.Error()
	if status != 0 {
		msg = fmt.Sprintf("%s (status %d)", msg, status)
	}
	if err != nil {
		msg += ": " + err.Error()
	}
	return msg
}
