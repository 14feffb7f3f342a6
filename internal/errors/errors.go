// Package errors provides centralized error definitions and error handling
// utilities for the tripflow codebase. It defines the error taxonomy shared by
// the stage clients, the pipeline engine, and the wizard UI.
//
// # Error Types
//
// Three typed errors cover every failure the orchestrator can observe:
//
//   - InputError: user-correctable input problems (identical endpoints, zero
//     interests selected). These block stage advancement and are rendered
//     inline; they are never logged as system faults.
//   - CollaboratorError: a decision service answered with a non-success
//     response or a payload that failed shape validation. The service's own
//     detail message is preserved when present.
//   - TransportError: a decision service could not be reached at all. Kept
//     distinct from CollaboratorError so the UI can say "service unreachable"
//     rather than echoing a validation rejection.
//
// A discarded stale stage result is not an error at all: the engine swallows
// it silently (see the pipeline package), so no type exists for it here.
//
// # Usage
//
// Creating errors:
//
//	err := errors.NewInputError("source and destination must differ").WithField("destination")
//	err := errors.NewCollaboratorError("feasibility", "rate limit exceeded", http.StatusTooManyRequests)
//	err := errors.NewTransportError("itinerary", cause)
//
// Checking errors:
//
//	if errors.IsInputError(err) { ... }
//	var collab *errors.CollaboratorError
//	if errors.As(err, &collab) { ... }
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Re-export standard library functions for convenience.
// This allows callers to import only this package for all error handling.
var (
	Is     = errors.Is
	As     = errors.As
	Unwrap = errors.Unwrap
	New    = errors.New
	Join   = errors.Join
)

// -----------------------------------------------------------------------------
// Sentinel Errors
// -----------------------------------------------------------------------------

// Input-related sentinel errors
var (
	// ErrSameEndpoints indicates source and destination resolve to the same city.
	ErrSameEndpoints = New("source and destination are the same")
	// ErrNoSelection indicates an endpoint has no committed selection.
	ErrNoSelection = New("no city selected")
	// ErrNoInterests indicates the configuration has zero selected interests.
	ErrNoInterests = New("at least one interest is required")
	// ErrQueryTooShort indicates a search query below the minimum length.
	ErrQueryTooShort = New("query too short")
)

// Collaborator-related sentinel errors
var (
	// ErrServiceUnreachable indicates the decision service could not be reached.
	ErrServiceUnreachable = New("service unreachable")
	// ErrMalformedResponse indicates a response body failed shape validation.
	ErrMalformedResponse = New("malformed response")
	// ErrUpstreamRejected indicates the service returned a non-success status.
	ErrUpstreamRejected = New("service rejected request")
)

// Pipeline-related sentinel errors
var (
	// ErrStageNotReady indicates an upstream stage has not produced output yet.
	ErrStageNotReady = New("upstream stage not ready")
	// ErrUnknownStage indicates a stage index outside the pipeline.
	ErrUnknownStage = New("unknown stage")
)

// -----------------------------------------------------------------------------
// InputError
// -----------------------------------------------------------------------------

// InputError represents a user-correctable input problem. It blocks stage
// advancement but is not a system fault: the wizard renders it inline next to
// the offending control and never logs it above debug level.
//
// Example:
//
//	err := errors.NewInputError("at least one interest is required").WithField("interests")
//	fmt.Println(err) // "invalid input [field=interests]: at least one interest is required"
type InputError struct {
	message string
	cause   error
	Field   string
}

// NewInputError creates a new InputError.
func NewInputError(message string) *InputError {
	return &InputError{message: message}
}

// WithField records which user-facing field the problem concerns.
func (e *InputError) WithField(field string) *InputError {
	e.Field = field
	return e
}

// WithCause attaches an underlying cause.
func (e *InputError) WithCause(cause error) *InputError {
	e.cause = cause
	return e
}

// Error returns the formatted error message.
func (e *InputError) Error() string {
	prefix := "invalid input"
	if e.Field != "" {
		prefix = fmt.Sprintf("invalid input [field=%s]", e.Field)
	}
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", prefix, e.message, e.cause)
	}
	return fmt.Sprintf("%s: %s", prefix, e.message)
}

// Message returns the bare user-facing message without the prefix.
func (e *InputError) Message() string { return e.message }

// Unwrap returns the underlying cause.
func (e *InputError) Unwrap() error { return e.cause }

// Is checks if this error matches the target.
func (e *InputError) Is(target error) bool {
	if _, ok := target.(*InputError); ok {
		return true
	}
	if e.cause != nil {
		return errors.Is(e.cause, target)
	}
	return false
}

// -----------------------------------------------------------------------------
// CollaboratorError
// -----------------------------------------------------------------------------

// CollaboratorError represents a non-success response or a malformed payload
// from a decision service. The Detail field carries the service's own message
// when one was provided; Message() falls back to a generic message otherwise.
//
// Example:
//
//	err := errors.NewCollaboratorError("itinerary", "rate limit exceeded", 429)
//	fmt.Println(err) // "collaborator error [service=itinerary, status=429]: rate limit exceeded"
type CollaboratorError struct {
	Service string
	Detail  string
	Status  int
	cause   error
}

// NewCollaboratorError creates a new CollaboratorError. detail may be empty
// when the service provided no message; status is zero for shape failures
// where no meaningful status applies.
func NewCollaboratorError(service, detail string, status int) *CollaboratorError {
	return &CollaboratorError{Service: service, Detail: detail, Status: status}
}

// NewMalformedResponseError creates a CollaboratorError for a payload that
// failed shape validation. The client boundary fails closed into this rather
// than letting a partially decoded value escape. The decode error stays in
// the cause chain for logs; users only ever see Message().
func NewMalformedResponseError(service string, cause error) *CollaboratorError {
	return &CollaboratorError{Service: service, cause: Join(ErrMalformedResponse, cause)}
}

// WithCause attaches an underlying cause.
func (e *CollaboratorError) WithCause(cause error) *CollaboratorError {
	e.cause = cause
	return e
}

// Message returns the user-facing message: the service-provided detail when
// present, else a generic fallback.
func (e *CollaboratorError) Message() string {
	if e.Detail != "" {
		return e.Detail
	}
	return "the service could not process the request"
}

// Error returns the formatted error message.
func (e *CollaboratorError) Error() string {
	var parts []string
	if e.Service != "" {
		parts = append(parts, fmt.Sprintf("service=%s", e.Service))
	}
	if e.Status != 0 {
		parts = append(parts, fmt.Sprintf("status=%d", e.Status))
	}

	prefix := "collaborator error"
	if len(parts) > 0 {
		prefix = fmt.Sprintf("collaborator error [%s]", strings.Join(parts, ", "))
	}

	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", prefix, e.Message(), e.cause)
	}
	return fmt.Sprintf("%s: %s", prefix, e.Message())
}

// Unwrap returns the underlying cause.
func (e *CollaboratorError) Unwrap() error { return e.cause }

// Is checks if this error matches the target.
func (e *CollaboratorError) Is(target error) bool {
	if _, ok := target.(*CollaboratorError); ok {
		return true
	}
	if errors.Is(target, ErrUpstreamRejected) && e.cause == nil {
		return true
	}
	if e.cause != nil {
		return errors.Is(e.cause, target)
	}
	return false
}

// -----------------------------------------------------------------------------
// TransportError
// -----------------------------------------------------------------------------

// TransportError represents an unreachable decision service: connection
// refused, DNS failure, or a client-side timeout. It is surfaced with a
// distinct "service unreachable" message so users can tell an outage apart
// from a validated rejection.
//
// Example:
//
//	err := errors.NewTransportError("feasibility", cause)
//	fmt.Println(err) // "transport error [service=feasibility]: service unreachable: dial tcp ..."
type TransportError struct {
	Service string
	cause   error
}

// NewTransportError creates a new TransportError.
func NewTransportError(service string, cause error) *TransportError {
	return &TransportError{Service: service, cause: cause}
}

// Message returns the user-facing message.
func (e *TransportError) Message() string {
	return "service unreachable: check that the trip service is running"
}

// Error returns the formatted error message.
func (e *TransportError) Error() string {
	prefix := "transport error"
	if e.Service != "" {
		prefix = fmt.Sprintf("transport error [service=%s]", e.Service)
	}
	if e.cause != nil {
		return fmt.Sprintf("%s: %v: %v", prefix, ErrServiceUnreachable, e.cause)
	}
	return fmt.Sprintf("%s: %v", prefix, ErrServiceUnreachable)
}

// Unwrap returns the underlying cause.
func (e *TransportError) Unwrap() error { return e.cause }

// Is checks if this error matches the target.
func (e *TransportError) Is(target error) bool {
	if _, ok := target.(*TransportError); ok {
		return true
	}
	if errors.Is(target, ErrServiceUnreachable) {
		return true
	}
	if e.cause != nil {
		return errors.Is(e.cause, target)
	}
	return false
}

// -----------------------------------------------------------------------------
// Error Classification Helpers
// -----------------------------------------------------------------------------

// IsInputError returns true if the error is user-correctable input. Such
// errors block advancement and render inline; they never gate a retry control.
func IsInputError(err error) bool {
	if err == nil {
		return false
	}
	var inputErr *InputError
	return As(err, &inputErr)
}

// IsTransportError returns true if the error indicates an unreachable service.
func IsTransportError(err error) bool {
	if err == nil {
		return false
	}
	var transportErr *TransportError
	return As(err, &transportErr)
}

// IsCollaboratorError returns true if a decision service answered but the
// answer was a rejection or failed shape validation.
func IsCollaboratorError(err error) bool {
	if err == nil {
		return false
	}
	var collabErr *CollaboratorError
	return As(err, &collabErr)
}

// IsRetryable returns true if the failure may succeed on a manual retry.
// Input errors are not retryable: the user must change the input instead.
// Retry is always a user action; nothing in tripflow auto-retries.
func IsRetryable(err error) bool {
	return IsTransportError(err) || IsCollaboratorError(err)
}

// UserMessage returns the message that should be shown to the user for err.
// Typed errors carry their own user-facing message; anything else degrades
// to a generic line so raw transport internals never reach the screen.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}

	var inputErr *InputError
	if As(err, &inputErr) {
		return inputErr.Message()
	}
	var collabErr *CollaboratorError
	if As(err, &collabErr) {
		return collabErr.Message()
	}
	var transportErr *TransportError
	if As(err, &transportErr) {
		return transportErr.Message()
	}

	return "something went wrong, try again"
}

// -----------------------------------------------------------------------------
// Convenience Constructors
// -----------------------------------------------------------------------------

// Wrap wraps an error with additional context message.
//
// Example:
//
//	err := errors.Wrap(baseErr, "failed to load trip state")
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf wraps an error with a formatted context message.
func Wrapf(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}
