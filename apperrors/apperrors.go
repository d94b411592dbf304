// Package apperrors defines the error taxonomy shared by both tiers and
// its mapping onto the wire envelope {"error": string, "details"?: object}.
package apperrors

import (
	"errors"
	"net/http"
)

var (
	ErrValidation     = errors.New("validation failed")
	ErrAuthentication = errors.New("unauthenticated")
	ErrAuthorization  = errors.New("forbidden")
	ErrNotFound       = errors.New("not found")
	ErrConflict       = errors.New("conflict")
	ErrUpstream       = errors.New("upstream unavailable")
)

type Error struct {
	Err     error
	Message string
	Details map[string]any
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.Err }

func Validation(message string) *Error {
	return &Error{Err: ErrValidation, Message: message}
}

func ValidationDetails(message string, details map[string]any) *Error {
	return &Error{Err: ErrValidation, Message: message, Details: details}
}

func Unauthenticated(message string) *Error {
	return &Error{Err: ErrAuthentication, Message: message}
}

func Forbidden(message string) *Error {
	return &Error{Err: ErrAuthorization, Message: message}
}

func NotFound(message string) *Error {
	return &Error{Err: ErrNotFound, Message: message}
}

func Conflict(message string) *Error {
	return &Error{Err: ErrConflict, Message: message}
}

func Upstream(message string) *Error {
	return &Error{Err: ErrUpstream, Message: message}
}

// Status maps an error anywhere in the chain to its HTTP status.
// Unknown errors are internal faults.
func Status(err error) int {
	switch {
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, ErrAuthentication):
		return http.StatusUnauthorized
	case errors.Is(err, ErrAuthorization):
		return http.StatusForbidden
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// Envelope is the JSON error body returned by every endpoint on both tiers.
type Envelope struct {
	Error   string         `json:"error"`
	Details map[string]any `json:"details,omitempty"`
}

// ToEnvelope renders err as a wire envelope. Non-taxonomy errors are
// masked so internals never leak to clients.
func ToEnvelope(err error) Envelope {
	var appErr *Error
	if errors.As(err, &appErr) {
		return Envelope{Error: appErr.Message, Details: appErr.Details}
	}
	if Status(err) == http.StatusInternalServerError {
		return Envelope{Error: "internal error"}
	}
	return Envelope{Error: err.Error()}
}
