// Package apierr defines the error taxonomy shared by the dispatcher and the
// job pipelines: Forbidden, UnprocessableEntity, InternalServerError. Each
// kind maps to an HTTP status code and formats a human-readable cause chain
// for callback bodies.
package apierr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind identifies which bucket of the taxonomy an error belongs to.
type Kind int

const (
	KindInternalServerError Kind = iota
	KindUnprocessableEntity
	KindForbidden
)

// Error wraps a cause with a taxonomy Kind.
type Error struct {
	Kind  Kind
	Cause error
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindForbidden:
		return "Forbidden (403)"
	case KindUnprocessableEntity:
		return "Unprocessable Entity (422)"
	default:
		return "Internal Server Error (500)"
	}
}

func (e *Error) Unwrap() error { return e.Cause }

// StatusCode returns the HTTP status for this error's Kind.
func (e *Error) StatusCode() int {
	switch e.Kind {
	case KindForbidden:
		return http.StatusForbidden
	case KindUnprocessableEntity:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// Forbidden formats a message and wraps it as a Forbidden error.
func Forbidden(format string, args ...any) error {
	return &Error{Kind: KindForbidden, Cause: fmt.Errorf(format, args...)}
}

// Unprocessable formats a message and wraps it as an UnprocessableEntity error.
func Unprocessable(format string, args ...any) error {
	return &Error{Kind: KindUnprocessableEntity, Cause: fmt.Errorf(format, args...)}
}

// Internal wraps err as an InternalServerError.
func Internal(err error) error {
	return &Error{Kind: KindInternalServerError, Cause: err}
}

// InternalF formats and wraps as an InternalServerError.
func InternalF(format string, args ...any) error {
	return &Error{Kind: KindInternalServerError, Cause: fmt.Errorf(format, args...)}
}

// StatusCode extracts the HTTP status for any error, defaulting to 500 for
// errors outside the taxonomy.
func StatusCode(err error) int {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode()
	}
	return http.StatusInternalServerError
}

// DisplayError formats err as its top-level message followed by each wrapped
// cause on its own line prefixed "Caused by: ", matching the callback error
// field's required shape.
func DisplayError(err error) string {
	if err == nil {
		return ""
	}
	s := err.Error() + "\n"
	cause := errors.Unwrap(err)
	for cause != nil {
		s += "Caused by: " + cause.Error() + "\n"
		cause = errors.Unwrap(cause)
	}
	return s
}
