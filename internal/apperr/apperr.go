// Package apperr defines the error taxonomy exposed by the API. Handlers
// translate these into the response envelope instead of echoing driver errors.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an error for HTTP mapping and the response body
type Kind string

const (
	KindUnauthorized    Kind = "unauthorized"
	KindForbidden       Kind = "forbidden"
	KindNotFound        Kind = "not_found"
	KindAlreadyExists   Kind = "already_exists"
	KindInvalidInput    Kind = "invalid_input"
	KindInvalidPlan     Kind = "invalid_plan"
	KindPaymentProvider Kind = "payment_provider"
	KindStorage         Kind = "storage"
)

// Error carries a kind, a user-facing message and an optional wrapped cause
type Error struct {
	Kind    Kind
	Message string
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.cause }

// Is matches two errors of the same kind, so callers can use
// errors.Is(err, apperr.NotFound("")) style checks via sentinels below.
func (e *Error) Is(target error) bool {
	var t *Error
	if errors.As(target, &t) {
		return e.Kind == t.Kind
	}
	return false
}

// HTTPStatus maps the kind to a response status code
func (e *Error) HTTPStatus() int {
	switch e.Kind {
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindAlreadyExists:
		return http.StatusConflict
	case KindInvalidInput, KindInvalidPlan:
		return http.StatusBadRequest
	case KindPaymentProvider, KindStorage:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func Unauthorized(msg string) *Error {
	return &Error{Kind: KindUnauthorized, Message: msg}
}

func Forbidden(msg string) *Error {
	return &Error{Kind: KindForbidden, Message: msg}
}

func NotFound(msg string) *Error {
	return &Error{Kind: KindNotFound, Message: msg}
}

func AlreadyExists(msg string) *Error {
	return &Error{Kind: KindAlreadyExists, Message: msg}
}

func InvalidInput(msg string) *Error {
	return &Error{Kind: KindInvalidInput, Message: msg}
}

func InvalidPlan(msg string) *Error {
	return &Error{Kind: KindInvalidPlan, Message: msg}
}

func PaymentProvider(msg string, cause error) *Error {
	return &Error{Kind: KindPaymentProvider, Message: msg, cause: cause}
}

func Storage(msg string, cause error) *Error {
	return &Error{Kind: KindStorage, Message: msg, cause: cause}
}

// From extracts an *Error from err, wrapping unknown errors as storage
// failures so nothing driver-specific leaks to clients.
func From(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return Storage("internal storage error", err)
}

// IsKind reports whether err carries the given kind
func IsKind(err error, kind Kind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == kind
}
