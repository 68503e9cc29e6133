// Package apperror defines the domain error kinds shared by services and the
// HTTP layer. Match kinds with errors.Is against the sentinels below.
package apperror

import (
	"errors"
	"maps"
	"net/http"
	"slices"
)

var (
	ErrValidation   = errors.New("validation failed")
	ErrBadRequest   = errors.New("bad request")
	ErrUnauthorized = errors.New("unauthorized")
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
)

// ErrInvalidCredentials is returned by login for both unknown emails and
// wrong passwords.
var ErrInvalidCredentials = Unauthorized("Invalid credentials")

// Error carries a kind, a client-safe message and an optional cause.
type Error struct {
	kind    error
	message string
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return e.message + ": " + e.cause.Error()
	}
	return e.message
}

func (e *Error) Is(target error) bool { return target == e.kind }

func (e *Error) Unwrap() error { return e.cause }

func (e *Error) Message() string { return e.message }

func (e *Error) Kind() error { return e.kind }

func New(kind error, message string) *Error {
	return &Error{kind: kind, message: message}
}

func Wrap(kind error, message string, cause error) *Error {
	return &Error{kind: kind, message: message, cause: cause}
}

func BadRequest(message string) error   { return New(ErrBadRequest, message) }
func Unauthorized(message string) error { return New(ErrUnauthorized, message) }
func NotFound(message string) error     { return New(ErrNotFound, message) }
func Conflict(message string) error     { return New(ErrConflict, message) }

// ValidationError lists per-field problems keyed by the JSON field name.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return ErrValidation.Error()
	}
	first := slices.Sorted(maps.Keys(e.Fields))[0]
	return e.Fields[first]
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

func (e *ValidationError) Message() string { return e.Error() }

func Validation(field, message string) error {
	return &ValidationError{Fields: map[string]string{field: message}}
}

// HTTPStatus maps an error to the status code the API answers with.
func HTTPStatus(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrValidation):
		return http.StatusUnprocessableEntity
	case errors.Is(err, ErrBadRequest):
		return http.StatusBadRequest
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// Message returns the text that may be shown to a client. Unknown errors are
// never exposed.
func Message(err error) string {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Message()
	}
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Message()
	}
	return "Internal server error"
}
