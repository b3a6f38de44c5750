// Package apperror defines the error taxonomy shared by all domain modules.
package apperror

import (
	"errors"
	"net/http"
)

// Kind classifies a business error.
type Kind int

const (
	// KindNotFound means the referenced entity does not exist.
	KindNotFound Kind = iota + 1
	// KindForbidden means the actor lacks the required role.
	KindForbidden
	// KindConflict means the operation collides with existing state.
	KindConflict
	// KindInvalidOperation means the operation is illegal in the current state.
	KindInvalidOperation
	// KindValidation means the input is malformed or incomplete.
	KindValidation
	// KindUnauthorized means the caller could not be authenticated.
	KindUnauthorized
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindForbidden:
		return "forbidden"
	case KindConflict:
		return "conflict"
	case KindInvalidOperation:
		return "invalid_operation"
	case KindValidation:
		return "validation"
	case KindUnauthorized:
		return "unauthorized"
	default:
		return "unknown"
	}
}

// Error is a classified business error.
type Error struct {
	// Kind is the taxonomy class.
	Kind Kind
	// Code is the machine readable code sent to clients.
	Code string
	// Message is the human readable message sent to clients.
	Message string
	// Status overrides the HTTP status derived from Kind when non-zero.
	Status int
}

// New creates a business error of the given kind.
func New(kind Kind, code, message string) *Error {
	return &Error{Kind: kind, Code: code, Message: message}
}

// WithStatus returns a copy of the error answering with the given HTTP status.
func (e *Error) WithStatus(status int) *Error {
	cp := *e
	cp.Status = status
	return &cp
}

// Error implements the error interface.
func (e *Error) Error() string {
	return e.Message
}

// HTTPStatus returns the HTTP status for the error.
func (e *Error) HTTPStatus() int {
	if e.Status != 0 {
		return e.Status
	}
	return StatusForKind(e.Kind)
}

// StatusForKind maps a kind to its HTTP status class.
func StatusForKind(kind Kind) int {
	switch kind {
	case KindNotFound:
		return http.StatusNotFound
	case KindForbidden:
		return http.StatusForbidden
	case KindConflict:
		return http.StatusConflict
	case KindInvalidOperation, KindValidation:
		return http.StatusBadRequest
	case KindUnauthorized:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// As extracts a business error from err. Infrastructure errors return false.
func As(err error) (*Error, bool) {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// IsKind reports whether err is a business error of the given kind.
func IsKind(err error, kind Kind) bool {
	appErr, ok := As(err)
	return ok && appErr.Kind == kind
}

// Validation creates a validation error with the INVALID_REQUEST code.
func Validation(message string) *Error {
	return New(KindValidation, "INVALID_REQUEST", message)
}
