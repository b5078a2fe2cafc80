package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Error represents a typed domain error. Status is an HTTP status that a
// host embedding the core behind a REST gateway can read directly; the core
// itself never serves HTTP (spec.md §6: "it does not define wire formats").
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Status  int    `json:"status"`
	Err     error  `json:"-"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error.
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// New creates a new Error instance.
func New(code string, status int, message string) *Error {
	return &Error{Code: code, Status: status, Message: message}
}

// Wrap attaches context to an existing error.
func Wrap(err error, code string, status int, message string) *Error {
	return &Error{Code: code, Status: status, Message: message, Err: err}
}

// Predefined errors per the taxonomy of spec.md §7. InfeasibleAssignment
// and ConstraintViolation are deliberately absent here: the former is
// returned as a partial success with warnings (never an error value), and
// the latter is a Conflict record, i.e. data, not an error.
var (
	ErrNotFound           = New("NOT_FOUND", http.StatusNotFound, "referenced entity not found in the read-model snapshot")
	ErrInvalidInput       = New("INVALID_INPUT", http.StatusBadRequest, "malformed or missing required field")
	ErrValidation         = New("VALIDATION_ERROR", http.StatusBadRequest, "validation failed")
	ErrConflict           = New("CONFLICT", http.StatusConflict, "operation conflicts with current state")
	ErrPreconditionFailed = New("PRECONDITION_FAILED", http.StatusPreconditionFailed, "precondition failed")
	ErrSuggestionRejected = New("SUGGESTION_REJECTED", http.StatusConflict, "suggestion introduced a new critical conflict on validation")
	ErrInternal           = New("INTERNAL_ERROR", http.StatusInternalServerError, "internal error")
)

// FromError normalises any error into an *Error.
func FromError(err error) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return Wrap(err, ErrInternal.Code, ErrInternal.Status, ErrInternal.Message)
}

// Clone returns a copy of the error allowing for message overrides.
func Clone(err *Error, message string) *Error {
	if err == nil {
		return nil
	}
	clone := *err
	if message != "" {
		clone.Message = message
	}
	return &clone
}
