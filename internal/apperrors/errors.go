package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrConflict indicates that the operation conflicts with the current state of a resource.
var ErrConflict = errors.New("resource conflict")

// ErrUnauthorized indicates that the caller is not authenticated as an administrator.
var ErrUnauthorized = errors.New("unauthorized")

// ErrInsufficientQuantity indicates that an outbound inventory movement would
// drive an item's quantity below zero.
var ErrInsufficientQuantity = errors.New("insufficient inventory quantity")

// ErrConfiguration indicates that a required control account is missing from
// the chart of accounts. This is a system misconfiguration, not a user error.
var ErrConfiguration = errors.New("system configuration error")

// ErrInternal indicates an unexpected internal failure. Details are logged
// server-side; callers only ever see the generic message.
var ErrInternal = errors.New("internal error")

// AppError carries an HTTP-style status code alongside a message and an
// optional underlying cause.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates an AppError wrapping an underlying cause.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// NewNotFoundError creates a 404 AppError that matches errors.Is(err, ErrNotFound).
func NewNotFoundError(message string) *AppError {
	return &AppError{Code: 404, Message: message, Err: ErrNotFound}
}
