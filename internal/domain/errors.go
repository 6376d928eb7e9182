package domain

import (
	"errors"
	"fmt"
)

// ErrorType defines the categories of failures the mutation API reports.
type ErrorType string

const (
	ErrorTypeNotFound          ErrorType = "NOT_FOUND"
	ErrorTypeInvalidConnection ErrorType = "INVALID_CONNECTION"
	ErrorTypeInvalidInput      ErrorType = "INVALID_INPUT"
	ErrorTypeInternal          ErrorType = "INTERNAL"
)

type AppError struct {
	Type    ErrorType
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NewNotFound(format string, args ...any) error {
	return &AppError{Type: ErrorTypeNotFound, Message: fmt.Sprintf(format, args...)}
}

func NewInvalidConnection(format string, args ...any) error {
	return &AppError{Type: ErrorTypeInvalidConnection, Message: fmt.Sprintf(format, args...)}
}

func NewInvalidInput(format string, args ...any) error {
	return &AppError{Type: ErrorTypeInvalidInput, Message: fmt.Sprintf(format, args...)}
}

// NewInternal marks a broken invariant, e.g. a history entry that no longer
// matches the store.
func NewInternal(message string, err error) error {
	return &AppError{Type: ErrorTypeInternal, Message: message, Err: err}
}

func IsNotFound(err error) bool          { return hasType(err, ErrorTypeNotFound) }
func IsInvalidConnection(err error) bool { return hasType(err, ErrorTypeInvalidConnection) }
func IsInvalidInput(err error) bool      { return hasType(err, ErrorTypeInvalidInput) }
func IsInternal(err error) bool          { return hasType(err, ErrorTypeInternal) }

func hasType(err error, t ErrorType) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Type == t
}
