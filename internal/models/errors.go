package models

import (
	"errors"
	"fmt"
)

// Common error types
var (
	ErrNotFound     = errors.New("resource not found")
	ErrDuplicate    = errors.New("resource already exists")
	ErrBadReference = errors.New("referenced resource does not exist")
)

// Error codes returned by mutations. Callers branch on these instead of
// parsing message strings.
const (
	CodeDuplicate     = "DUPLICATE"
	CodeFormat        = "FORMAT"
	CodeRequiredField = "REQUIRED_FIELD"
	CodeRange         = "RANGE"
	CodeNotFound      = "NOT_FOUND"
	CodeReference     = "REFERENCE"
	CodeInvalidInput  = "INVALID_INPUT"
)

// AppError represents an application-level error with context
type AppError struct {
	Code    string
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

// ErrInvalidInput creates a generic validation error
func ErrInvalidInput(message string) error {
	return &AppError{
		Code:    CodeInvalidInput,
		Message: message,
	}
}

// ErrRequiredField creates an error for a missing required field
func ErrRequiredField(message string) error {
	return &AppError{
		Code:    CodeRequiredField,
		Message: message,
	}
}

// ErrFormat creates an error for a malformed field value
func ErrFormat(message string) error {
	return &AppError{
		Code:    CodeFormat,
		Message: message,
	}
}

// ErrRange creates an error for an out-of-range numeric value
func ErrRange(message string) error {
	return &AppError{
		Code:    CodeRange,
		Message: message,
	}
}

// ErrNotFoundWithMsg creates a not found error with custom message
func ErrNotFoundWithMsg(message string) error {
	return &AppError{
		Code:    CodeNotFound,
		Message: message,
		Err:     ErrNotFound,
	}
}

// ErrDuplicateWithMsg creates a unique-constraint violation error
func ErrDuplicateWithMsg(message string) error {
	return &AppError{
		Code:    CodeDuplicate,
		Message: message,
		Err:     ErrDuplicate,
	}
}

// ErrReferenceWithMsg creates an error for unresolvable entity references
func ErrReferenceWithMsg(message string) error {
	return &AppError{
		Code:    CodeReference,
		Message: message,
		Err:     ErrBadReference,
	}
}
