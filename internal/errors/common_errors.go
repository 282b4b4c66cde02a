package errors

import (
	"errors"
	"fmt"
)

// ErrorType represents the type of error
type ErrorType string

const (
	ErrTypeFormat       ErrorType = "FORMAT"
	ErrTypeSymmetry     ErrorType = "SYMMETRY"
	ErrTypeNoData       ErrorType = "NO_DATA"
	ErrTypeDataMismatch ErrorType = "DATA_MISMATCH"
	ErrTypeValidation   ErrorType = "VALIDATION"
	ErrTypeNotFound     ErrorType = "NOT_FOUND"
	ErrTypeConfig       ErrorType = "CONFIG"
	ErrTypeStorage      ErrorType = "STORAGE"
	ErrTypeState        ErrorType = "STATE"
)

// AppError represents an application-specific error
type AppError struct {
	Type    ErrorType
	Message string
	Cause   error
	Context map[string]interface{}
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Type, e.Message)
}

// Unwrap allows errors.Is and errors.As to work with AppError
func (e *AppError) Unwrap() error {
	return e.Cause
}

// WithContext adds context to the error
func (e *AppError) WithContext(key string, value interface{}) *AppError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// NewAppError creates a new application error
func NewAppError(errType ErrorType, message string, cause error) *AppError {
	return &AppError{
		Type:    errType,
		Message: message,
		Cause:   cause,
		Context: make(map[string]interface{}),
	}
}

// TypeOf returns the ErrorType of the first AppError in err's chain.
func TypeOf(err error) (ErrorType, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Type, true
	}
	return "", false
}

// IsType reports whether err wraps an AppError of the given type.
func IsType(err error, errType ErrorType) bool {
	t, ok := TypeOf(err)
	return ok && t == errType
}

// Helper functions for common error types

// NewFormatError creates a reflection-file layout error. line is 1-based; pass 0
// when the problem is not tied to a single line.
func NewFormatError(path string, line int, message string, cause error) *AppError {
	err := NewAppError(ErrTypeFormat, message, cause).WithContext("path", path)
	if line > 0 {
		err.WithContext("line", line)
	}
	return err
}

// NewUnknownSymmetryError creates an error for a Laue class missing from the registry
func NewUnknownSymmetryError(label string) *AppError {
	return NewAppError(ErrTypeSymmetry, fmt.Sprintf("unknown Laue class %q", label), nil).
		WithContext("symmetry", label)
}

// NewNoDataError creates an error for a dataset left empty by filtering
func NewNoDataError(message string) *AppError {
	return NewAppError(ErrTypeNoData, message, nil)
}

// NewDataMismatchError creates an error for misaligned filtered datasets
func NewDataMismatchError(first, second int) *AppError {
	return NewAppError(ErrTypeDataMismatch, fmt.Sprintf("data mismatch: %d != %d", first, second), nil).
		WithContext("first", first).
		WithContext("second", second)
}

// NewAppValidationError creates a validation error for AppError type
func NewAppValidationError(message string) *AppError {
	return NewAppError(ErrTypeValidation, message, nil)
}

// NewNotFoundError creates a not found error
func NewNotFoundError(resource string) *AppError {
	return NewAppError(ErrTypeNotFound, fmt.Sprintf("%s not found", resource), nil)
}

// NewConfigError creates a configuration error
func NewConfigError(message string, cause error) *AppError {
	return NewAppError(ErrTypeConfig, message, cause)
}

// NewStorageError creates a storage-related error
func NewStorageError(message string, cause error) *AppError {
	return NewAppError(ErrTypeStorage, message, cause)
}

// NewStateError creates an error for an illegal lifecycle transition
func NewStateError(message string) *AppError {
	return NewAppError(ErrTypeState, message, nil)
}
