package errors

import (
	"fmt"
)

// AppError represents a structured application error
type AppError struct {
	Code    string
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// New creates a new AppError
func New(code, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an error with additional context
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	if appErr, ok := err.(*AppError); ok {
		return &AppError{
			Code:    appErr.Code,
			Message: message,
			Cause:   appErr,
		}
	}
	return &AppError{
		Code:    CodeInternalError,
		Message: message,
		Cause:   err,
	}
}

// Wrapf wraps an error with formatted additional context
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return Wrap(err, fmt.Sprintf(format, args...))
}

// GetCode returns the error code if it's an AppError, otherwise "UNKNOWN"
func GetCode(err error) string {
	if appErr, ok := err.(*AppError); ok {
		return appErr.Code
	}
	return "UNKNOWN"
}

// Predefined error codes
const (
	CodeConfigInvalid      = "CONFIG_INVALID"
	CodeDatabaseError      = "DATABASE_ERROR"
	CodeValidationError    = "VALIDATION_ERROR"
	CodeNotFound           = "NOT_FOUND"
	CodeFetchFailure       = "FETCH_FAILURE"
	CodeInvalidSelection   = "INVALID_SELECTION"
	CodeIncompleteWorkflow = "INCOMPLETE_WORKFLOW"
	CodeInternalError      = "INTERNAL_ERROR"
)

// Common error constructors
func ConfigInvalid(message string) *AppError {
	return New(CodeConfigInvalid, message)
}

func DatabaseError(message string) *AppError {
	return New(CodeDatabaseError, message)
}

func ValidationError(message string) *AppError {
	return New(CodeValidationError, message)
}

func NotFound(resource string) *AppError {
	return New(CodeNotFound, fmt.Sprintf("%s not found", resource))
}

// FetchFailure wraps an upstream non-success or transport error. These are
// surfaced to callers, never retried silently nor cached as data.
func FetchFailure(endpoint string, cause error) *AppError {
	return &AppError{
		Code:    CodeFetchFailure,
		Message: fmt.Sprintf("fetch from %s failed", endpoint),
		Cause:   cause,
	}
}

// InvalidSelection marks a confirmation attempt with zero or unknown
// hypothesis ids, rejected before any write.
func InvalidSelection(message string) *AppError {
	return New(CodeInvalidSelection, message)
}

// IncompleteWorkflow marks a strategy or deep-dive request made before the
// gate opens. It carries guidance naming the missing step; it is an expected
// user-facing state, not an internal failure.
func IncompleteWorkflow(guidance string) *AppError {
	return New(CodeIncompleteWorkflow, guidance)
}

func InternalError(message string) *AppError {
	return New(CodeInternalError, message)
}
