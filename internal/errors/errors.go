package errors

import (
	stderrors "errors"
	"fmt"
)

// AppError represents an application-specific error
type AppError struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	Details   string `json:"details,omitempty"`
	Cause     error  `json:"-"`
	Operation string `json:"operation,omitempty"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error
func (e *AppError) Unwrap() error {
	return e.Cause
}

// NewAppError creates a new application error
func NewAppError(code, message string, cause error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// WithOperation adds operation context to the error
func (e *AppError) WithOperation(operation string) *AppError {
	e.Operation = operation
	return e
}

// WithDetails adds additional details to the error
func (e *AppError) WithDetails(details string) *AppError {
	e.Details = details
	return e
}

// Common error codes
const (
	ErrCodeParseError       = "PARSE_ERROR"
	ErrCodeInsufficientData = "INSUFFICIENT_DATA"
	ErrCodeInvalidInput     = "INVALID_INPUT"
	ErrCodeRenderError      = "RENDER_ERROR"
	ErrCodeServiceError     = "SERVICE_ERROR"
	ErrCodeInternalError    = "INTERNAL_ERROR"
)

// ParseError reports a field (usually a sold date) that could not be
// interpreted; it aborts the request immediately.
func ParseError(message string, cause error) *AppError {
	return NewAppError(ErrCodeParseError, message, cause)
}

// InsufficientData reports that no comparables survived filtering. The
// valuation engine must surface this rather than produce a degenerate ARV.
func InsufficientData(message string) *AppError {
	return NewAppError(ErrCodeInsufficientData, message, nil)
}

func InvalidInput(message string, cause error) *AppError {
	return NewAppError(ErrCodeInvalidInput, message, cause)
}

func RenderError(message string, cause error) *AppError {
	return NewAppError(ErrCodeRenderError, message, cause)
}

func ServiceError(message string, cause error) *AppError {
	return NewAppError(ErrCodeServiceError, message, cause)
}

func InternalError(message string, cause error) *AppError {
	return NewAppError(ErrCodeInternalError, message, cause)
}

// CodeOf extracts the AppError code from an error chain, or
// ErrCodeInternalError when the error is not an AppError.
func CodeOf(err error) string {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Code
	}
	return ErrCodeInternalError
}

// IsCode reports whether err carries the given AppError code
func IsCode(err error, code string) bool {
	return CodeOf(err) == code
}
