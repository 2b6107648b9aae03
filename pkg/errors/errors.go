package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a unique error code for stable testing
type ErrorCode string

// Error codes for different error categories
const (
	// General errors
	ErrUnknown      ErrorCode = "UNKNOWN"
	ErrInternal     ErrorCode = "INTERNAL"
	ErrInvalidInput ErrorCode = "INVALID_INPUT"

	// Template location errors
	ErrTemplatesNotFound ErrorCode = "TEMPLATES_NOT_FOUND"
	ErrTemplatesInvalid  ErrorCode = "TEMPLATES_INVALID"

	// Manifest errors
	ErrVariantMissing  ErrorCode = "VARIANT_MISSING"
	ErrDuplicateTarget ErrorCode = "DUPLICATE_TARGET"

	// Materialization errors
	ErrTargetExists ErrorCode = "TARGET_EXISTS"
	ErrDirCreate    ErrorCode = "DIR_CREATE"
	ErrFileCopy     ErrorCode = "FILE_COPY"
	ErrFileWrite    ErrorCode = "FILE_WRITE"
	ErrFileAccess   ErrorCode = "FILE_ACCESS"

	// Configuration errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigParse ErrorCode = "CONFIG_PARSE"
)

// ProtreeError represents a structured error with code and details
type ProtreeError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *ProtreeError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *ProtreeError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *ProtreeError) Is(target error) bool {
	var targetErr *ProtreeError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new ProtreeError with the given code and message
func New(code ErrorCode, message string) *ProtreeError {
	return &ProtreeError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new ProtreeError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *ProtreeError {
	return &ProtreeError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a ProtreeError
func Wrap(err error, code ErrorCode, message string) *ProtreeError {
	if err == nil {
		return nil
	}
	return &ProtreeError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *ProtreeError {
	if err == nil {
		return nil
	}
	return &ProtreeError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *ProtreeError) WithDetail(key string, value interface{}) *ProtreeError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var perr *ProtreeError
	if errors.As(err, &perr) {
		return perr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a ProtreeError
func GetErrorCode(err error) ErrorCode {
	var perr *ProtreeError
	if errors.As(err, &perr) {
		return perr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not a ProtreeError
func GetErrorDetails(err error) map[string]interface{} {
	var perr *ProtreeError
	if errors.As(err, &perr) {
		return perr.Details
	}
	return nil
}
