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

	// Configuration errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigParse ErrorCode = "CONFIG_PARSE"

	// Scan errors
	ErrScanRoot ErrorCode = "SCAN_ROOT"
	ErrScanRead ErrorCode = "SCAN_READ"

	// Plan generation errors
	ErrPlanTransport ErrorCode = "PLAN_TRANSPORT"
	ErrPlanParse     ErrorCode = "PLAN_PARSE"
	ErrPlanMalformed ErrorCode = "PLAN_MALFORMED"

	// Execution errors, one per failure kind a single operation can hit
	ErrUnsupportedOperation ErrorCode = "UNSUPPORTED_OPERATION"
	ErrSourceMissing        ErrorCode = "SOURCE_MISSING"
	ErrSourceNotAFile       ErrorCode = "SOURCE_NOT_A_FILE"
	ErrUnsafeDestination    ErrorCode = "UNSAFE_DESTINATION"
	ErrDirCreate            ErrorCode = "DIR_CREATE"
	ErrMoveFailed           ErrorCode = "MOVE_FAILED"
	ErrNameSpaceExhausted   ErrorCode = "NAMESPACE_EXHAUSTED"
)

// OrdnaError represents a structured error with code and details
type OrdnaError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *OrdnaError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *OrdnaError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *OrdnaError) Is(target error) bool {
	var targetErr *OrdnaError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new OrdnaError with the given code and message
func New(code ErrorCode, message string) *OrdnaError {
	return &OrdnaError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new OrdnaError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *OrdnaError {
	return &OrdnaError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with an OrdnaError
func Wrap(err error, code ErrorCode, message string) *OrdnaError {
	if err == nil {
		return nil
	}
	return &OrdnaError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *OrdnaError {
	if err == nil {
		return nil
	}
	return &OrdnaError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *OrdnaError) WithDetail(key string, value interface{}) *OrdnaError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var ordnaErr *OrdnaError
	if errors.As(err, &ordnaErr) {
		return ordnaErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not an OrdnaError
func GetErrorCode(err error) ErrorCode {
	var ordnaErr *OrdnaError
	if errors.As(err, &ordnaErr) {
		return ordnaErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not an OrdnaError
func GetErrorDetails(err error) map[string]interface{} {
	var ordnaErr *OrdnaError
	if errors.As(err, &ordnaErr) {
		return ordnaErr.Details
	}
	return nil
}
