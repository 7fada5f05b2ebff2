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
	ErrNotFound     ErrorCode = "NOT_FOUND"

	// Configuration errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigValid ErrorCode = "CONFIG_INVALID"

	// External command errors
	ErrCommand ErrorCode = "COMMAND"

	// FileSystem errors
	ErrFileAccess ErrorCode = "FILE_ACCESS"
	ErrFileWrite  ErrorCode = "FILE_WRITE"

	// Conversion errors. Everything up to ErrInventoryMismatch happens
	// before the point of no return and leaves the host untouched.
	ErrPreflight          ErrorCode = "PREFLIGHT"
	ErrUnsupportedVersion ErrorCode = "UNSUPPORTED_VERSION"
	ErrUserAbort          ErrorCode = "USER_ABORT"
	ErrInventoryMismatch  ErrorCode = "INVENTORY_MISMATCH"
	ErrCommit             ErrorCode = "COMMIT"
	ErrMergeConflict      ErrorCode = "MERGE_CONFLICT"
)

// PkgbasifyError represents a structured error with code and details
type PkgbasifyError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *PkgbasifyError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *PkgbasifyError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *PkgbasifyError) Is(target error) bool {
	var targetErr *PkgbasifyError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new PkgbasifyError with the given code and message
func New(code ErrorCode, message string) *PkgbasifyError {
	return &PkgbasifyError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new PkgbasifyError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *PkgbasifyError {
	return &PkgbasifyError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a PkgbasifyError
func Wrap(err error, code ErrorCode, message string) *PkgbasifyError {
	if err == nil {
		return nil
	}
	return &PkgbasifyError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *PkgbasifyError {
	if err == nil {
		return nil
	}
	return &PkgbasifyError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *PkgbasifyError) WithDetail(key string, value interface{}) *PkgbasifyError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var pbErr *PkgbasifyError
	if errors.As(err, &pbErr) {
		return pbErr.Code == code
	}
	return false
}

// GetErrorCode returns the outermost error code, or ErrUnknown if err
// carries none.
func GetErrorCode(err error) ErrorCode {
	var pbErr *PkgbasifyError
	if errors.As(err, &pbErr) {
		return pbErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not a PkgbasifyError
func GetErrorDetails(err error) map[string]interface{} {
	var pbErr *PkgbasifyError
	if errors.As(err, &pbErr) {
		return pbErr.Details
	}
	return nil
}

// IsPreCommit reports whether err belongs to the part of a conversion that
// runs before anything irreversible happened.
func IsPreCommit(err error) bool {
	if err == nil {
		return false
	}
	switch GetErrorCode(err) {
	case ErrCommit, ErrMergeConflict:
		return false
	default:
		return true
	}
}
