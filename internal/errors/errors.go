package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents stable error codes for all failure modes
type ErrorCode string

const (
	// ConfigInvalid indicates a malformed pattern catalog or configuration file
	ConfigInvalid ErrorCode = "CONFIG_INVALID"
	// DictionaryInvalid indicates a structurally non-conformant mapping dictionary
	DictionaryInvalid ErrorCode = "DICTIONARY_INVALID"
	// FileAccess indicates a file could not be read during a scan
	FileAccess ErrorCode = "FILE_ACCESS"
	// MatcherFailure indicates the pattern engine failed on a file
	MatcherFailure ErrorCode = "MATCHER_FAILURE"
	// NotFound indicates a lookup found no mapping (not a failure)
	NotFound ErrorCode = "NOT_FOUND"
	// InternalError indicates an unexpected error
	InternalError ErrorCode = "INTERNAL_ERROR"
)

// ElavonxError represents an elavonx error with a stable code and message
type ElavonxError struct {
	Code    ErrorCode   `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
	cause   error
}

// New creates a new ElavonxError
func New(code ErrorCode, message string) *ElavonxError {
	return &ElavonxError{Code: code, Message: message}
}

// Wrap creates a new ElavonxError wrapping an underlying cause
func Wrap(code ErrorCode, message string, cause error) *ElavonxError {
	return &ElavonxError{Code: code, Message: message, cause: cause}
}

// Error implements the error interface
func (e *ElavonxError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error
func (e *ElavonxError) Unwrap() error {
	return e.cause
}

// WithDetails adds details to the error
func (e *ElavonxError) WithDetails(details interface{}) *ElavonxError {
	e.Details = details
	return e
}

// CodeOf extracts the error code from an error chain.
// Returns InternalError for errors that carry no code.
func CodeOf(err error) ErrorCode {
	var ee *ElavonxError
	if errors.As(err, &ee) {
		return ee.Code
	}
	return InternalError
}

// IsNotFound reports whether err is a lookup miss.
func IsNotFound(err error) bool {
	return CodeOf(err) == NotFound
}
