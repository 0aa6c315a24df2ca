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
	ErrUnknown        ErrorCode = "UNKNOWN"
	ErrInternal       ErrorCode = "INTERNAL"
	ErrInvalidInput   ErrorCode = "INVALID_INPUT"
	ErrNotFound       ErrorCode = "NOT_FOUND"
	ErrAlreadyExists  ErrorCode = "ALREADY_EXISTS"
	ErrNotImplemented ErrorCode = "NOT_IMPLEMENTED"

	// Configuration errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigParse ErrorCode = "CONFIG_PARSE"
	ErrConfigValid ErrorCode = "CONFIG_INVALID"

	// Manifest errors
	ErrManifestRead  ErrorCode = "MANIFEST_READ"
	ErrManifestParse ErrorCode = "MANIFEST_PARSE"
	ErrManifestValid ErrorCode = "MANIFEST_INVALID"

	// Trigger errors
	ErrTriggerNotFound ErrorCode = "TRIGGER_NOT_FOUND"
	ErrTriggerInvalid  ErrorCode = "TRIGGER_INVALID"

	// Generation errors
	ErrSourceParse        ErrorCode = "SOURCE_PARSE"
	ErrExtraLoad          ErrorCode = "EXTRA_LOAD"
	ErrPlaceholderMissing ErrorCode = "PLACEHOLDER_MISSING"
	ErrTargetUnresolved   ErrorCode = "TARGET_UNRESOLVED"
	ErrTemplateNotFound   ErrorCode = "TEMPLATE_NOT_FOUND"
	ErrTemplateParse      ErrorCode = "TEMPLATE_PARSE"
	ErrTemplateExecute    ErrorCode = "TEMPLATE_EXECUTE"
	ErrEncodingUnknown    ErrorCode = "ENCODING_UNKNOWN"
	ErrEncodingConvert    ErrorCode = "ENCODING_CONVERT"

	// Pipeline errors
	ErrGateFailed ErrorCode = "GATE_FAILED"
	ErrWatch      ErrorCode = "WATCH"

	// FileSystem errors
	ErrFileNotFound ErrorCode = "FILE_NOT_FOUND"
	ErrFileAccess   ErrorCode = "FILE_ACCESS"
	ErrFileWrite    ErrorCode = "FILE_WRITE"
	ErrDirCreate    ErrorCode = "DIR_CREATE"
)

// VuegenError represents a structured error with code and details
type VuegenError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *VuegenError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *VuegenError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *VuegenError) Is(target error) bool {
	var targetErr *VuegenError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new VuegenError with the given code and message
func New(code ErrorCode, message string) *VuegenError {
	return &VuegenError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new VuegenError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *VuegenError {
	return &VuegenError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a VuegenError
func Wrap(err error, code ErrorCode, message string) *VuegenError {
	if err == nil {
		return nil
	}
	return &VuegenError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *VuegenError {
	if err == nil {
		return nil
	}
	return &VuegenError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *VuegenError) WithDetail(key string, value interface{}) *VuegenError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// WithDetails adds multiple details to the error
func (e *VuegenError) WithDetails(details map[string]interface{}) *VuegenError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	for k, v := range details {
		e.Details[k] = v
	}
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var vgErr *VuegenError
	if errors.As(err, &vgErr) {
		return vgErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a VuegenError
func GetErrorCode(err error) ErrorCode {
	var vgErr *VuegenError
	if errors.As(err, &vgErr) {
		return vgErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not a VuegenError
func GetErrorDetails(err error) map[string]interface{} {
	var vgErr *VuegenError
	if errors.As(err, &vgErr) {
		return vgErr.Details
	}
	return nil
}
