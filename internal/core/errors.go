// internal/core/errors.go
package core

import "fmt"

// Error represents a structured error with code and optional cause.
type Error struct {
	Code    string
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As support.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is implements errors.Is matching by code.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Code == t.Code
	}
	return false
}

// WrapError creates a new error with the same code but with a cause.
func WrapError(base *Error, cause error) *Error {
	return &Error{
		Code:    base.Code,
		Message: base.Message,
		Cause:   cause,
	}
}

// Predefined errors
var (
	// Data errors
	ErrSymbolNotFound    = &Error{Code: "SYMBOL_NOT_FOUND", Message: "symbol not found"}
	ErrModelNotSupported = &Error{Code: "MODEL_NOT_SUPPORTED", Message: "prediction model not supported"}

	// Session errors
	ErrInvalidCredentials  = &Error{Code: "INVALID_CREDENTIALS", Message: "invalid credentials"}
	ErrInvalidRegistration = &Error{Code: "INVALID_REGISTRATION", Message: "invalid registration data"}
	ErrNotAuthenticated    = &Error{Code: "NOT_AUTHENTICATED", Message: "authentication required"}

	// Storage errors
	ErrStorageCorrupt = &Error{Code: "STORAGE_CORRUPT", Message: "persisted state unreadable"}
	ErrKeyNotFound    = &Error{Code: "KEY_NOT_FOUND", Message: "key not found"}

	// Config errors
	ErrConfigInvalid = &Error{Code: "CONFIG_INVALID", Message: "configuration invalid"}
	ErrConfigMissing = &Error{Code: "CONFIG_MISSING", Message: "required configuration missing"}
)
