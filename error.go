package dalil

import (
	"errors"
	"fmt"
)

// Application error codes.
//
// These are meant to be generic across the application, mapping well-defined
// failure classes to behavior at the call site rather than to transport
// status codes.
const (
	ECONFLICT  = "conflict"   // duplicate identifier
	EINTERNAL  = "internal"   // internal error
	EINVALID   = "invalid"    // validation failed
	ENOTFOUND  = "not_found"  // entity does not exist
	EPOLICY    = "policy"     // acquisition disallowed for a URL
	ERATELIMIT = "rate_limit" // remote signaled throttling
	ETIMEOUT   = "timeout"    // operation exceeded its allotted time
)

// Error represents an application-specific error. Application errors can be
// unwrapped by the caller to extract the code and message.
type Error struct {
	// Machine-readable error code.
	Code string

	// Human-readable message.
	Message string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("dalil error: code=%s message=%s", e.Code, e.Message)
}

// ErrorCode unwraps an application error and returns its code.
// Non-application errors always return EINTERNAL.
func ErrorCode(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Code
	}
	return EINTERNAL
}

// ErrorMessage unwraps an application error and returns its message.
// Non-application errors always return "Internal error".
func ErrorMessage(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Message
	}
	return "Internal error."
}

// Errorf is a helper function to return an Error with a given code and
// formatted message.
func Errorf(code string, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}
