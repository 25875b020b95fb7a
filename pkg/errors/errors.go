package errors

import "fmt"

// ErrorType represents the category of a failed remote call
type ErrorType string

const (
	ErrorTypeTransport       ErrorType = "transport"
	ErrorTypeDecode          ErrorType = "decode"
	ErrorTypePathNotFound    ErrorType = "path_not_found"
	ErrorTypeAPI             ErrorType = "api"
	ErrorTypeTimeout         ErrorType = "timeout"
	ErrorTypeOperationFailed ErrorType = "operation_failed"
	ErrorTypeNetwork         ErrorType = "network"
	ErrorTypeNotInitialized  ErrorType = "not_initialized"
	ErrorTypeInvalidInput    ErrorType = "invalid_input"
)

// Error represents an API error with type information
type Error struct {
	Type    ErrorType
	Message string
	Code    int
}

func (e *Error) Error() string {
	if e.Code == 0 {
		return fmt.Sprintf("%s error: %s", e.Type, e.Message)
	}
	return fmt.Sprintf("%s error (code %d): %s", e.Type, e.Code, e.Message)
}

// New creates an error of the given type with no status code
func New(errorType ErrorType, message string) *Error {
	return &Error{Type: errorType, Message: message}
}

// Newf creates an error of the given type with a formatted message
func Newf(errorType ErrorType, format string, args ...interface{}) *Error {
	return &Error{Type: errorType, Message: fmt.Sprintf(format, args...)}
}

// WithCode returns a copy of the error carrying an HTTP status code
func (e *Error) WithCode(code int) *Error {
	c := *e
	c.Code = code
	return &c
}

// Is reports whether err is an *Error of the given type
func Is(err error, errorType ErrorType) bool {
	if err == nil {
		return false
	}
	e, ok := err.(*Error)
	return ok && e.Type == errorType
}

// IsRemote checks if an error type originates from the remote service
// rather than from local processing of its reply
func IsRemote(errorType ErrorType) bool {
	switch errorType {
	case ErrorTypeTransport, ErrorTypeAPI, ErrorTypeNetwork, ErrorTypeOperationFailed:
		return true
	case ErrorTypeDecode, ErrorTypePathNotFound, ErrorTypeInvalidInput:
		return false
	default:
		return false
	}
}
