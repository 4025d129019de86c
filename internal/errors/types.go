package errors

import (
	"fmt"
)

// ErrorType represents the category of error
type ErrorType int

const (
	ErrorTypeValidation ErrorType = iota
	ErrorTypeNotFound
	ErrorTypeStorage
	ErrorTypeInvalidInput
	ErrorTypeTimeout
	ErrorTypeTransport
)

// kind describes how each category is named, coded and shown to users.
// An empty userMessage means the error's own message is safe to show.
type kind struct {
	name        string
	code        string
	userMessage string
	internal    bool
}

var kinds = map[ErrorType]kind{
	ErrorTypeValidation:   {name: "validation", code: "VALIDATION_FAILED"},
	ErrorTypeNotFound:     {name: "not_found", code: "NOT_FOUND"},
	ErrorTypeInvalidInput: {name: "invalid_input", code: "INVALID_INPUT"},
	ErrorTypeStorage: {
		name: "storage", code: "STORAGE_ERROR", internal: true,
		userMessage: "A storage error occurred. Please try again.",
	},
	ErrorTypeTimeout: {
		name: "timeout", code: "TIMEOUT", internal: true,
		userMessage: "The operation timed out. Please try again.",
	},
	ErrorTypeTransport: {
		name: "transport", code: "TRANSPORT_ERROR", internal: true,
		userMessage: "Could not reach the task server. Please try again.",
	},
}

var unknownKind = kind{
	name:        "unknown",
	code:        "UNKNOWN_ERROR",
	userMessage: "An unexpected error occurred. Please try again.",
	internal:    true,
}

func (et ErrorType) kind() kind {
	if k, ok := kinds[et]; ok {
		return k
	}
	return unknownKind
}

// String returns the lower-case name of the category
func (et ErrorType) String() string {
	return et.kind().name
}

// Code returns the stable machine-readable code for the category
func (et ErrorType) Code() string {
	return et.kind().code
}

// AppError represents a structured application error
type AppError struct {
	Type    ErrorType
	Message string
	Code    string
	Cause   error
	Context map[string]interface{}
}

func newAppError(t ErrorType, message string, cause error, ctx map[string]interface{}) *AppError {
	if ctx == nil {
		ctx = make(map[string]interface{})
	}
	return &AppError{Type: t, Message: message, Code: t.Code(), Cause: cause, Context: ctx}
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// Is matches another AppError with the same type and code, so sentinel
// comparisons work through wrapping.
func (e *AppError) Is(target error) bool {
	other, ok := target.(*AppError)
	return ok && e.Type == other.Type && e.Code == other.Code
}

// IsType checks if this error is of the specified type
func (e *AppError) IsType(errorType ErrorType) bool {
	return e.Type == errorType
}

// WithContext attaches a key/value pair and returns e for chaining
func (e *AppError) WithContext(key string, value interface{}) *AppError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

func (e *AppError) GetContext(key string) (interface{}, bool) {
	value, ok := e.Context[key]
	return value, ok
}
