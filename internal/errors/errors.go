package errors

import (
	"errors"
	"fmt"
)

// NewValidationError reports input that breaks a task rule
func NewValidationError(message string, cause error) *AppError {
	return newAppError(ErrorTypeValidation, message, cause, nil)
}

// NewNotFoundError reports a missing resource, e.g. "task not found: 42"
func NewNotFoundError(resource string, identifier string) *AppError {
	return newAppError(ErrorTypeNotFound, fmt.Sprintf("%s not found: %s", resource, identifier), nil,
		map[string]interface{}{"resource": resource, "identifier": identifier})
}

// NewStorageError reports a failed persistence operation
func NewStorageError(operation string, cause error) *AppError {
	return newAppError(ErrorTypeStorage, "storage operation failed: "+operation, cause,
		map[string]interface{}{"operation": operation})
}

// NewInvalidInputError reports a malformed argument that never reached a store
func NewInvalidInputError(field string, value interface{}, reason string) *AppError {
	return newAppError(ErrorTypeInvalidInput, fmt.Sprintf("invalid input for %s: %s", field, reason), nil,
		map[string]interface{}{"field": field, "value": value, "reason": reason})
}

func NewTimeoutError(operation string, timeout interface{}) *AppError {
	return newAppError(ErrorTypeTimeout, "operation timed out: "+operation, nil,
		map[string]interface{}{"operation": operation, "timeout": timeout})
}

// NewTransportError reports a failed call to a remote task store
func NewTransportError(operation string, cause error) *AppError {
	return newAppError(ErrorTypeTransport, "request failed: "+operation, cause,
		map[string]interface{}{"operation": operation})
}

// WrapError wraps an existing error in the given category
func WrapError(err error, errorType ErrorType, message string) *AppError {
	return newAppError(errorType, message, err, nil)
}

// IsAppError checks if the error is an AppError
func IsAppError(err error) bool {
	_, ok := AsAppError(err)
	return ok
}

// AsAppError finds the first AppError in err's chain
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// IsErrorType checks if the error is of the specified type
func IsErrorType(err error, errorType ErrorType) bool {
	appErr, ok := AsAppError(err)
	return ok && appErr.IsType(errorType)
}

func IsNotFound(err error) bool {
	return IsErrorType(err, ErrorTypeNotFound)
}

// GetUserMessage returns the text to show a user. User errors keep their
// message; system errors get a fixed retry hint.
func GetUserMessage(err error) string {
	appErr, ok := AsAppError(err)
	if !ok {
		return err.Error()
	}
	if msg := appErr.Type.kind().userMessage; msg != "" {
		return msg
	}
	return appErr.Message
}

// GetErrorCode returns the error code for the error
func GetErrorCode(err error) string {
	if appErr, ok := AsAppError(err); ok {
		return appErr.Code
	}
	return unknownKind.code
}

// ShouldLogError reports whether err is a system failure worth logging.
// Errors caused by user input are not.
func ShouldLogError(err error) bool {
	if appErr, ok := AsAppError(err); ok {
		return appErr.Type.kind().internal
	}
	return true
}
