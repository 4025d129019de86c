package cli

import (
	"fmt"

	"kanban-board/internal/errors"
	"kanban-board/internal/validation"
)

// ErrorHandler turns handler errors into the one-line messages printed by
// kb. Internal causes of storage, timeout and transport failures are hidden.
type ErrorHandler struct{}

func NewErrorHandler() *ErrorHandler {
	return &ErrorHandler{}
}

// userMessage returns the text for err and whether it was recognised
func (eh *ErrorHandler) userMessage(err error) (string, bool) {
	if ve, ok := err.(*validation.ValidationError); ok {
		return ve.GetUserFriendlyMessage(), true
	}
	if errors.IsAppError(err) {
		return errors.GetUserMessage(err), true
	}
	return "", false
}

// Handle prefixes the user message with the failed operation
func (eh *ErrorHandler) Handle(operation string, err error) error {
	if err == nil {
		return nil
	}
	if msg, ok := eh.userMessage(err); ok {
		return fmt.Errorf("failed to %s: %s", operation, msg)
	}
	return fmt.Errorf("failed to %s: %w", operation, err)
}

// HandleSimple is Handle without the operation prefix
func (eh *ErrorHandler) HandleSimple(err error) error {
	if err == nil {
		return nil
	}
	if msg, ok := eh.userMessage(err); ok {
		return fmt.Errorf("%s", msg)
	}
	return err
}

func (eh *ErrorHandler) IsValidationError(err error) bool {
	return validation.IsValidationError(err) || errors.IsErrorType(err, errors.ErrorTypeValidation)
}

func (eh *ErrorHandler) IsNotFoundError(err error) bool {
	return errors.IsNotFound(err)
}

func (eh *ErrorHandler) IsStorageError(err error) bool {
	return errors.IsErrorType(err, errors.ErrorTypeStorage)
}

// GetErrorCode returns the error code for structured errors
func (eh *ErrorHandler) GetErrorCode(err error) string {
	return errors.GetErrorCode(err)
}
