package cli

import (
	"errors"
	"testing"

	apperrors "kanban-board/internal/errors"
	"kanban-board/internal/validation"
)

func TestErrorHandler_Handle(t *testing.T) {
	eh := NewErrorHandler()

	tests := []struct {
		name      string
		operation string
		err       error
		expected  string
	}{
		{
			name:      "Validation error",
			operation: "add task",
			err:       apperrors.NewValidationError("title is required", nil),
			expected:  "failed to add task: title is required",
		},
		{
			name:      "Not found error",
			operation: "move task",
			err:       apperrors.NewNotFoundError("task", "123"),
			expected:  "failed to move task: task not found: 123",
		},
		{
			name:      "Storage error",
			operation: "list tasks",
			err:       apperrors.NewStorageError("select", errors.New("disk full")),
			expected:  "failed to list tasks: A storage error occurred. Please try again.",
		},
		{
			name:      "Transport error",
			operation: "list tasks",
			err:       apperrors.NewTransportError("list tasks", errors.New("connection refused")),
			expected:  "failed to list tasks: Could not reach the task server. Please try again.",
		},
		{
			name:      "Regular error",
			operation: "process",
			err:       errors.New("regular error"),
			expected:  "failed to process: regular error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := eh.Handle(tt.operation, tt.err)
			if result.Error() != tt.expected {
				t.Errorf("ErrorHandler.Handle() = %v, want %v", result.Error(), tt.expected)
			}
		})
	}
}

func TestErrorHandler_HandleSimple(t *testing.T) {
	eh := NewErrorHandler()

	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{
			name:     "Validation error",
			err:      apperrors.NewValidationError("invalid input", nil),
			expected: "invalid input",
		},
		{
			name:     "Not found error",
			err:      apperrors.NewNotFoundError("task", "123"),
			expected: "task not found: 123",
		},
		{
			name:     "Timeout error",
			err:      apperrors.NewTimeoutError("list tasks", "10s"),
			expected: "The operation timed out. Please try again.",
		},
		{
			name:     "Regular error",
			err:      errors.New("regular error"),
			expected: "regular error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := eh.HandleSimple(tt.err)
			if result.Error() != tt.expected {
				t.Errorf("ErrorHandler.HandleSimple() = %v, want %v", result.Error(), tt.expected)
			}
		})
	}
}

func TestErrorHandler_IsValidationError(t *testing.T) {
	eh := NewErrorHandler()

	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{
			name:     "AppError validation",
			err:      apperrors.NewValidationError("invalid input", nil),
			expected: true,
		},
		{
			name: "Field validation error",
			err: &validation.ValidationError{
				Errors: []validation.FieldError{
					{Field: "title", Message: "invalid"},
				},
			},
			expected: true,
		},
		{
			name:     "Storage error",
			err:      apperrors.NewStorageError("insert", nil),
			expected: false,
		},
		{
			name:     "Regular error",
			err:      errors.New("regular error"),
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := eh.IsValidationError(tt.err)
			if result != tt.expected {
				t.Errorf("ErrorHandler.IsValidationError() = %v, want %v", result, tt.expected)
			}
		})
	}
}

func TestErrorHandler_Predicates(t *testing.T) {
	eh := NewErrorHandler()

	if !eh.IsNotFoundError(apperrors.NewNotFoundError("task", "1")) {
		t.Error("IsNotFoundError() should be true for a not found error")
	}
	if eh.IsNotFoundError(errors.New("regular error")) {
		t.Error("IsNotFoundError() should be false for a regular error")
	}
	if !eh.IsStorageError(apperrors.NewStorageError("insert", nil)) {
		t.Error("IsStorageError() should be true for a storage error")
	}
	if eh.IsStorageError(apperrors.NewValidationError("invalid", nil)) {
		t.Error("IsStorageError() should be false for a validation error")
	}
}

func TestErrorHandler_GetErrorCode(t *testing.T) {
	eh := NewErrorHandler()

	if got := eh.GetErrorCode(apperrors.NewValidationError("invalid input", nil)); got != "VALIDATION_FAILED" {
		t.Errorf("GetErrorCode() = %v, want VALIDATION_FAILED", got)
	}
	if got := eh.GetErrorCode(errors.New("regular error")); got != "UNKNOWN_ERROR" {
		t.Errorf("GetErrorCode() = %v, want UNKNOWN_ERROR", got)
	}
}

func TestErrorHandler_HandleFieldErrors(t *testing.T) {
	eh := NewErrorHandler()

	validationErr := &validation.ValidationError{
		Errors: []validation.FieldError{
			{Field: "title", Message: "title is required"},
		},
	}

	result := eh.Handle("add task", validationErr)
	expected := "failed to add task: title is required"
	if result.Error() != expected {
		t.Errorf("ErrorHandler.Handle() with validation error = %v, want %v", result.Error(), expected)
	}
}

func TestErrorHandler_HandleNilError(t *testing.T) {
	eh := NewErrorHandler()

	if err := eh.Handle("test operation", nil); err != nil {
		t.Errorf("ErrorHandler.Handle() with nil error = %v, want nil", err)
	}
	if err := eh.HandleSimple(nil); err != nil {
		t.Errorf("ErrorHandler.HandleSimple() with nil error = %v, want nil", err)
	}
}
