package validation

import (
	"kanban-board/internal/domain"
)

// TaskValidator provides validation for Task-related operations
type TaskValidator struct {
	validator *Validator
}

// NewTaskValidator creates a new task validator with default limits
func NewTaskValidator() *TaskValidator {
	return &TaskValidator{
		validator: NewValidator(),
	}
}

// NewTaskValidatorWithLimits creates a task validator enforcing the given limits
func NewTaskValidatorWithLimits(limits Limits) *TaskValidator {
	return &TaskValidator{
		validator: NewValidatorWithLimits(limits),
	}
}

func (tv *TaskValidator) checkTitle(ve *ValidationError, title string) {
	trimmed := tv.validator.TrimAndValidateString(title)
	if !tv.validator.IsNonEmptyString(trimmed) {
		ve.AddRequiredError("title")
		return
	}

	limits := tv.validator.Limits()
	if !tv.validator.IsValidStringLength(trimmed, limits.TitleMinLength, limits.TitleMaxLength) {
		ve.AddInvalidLengthError("title", trimmed, limits.TitleMinLength, limits.TitleMaxLength)
	}
	if !tv.validator.IsSingleLine(trimmed) {
		ve.AddInvalidCharacterError("title", trimmed)
	}
}

func (tv *TaskValidator) checkDescription(ve *ValidationError, description string) {
	max := tv.validator.Limits().DescriptionMaxLength
	if !tv.validator.IsValidStringLength(description, 0, max) {
		ve.AddInvalidLengthError("description", description, 0, max)
	}
}

func (tv *TaskValidator) checkColumn(ve *ValidationError, column domain.Column) {
	if !column.IsValid() {
		ve.AddInvalidValueError("column", string(column), "must be one of backlog, in-progress, review, done")
	}
}

// ValidateTitle validates a task title for creation or update
func (tv *TaskValidator) ValidateTitle(title string) error {
	ve := NewValidationError()
	tv.checkTitle(ve, title)
	return ve.OrNil()
}

// ValidateColumn validates a column value
func (tv *TaskValidator) ValidateColumn(column domain.Column) error {
	ve := NewValidationError()
	tv.checkColumn(ve, column)
	return ve.OrNil()
}

// ValidateTaskForCreation validates create input
func (tv *TaskValidator) ValidateTaskForCreation(input domain.TaskInput) error {
	ve := NewValidationError()
	tv.checkTitle(ve, input.Title)
	tv.checkDescription(ve, input.Description)
	if input.Column != nil {
		tv.checkColumn(ve, *input.Column)
	}
	return ve.OrNil()
}

// ValidateTaskForUpdate validates the task ID and every field present in the patch
func (tv *TaskValidator) ValidateTaskForUpdate(id string, patch domain.TaskPatch) error {
	ve := NewValidationError()
	if !tv.validator.IsNonEmptyString(id) {
		ve.AddRequiredError("id")
	}
	if patch.Title != nil {
		tv.checkTitle(ve, *patch.Title)
	}
	if patch.Description != nil {
		tv.checkDescription(ve, *patch.Description)
	}
	if patch.Column != nil {
		tv.checkColumn(ve, *patch.Column)
	}
	return ve.OrNil()
}

// ValidateTask validates a complete domain.Task, as read back from storage
func (tv *TaskValidator) ValidateTask(task domain.Task) error {
	ve := NewValidationError()
	if !tv.validator.IsNonEmptyString(task.ID) {
		ve.AddRequiredError("id")
	}
	tv.checkTitle(ve, task.Title)
	tv.checkDescription(ve, task.Description)
	tv.checkColumn(ve, task.Column)
	return ve.OrNil()
}

// ValidateTaskID validates a task ID
func (tv *TaskValidator) ValidateTaskID(id string) error {
	if !tv.validator.IsNonEmptyString(id) {
		ve := NewValidationError()
		ve.AddRequiredError("id")
		return ve
	}
	return nil
}

// CleanInput returns input with its title trimmed
func (tv *TaskValidator) CleanInput(input domain.TaskInput) domain.TaskInput {
	input.Title = tv.validator.TrimAndValidateString(input.Title)
	return input
}

// CleanPatch returns patch with its title, if present, trimmed
func (tv *TaskValidator) CleanPatch(patch domain.TaskPatch) domain.TaskPatch {
	if patch.Title != nil {
		patch.Title = domain.StringPtr(tv.validator.TrimAndValidateString(*patch.Title))
	}
	return patch
}
