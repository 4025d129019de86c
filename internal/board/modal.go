package board

import (
	"context"
	"strings"

	"kanban-board/internal/domain"
	"kanban-board/internal/errors"
)

// ModalMode is the state of the task form
type ModalMode int

const (
	ModalClosed ModalMode = iota
	ModalCreate
	ModalEdit
)

func (m ModalMode) String() string {
	switch m {
	case ModalCreate:
		return "create"
	case ModalEdit:
		return "edit"
	default:
		return "closed"
	}
}

// Modal is closed, open for create in a target column, or open for edit
// bound to an existing task.
type Modal struct {
	Mode   ModalMode
	Column domain.Column
	Task   domain.Task
}

// IsOpen reports whether the form is showing
func (m Modal) IsOpen() bool {
	return m.Mode != ModalClosed
}

// Modal returns the current form state
func (b *Board) Modal() Modal {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.modal
}

// OpenCreate opens the form for a new task in column
func (b *Board) OpenCreate(column domain.Column) error {
	if !column.IsValid() {
		return errors.NewInvalidInputError("column", string(column), "must be a board column")
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.modal = Modal{Mode: ModalCreate, Column: column}
	return nil
}

// OpenEdit opens the form bound to the cached task with the given id
func (b *Board) OpenEdit(id string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	i := b.indexOf(id)
	if i < 0 {
		return errors.NewNotFoundError("task", id)
	}
	task := b.tasks[i]
	b.modal = Modal{Mode: ModalEdit, Column: task.Column, Task: task}
	return nil
}

// CloseModal discards the form
func (b *Board) CloseModal() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.modal = Modal{}
}

// SubmitModal saves the form. Create uses the column the form was opened
// from; edit keeps the task's column. The form stays open on failure.
func (b *Board) SubmitModal(ctx context.Context, title, description string) (*domain.Task, error) {
	modal := b.Modal()

	var (
		task *domain.Task
		err  error
	)
	switch modal.Mode {
	case ModalCreate:
		column := modal.Column
		task, err = b.Add(ctx, domain.TaskInput{
			Title:       strings.TrimSpace(title),
			Description: description,
			Column:      &column,
		})
	case ModalEdit:
		task, err = b.Edit(ctx, modal.Task.ID, domain.TaskPatch{
			Title:       domain.StringPtr(strings.TrimSpace(title)),
			Description: domain.StringPtr(description),
		})
	default:
		return nil, errors.NewInvalidInputError("modal", modal.Mode.String(), "no form is open")
	}
	if err != nil {
		return nil, err
	}

	b.CloseModal()
	return task, nil
}
