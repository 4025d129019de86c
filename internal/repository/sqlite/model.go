package sqlite

import (
	"kanban-board/internal/domain"
)

// Task is a row of the tasks table. Seq is the storage-assigned insertion
// position and never leaves this package.
type Task struct {
	Seq         int64
	ID          string
	Title       string
	Description string
	Column      string
}

// ToDomain converts a row into a domain task
func (t *Task) ToDomain() domain.Task {
	return domain.Task{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Column:      domain.Column(t.Column),
	}
}

// FromDomain converts a domain task into a row
func FromDomain(task domain.Task) *Task {
	return &Task{
		ID:          task.ID,
		Title:       task.Title,
		Description: task.Description,
		Column:      string(task.Column),
	}
}

// ToDomainSlice converts rows into domain tasks, preserving order
func ToDomainSlice(rows []*Task) []domain.Task {
	tasks := make([]domain.Task, 0, len(rows))
	for _, row := range rows {
		tasks = append(tasks, row.ToDomain())
	}
	return tasks
}
