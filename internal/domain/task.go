package domain

// Task represents a card on the board.
// This is a pure domain model without storage-specific concerns.
type Task struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Column      Column `json:"column"`
}

// NewTask creates a Task from create input, defaulting the column to backlog.
// The ID is left empty; the store assigns it.
func NewTask(input TaskInput) Task {
	column := ColumnBacklog
	if input.Column != nil {
		column = *input.Column
	}
	return Task{
		Title:       input.Title,
		Description: input.Description,
		Column:      column,
	}
}

// IsValid checks if the task has a title and a known column.
func (t Task) IsValid() bool {
	return t.Title != "" && t.Column.IsValid()
}

// String returns the task title for display purposes.
func (t Task) String() string {
	return t.Title
}
