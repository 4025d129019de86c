package domain

// TaskInput holds the fields accepted when creating a task.
// A nil Column means the task starts in the backlog.
type TaskInput struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Column      *Column `json:"column,omitempty"`
}

// TaskPatch is a partial update. Each field is applied only when non-nil.
type TaskPatch struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Column      *Column `json:"column,omitempty"`
}

// MovePatch returns a patch that only changes the column.
func MovePatch(column Column) TaskPatch {
	return TaskPatch{Column: &column}
}

// IsEmpty reports whether the patch changes nothing.
func (p TaskPatch) IsEmpty() bool {
	return p.Title == nil && p.Description == nil && p.Column == nil
}

// Apply returns a copy of t with the present fields of p merged in.
func (p TaskPatch) Apply(t Task) Task {
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.Column != nil {
		t.Column = *p.Column
	}
	return t
}

// StringPtr returns a pointer to s, for building patches.
func StringPtr(s string) *string {
	return &s
}

// ColumnPtr returns a pointer to c, for building inputs and patches.
func ColumnPtr(c Column) *Column {
	return &c
}
