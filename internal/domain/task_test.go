package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewTask(t *testing.T) {
	tests := []struct {
		name     string
		input    TaskInput
		expected Task
	}{
		{
			name:     "defaults column to backlog",
			input:    TaskInput{Title: "A", Description: ""},
			expected: Task{Title: "A", Description: "", Column: ColumnBacklog},
		},
		{
			name:     "keeps explicit column",
			input:    TaskInput{Title: "Ship it", Description: "v1", Column: ColumnPtr(ColumnReview)},
			expected: Task{Title: "Ship it", Description: "v1", Column: ColumnReview},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := NewTask(tt.input)
			assert.Equal(t, tt.expected, result)
			assert.Empty(t, result.ID)
		})
	}
}

func TestTask_IsValid(t *testing.T) {
	tests := []struct {
		name     string
		task     Task
		expected bool
	}{
		{
			name:     "valid task",
			task:     Task{ID: "1", Title: "Valid", Column: ColumnDone},
			expected: true,
		},
		{
			name:     "empty title",
			task:     Task{ID: "1", Title: "", Column: ColumnDone},
			expected: false,
		},
		{
			name:     "unknown column",
			task:     Task{ID: "1", Title: "Valid", Column: Column("todo")},
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.task.IsValid())
		})
	}
}

func TestTask_String(t *testing.T) {
	assert.Equal(t, "Fix login bug", Task{Title: "Fix login bug"}.String())
}

func TestTaskPatch_Apply(t *testing.T) {
	original := Task{ID: "t1", Title: "Fix login bug", Description: "500 on submit", Column: ColumnBacklog}

	tests := []struct {
		name     string
		patch    TaskPatch
		expected Task
	}{
		{
			name:     "empty patch changes nothing",
			patch:    TaskPatch{},
			expected: original,
		},
		{
			name:     "column only",
			patch:    MovePatch(ColumnDone),
			expected: Task{ID: "t1", Title: "Fix login bug", Description: "500 on submit", Column: ColumnDone},
		},
		{
			name:     "description can be cleared",
			patch:    TaskPatch{Description: StringPtr("")},
			expected: Task{ID: "t1", Title: "Fix login bug", Description: "", Column: ColumnBacklog},
		},
		{
			name: "all fields",
			patch: TaskPatch{
				Title:       StringPtr("Fix signup bug"),
				Description: StringPtr("400 on submit"),
				Column:      ColumnPtr(ColumnReview),
			},
			expected: Task{ID: "t1", Title: "Fix signup bug", Description: "400 on submit", Column: ColumnReview},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.patch.Apply(original))
		})
	}
	assert.Equal(t, "Fix login bug", original.Title, "Apply must not mutate its argument")
}

func TestTaskPatch_IsEmpty(t *testing.T) {
	assert.True(t, TaskPatch{}.IsEmpty())
	assert.False(t, MovePatch(ColumnDone).IsEmpty())
	assert.False(t, TaskPatch{Title: StringPtr("")}.IsEmpty())
}
