package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestColumns(t *testing.T) {
	cols := Columns()
	assert.Equal(t, []Column{ColumnBacklog, ColumnInProgress, ColumnReview, ColumnDone}, cols)

	cols[0] = ColumnDone
	assert.Equal(t, ColumnBacklog, Columns()[0], "Columns must return a copy")
}

func TestParseColumn(t *testing.T) {
	tests := []struct {
		input    string
		expected Column
		wantErr  bool
	}{
		{input: "backlog", expected: ColumnBacklog},
		{input: "In-Progress", expected: ColumnInProgress},
		{input: "in progress", expected: ColumnInProgress},
		{input: "in_progress", expected: ColumnInProgress},
		{input: " REVIEW ", expected: ColumnReview},
		{input: "done", expected: ColumnDone},
		{input: "todo", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			col, err := ParseColumn(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "unknown column")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, col)
		})
	}
}

func TestColumn_Display(t *testing.T) {
	assert.Equal(t, "In Progress", ColumnInProgress.Title())
	assert.Equal(t, "in progress", ColumnInProgress.Label())
	assert.Equal(t, "Backlog", ColumnBacklog.Title())
	assert.Equal(t, 2, ColumnReview.Index())
	assert.Equal(t, -1, Column("todo").Index())
	assert.False(t, Column("todo").IsValid())
}
