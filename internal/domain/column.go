package domain

import (
	"fmt"
	"strings"
)

// Column is one of the four fixed lifecycle buckets a task belongs to.
type Column string

const (
	ColumnBacklog    Column = "backlog"
	ColumnInProgress Column = "in-progress"
	ColumnReview     Column = "review"
	ColumnDone       Column = "done"
)

var columnOrder = []Column{ColumnBacklog, ColumnInProgress, ColumnReview, ColumnDone}

var columnTitles = map[Column]string{
	ColumnBacklog:    "Backlog",
	ColumnInProgress: "In Progress",
	ColumnReview:     "Review",
	ColumnDone:       "Done",
}

// Columns returns every column in board order.
func Columns() []Column {
	out := make([]Column, len(columnOrder))
	copy(out, columnOrder)
	return out
}

// IsValid reports whether c is one of the four board columns.
func (c Column) IsValid() bool {
	_, ok := columnTitles[c]
	return ok
}

// Title returns the heading shown above the column.
func (c Column) Title() string {
	if title, ok := columnTitles[c]; ok {
		return title
	}
	return string(c)
}

// Label returns the column in running text, e.g. "in progress".
func (c Column) Label() string {
	return strings.ReplaceAll(string(c), "-", " ")
}

// Index returns the board position of c, or -1 for an unknown column.
func (c Column) Index() int {
	for i, col := range columnOrder {
		if col == c {
			return i
		}
	}
	return -1
}

// ParseColumn converts user input into a Column.
// Matching is case-insensitive and accepts spaces or underscores in place of the hyphen.
func ParseColumn(s string) (Column, error) {
	normalized := strings.ToLower(strings.TrimSpace(s))
	normalized = strings.NewReplacer(" ", "-", "_", "-").Replace(normalized)
	c := Column(normalized)
	if !c.IsValid() {
		return "", fmt.Errorf("unknown column %q: expected one of backlog, in-progress, review, done", s)
	}
	return c, nil
}
