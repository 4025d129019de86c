package sqlite

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"kanban-board/internal/domain"
	apperrors "kanban-board/internal/errors"
)

type fakeResult struct {
	affected int64
	err      error
}

func (r fakeResult) LastInsertId() (int64, error) { return 0, nil }
func (r fakeResult) RowsAffected() (int64, error) { return r.affected, r.err }

func TestWrapDBError(t *testing.T) {
	err := wrapDBError("list tasks", errors.New("disk I/O error"))
	assert.True(t, apperrors.IsErrorType(err, apperrors.ErrorTypeStorage))
	assert.Contains(t, err.Error(), "disk I/O error")

	err = wrapDBError("list tasks", fmt.Errorf("query: %w", context.DeadlineExceeded))
	assert.True(t, apperrors.IsErrorType(err, apperrors.ErrorTypeTimeout))
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestExpectTaskRow(t *testing.T) {
	assert.NoError(t, expectTaskRow(fakeResult{affected: 1}, "t1"))

	err := expectTaskRow(fakeResult{}, "t1")
	assert.True(t, apperrors.IsNotFound(err))
	assert.Contains(t, err.Error(), "t1")

	err = expectTaskRow(fakeResult{err: errors.New("driver gone")}, "t1")
	assert.True(t, apperrors.IsErrorType(err, apperrors.ErrorTypeStorage))
}

func TestModelMapping(t *testing.T) {
	task := domain.Task{ID: "t1", Title: "Write docs", Description: "d", Column: domain.ColumnReview}

	row := FromDomain(task)
	assert.Equal(t, "review", row.Column)
	assert.Equal(t, task, row.ToDomain())

	rows := []*Task{row, {ID: "t2", Title: "Ship", Column: "done"}}
	assert.Equal(t, []domain.Task{task, {ID: "t2", Title: "Ship", Column: domain.ColumnDone}}, ToDomainSlice(rows))
}
