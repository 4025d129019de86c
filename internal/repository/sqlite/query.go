package sqlite

import (
	"context"
	"database/sql"
	stderrors "errors"

	"kanban-board/internal/errors"
	"kanban-board/internal/repository"
)

const taskColumns = `seq, id, title, description, board_column`

// rowScanner is satisfied by both *sql.Row and *sql.Rows
type rowScanner interface {
	Scan(dest ...any) error
}

func scanTask(s rowScanner) (*Task, error) {
	var t Task
	if err := s.Scan(&t.Seq, &t.ID, &t.Title, &t.Description, &t.Column); err != nil {
		return nil, err
	}
	return &t, nil
}

// wrapDBError turns a driver error into an AppError. A context that
// expired mid-query surfaces as a timeout.
func wrapDBError(operation string, err error) error {
	if stderrors.Is(err, context.DeadlineExceeded) {
		timeoutErr := errors.NewTimeoutError(operation, nil)
		timeoutErr.Cause = err
		return timeoutErr
	}
	return errors.NewStorageError(operation, err)
}

// expectTaskRow reports a not-found task when a write touched no rows
func expectTaskRow(result sql.Result, id string) error {
	n, err := result.RowsAffected()
	if err != nil {
		return wrapDBError("count affected rows", err)
	}
	if n == 0 {
		return errors.NewNotFoundError(repository.EntityTask, id)
	}
	return nil
}

func (r *SQLiteRepository) queryTask(ctx context.Context, id string) (*Task, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+taskColumns+` FROM tasks WHERE id = ?`, id)
	t, err := scanTask(row)
	switch {
	case stderrors.Is(err, sql.ErrNoRows):
		return nil, errors.NewNotFoundError(repository.EntityTask, id)
	case err != nil:
		return nil, wrapDBError("get task", err)
	}
	return t, nil
}

func (r *SQLiteRepository) queryTasks(ctx context.Context) ([]*Task, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+taskColumns+` FROM tasks ORDER BY seq ASC`)
	if err != nil {
		return nil, wrapDBError("list tasks", err)
	}
	defer rows.Close()

	var out []*Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, wrapDBError("scan task", err)
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapDBError("list tasks", err)
	}
	return out, nil
}

// execForTask runs a statement that must touch the task with the given id
func (r *SQLiteRepository) execForTask(ctx context.Context, operation, id, query string, args ...any) error {
	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return wrapDBError(operation, err)
	}
	return expectTaskRow(result, id)
}
