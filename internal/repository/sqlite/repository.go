package sqlite

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"

	"kanban-board/internal/domain"
	"kanban-board/internal/errors"
	"kanban-board/internal/repository"
	"kanban-board/internal/repository/sqlite/migrations"

	_ "modernc.org/sqlite"
)

// MemoryPath opens a private in-memory database
const MemoryPath = ":memory:"

// SQLiteRepository implements repository.Repository on top of SQLite
type SQLiteRepository struct {
	db *sql.DB
}

var _ repository.Repository = (*SQLiteRepository)(nil)

// New creates a new SQLite repository instance, creating the parent directory
// of dbPath when needed and running pending migrations.
func New(ctx context.Context, dbPath string) (*SQLiteRepository, error) {
	if dbPath != MemoryPath {
		if dir := filepath.Dir(dbPath); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, errors.NewStorageError("create database directory", err)
			}
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, errors.NewStorageError("open database", err)
	}
	// One connection serializes writers and keeps an in-memory database
	// from being split across connections.
	db.SetMaxOpenConns(1)

	if err := migrations.RunMigrations(ctx, db); err != nil {
		db.Close()
		return nil, errors.NewStorageError("run migrations", err)
	}

	return &SQLiteRepository{db: db}, nil
}

// Close closes the database connection
func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

// CreateTask inserts a task at the end of the collection
func (r *SQLiteRepository) CreateTask(ctx context.Context, task domain.Task) error {
	row := FromDomain(task)
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO tasks (id, title, description, board_column) VALUES (?, ?, ?, ?)`,
		row.ID, row.Title, row.Description, row.Column)
	if err != nil {
		return wrapDBError("create task", err)
	}
	return nil
}

// GetTask retrieves a task by ID
func (r *SQLiteRepository) GetTask(ctx context.Context, id string) (*domain.Task, error) {
	row, err := r.queryTask(ctx, id)
	if err != nil {
		return nil, err
	}
	task := row.ToDomain()
	return &task, nil
}

// ListTasks retrieves all tasks in insertion order
func (r *SQLiteRepository) ListTasks(ctx context.Context) ([]domain.Task, error) {
	rows, err := r.queryTasks(ctx)
	if err != nil {
		return nil, err
	}
	return ToDomainSlice(rows), nil
}

// UpdateTask overwrites the mutable fields of an existing task
func (r *SQLiteRepository) UpdateTask(ctx context.Context, task domain.Task) error {
	row := FromDomain(task)
	return r.execForTask(ctx, "update task", row.ID,
		`UPDATE tasks SET title = ?, description = ?, board_column = ? WHERE id = ?`,
		row.Title, row.Description, row.Column, row.ID)
}

// DeleteTask deletes a task by ID
func (r *SQLiteRepository) DeleteTask(ctx context.Context, id string) error {
	return r.execForTask(ctx, "delete task", id, `DELETE FROM tasks WHERE id = ?`, id)
}
