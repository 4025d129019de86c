// Package repository defines the persistence contract shared by every task
// storage backend.
package repository

import (
	"context"

	"kanban-board/internal/domain"
)

// Repository persists the task collection. Implementations report a missing
// task as a not-found AppError and any other failure as a storage AppError.
type Repository interface {
	// ListTasks returns every task in insertion order.
	ListTasks(ctx context.Context) ([]domain.Task, error)
	GetTask(ctx context.Context, id string) (*domain.Task, error)
	// CreateTask appends task, whose ID has already been assigned.
	CreateTask(ctx context.Context, task domain.Task) error
	// UpdateTask replaces the stored task carrying the same ID.
	UpdateTask(ctx context.Context, task domain.Task) error
	DeleteTask(ctx context.Context, id string) error

	Close() error
}

// EntityTask is the resource name used in not-found errors.
const EntityTask = "task"
