// Package apitest provides an in-memory api.API for tests of its consumers.
package apitest

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"kanban-board/internal/api"
	"kanban-board/internal/domain"
	"kanban-board/internal/errors"
)

// Fake is an in-memory task store. Setting FailWith makes every call return
// that error without touching the collection. Calls counts invocations per
// method name.
type Fake struct {
	mu       sync.Mutex
	tasks    []domain.Task
	nextID   int
	FailWith error
	Calls    map[string]int
}

var _ api.API = (*Fake)(nil)

// NewFake returns a fake seeded with tasks, which must already carry ids
func NewFake(tasks ...domain.Task) *Fake {
	return &Fake{
		tasks:  slices.Clone(tasks),
		nextID: len(tasks) + 1,
		Calls:  make(map[string]int),
	}
}

// Snapshot returns the stored collection
func (f *Fake) Snapshot() []domain.Task {
	f.mu.Lock()
	defer f.mu.Unlock()
	return slices.Clone(f.tasks)
}

func (f *Fake) begin(method string) error {
	f.Calls[method]++
	return f.FailWith
}

func (f *Fake) indexOf(id string) int {
	return slices.IndexFunc(f.tasks, func(t domain.Task) bool { return t.ID == id })
}

func (f *Fake) ListTasks(ctx context.Context) ([]domain.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.begin("ListTasks"); err != nil {
		return nil, err
	}
	out := slices.Clone(f.tasks)
	if out == nil {
		out = []domain.Task{}
	}
	return out, nil
}

func (f *Fake) GetTask(ctx context.Context, id string) (*domain.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.begin("GetTask"); err != nil {
		return nil, err
	}
	i := f.indexOf(id)
	if i < 0 {
		return nil, errors.NewNotFoundError("task", id)
	}
	task := f.tasks[i]
	return &task, nil
}

func (f *Fake) CreateTask(ctx context.Context, input domain.TaskInput) (*domain.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.begin("CreateTask"); err != nil {
		return nil, err
	}
	if input.Title == "" {
		return nil, errors.NewValidationError("title is required", nil)
	}
	task := domain.NewTask(input)
	task.ID = fmt.Sprintf("task-%d", f.nextID)
	f.nextID++
	f.tasks = append(f.tasks, task)
	return &task, nil
}

func (f *Fake) UpdateTask(ctx context.Context, id string, patch domain.TaskPatch) (*domain.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.begin("UpdateTask"); err != nil {
		return nil, err
	}
	i := f.indexOf(id)
	if i < 0 {
		return nil, errors.NewNotFoundError("task", id)
	}
	if patch.Column != nil && !patch.Column.IsValid() {
		return nil, errors.NewValidationError("column is invalid", nil)
	}
	f.tasks[i] = patch.Apply(f.tasks[i])
	task := f.tasks[i]
	return &task, nil
}

func (f *Fake) MoveTask(ctx context.Context, id string, column domain.Column) (*domain.Task, error) {
	return f.UpdateTask(ctx, id, domain.MovePatch(column))
}

func (f *Fake) DeleteTask(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.begin("DeleteTask"); err != nil {
		return err
	}
	i := f.indexOf(id)
	if i < 0 {
		return errors.NewNotFoundError("task", id)
	}
	f.tasks = slices.Delete(f.tasks, i, i+1)
	return nil
}
