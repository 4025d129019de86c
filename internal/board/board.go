// Package board holds the client-side view of the task board: a cached copy
// of the collection, the search query and the edit modal, reconciled with the
// store after every confirmed mutation.
package board

import (
	"context"
	"iter"
	"slices"
	"sync"

	"kanban-board/internal/api"
	"kanban-board/internal/domain"
	"kanban-board/internal/errors"
	"kanban-board/internal/services"
)

// Board is an explicit state container around a task store. Callers read
// state through accessors and change it only through the operations below.
// The cache changes only after the store confirms a mutation.
type Board struct {
	store  api.API
	search services.SearchService
	notify Notifier

	// mu guards the fields below; it is never held across a store call
	mu          sync.RWMutex
	tasks       []domain.Task
	searchQuery string
	modal       Modal
}

// Option configures a Board
type Option func(*Board)

// WithNotifier routes success and failure notices to n
func WithNotifier(n Notifier) Option {
	return func(b *Board) {
		if n != nil {
			b.notify = n
		}
	}
}

// WithSearchService replaces the default search implementation
func WithSearchService(s services.SearchService) Option {
	return func(b *Board) {
		if s != nil {
			b.search = s
		}
	}
}

// New creates an empty board bound to store. Call Refresh to load it.
func New(store api.API, opts ...Option) *Board {
	b := &Board{
		store:  store,
		search: services.NewSearchService(),
		notify: discardNotifier{},
		tasks:  []domain.Task{},
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Tasks returns a copy of the cached collection
func (b *Board) Tasks() []domain.Task {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return slices.Clone(b.tasks)
}

// SearchQuery returns the current free-text filter
func (b *Board) SearchQuery() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.searchQuery
}

// SetSearchQuery replaces the free-text filter
func (b *Board) SetSearchQuery(query string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.searchQuery = query
}

// Task returns the cached task with the given id
func (b *Board) Task(id string) (domain.Task, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	i := b.indexOf(id)
	if i < 0 {
		return domain.Task{}, false
	}
	return b.tasks[i], true
}

// Refresh replaces the cache wholesale with the store's listing
func (b *Board) Refresh(ctx context.Context) error {
	tasks, err := b.store.ListTasks(ctx)
	if err != nil {
		return b.fail(err)
	}

	b.mu.Lock()
	b.tasks = slices.Clone(tasks)
	if b.tasks == nil {
		b.tasks = []domain.Task{}
	}
	b.mu.Unlock()
	return nil
}

// Add creates a task and appends the stored result to the cache. A refresh
// that landed after the store committed may already hold it.
func (b *Board) Add(ctx context.Context, input domain.TaskInput) (*domain.Task, error) {
	task, err := b.store.CreateTask(ctx, input)
	if err != nil {
		return nil, b.fail(err)
	}

	b.upsert(*task)

	b.notify.Notify(Success(MsgCreated))
	return task, nil
}

// Edit applies patch in the store and replaces the cached task with the result
func (b *Board) Edit(ctx context.Context, id string, patch domain.TaskPatch) (*domain.Task, error) {
	task, err := b.edit(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	b.notify.Notify(Success(MsgUpdated))
	return task, nil
}

func (b *Board) edit(ctx context.Context, id string, patch domain.TaskPatch) (*domain.Task, error) {
	task, err := b.store.UpdateTask(ctx, id, patch)
	if err != nil {
		return nil, b.fail(err)
	}

	b.upsert(*task)
	return task, nil
}

// Remove deletes a task in the store and drops it from the cache
func (b *Board) Remove(ctx context.Context, id string) error {
	if err := b.store.DeleteTask(ctx, id); err != nil {
		return b.fail(err)
	}

	b.mu.Lock()
	if i := b.indexOf(id); i >= 0 {
		b.tasks = slices.Delete(b.tasks, i, i+1)
	}
	b.mu.Unlock()

	b.notify.Notify(Success(MsgDeleted))
	return nil
}

// Move is Edit with only the column set
func (b *Board) Move(ctx context.Context, id string, column domain.Column) (*domain.Task, error) {
	task, err := b.edit(ctx, id, domain.MovePatch(column))
	if err != nil {
		return nil, err
	}
	b.notify.Notify(Success(MovedMessage(column)))
	return task, nil
}

// Drop completes a drag gesture. Cancelled gestures change nothing and
// report moved as false.
func (b *Board) Drop(ctx context.Context, result domain.DropResult) (moved bool, err error) {
	intent, ok := domain.ResolveDrop(result)
	if !ok {
		return false, nil
	}
	if _, err := b.Move(ctx, intent.TaskID, intent.Column); err != nil {
		return false, err
	}
	return true, nil
}

// FilterByColumn lazily yields the cached tasks in column that match the
// current search query, in their cached order.
func (b *Board) FilterByColumn(column domain.Column) iter.Seq[domain.Task] {
	tasks := b.Tasks()
	query := b.SearchQuery()
	return b.search.FilterByColumn(tasks, column, query)
}

// MatchesSearch reports whether task matches query
func (b *Board) MatchesSearch(task domain.Task, query string) bool {
	return b.search.MatchesSearch(task, query)
}

// Columns returns the filtered board grouped by column, in board order
func (b *Board) Columns() []services.ColumnGroup {
	return b.search.GroupByColumn(b.Tasks(), b.SearchQuery())
}

// upsert replaces the cached task with the same id, or appends task
func (b *Board) upsert(task domain.Task) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if i := b.indexOf(task.ID); i >= 0 {
		b.tasks[i] = task
		return
	}
	b.tasks = append(b.tasks, task)
}

func (b *Board) indexOf(id string) int {
	return slices.IndexFunc(b.tasks, func(t domain.Task) bool { return t.ID == id })
}

// fail reports err to the notifier and returns it unchanged
func (b *Board) fail(err error) error {
	b.notify.Notify(Failure(errors.GetUserMessage(err)))
	return err
}
