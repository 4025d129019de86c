// Package jsonfile stores the task collection as a single JSON document of
// the form {"tasks": [...]}.
package jsonfile

import (
	"context"
	stderrors "errors"
	"os"
	"path/filepath"
	"sync"

	"github.com/bytedance/sonic"

	"kanban-board/internal/domain"
	"kanban-board/internal/errors"
	"kanban-board/internal/repository"
)

// document is the on-disk shape
type document struct {
	Tasks []domain.Task `json:"tasks"`
}

// Repository keeps the whole collection in one file. Every operation reads
// the file, and every mutation rewrites it through a temp file and rename
// while holding mu, so only one writer touches the file at a time.
type Repository struct {
	path string
	mu   sync.Mutex
}

var _ repository.Repository = (*Repository)(nil)

// New returns a repository backed by path. The file is created on the first
// write; until then the collection is empty.
func New(path string) (*Repository, error) {
	if path == "" {
		return nil, errors.NewInvalidInputError("path", path, "json store path must not be empty")
	}
	return &Repository{path: path}, nil
}

// Path returns the file backing the repository
func (r *Repository) Path() string {
	return r.path
}

func (r *Repository) load() (*document, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		if stderrors.Is(err, os.ErrNotExist) {
			return &document{Tasks: []domain.Task{}}, nil
		}
		return nil, errors.NewStorageError("read task file", err)
	}

	doc := &document{}
	if len(data) == 0 {
		doc.Tasks = []domain.Task{}
		return doc, nil
	}
	if err := sonic.Unmarshal(data, doc); err != nil {
		return nil, errors.NewStorageError("decode task file", err).WithContext("path", r.path)
	}
	if doc.Tasks == nil {
		doc.Tasks = []domain.Task{}
	}
	return doc, nil
}

func (r *Repository) save(doc *document) error {
	data, err := sonic.ConfigStd.MarshalIndent(doc, "", "  ")
	if err != nil {
		return errors.NewStorageError("encode task file", err)
	}

	dir := filepath.Dir(r.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.NewStorageError("create task file directory", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(r.path)+".*.tmp")
	if err != nil {
		return errors.NewStorageError("create temp task file", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(append(data, '\n')); err != nil {
		tmp.Close()
		return errors.NewStorageError("write temp task file", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return errors.NewStorageError("sync temp task file", err)
	}
	if err := tmp.Close(); err != nil {
		return errors.NewStorageError("close temp task file", err)
	}
	if err := os.Rename(tmpName, r.path); err != nil {
		return errors.NewStorageError("replace task file", err)
	}
	return nil
}

func indexOf(tasks []domain.Task, id string) int {
	for i, t := range tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}

// ListTasks returns every task in file order
func (r *Repository) ListTasks(ctx context.Context) ([]domain.Task, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	doc, err := r.load()
	if err != nil {
		return nil, err
	}
	return doc.Tasks, nil
}

// GetTask returns the task with the given id
func (r *Repository) GetTask(ctx context.Context, id string) (*domain.Task, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	doc, err := r.load()
	if err != nil {
		return nil, err
	}
	i := indexOf(doc.Tasks, id)
	if i < 0 {
		return nil, errors.NewNotFoundError(repository.EntityTask, id)
	}
	task := doc.Tasks[i]
	return &task, nil
}

// CreateTask appends task to the document
func (r *Repository) CreateTask(ctx context.Context, task domain.Task) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	doc, err := r.load()
	if err != nil {
		return err
	}
	if indexOf(doc.Tasks, task.ID) >= 0 {
		return errors.NewStorageError("create task", stderrors.New("duplicate task id "+task.ID))
	}
	doc.Tasks = append(doc.Tasks, task)
	return r.save(doc)
}

// UpdateTask replaces the task with the same id in place
func (r *Repository) UpdateTask(ctx context.Context, task domain.Task) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	doc, err := r.load()
	if err != nil {
		return err
	}
	i := indexOf(doc.Tasks, task.ID)
	if i < 0 {
		return errors.NewNotFoundError(repository.EntityTask, task.ID)
	}
	doc.Tasks[i] = task
	return r.save(doc)
}

// DeleteTask removes the task with the given id
func (r *Repository) DeleteTask(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	doc, err := r.load()
	if err != nil {
		return err
	}
	i := indexOf(doc.Tasks, id)
	if i < 0 {
		return errors.NewNotFoundError(repository.EntityTask, id)
	}
	doc.Tasks = append(doc.Tasks[:i], doc.Tasks[i+1:]...)
	return r.save(doc)
}

// Close is a no-op; the file is not held open between operations
func (r *Repository) Close() error {
	return nil
}
