package api

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"kanban-board/internal/domain"
	"kanban-board/internal/errors"
	"kanban-board/internal/logging"
	"kanban-board/internal/repository"
	"kanban-board/internal/validation"
)

// API is the task store of record: CRUD over the board's task collection.
type API interface {
	// ListTasks returns the full collection in insertion order.
	ListTasks(ctx context.Context) ([]domain.Task, error)
	GetTask(ctx context.Context, id string) (*domain.Task, error)
	// CreateTask assigns a fresh id and defaults the column to backlog.
	CreateTask(ctx context.Context, input domain.TaskInput) (*domain.Task, error)
	// UpdateTask merges the present fields of patch into the stored task.
	UpdateTask(ctx context.Context, id string, patch domain.TaskPatch) (*domain.Task, error)
	DeleteTask(ctx context.Context, id string) error
	// MoveTask is UpdateTask with only the column set.
	MoveTask(ctx context.Context, id string, column domain.Column) (*domain.Task, error)
}

// maxIDAttempts bounds the retries when a minted id is already taken
const maxIDAttempts = 5

type apiImpl struct {
	repo      repository.Repository
	validator *validation.TaskValidator
	newID     func() string
	log       *logrus.Logger

	// mu serializes every read-modify-write against the repository
	mu sync.Mutex
}

// Option configures the API
type Option func(*apiImpl)

// WithLogger sets the logger used for mutation logging
func WithLogger(log *logrus.Logger) Option {
	return func(a *apiImpl) {
		if log != nil {
			a.log = log
		}
	}
}

// WithLimits sets the field limits enforced on create and update
func WithLimits(limits validation.Limits) Option {
	return func(a *apiImpl) {
		a.validator = validation.NewTaskValidatorWithLimits(limits)
	}
}

// WithIDGenerator replaces the random id source
func WithIDGenerator(gen func() string) Option {
	return func(a *apiImpl) {
		if gen != nil {
			a.newID = gen
		}
	}
}

// New creates a new API instance.
func New(repo repository.Repository, opts ...Option) API {
	a := &apiImpl{
		repo:      repo,
		validator: validation.NewTaskValidator(),
		newID:     func() string { return uuid.NewString() },
		log:       logging.Discard(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

func (a *apiImpl) ListTasks(ctx context.Context) ([]domain.Task, error) {
	tasks, err := a.repo.ListTasks(ctx)
	if err != nil {
		return nil, err
	}
	if tasks == nil {
		tasks = []domain.Task{}
	}
	return tasks, nil
}

func (a *apiImpl) GetTask(ctx context.Context, id string) (*domain.Task, error) {
	if err := a.validator.ValidateTaskID(id); err != nil {
		return nil, toAppError(err)
	}
	return a.repo.GetTask(ctx, id)
}

func (a *apiImpl) CreateTask(ctx context.Context, input domain.TaskInput) (*domain.Task, error) {
	if err := a.validator.ValidateTaskForCreation(input); err != nil {
		return nil, toAppError(err)
	}
	task := domain.NewTask(a.validator.CleanInput(input))

	a.mu.Lock()
	defer a.mu.Unlock()

	id, err := a.mintID(ctx)
	if err != nil {
		return nil, err
	}
	task.ID = id

	if err := a.repo.CreateTask(ctx, task); err != nil {
		return nil, err
	}

	a.log.WithFields(logrus.Fields{"id": task.ID, "column": task.Column}).Info("task created")
	return &task, nil
}

// mintID returns an id that no live task carries. Callers hold mu, so the
// id cannot be taken between the check and the insert.
func (a *apiImpl) mintID(ctx context.Context) (string, error) {
	for attempt := 0; attempt < maxIDAttempts; attempt++ {
		id := a.newID()
		_, err := a.repo.GetTask(ctx, id)
		if errors.IsNotFound(err) {
			return id, nil
		}
		if err != nil {
			return "", err
		}
		a.log.WithField("id", id).Warn("generated task id already in use, retrying")
	}
	return "", errors.NewStorageError("generate task id", nil).WithContext("attempts", maxIDAttempts)
}

func (a *apiImpl) UpdateTask(ctx context.Context, id string, patch domain.TaskPatch) (*domain.Task, error) {
	if err := a.validator.ValidateTaskForUpdate(id, patch); err != nil {
		return nil, toAppError(err)
	}
	patch = a.validator.CleanPatch(patch)

	a.mu.Lock()
	defer a.mu.Unlock()

	existing, err := a.repo.GetTask(ctx, id)
	if err != nil {
		return nil, err
	}
	if patch.IsEmpty() {
		return existing, nil
	}

	updated := patch.Apply(*existing)
	if err := a.repo.UpdateTask(ctx, updated); err != nil {
		return nil, err
	}

	a.log.WithFields(logrus.Fields{"id": id, "column": updated.Column}).Info("task updated")
	return &updated, nil
}

func (a *apiImpl) MoveTask(ctx context.Context, id string, column domain.Column) (*domain.Task, error) {
	return a.UpdateTask(ctx, id, domain.MovePatch(column))
}

func (a *apiImpl) DeleteTask(ctx context.Context, id string) error {
	if err := a.validator.ValidateTaskID(id); err != nil {
		return toAppError(err)
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if err := a.repo.DeleteTask(ctx, id); err != nil {
		return err
	}

	a.log.WithField("id", id).Info("task deleted")
	return nil
}

func toAppError(err error) error {
	if ve, ok := err.(*validation.ValidationError); ok {
		return ve.ToAppError()
	}
	return err
}
