// Package cache wraps a task repository with a Redis read-through cache for
// the full task listing.
package cache

import (
	"context"
	"sync"
	"time"

	"github.com/bytedance/sonic"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"kanban-board/internal/domain"
	"kanban-board/internal/errors"
	"kanban-board/internal/logging"
	"kanban-board/internal/repository"
)

// DefaultKeyPrefix namespaces cache keys when none is configured
const DefaultKeyPrefix = "kb"

// Repository caches ListTasks in Redis and evicts the entry after every
// successful mutation. Redis failures never fail a call; the base
// repository remains the source of truth.
type Repository struct {
	base   repository.Repository
	redis  *redis.Client
	ttl    time.Duration
	prefix string
	log    *logrus.Logger

	// gen counts committed mutations. A listing read from base is only
	// stored when no mutation committed since the read began, so a stale
	// listing never outlives the eviction that followed it.
	mu  sync.Mutex
	gen uint64
}

var _ repository.Repository = (*Repository)(nil)

// New creates a caching wrapper around base. A nil client or a zero ttl
// disables caching while keeping the wrapper usable.
func New(base repository.Repository, client *redis.Client, ttl time.Duration, prefix string, log *logrus.Logger) (*Repository, error) {
	if base == nil {
		return nil, errors.NewInvalidInputError("base", nil, "cache needs a base repository")
	}
	if ttl < 0 {
		ttl = 0
	}
	if prefix == "" {
		prefix = DefaultKeyPrefix
	}
	if log == nil {
		log = logging.Discard()
	}
	return &Repository{base: base, redis: client, ttl: ttl, prefix: prefix, log: log}, nil
}

func (c *Repository) tasksKey() string {
	return c.prefix + ":tasks"
}

// ListTasks serves the listing from Redis when present, otherwise loads it
// from the base repository and stores it for ttl.
func (c *Repository) ListTasks(ctx context.Context) ([]domain.Task, error) {
	if tasks, ok := c.load(ctx); ok {
		return tasks, nil
	}

	c.mu.Lock()
	gen := c.gen
	c.mu.Unlock()

	tasks, err := c.base.ListTasks(ctx)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	if c.gen == gen {
		c.store(ctx, tasks)
	} else {
		c.log.Debug("task listing changed during read, not caching")
	}
	c.mu.Unlock()
	return tasks, nil
}

func (c *Repository) GetTask(ctx context.Context, id string) (*domain.Task, error) {
	return c.base.GetTask(ctx, id)
}

func (c *Repository) CreateTask(ctx context.Context, task domain.Task) error {
	if err := c.base.CreateTask(ctx, task); err != nil {
		return err
	}
	c.evict(ctx)
	return nil
}

func (c *Repository) UpdateTask(ctx context.Context, task domain.Task) error {
	if err := c.base.UpdateTask(ctx, task); err != nil {
		return err
	}
	c.evict(ctx)
	return nil
}

func (c *Repository) DeleteTask(ctx context.Context, id string) error {
	if err := c.base.DeleteTask(ctx, id); err != nil {
		return err
	}
	c.evict(ctx)
	return nil
}

// Close closes the base repository. The Redis client belongs to the caller.
func (c *Repository) Close() error {
	return c.base.Close()
}

func (c *Repository) load(ctx context.Context) ([]domain.Task, bool) {
	if c.redis == nil {
		return nil, false
	}
	key := c.tasksKey()
	data, err := c.redis.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.log.WithError(err).WithField("key", key).Warn("task cache read failed")
			_ = c.redis.Del(ctx, key).Err()
		}
		return nil, false
	}
	var tasks []domain.Task
	if err := sonic.Unmarshal(data, &tasks); err != nil {
		c.log.WithError(err).WithField("key", key).Warn("discarding undecodable task cache entry")
		_ = c.redis.Del(ctx, key).Err()
		return nil, false
	}
	c.log.WithField("key", key).Debug("task cache hit")
	return tasks, true
}

func (c *Repository) store(ctx context.Context, tasks []domain.Task) {
	if c.redis == nil || c.ttl == 0 {
		return
	}
	data, err := sonic.Marshal(tasks)
	if err != nil {
		return
	}
	if err := c.redis.Set(ctx, c.tasksKey(), data, c.ttl).Err(); err != nil {
		c.log.WithError(err).Warn("task cache write failed")
	}
}

// evict records a committed mutation and drops the cached listing
func (c *Repository) evict(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gen++
	if c.redis == nil {
		return
	}
	if err := c.redis.Del(ctx, c.tasksKey()).Err(); err != nil {
		c.log.WithError(err).Warn("task cache eviction failed")
	}
}
