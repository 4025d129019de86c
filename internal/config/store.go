package config

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"kanban-board/internal/api"
	"kanban-board/internal/remote"
	"kanban-board/internal/repository"
	"kanban-board/internal/repository/cache"
	"kanban-board/internal/repository/jsonfile"
	"kanban-board/internal/repository/sqlite"
)

// Store is a task API together with the resources behind it
type Store struct {
	API     api.API
	closers []func() error
}

// NewStore wraps an API with the functions that release its resources
func NewStore(a api.API, closers ...func() error) *Store {
	return &Store{API: a, closers: closers}
}

// Close releases the repository and any cache connection
func (s *Store) Close() error {
	var first error
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i](); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// CreateRepository opens the local repository selected by the storage backend
func CreateRepository(ctx context.Context, config *Config) (repository.Repository, error) {
	switch config.Storage.Backend {
	case BackendSQLite:
		repo, err := sqlite.New(ctx, config.Storage.Path)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize database: %w", err)
		}
		return repo, nil
	case BackendMemory:
		repo, err := sqlite.New(ctx, sqlite.MemoryPath)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize in-memory database: %w", err)
		}
		return repo, nil
	case BackendJSON:
		return jsonfile.New(config.Storage.JSONPath)
	default:
		return nil, &ConfigError{Field: "storage.backend", Message: fmt.Sprintf("%q has no local repository", config.Storage.Backend)}
	}
}

// CreateStore builds the task API for the configured backend. Local
// backends get the validating api layer and, when a Redis URL is set, the
// list cache; the remote backend talks to a kb server directly.
func CreateStore(ctx context.Context, config *Config, log *logrus.Logger) (*Store, error) {
	if config.Storage.Backend == BackendRemote {
		client, err := remote.New(config.Storage.RemoteURL, config.Client.Timeout)
		if err != nil {
			return nil, err
		}
		return &Store{API: client}, nil
	}

	repo, err := CreateRepository(ctx, config)
	if err != nil {
		return nil, err
	}
	store := &Store{closers: []func() error{repo.Close}}

	if config.Cache.RedisURL != "" {
		opts, err := redis.ParseURL(config.Cache.RedisURL)
		if err != nil {
			_ = store.Close()
			return nil, &ConfigError{Field: "cache.redis_url", Message: err.Error()}
		}
		rc := redis.NewClient(opts)
		store.closers = append(store.closers, rc.Close)
		cached, err := cache.New(repo, rc, config.Cache.TTL, config.Cache.Prefix, log)
		if err != nil {
			_ = store.Close()
			return nil, err
		}
		repo = cached
		log.WithField("addr", opts.Addr).Debug("task list cache enabled")
	}

	store.API = api.New(repo, api.WithLogger(log), api.WithLimits(config.Limits()))
	return store, nil
}
