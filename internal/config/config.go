package config

import (
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"kanban-board/internal/server"
	"kanban-board/internal/validation"
)

// Storage backends
const (
	BackendSQLite = "sqlite"
	BackendJSON   = "json"
	BackendMemory = "memory"
	BackendRemote = "remote"
)

// Config holds all configuration options for the kanban board
type Config struct {
	Storage     StorageConfig     `toml:"storage" yaml:"storage"`
	Server      ServerConfig      `toml:"server" yaml:"server"`
	Client      ClientConfig      `toml:"client" yaml:"client"`
	Cache       CacheConfig       `toml:"cache" yaml:"cache"`
	Validation  ValidationConfig  `toml:"validation" yaml:"validation"`
	Application ApplicationConfig `toml:"application" yaml:"application"`
}

// StorageConfig selects and locates the task store
type StorageConfig struct {
	Backend   string `toml:"backend" yaml:"backend" env:"KB_STORAGE_BACKEND"`
	Path      string `toml:"path" yaml:"path" env:"KB_DB_PATH"`
	JSONPath  string `toml:"json_path" yaml:"json_path" env:"KB_JSON_PATH"`
	RemoteURL string `toml:"remote_url" yaml:"remote_url" env:"KB_REMOTE_URL"`
}

// ServerConfig holds the HTTP server settings
type ServerConfig struct {
	Addr            string        `toml:"addr" yaml:"addr" env:"KB_SERVER_ADDR"`
	BodyLimit       string        `toml:"body_limit" yaml:"body_limit" env:"KB_SERVER_BODY_LIMIT"`
	AllowOrigins    []string      `toml:"allow_origins" yaml:"allow_origins" env:"KB_SERVER_ALLOW_ORIGINS"`
	RequestTimeout  time.Duration `toml:"request_timeout" yaml:"request_timeout" env:"KB_SERVER_REQUEST_TIMEOUT"`
	ShutdownTimeout time.Duration `toml:"shutdown_timeout" yaml:"shutdown_timeout" env:"KB_SERVER_SHUTDOWN_TIMEOUT"`
}

// ClientConfig holds settings for talking to a remote server
type ClientConfig struct {
	Timeout time.Duration `toml:"timeout" yaml:"timeout" env:"KB_CLIENT_TIMEOUT"`
}

// CacheConfig enables the Redis read cache when RedisURL is set
type CacheConfig struct {
	RedisURL string        `toml:"redis_url" yaml:"redis_url" env:"KB_REDIS_URL"`
	TTL      time.Duration `toml:"ttl" yaml:"ttl" env:"KB_CACHE_TTL"`
	Prefix   string        `toml:"prefix" yaml:"prefix" env:"KB_CACHE_PREFIX"`
}

// ValidationConfig holds validation rules configuration
type ValidationConfig struct {
	TitleMinLength       int `toml:"title_min" yaml:"title_min" env:"KB_VALIDATION_TITLE_MIN"`
	TitleMaxLength       int `toml:"title_max" yaml:"title_max" env:"KB_VALIDATION_TITLE_MAX"`
	DescriptionMaxLength int `toml:"description_max" yaml:"description_max" env:"KB_VALIDATION_DESCRIPTION_MAX"`
}

// ApplicationConfig holds application-level configuration
type ApplicationConfig struct {
	Env       string        `toml:"env" yaml:"env" env:"KB_ENV"`
	LogLevel  string        `toml:"log_level" yaml:"log_level" env:"KB_LOG_LEVEL"`
	LogFormat string        `toml:"log_format" yaml:"log_format" env:"KB_LOG_FORMAT"`
	Timeout   time.Duration `toml:"timeout" yaml:"timeout" env:"KB_APP_TIMEOUT"`
}

// NewConfig creates a new configuration with sensible defaults
func NewConfig() *Config {
	homeDir, _ := os.UserHomeDir()
	dataDir := filepath.Join(homeDir, ".kb")
	srv := server.DefaultConfig()
	limits := validation.DefaultLimits()

	return &Config{
		Storage: StorageConfig{
			Backend:   BackendSQLite,
			Path:      filepath.Join(dataDir, "kb.db"),
			JSONPath:  filepath.Join(dataDir, "db.json"),
			RemoteURL: "http://localhost:8080/api",
		},
		Server: ServerConfig{
			Addr:            srv.Addr,
			BodyLimit:       srv.BodyLimit,
			AllowOrigins:    srv.AllowOrigins,
			RequestTimeout:  srv.RequestTimeout,
			ShutdownTimeout: srv.ShutdownTimeout,
		},
		Client: ClientConfig{
			Timeout: 10 * time.Second,
		},
		Cache: CacheConfig{
			TTL:    time.Minute,
			Prefix: "kb",
		},
		Validation: ValidationConfig{
			TitleMinLength:       limits.TitleMinLength,
			TitleMaxLength:       limits.TitleMaxLength,
			DescriptionMaxLength: limits.DescriptionMaxLength,
		},
		Application: ApplicationConfig{
			Env:       "production",
			LogLevel:  "info",
			LogFormat: "text",
			Timeout:   30 * time.Second,
		},
	}
}

// IsTesting reports whether KB_ENV selected the testing environment
func (c *Config) IsTesting() bool {
	return c.Application.Env == "testing"
}

// Limits returns the validation limits for the api layer
func (c *Config) Limits() validation.Limits {
	return validation.Limits{
		TitleMinLength:       c.Validation.TitleMinLength,
		TitleMaxLength:       c.Validation.TitleMaxLength,
		DescriptionMaxLength: c.Validation.DescriptionMaxLength,
	}
}

// ServerSettings converts the server section for server.New
func (c *Config) ServerSettings() server.Config {
	return server.Config{
		Addr:            c.Server.Addr,
		BodyLimit:       c.Server.BodyLimit,
		AllowOrigins:    c.Server.AllowOrigins,
		RequestTimeout:  c.Server.RequestTimeout,
		ShutdownTimeout: c.Server.ShutdownTimeout,
	}
}

// LoadFromEnvironment loads configuration from environment variables.
// Unparseable numeric and duration values are ignored.
func (c *Config) LoadFromEnvironment() error {
	// Storage configuration
	if v := os.Getenv("KB_STORAGE_BACKEND"); v != "" {
		c.Storage.Backend = strings.ToLower(v)
	}
	if v := os.Getenv("KB_DB_PATH"); v != "" {
		c.Storage.Path = v
	}
	if v := os.Getenv("KB_JSON_PATH"); v != "" {
		c.Storage.JSONPath = v
	}
	if v := os.Getenv("KB_REMOTE_URL"); v != "" {
		c.Storage.RemoteURL = v
	}

	// Server configuration
	if v := os.Getenv("KB_SERVER_ADDR"); v != "" {
		c.Server.Addr = v
	}
	if v := os.Getenv("KB_SERVER_BODY_LIMIT"); v != "" {
		c.Server.BodyLimit = v
	}
	if v := os.Getenv("KB_SERVER_ALLOW_ORIGINS"); v != "" {
		c.Server.AllowOrigins = splitList(v)
	}
	c.Server.RequestTimeout = ParseDurationWithFallback(os.Getenv("KB_SERVER_REQUEST_TIMEOUT"), c.Server.RequestTimeout)
	c.Server.ShutdownTimeout = ParseDurationWithFallback(os.Getenv("KB_SERVER_SHUTDOWN_TIMEOUT"), c.Server.ShutdownTimeout)

	// Client configuration
	c.Client.Timeout = ParseDurationWithFallback(os.Getenv("KB_CLIENT_TIMEOUT"), c.Client.Timeout)

	// Cache configuration
	if v := os.Getenv("KB_REDIS_URL"); v != "" {
		c.Cache.RedisURL = v
	}
	c.Cache.TTL = ParseDurationWithFallback(os.Getenv("KB_CACHE_TTL"), c.Cache.TTL)
	if v := os.Getenv("KB_CACHE_PREFIX"); v != "" {
		c.Cache.Prefix = v
	}

	// Validation configuration
	c.Validation.TitleMinLength = ParseIntWithFallback(os.Getenv("KB_VALIDATION_TITLE_MIN"), c.Validation.TitleMinLength)
	c.Validation.TitleMaxLength = ParseIntWithFallback(os.Getenv("KB_VALIDATION_TITLE_MAX"), c.Validation.TitleMaxLength)
	c.Validation.DescriptionMaxLength = ParseIntWithFallback(os.Getenv("KB_VALIDATION_DESCRIPTION_MAX"), c.Validation.DescriptionMaxLength)

	// Application configuration
	if v := os.Getenv("KB_ENV"); v != "" {
		c.Application.Env = strings.ToLower(v)
	}
	if v := os.Getenv("KB_LOG_LEVEL"); v != "" {
		c.Application.LogLevel = v
	}
	if v := os.Getenv("KB_LOG_FORMAT"); v != "" {
		c.Application.LogFormat = v
	}
	c.Application.Timeout = ParseDurationWithFallback(os.Getenv("KB_APP_TIMEOUT"), c.Application.Timeout)

	return nil
}

// Validate validates the configuration and returns any errors
func (c *Config) Validate() error {
	// Validate storage configuration
	switch c.Storage.Backend {
	case BackendSQLite:
		if c.Storage.Path == "" {
			return &ConfigError{Field: "storage.path", Message: "database path cannot be empty"}
		}
	case BackendJSON:
		if c.Storage.JSONPath == "" {
			return &ConfigError{Field: "storage.json_path", Message: "json file path cannot be empty"}
		}
	case BackendMemory:
	case BackendRemote:
		u, err := url.Parse(c.Storage.RemoteURL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return &ConfigError{Field: "storage.remote_url", Message: "remote url must be an absolute http(s) URL"}
		}
	default:
		return &ConfigError{Field: "storage.backend", Message: "backend must be one of sqlite, json, memory, remote"}
	}

	// Validate server configuration
	if c.Server.Addr == "" {
		return &ConfigError{Field: "server.addr", Message: "listen address cannot be empty"}
	}
	if c.Server.RequestTimeout < 0 {
		return &ConfigError{Field: "server.request_timeout", Message: "request timeout cannot be negative"}
	}
	if c.Server.ShutdownTimeout <= 0 {
		return &ConfigError{Field: "server.shutdown_timeout", Message: "shutdown timeout must be positive"}
	}

	// Validate client configuration
	if c.Client.Timeout <= 0 {
		return &ConfigError{Field: "client.timeout", Message: "client timeout must be positive"}
	}

	// Validate cache configuration
	if c.Cache.RedisURL != "" && c.Cache.TTL <= 0 {
		return &ConfigError{Field: "cache.ttl", Message: "cache ttl must be positive"}
	}

	// Validate validation configuration
	if c.Validation.TitleMinLength < 1 {
		return &ConfigError{Field: "validation.title_min", Message: "title minimum length must be at least 1"}
	}
	if c.Validation.TitleMaxLength < c.Validation.TitleMinLength {
		return &ConfigError{Field: "validation.title_max", Message: "title maximum length must be greater than minimum length"}
	}
	if c.Validation.DescriptionMaxLength < 0 {
		return &ConfigError{Field: "validation.description_max", Message: "description maximum length cannot be negative"}
	}

	// Validate application configuration
	if c.Application.Timeout <= 0 {
		return &ConfigError{Field: "application.timeout", Message: "application timeout must be positive"}
	}

	return nil
}

// ConfigError represents a configuration validation error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return e.Field + ": " + e.Message
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// ParseDurationWithFallback parses a duration string with a fallback value
func ParseDurationWithFallback(s string, fallback time.Duration) time.Duration {
	if d, err := time.ParseDuration(s); err == nil {
		return d
	}
	return fallback
}

// ParseIntWithFallback parses an integer string with a fallback value
func ParseIntWithFallback(s string, fallback int) int {
	if i, err := strconv.Atoi(s); err == nil {
		return i
	}
	return fallback
}
