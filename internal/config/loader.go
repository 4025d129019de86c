package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Loader handles loading configuration from multiple sources
type Loader struct {
	config *Config
	path   string
}

// NewLoader creates a new configuration loader. The config file, if any,
// is taken from KB_CONFIG.
func NewLoader() *Loader {
	return &Loader{
		config: NewConfig(),
		path:   os.Getenv("KB_CONFIG"),
	}
}

// WithFile sets the config file to read, overriding KB_CONFIG
func (l *Loader) WithFile(path string) *Loader {
	l.path = path
	return l
}

// Load loads configuration using the cascading strategy:
// 1. Start with defaults
// 2. Override with the config file (.toml, .yaml or .yml)
// 3. Override with environment variables
// 4. Override with command line flags (LoadWithOverrides)
func (l *Loader) Load() (*Config, error) {
	if l.path != "" {
		if err := loadFile(l.config, l.path); err != nil {
			return nil, err
		}
	}

	if err := l.config.LoadFromEnvironment(); err != nil {
		return nil, err
	}

	if l.config.IsTesting() {
		l.config.Storage.Backend = BackendMemory
	}

	if err := l.config.Validate(); err != nil {
		return nil, err
	}

	return l.config, nil
}

// LoadWithOverrides loads configuration and applies command line overrides
func (l *Loader) LoadWithOverrides(overrides *ConfigOverrides) (*Config, error) {
	config, err := l.Load()
	if err != nil {
		return nil, err
	}

	if overrides != nil {
		l.applyOverrides(config, overrides)
	}

	// Re-validate after applying overrides
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func loadFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return &ConfigError{Field: "config", Message: fmt.Sprintf("cannot read %s: %v", path, err)}
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if _, err := toml.Decode(string(data), cfg); err != nil {
			return &ConfigError{Field: "config", Message: fmt.Sprintf("invalid toml in %s: %v", path, err)}
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return &ConfigError{Field: "config", Message: fmt.Sprintf("invalid yaml in %s: %v", path, err)}
		}
	default:
		return &ConfigError{Field: "config", Message: "config file must end in .toml, .yaml or .yml"}
	}
	return nil
}

// ConfigOverrides holds command line flag overrides
type ConfigOverrides struct {
	// Storage overrides
	Backend   *string
	DBPath    *string
	JSONPath  *string
	RemoteURL *string

	// Server overrides
	Addr *string

	// Client overrides
	ClientTimeout *time.Duration

	// Cache overrides
	RedisURL *string

	// Validation overrides
	TitleMinLength *int
	TitleMaxLength *int

	// Application overrides
	LogLevel  *string
	LogFormat *string
	Timeout   *time.Duration
}

// applyOverrides applies command line overrides to the configuration
func (l *Loader) applyOverrides(config *Config, overrides *ConfigOverrides) {
	// Storage overrides
	if overrides.Backend != nil {
		config.Storage.Backend = strings.ToLower(*overrides.Backend)
	}
	if overrides.DBPath != nil {
		config.Storage.Path = *overrides.DBPath
	}
	if overrides.JSONPath != nil {
		config.Storage.JSONPath = *overrides.JSONPath
	}
	if overrides.RemoteURL != nil {
		config.Storage.RemoteURL = *overrides.RemoteURL
	}

	// Server overrides
	if overrides.Addr != nil {
		config.Server.Addr = *overrides.Addr
	}

	// Client overrides
	if overrides.ClientTimeout != nil {
		config.Client.Timeout = *overrides.ClientTimeout
	}

	// Cache overrides
	if overrides.RedisURL != nil {
		config.Cache.RedisURL = *overrides.RedisURL
	}

	// Validation overrides
	if overrides.TitleMinLength != nil {
		config.Validation.TitleMinLength = *overrides.TitleMinLength
	}
	if overrides.TitleMaxLength != nil {
		config.Validation.TitleMaxLength = *overrides.TitleMaxLength
	}

	// Application overrides
	if overrides.LogLevel != nil {
		config.Application.LogLevel = *overrides.LogLevel
	}
	if overrides.LogFormat != nil {
		config.Application.LogFormat = *overrides.LogFormat
	}
	if overrides.Timeout != nil {
		config.Application.Timeout = *overrides.Timeout
	}
}
