package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Metrics   MetricsConfig   `yaml:"metrics"`
	Log       LogConfig       `yaml:"log"`
	Organizer OrganizerConfig `yaml:"organizer"`
}

type ServerConfig struct {
	HTTPPort int        `yaml:"http_port"`
	Auth     AuthConfig `yaml:"auth"`
}

// AuthConfig enables HTTP Basic authentication on the API.
// PasswordHash is an htpasswd style "$apr1$" or "$1$" crypt string.
type AuthConfig struct {
	Enabled      bool   `yaml:"enabled"`
	Username     string `yaml:"username"`
	PasswordHash string `yaml:"password_hash"`
}

type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
	Port    int  `yaml:"port"`
}

type LogConfig struct {
	Level      string `yaml:"level"`        // debug, info, warn, error
	File       string `yaml:"file"`         // optional, rotated copy of stdout
	MaxSizeMB  int    `yaml:"max_size_mb"`  // rotate after this size
	MaxBackups int    `yaml:"max_backups"`  // rotated files to keep
	MaxAgeDays int    `yaml:"max_age_days"` // 0 keeps files forever
}

type OrganizerConfig struct {
	Workers int `yaml:"workers"` // parallel classification workers per request
}

// ErrInvalidConfig is returned by Validate
var ErrInvalidConfig = errors.New("invalid config")

// DefaultConfig returns configuration with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort: 4444,
		},
		Metrics: MetricsConfig{
			Enabled: true,
			Port:    9090,
		},
		Log: LogConfig{
			Level:      "info",
			MaxSizeMB:  50,
			MaxBackups: 3,
		},
		Organizer: OrganizerConfig{
			Workers: 4,
		},
	}
}

// Load reads configuration from a YAML file.
// A missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks ports, worker count and log level
func (c *Config) Validate() error {
	if !validPort(c.Server.HTTPPort) {
		return fmt.Errorf("%w: server.http_port %d", ErrInvalidConfig, c.Server.HTTPPort)
	}
	if c.Server.Auth.Enabled {
		if c.Server.Auth.Username == "" {
			return fmt.Errorf("%w: server.auth.username is empty", ErrInvalidConfig)
		}
		if !strings.HasPrefix(c.Server.Auth.PasswordHash, "$apr1$") && !strings.HasPrefix(c.Server.Auth.PasswordHash, "$1$") {
			return fmt.Errorf("%w: server.auth.password_hash must be a $apr1$ or $1$ crypt string", ErrInvalidConfig)
		}
	}
	if c.Metrics.Enabled {
		if !validPort(c.Metrics.Port) {
			return fmt.Errorf("%w: metrics.port %d", ErrInvalidConfig, c.Metrics.Port)
		}
		if c.Metrics.Port == c.Server.HTTPPort {
			return fmt.Errorf("%w: metrics.port equals server.http_port", ErrInvalidConfig)
		}
	}
	if c.Organizer.Workers < 1 {
		return fmt.Errorf("%w: organizer.workers must be at least 1", ErrInvalidConfig)
	}
	if _, err := c.Log.SlogLevel(); err != nil {
		return err
	}
	if c.Log.File != "" && c.Log.MaxSizeMB < 1 {
		return fmt.Errorf("%w: log.max_size_mb must be at least 1", ErrInvalidConfig)
	}
	return nil
}

// SlogLevel maps the configured level name to a slog.Level
func (l LogConfig) SlogLevel() (slog.Level, error) {
	switch strings.ToLower(l.Level) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("%w: log.level %q", ErrInvalidConfig, l.Level)
	}
}

func validPort(p int) bool {
	return p > 0 && p < 65536
}
