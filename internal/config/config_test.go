package config

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Server.HTTPPort != 4444 {
		t.Errorf("HTTPPort = %d, want 4444", cfg.Server.HTTPPort)
	}
	if cfg.Organizer.Workers != 4 {
		t.Errorf("Workers = %d, want 4", cfg.Organizer.Workers)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := []byte("server:\n  http_port: 8080\nlog:\n  level: debug\norganizer:\n  workers: 8\n")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Server.HTTPPort != 8080 {
		t.Errorf("HTTPPort = %d, want 8080", cfg.Server.HTTPPort)
	}
	if cfg.Organizer.Workers != 8 {
		t.Errorf("Workers = %d, want 8", cfg.Organizer.Workers)
	}
	// untouched sections keep defaults
	if !cfg.Metrics.Enabled || cfg.Metrics.Port != 9090 {
		t.Errorf("Metrics = %+v, want defaults", cfg.Metrics)
	}
}

func TestLoadRejectsBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("server: [\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("Load() should fail on malformed YAML")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(*Config) {}, false},
		{"zero port", func(c *Config) { c.Server.HTTPPort = 0 }, true},
		{"port too large", func(c *Config) { c.Server.HTTPPort = 70000 }, true},
		{"metrics port clash", func(c *Config) { c.Metrics.Port = c.Server.HTTPPort }, true},
		{"metrics disabled ignores port", func(c *Config) { c.Metrics.Enabled = false; c.Metrics.Port = 0 }, false},
		{"no workers", func(c *Config) { c.Organizer.Workers = 0 }, true},
		{"unknown log level", func(c *Config) { c.Log.Level = "verbose" }, true},
		{"auth without username", func(c *Config) {
			c.Server.Auth = AuthConfig{Enabled: true, PasswordHash: "$apr1$12345678$9pHAGSBYtlmFtid2xxNog0"}
		}, true},
		{"auth with bcrypt hash", func(c *Config) {
			c.Server.Auth = AuthConfig{Enabled: true, Username: "admin", PasswordHash: "$2y$10$abc"}
		}, true},
		{"auth with apr1 hash", func(c *Config) {
			c.Server.Auth = AuthConfig{Enabled: true, Username: "admin", PasswordHash: "$apr1$12345678$9pHAGSBYtlmFtid2xxNog0"}
		}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Validate() error = %v, want ErrInvalidConfig", err)
			}
		})
	}
}

func TestSlogLevel(t *testing.T) {
	tests := []struct {
		level string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"", slog.LevelInfo},
		{"INFO", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
	}

	for _, tt := range tests {
		got, err := LogConfig{Level: tt.level}.SlogLevel()
		if err != nil {
			t.Fatalf("SlogLevel(%q) error = %v", tt.level, err)
		}
		if got != tt.want {
			t.Errorf("SlogLevel(%q) = %v, want %v", tt.level, got, tt.want)
		}
	}
}

func TestNewLoggerWritesRotatedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wsindex.log")
	cfg := LogConfig{Level: "info", File: path, MaxSizeMB: 1, MaxBackups: 1}

	var stdout strings.Builder
	logger, closer, err := cfg.NewLogger(&stdout)
	if err != nil {
		t.Fatalf("NewLogger() error = %v", err)
	}

	logger.Debug("hidden")
	logger.Info("organized", "files", 3)
	if err := closer.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	for name, got := range map[string]string{"stdout": stdout.String(), "file": string(data)} {
		if !strings.Contains(got, "msg=organized files=3") {
			t.Errorf("%s = %q, want organized line", name, got)
		}
		if strings.Contains(got, "hidden") {
			t.Errorf("%s contains debug line below configured level", name)
		}
	}
}

func TestNewLoggerStdoutOnly(t *testing.T) {
	var stdout strings.Builder
	logger, closer, err := LogConfig{Level: "debug"}.NewLogger(&stdout)
	if err != nil {
		t.Fatalf("NewLogger() error = %v", err)
	}
	defer closer.Close()

	logger.Debug("visible")
	if !strings.Contains(stdout.String(), "msg=visible") {
		t.Errorf("stdout = %q, want debug line", stdout.String())
	}
}
