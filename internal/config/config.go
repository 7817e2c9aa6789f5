// Package config loads tasklist settings from a YAML file.
package config

import (
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	// AppName is the configuration directory name.
	AppName = "tasklist"

	// FileName is the config file name inside the config directory.
	FileName = "config.yaml"

	// LogFileName is where the TUI writes its log.
	LogFileName = "tasklist.log"

	// EnvBaseURL overrides base_url from the file.
	EnvBaseURL = "TASKLIST_BASE_URL"

	// Default configuration values
	DefaultBaseURL         = "http://localhost:3333"
	DefaultTimeout         = time.Duration(0)
	DefaultSerializeWrites = false
	DefaultShowErrors      = false
	DefaultLogLevel        = "info"
)

// Config represents user configuration from config.yaml.
// This file is user-managed and never written by tasklist.
type Config struct {
	// BaseURL is the root of the task API; requests go to {BaseURL}/tasks.
	BaseURL string `yaml:"base_url"`

	// Timeout bounds each HTTP request. Zero means no client-side timeout.
	Timeout time.Duration `yaml:"timeout"`

	// SerializeWrites runs update/delete calls for the same task one at a time.
	SerializeWrites bool `yaml:"serialize_writes"`

	// ShowErrors makes the TUI display failed operations in its status line.
	ShowErrors bool `yaml:"show_errors"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		BaseURL:         DefaultBaseURL,
		Timeout:         DefaultTimeout,
		SerializeWrites: DefaultSerializeWrites,
		ShowErrors:      DefaultShowErrors,
		LogLevel:        DefaultLogLevel,
	}
}

// DefaultDir returns the default configuration directory.
// Uses XDG_CONFIG_HOME if set, otherwise $HOME/.config.
func DefaultDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return AppName
	}
	return filepath.Join(home, ".config", AppName)
}

// DefaultPath returns the default config file path.
func DefaultPath() string {
	return filepath.Join(DefaultDir(), FileName)
}

// Load reads the config file at path if it exists, otherwise returns defaults.
// Partial config files are merged with defaults. An empty path means
// DefaultPath. The TASKLIST_BASE_URL environment variable, when set, wins over
// the file.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultPath()
	}

	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	case os.IsNotExist(err):
		// No config file - keep defaults
	default:
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	if v := os.Getenv(EnvBaseURL); v != "" {
		cfg.BaseURL = v
	}

	return cfg, nil
}

// Validate checks that the configuration is usable and normalizes BaseURL.
func (c *Config) Validate() error {
	c.BaseURL = strings.TrimRight(strings.TrimSpace(c.BaseURL), "/")
	if c.BaseURL == "" {
		return fmt.Errorf("invalid base_url: must not be empty")
	}
	u, err := url.Parse(c.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("invalid base_url: %q is not an absolute http(s) URL", c.BaseURL)
	}
	if c.Timeout < 0 {
		return fmt.Errorf("invalid timeout: must not be negative")
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

// Level returns LogLevel as an slog level.
func (c *Config) Level() (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(c.LogLevel)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("invalid log_level %q: must be debug, info, warn or error", c.LogLevel)
	}
}
