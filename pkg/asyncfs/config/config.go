// Package config loads the application settings file.
//
// Settings live in a TOML file, with built-in defaults applied for
// anything the file omits. A missing file yields the defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

// Config holds application settings.
type Config struct {
	// Root is the directory filesystem operations are resolved against.
	Root string `toml:"root"`
	// LogLevel is a zerolog level name (trace, debug, info, warn, error).
	LogLevel string `toml:"log_level"`
	// DefaultTimeoutSecs applies to tasks submitted without a timeout.
	DefaultTimeoutSecs int `toml:"default_timeout_secs"`
	// BookmarksPath is the bookmark config file location; empty means
	// the conventional location under the user config directory.
	BookmarksPath string `toml:"bookmarks_path"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Root:               ".",
		LogLevel:           "warn",
		DefaultTimeoutSecs: 30,
	}
}

// DefaultPath returns the conventional settings file location.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = "."
	}
	return filepath.Join(dir, "asyncfs", "config.toml")
}

// Load reads the settings file at path. A missing file returns the
// defaults; a malformed file is an error.
func Load(path string) (Config, error) {
	cfg := Default()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	if cfg.Root == "" {
		cfg.Root = "."
	}
	if cfg.DefaultTimeoutSecs <= 0 {
		cfg.DefaultTimeoutSecs = 30
	}
	return cfg, nil
}

// DefaultTimeout returns the configured default timeout as a duration.
func (c Config) DefaultTimeout() time.Duration {
	return time.Duration(c.DefaultTimeoutSecs) * time.Second
}

// Save writes the settings to path, creating parent directories.
func Save(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create config file %s: %w", path, err)
	}
	defer f.Close()
	if err := toml.NewEncoder(f).Encode(cfg); err != nil {
		return fmt.Errorf("failed to write config file %s: %w", path, err)
	}
	return nil
}
