// Package config resolves the base directory and optional config.toml
// defaults every other package reads its working paths from.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// Config represents the base-directory config.toml file.
type Config struct {
	DefaultMode string `toml:"default_mode,omitempty"`
	LockTimeout int    `toml:"lock_timeout_seconds,omitempty"`
	HomePrefix  string `toml:"home_prefix,omitempty"`
}

// baseDirOverride is set by the --osh-home flag or OSH_HOME env var.
var baseDirOverride string

// SetBaseDir allows the CLI to pass in the --osh-home / OSH_HOME value.
func SetBaseDir(dir string) {
	baseDirOverride = dir
}

// BaseDir returns the directory that holds active/, archive/,
// local.osh, and config.toml. Precedence: --osh-home flag /
// SetBaseDir > OSH_HOME env > ~/.osh.
func BaseDir() string {
	if baseDirOverride != "" {
		return baseDirOverride
	}
	if v := os.Getenv("OSH_HOME"); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".osh")
	}
	return filepath.Join(home, ".osh")
}

// ConfigPath returns the full path to config.toml.
func ConfigPath() string {
	return filepath.Join(BaseDir(), "config.toml")
}

// EnsureDir creates the base directory if it does not exist.
func EnsureDir() error {
	return os.MkdirAll(BaseDir(), 0o755)
}

// Load reads config.toml and returns a Config struct. A missing file
// is not an error: it returns a zero-value Config (built-in defaults).
func Load() (*Config, error) {
	cfg := &Config{}
	data, err := os.ReadFile(ConfigPath())
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("config: reading %s: %w", ConfigPath(), err)
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parsing %s: %w", ConfigPath(), err)
	}
	return cfg, nil
}

// Save writes cfg back to config.toml, creating the base directory if
// necessary.
func Save(cfg *Config) error {
	if err := EnsureDir(); err != nil {
		return fmt.Errorf("config: creating base dir: %w", err)
	}
	data, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("config: marshaling: %w", err)
	}
	return os.WriteFile(ConfigPath(), data, 0o644)
}
