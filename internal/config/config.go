// Package config loads the YAML configuration file, creating it with
// defaults on first run.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config is the top-level application configuration.
type Config struct {
	// Listen is the HTTP listen address for the provider server.
	Listen string `yaml:"listen"`

	// Provider is the base URL the terminal client fetches from.
	Provider string `yaml:"provider"`

	// AWBase is the ActivityWatch REST API base URL.
	AWBase string `yaml:"aw_base"`

	// Timezone is the IANA timezone all day boundaries are computed in.
	Timezone string `yaml:"timezone"`

	// Database is the SQLite path for settings and the holiday cache.
	// Empty means the default under the user config directory.
	Database string `yaml:"database"`
}

// Default returns the in-memory default configuration.
func Default() *Config {
	return &Config{
		Listen:   "127.0.0.1:8600",
		Provider: "http://127.0.0.1:8600",
		AWBase:   "http://127.0.0.1:5600/api/0",
		Timezone: "Asia/Tokyo",
	}
}

// DefaultPath returns ~/.config/workhours/config.yaml.
func DefaultPath() (string, error) {
	cfg, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(cfg, "workhours", "config.yaml"), nil
}

// Load reads the config at path. A missing file is created with
// defaults and 0600 permissions, then returned.
func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		cfg := Default()
		if err := Save(path, cfg); err != nil {
			return nil, err
		}
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(raw, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// Save writes cfg to path, creating parent directories as needed.
func Save(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	raw, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.WriteFile(path, raw, 0o600); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
