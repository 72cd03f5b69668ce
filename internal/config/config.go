// Package config loads the habits configuration.
//
// Precedence, lowest first: built-in defaults, the YAML config file
// (~/.habits/config.yaml unless a path is given), then HABITS_* environment
// variables. A missing config file is not an error.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

const (
	// DirName is the directory under the user's home holding data and config.
	DirName = ".habits"
	// FileName is the config file inside DirName.
	FileName = "config.yaml"
)

// Storage backends.
const (
	BackendJSON   = "json"
	BackendSQLite = "sqlite"
)

// Config holds the user-tunable settings.
type Config struct {
	// DataDir holds habits.json or habits.db.
	DataDir string `yaml:"data_dir"`
	// Backend is "json" (default) or "sqlite".
	Backend string `yaml:"backend"`
	// Timezone is an IANA zone name used for "now" and typed timestamps.
	// Empty means the system local zone.
	Timezone string `yaml:"timezone"`
	// LogLevel is a zap level name: debug, info, warn, error.
	LogLevel string `yaml:"log_level"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	home, _ := os.UserHomeDir()
	return &Config{
		DataDir:  filepath.Join(home, DirName),
		Backend:  BackendJSON,
		Timezone: "",
		LogLevel: "warn",
	}
}

// DefaultPath returns ~/.habits/config.yaml.
func DefaultPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, DirName, FileName)
}

// Load reads the config file at path (DefaultPath when empty), applies
// environment overrides and validates the result.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultPath()
	}

	cfg, err := LoadFromFile(path)
	if errors.Is(err, os.ErrNotExist) {
		cfg = DefaultConfig()
	} else if err != nil {
		return nil, err
	}

	overrideFromEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFromFile loads configuration from a YAML file on top of the defaults.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file %s: %w", path, err)
	}
	return cfg, nil
}

// SaveToFile writes the configuration as YAML, creating parent directories.
func (c *Config) SaveToFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// Validate checks that every field holds a usable value.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.DataDir) == "" {
		return fmt.Errorf("data_dir is required")
	}
	switch c.Backend {
	case BackendJSON, BackendSQLite:
	default:
		return fmt.Errorf("invalid backend %q: must be one of: json, sqlite", c.Backend)
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	if _, err := zapcore.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid log_level %q: %w", c.LogLevel, err)
	}
	return nil
}

// Location resolves Timezone. Empty means time.Local.
func (c *Config) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// DataFile returns the path of the data file for the configured backend.
func (c *Config) DataFile() string {
	if c.Backend == BackendSQLite {
		return filepath.Join(c.DataDir, "habits.db")
	}
	return filepath.Join(c.DataDir, "habits.json")
}

func overrideFromEnv(cfg *Config) {
	if dir := os.Getenv("HABITS_DATA_DIR"); dir != "" {
		cfg.DataDir = dir
	}
	if backend := os.Getenv("HABITS_BACKEND"); backend != "" {
		cfg.Backend = strings.ToLower(backend)
	}
	if tz := os.Getenv("HABITS_TIMEZONE"); tz != "" {
		cfg.Timezone = tz
	}
	if level := os.Getenv("HABITS_LOG_LEVEL"); level != "" {
		cfg.LogLevel = level
	}
}
