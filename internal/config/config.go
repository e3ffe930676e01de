// Package config loads gvs settings from YAML files and the environment.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Dir is the name of the configuration directory, both in the user's home
// and in a project.
const Dir = ".gvs"

// FileName is the configuration file inside [Dir].
const FileName = "config.yaml"

// MaxWorkers bounds the per-file analysis parallelism.
const MaxWorkers = 256

// LogLevels lists the accepted log_level values.
var LogLevels = []string{"debug", "info", "warn", "error"}

// Config holds all configuration for gvs.
type Config struct {
	// Workers is the number of methods analyzed in parallel within a file.
	Workers int `yaml:"workers" env:"GVS_WORKERS"`

	// Cache enables the on-disk result cache.
	Cache bool `yaml:"cache" env:"GVS_CACHE"`
	// CacheDir holds the persisted cache.
	CacheDir string `yaml:"cache_dir" env:"GVS_CACHE_DIR"`
	// CacheMaxEntries caps the number of cached files; 0 means unlimited.
	CacheMaxEntries int `yaml:"cache_max_entries" env:"GVS_CACHE_MAX_ENTRIES"`

	// Logging
	LogLevel string `yaml:"log_level" env:"GVS_LOG_LEVEL"`
	JSONLogs bool   `yaml:"json_logs" env:"GVS_JSON_LOGS"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Workers:         runtime.NumCPU(),
		Cache:           true,
		CacheDir:        filepath.Join(homeDir(), Dir, "cache"),
		CacheMaxEntries: 1000,
		LogLevel:        "info",
		JSONLogs:        false,
	}
}

func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}

// GlobalConfigFilePath returns the global config file path (~/.gvs/config.yaml).
func GlobalConfigFilePath() string {
	return filepath.Join(homeDir(), Dir, FileName)
}

// ProjectConfigFilePath returns the project-level config file path (./.gvs/config.yaml).
func ProjectConfigFilePath() string {
	return filepath.Join(Dir, FileName)
}

// CacheFile returns the path of the persisted result cache.
func (c *Config) CacheFile() string {
	return filepath.Join(c.CacheDir, "results.msgpack")
}

// Load reads configuration with the following priority (highest to lowest):
// 1. Project-level config (./.gvs/config.yaml)
// 2. Environment variables
// 3. Global config (~/.gvs/config.yaml)
// 4. Defaults
func Load() (*Config, error) {
	cfg := DefaultConfig()

	if err := mergeFile(cfg, GlobalConfigFilePath()); err != nil {
		return nil, err
	}

	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}

	if err := mergeFile(cfg, ProjectConfigFilePath()); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadFromFile reads configuration from a specific YAML file path on top of
// the defaults and the environment.
func LoadFromFile(path string) (*Config, error) {
	cfg := DefaultConfig()

	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// mergeFile overlays the keys present in path onto cfg. A missing file is skipped.
func mergeFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

// Save writes the configuration to the specified YAML file path.
// It creates parent directories if they don't exist.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config to YAML: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file %s: %w", path, err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides to the config.
func applyEnvOverrides(cfg *Config) error {
	if v := os.Getenv("GVS_WORKERS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid GVS_WORKERS %q: %w", v, err)
		}
		cfg.Workers = n
	}
	if v := os.Getenv("GVS_CACHE"); v != "" {
		cfg.Cache = parseBool(v)
	}
	if v := os.Getenv("GVS_CACHE_DIR"); v != "" {
		cfg.CacheDir = v
	}
	if v := os.Getenv("GVS_CACHE_MAX_ENTRIES"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid GVS_CACHE_MAX_ENTRIES %q: %w", v, err)
		}
		cfg.CacheMaxEntries = n
	}
	if v := os.Getenv("GVS_LOG_LEVEL"); v != "" {
		cfg.LogLevel = strings.ToLower(v)
	}
	if v := os.Getenv("GVS_JSON_LOGS"); v != "" {
		cfg.JSONLogs = parseBool(v)
	}
	return nil
}

func parseBool(s string) bool {
	switch strings.ToLower(s) {
	case "true", "1", "yes", "on":
		return true
	default:
		return false
	}
}

// Validate checks that the configuration values are usable.
func (c *Config) Validate() error {
	if c.Workers < 1 || c.Workers > MaxWorkers {
		return fmt.Errorf("workers must be between 1 and %d", MaxWorkers)
	}

	if c.CacheMaxEntries < 0 {
		return fmt.Errorf("cache_max_entries must be non-negative")
	}
	if c.Cache && c.CacheDir == "" {
		return fmt.Errorf("cache_dir is required when cache is enabled")
	}

	if !slices.Contains(LogLevels, c.LogLevel) {
		return fmt.Errorf("invalid log_level: %s (must be one of %s)", c.LogLevel, strings.Join(LogLevels, ", "))
	}

	return nil
}
