// Package config provides configuration loading and validation for the CLI and server.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Config represents settings that can be loaded from a JSON file or the environment.
// All fields are optional; missing values are filled from Defaults.
type Config struct {
	DatabaseURL    string `json:"database_url,omitempty"`    // PostgreSQL connection URL
	Port           int    `json:"port,omitempty"`            // HTTP listen port
	RulesPath      string `json:"rules_path,omitempty"`      // Ruleset JSON file; empty uses the embedded tables
	LogLevel       string `json:"log_level,omitempty"`       // debug, info, warn, error
	LogFormat      string `json:"log_format,omitempty"`      // console or json
	MaxConcurrency int    `json:"max_concurrency,omitempty"` // Parallel facilitators during bulk recalculation
}

// Defaults returns the built-in configuration values.
func Defaults() Config {
	return Config{
		Port:           8080,
		LogLevel:       "info",
		LogFormat:      "console",
		MaxConcurrency: 4,
	}
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// FromEnv reads configuration from environment variables.
// Unset variables leave the corresponding field empty.
func FromEnv() (*Config, error) {
	cfg := &Config{
		DatabaseURL: os.Getenv("DATABASE_URL"),
		RulesPath:   os.Getenv("RULES_PATH"),
		LogLevel:    os.Getenv("LOG_LEVEL"),
		LogFormat:   os.Getenv("LOG_FORMAT"),
	}

	if v := os.Getenv("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid PORT: %v", err)
		}
		cfg.Port = port
	}

	if v := os.Getenv("RECALC_CONCURRENCY"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid RECALC_CONCURRENCY: %v", err)
		}
		cfg.MaxConcurrency = n
	}

	return cfg, nil
}

// Validate checks that the configuration has valid values.
// Empty fields are accepted since they are filled by MergeWithDefaults.
func (c *Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' out of range: %d", c.Port)
	}
	if c.MaxConcurrency < 0 {
		return fmt.Errorf("config error: 'max_concurrency' must be non-negative")
	}

	switch strings.ToLower(c.LogFormat) {
	case "", "console", "text", "json":
	default:
		return fmt.Errorf("config error: unsupported 'log_format': %s", c.LogFormat)
	}

	switch strings.ToLower(c.LogLevel) {
	case "", "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("config error: unsupported 'log_level': %s", c.LogLevel)
	}

	if c.RulesPath != "" {
		if _, err := os.Stat(c.RulesPath); os.IsNotExist(err) {
			return fmt.Errorf("config error: rules file not found: %s", c.RulesPath)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// Config file values are layered over environment values this way.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.RulesPath == "" {
		result.RulesPath = defaults.RulesPath
	}
	if result.LogLevel == "" {
		result.LogLevel = defaults.LogLevel
	}
	if result.LogFormat == "" {
		result.LogFormat = defaults.LogFormat
	}

	if result.Port == 0 {
		result.Port = defaults.Port
	}
	if result.MaxConcurrency == 0 {
		result.MaxConcurrency = defaults.MaxConcurrency
	}

	return result
}

// Resolve layers an optional config file over the environment and the built-in defaults.
// Precedence: file, then environment, then Defaults.
func Resolve(path string) (Config, error) {
	env, err := FromEnv()
	if err != nil {
		return Config{}, err
	}
	merged := env.MergeWithDefaults(Defaults())

	if path != "" {
		fileCfg, err := LoadConfig(path)
		if err != nil {
			return Config{}, err
		}
		merged = fileCfg.MergeWithDefaults(merged)
	}

	if err := merged.Validate(); err != nil {
		return Config{}, err
	}
	return merged, nil
}
