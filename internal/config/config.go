// Package config provides configuration loading and validation for the server and the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Config represents the CLI configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults or must be provided via CLI flags.
type Config struct {
	// Snapshot sources (at most one of snapshot / database_url / api_url is used)
	Snapshot    string `json:"snapshot,omitempty"`     // Path to a snapshot JSON file
	DatabaseURL string `json:"database_url,omitempty"` // PostgreSQL connection URL
	APIURL      string `json:"api_url,omitempty"`      // Base URL of a running API server

	// API credentials
	Email    string `json:"email,omitempty"`
	Password string `json:"password,omitempty"`

	// Behavior
	AsOf    string `json:"as_of,omitempty"` // Reference date (YYYY-MM-DD) for capacity
	Port    int    `json:"port,omitempty"`
	Verbose bool   `json:"verbose,omitempty"`
}

// LoadConfig loads configuration from a JSON file.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

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

// Validate checks that the configuration has valid values. Required fields are checked by
// the commands after merging with flags.
func (c *Config) Validate() error {
	sources := 0
	for _, s := range []string{c.Snapshot, c.DatabaseURL, c.APIURL} {
		if s != "" {
			sources++
		}
	}
	if sources > 1 {
		return fmt.Errorf("config error: 'snapshot', 'database_url' and 'api_url' are mutually exclusive")
	}

	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' out of range: %d", c.Port)
	}

	if c.AsOf != "" {
		if _, err := time.Parse("2006-01-02", c.AsOf); err != nil {
			return fmt.Errorf("config error: 'as_of' must be YYYY-MM-DD: %w", err)
		}
	}

	if c.Snapshot != "" {
		if _, err := os.Stat(c.Snapshot); os.IsNotExist(err) {
			return fmt.Errorf("config error: snapshot file not found: %s", c.Snapshot)
		}
	}

	if c.APIURL != "" && c.Email == "" {
		return fmt.Errorf("config error: 'email' is required with 'api_url'")
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// This is used to apply config file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.Snapshot == "" {
		result.Snapshot = defaults.Snapshot
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.APIURL == "" {
		result.APIURL = defaults.APIURL
	}
	if result.Email == "" {
		result.Email = defaults.Email
	}
	if result.Password == "" {
		result.Password = defaults.Password
	}
	if result.AsOf == "" {
		result.AsOf = defaults.AsOf
	}
	if result.Port == 0 {
		if defaults.Port > 0 {
			result.Port = defaults.Port
		} else {
			result.Port = 8000
		}
	}

	// Bools cannot distinguish unset from false, so flags always win.

	return result
}

// ReferenceDate parses AsOf, returning the zero time (meaning "now") when unset.
func (c *Config) ReferenceDate() (time.Time, error) {
	if c.AsOf == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse("2006-01-02", c.AsOf)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid as_of %q: %w", c.AsOf, err)
	}
	return t, nil
}
