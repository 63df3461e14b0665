// Package config loads and merges acetrail settings from the global and
// per-project config files.
package config

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
)

// Config holds all configurable acetrail settings.
type Config struct {
	// StateDir overrides where trajectory logs and attribution state live.
	// Empty means "<workspace>/.acetrail".
	StateDir string `json:"state_dir"`
	// BackendURL is the pattern-learning service endpoint for `learn`.
	BackendURL string `json:"backend_url"`
	// RulesPath points at a domains.yaml classifier override.
	// Empty means "<state dir>/domains.yaml".
	RulesPath string `json:"rules_path"`
	// DefaultFormat selects summarize output: "markdown" | "json".
	DefaultFormat string `json:"default_format"`
	// RequestTimeoutSec bounds learn requests and git subprocess calls.
	RequestTimeoutSec int `json:"request_timeout_sec"`
}

// Defaults returns sensible default configuration values.
func Defaults() Config {
	return Config{
		DefaultFormat:     "markdown",
		RequestTimeoutSec: 30,
	}
}

// LoadGlobal reads ~/.config/acetrail/config.json.
// Returns defaults if the file is absent.
func LoadGlobal() (*Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}
	path := filepath.Join(home, ".config", "acetrail", "config.json")
	return loadFile(path, true)
}

// LoadProject reads .acetrailconfig in the current working directory.
// Returns nil (no error) if the file is absent.
func LoadProject() (*Config, error) {
	return loadFile(".acetrailconfig", false)
}

// loadFile reads and parses a JSON config file at path.
// If returnDefaults is true, returns defaults when the file is absent.
// If returnDefaults is false, returns nil when the file is absent.
func loadFile(path string, returnDefaults bool) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			if returnDefaults {
				d := Defaults()
				return &d, nil
			}
			return nil, nil
		}
		return nil, err
	}
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}
	return &cfg, nil
}

// Merge combines global and project configs, with project taking precedence.
// Missing keys fall back to global, then defaults.
func Merge(global, project *Config) Config {
	result := Defaults()

	apply := func(c *Config) {
		if c == nil {
			return
		}
		if c.StateDir != "" {
			result.StateDir = c.StateDir
		}
		if c.BackendURL != "" {
			result.BackendURL = c.BackendURL
		}
		if c.RulesPath != "" {
			result.RulesPath = c.RulesPath
		}
		if c.DefaultFormat != "" {
			result.DefaultFormat = c.DefaultFormat
		}
		if c.RequestTimeoutSec > 0 {
			result.RequestTimeoutSec = c.RequestTimeoutSec
		}
	}

	apply(global)
	apply(project)
	return result
}

// ParseError is returned when a config file exists but cannot be parsed.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return "failed to parse config file " + e.Path + ": " + e.Err.Error()
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
