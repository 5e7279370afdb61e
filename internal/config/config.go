/*
Package config handles loading, saving, and validating skill-advisor
configuration.

Configuration is stored in ~/.skill-advisor.json:

	{
	  "autoInvokeThreshold": 0.85,
	  "suggestionThreshold": 0.60,
	  "maxSuggestions": 5,
	  "learningEnabled": true,
	  "enableAutoInvoke": true,
	  "contextWindow": 20,
	  "databasePath": "~/.skill-advisor/history.db",
	  "skillsPath": "~/.skill-advisor/skills.json"
	}
*/
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config is the root configuration structure.
type Config struct {
	// AutoInvokeThreshold is the minimum confidence for auto-invocation.
	AutoInvokeThreshold float64 `json:"autoInvokeThreshold"`

	// SuggestionThreshold is the minimum confidence for any suggestion.
	SuggestionThreshold float64 `json:"suggestionThreshold"`

	// MaxSuggestions caps the number of returned matches.
	MaxSuggestions int `json:"maxSuggestions"`

	// LearningEnabled toggles persistence and historical adjustment.
	LearningEnabled bool `json:"learningEnabled"`

	// EnableAutoInvoke controls whether auto-invoke matches are returned.
	EnableAutoInvoke bool `json:"enableAutoInvoke"`

	// ContextWindow bounds the learned-pattern lookup.
	ContextWindow int `json:"contextWindow"`

	// DatabasePath overrides the default history database location.
	DatabasePath string `json:"databasePath,omitempty"`

	// SkillsPath is the skill catalog file loaded at startup.
	SkillsPath string `json:"skillsPath,omitempty"`
}

// NewConfig creates a configuration with default values.
func NewConfig() *Config {
	return &Config{
		AutoInvokeThreshold: 0.85,
		SuggestionThreshold: 0.60,
		MaxSuggestions:      5,
		LearningEnabled:     true,
		EnableAutoInvoke:    true,
		ContextWindow:       20,
	}
}

// GetDefaultConfigPath returns the path to ~/.skill-advisor.json
func GetDefaultConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".skill-advisor.json"), nil
}

// Load reads the configuration from the default path. A missing file yields
// the default configuration.
func Load() (*Config, error) {
	configPath, err := GetDefaultConfigPath()
	if err != nil {
		return nil, err
	}
	return LoadFrom(configPath)
}

// LoadFrom reads the configuration from a specific path. A missing file
// yields the default configuration.
func LoadFrom(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return NewConfig(), nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := NewConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Save writes the configuration to the default path.
func (c *Config) Save() error {
	configPath, err := GetDefaultConfigPath()
	if err != nil {
		return err
	}
	return c.SaveTo(configPath)
}

// SaveTo writes the configuration to a specific path.
func (c *Config) SaveTo(path string) error {
	if err := c.Validate(); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// Validate checks threshold ranges and ordering.
func (c *Config) Validate() error {
	if c.AutoInvokeThreshold < 0 || c.AutoInvokeThreshold > 1 {
		return fmt.Errorf("autoInvokeThreshold must be in [0,1], got %f", c.AutoInvokeThreshold)
	}
	if c.SuggestionThreshold < 0 || c.SuggestionThreshold > 1 {
		return fmt.Errorf("suggestionThreshold must be in [0,1], got %f", c.SuggestionThreshold)
	}
	if c.SuggestionThreshold > c.AutoInvokeThreshold {
		return fmt.Errorf("suggestionThreshold (%f) must not exceed autoInvokeThreshold (%f)",
			c.SuggestionThreshold, c.AutoInvokeThreshold)
	}
	if c.MaxSuggestions < 1 {
		return fmt.Errorf("maxSuggestions must be at least 1, got %d", c.MaxSuggestions)
	}
	if c.ContextWindow < 1 {
		return fmt.Errorf("contextWindow must be at least 1, got %d", c.ContextWindow)
	}
	return nil
}

// ResolveDatabasePath returns the configured database path, or the default
// ~/.skill-advisor/history.db when unset.
func (c *Config) ResolveDatabasePath() (string, error) {
	if c.DatabasePath != "" {
		return c.DatabasePath, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".skill-advisor", "history.db"), nil
}

// ResolveSkillsPath returns the configured skills file path, or the default
// ~/.skill-advisor/skills.json when unset.
func (c *Config) ResolveSkillsPath() (string, error) {
	if c.SkillsPath != "" {
		return c.SkillsPath, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".skill-advisor", "skills.json"), nil
}
