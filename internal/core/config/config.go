// Package config handles configuration loading and validation for dueline.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/colonyops/dueline/internal/core/styles"
	"github.com/colonyops/dueline/internal/core/todo"
)

// Config holds the application configuration.
type Config struct {
	Theme       string `yaml:"theme"`
	Prompt      string `yaml:"prompt"`
	Today       string `yaml:"today"`         // optional YYYY-MM-DD clock override
	Admin       string `yaml:"admin"`         // user id allowed to list every user
	SweepOnList *bool  `yaml:"sweep_on_list"` // nil = enabled
	IDLength    int    `yaml:"id_length"`
	EventBuffer int    `yaml:"event_buffer"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Theme:       styles.DefaultTheme,
		Prompt:      "dueline> ",
		IDLength:    8,
		EventBuffer: 256,
	}
}

// Load reads configuration from the given path and validates it. If
// configPath is empty or doesn't exist, returns defaults.
func Load(configPath string) (*Config, error) {
	cfg, err := Read(configPath)
	if err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// Read parses the config file and applies defaults without validating.
func Read(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			data, err := os.ReadFile(configPath)
			if err != nil {
				return nil, fmt.Errorf("read config file: %w", err)
			}

			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("parse config file: %w", err)
			}
		}
	}

	cfg.applyDefaults()

	return &cfg, nil
}

// applyDefaults sets default values for any unset configuration options.
func (c *Config) applyDefaults() {
	defaults := DefaultConfig()
	if c.Theme == "" {
		c.Theme = defaults.Theme
	}
	if c.Prompt == "" {
		c.Prompt = defaults.Prompt
	}
	if c.IDLength == 0 {
		c.IDLength = defaults.IDLength
	}
	if c.EventBuffer == 0 {
		c.EventBuffer = defaults.EventBuffer
	}
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	if _, ok := styles.GetPalette(c.Theme); !ok {
		return fmt.Errorf("unknown theme %q", c.Theme)
	}

	if c.IDLength < 4 || c.IDLength > 32 {
		return fmt.Errorf("id_length must be between 4 and 32")
	}

	if c.EventBuffer < 1 {
		return fmt.Errorf("event_buffer must be at least 1")
	}

	if _, err := todo.ParseDate(c.Today); err != nil {
		return fmt.Errorf("today: %w", err)
	}

	return nil
}

// SweepOnListEnabled reports whether list views run the due-date sweep first.
func (c *Config) SweepOnListEnabled() bool {
	return c.SweepOnList == nil || *c.SweepOnList
}

// Clock returns the clock the todo engine should use: a fixed clock when
// Today is set, the system clock otherwise.
func (c *Config) Clock() todo.Clock {
	if c.Today == "" {
		return todo.SystemClock
	}
	// Validate guarantees Today parses.
	today, _ := todo.ParseDate(c.Today)
	return todo.FixedClock(today)
}
