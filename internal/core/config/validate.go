package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/hay-kot/criterio"

	"github.com/colonyops/dueline/internal/core/styles"
	"github.com/colonyops/dueline/internal/core/validate"
)

// ValidationWarning represents a non-fatal configuration issue.
type ValidationWarning struct {
	Category string `json:"category"`
	Item     string `json:"item,omitempty"`
	Message  string `json:"message"`
}

// ValidateDeep performs field-level validation of the configuration and the
// config file itself, collecting every problem as criterio.FieldErrors. The
// configPath argument may be empty to skip the file check.
func (c *Config) ValidateDeep(configPath string) error {
	return criterio.ValidateStruct(
		validateConfigFile(configPath),
		criterio.Run("theme", c.Theme, knownTheme),
		criterio.Run("prompt", c.Prompt, validate.NotBlank),
		criterio.Run("today", c.Today, validate.Date),
		criterio.Run("id_length", c.IDLength, validate.Between(4, 32)),
		criterio.Run("event_buffer", c.EventBuffer, validate.Between(1, 1<<16)),
	)
}

// Warnings returns non-fatal configuration issues.
func (c *Config) Warnings() []ValidationWarning {
	var warnings []ValidationWarning

	if c.Admin == "" {
		warnings = append(warnings, ValidationWarning{
			Category: "Users",
			Message:  "no admin configured; the users command only shows the current user",
		})
	}

	if c.Today != "" {
		warnings = append(warnings, ValidationWarning{
			Category: "Clock",
			Item:     c.Today,
			Message:  "today is pinned; due dates are compared against a fixed date",
		})
	}

	return warnings
}

func validateConfigFile(configPath string) error {
	if configPath == "" {
		return nil
	}

	info, err := os.Stat(configPath)
	if os.IsNotExist(err) {
		return nil // not found is fine, using defaults
	}
	if err != nil {
		return criterio.NewFieldErrors("config_file", fmt.Errorf("cannot access: %w", err))
	}
	if info.IsDir() {
		return criterio.NewFieldErrors("config_file", fmt.Errorf("%s is a directory, not a file", configPath))
	}
	return nil
}

func knownTheme(name string) error {
	if _, ok := styles.GetPalette(name); !ok {
		return fmt.Errorf("unknown theme %q (available: %s)", name, strings.Join(styles.ThemeNames(), ", "))
	}
	return nil
}
