package config

import (
	"testing"

	"github.com/hay-kot/criterio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// validConfig returns a Config with all required fields set for testing.
func validConfig(t *testing.T) *Config {
	t.Helper()
	cfg := DefaultConfig()
	return &cfg
}

func fieldNames(errs criterio.FieldErrors) []string {
	names := make([]string, 0, len(errs))
	for _, e := range errs {
		names = append(names, e.Field)
	}
	return names
}

func TestValidateDeep_ValidConfig(t *testing.T) {
	cfg := validConfig(t)
	cfg.Today = "2025-06-01"
	cfg.Admin = "root"

	err := cfg.ValidateDeep("")
	assert.NoError(t, err, "expected valid config")
}

func TestValidateDeep_UnknownTheme(t *testing.T) {
	cfg := validConfig(t)
	cfg.Theme = "solarized"

	err := cfg.ValidateDeep("")

	var fieldErrs criterio.FieldErrors
	require.ErrorAs(t, err, &fieldErrs)
	require.Len(t, fieldErrs, 1)
	assert.Equal(t, "theme", fieldErrs[0].Field)
	assert.Contains(t, fieldErrs[0].Err.Error(), "tokyo-night")
}

func TestValidateDeep_CollectsAllErrors(t *testing.T) {
	cfg := validConfig(t)
	cfg.Prompt = "   "
	cfg.Today = "06/01/2025"
	cfg.IDLength = 2

	err := cfg.ValidateDeep("")

	var fieldErrs criterio.FieldErrors
	require.ErrorAs(t, err, &fieldErrs)
	assert.ElementsMatch(t, []string{"prompt", "today", "id_length"}, fieldNames(fieldErrs))
}

func TestValidateDeep_ConfigFileIsDirectory(t *testing.T) {
	tmpDir := t.TempDir()
	cfg := validConfig(t)

	err := cfg.ValidateDeep(tmpDir)

	var fieldErrs criterio.FieldErrors
	require.ErrorAs(t, err, &fieldErrs)
	assert.Contains(t, fieldNames(fieldErrs), "config_file")
}

func TestValidateDeep_MissingConfigFileIsFine(t *testing.T) {
	cfg := validConfig(t)

	err := cfg.ValidateDeep(t.TempDir() + "/missing.yaml")
	assert.NoError(t, err)
}

func TestWarnings(t *testing.T) {
	tests := []struct {
		name       string
		admin      string
		today      string
		categories []string
	}{
		{name: "defaults", categories: []string{"Users"}},
		{name: "admin set", admin: "root"},
		{name: "pinned clock", admin: "root", today: "2025-01-01", categories: []string{"Clock"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig(t)
			cfg.Admin = tt.admin
			cfg.Today = tt.today

			var got []string
			for _, w := range cfg.Warnings() {
				got = append(got, w.Category)
			}
			assert.Equal(t, tt.categories, got)
		})
	}
}
