package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "SPL.xlsx", cfg.InputFile)
	assert.Equal(t, "supplier_pricelist.csv", cfg.OutputFile)
	assert.Equal(t, "", cfg.Worksheet)
	assert.Equal(t, "ISO-8859-14", cfg.Output.Encoding)
	assert.True(t, cfg.Output.AtomicWriteEnabled())
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.NoError(t, Validate(cfg))
}

func TestLoadMissingOptionalFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "config.yaml"), false)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadMissingRequiredFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	_, err := Load(path, true)

	var cfgErr *Error
	require.True(t, errors.As(err, &cfgErr), "got %T: %v", err, err)
	assert.Equal(t, path, cfgErr.Path)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestLoadYAML(t *testing.T) {
	path := writeConfig(t, `
input_file: prices/BRO.xlsx
output_file: out/bro.csv
worksheet: Price List
output:
  encoding: windows-1252
  atomic_write: false
log:
  level: debug
  format: json
`)

	cfg, err := Load(path, true)
	require.NoError(t, err)

	assert.Equal(t, "prices/BRO.xlsx", cfg.InputFile)
	assert.Equal(t, "out/bro.csv", cfg.OutputFile)
	assert.Equal(t, "Price List", cfg.Worksheet)
	assert.Equal(t, "windows-1252", cfg.Output.Encoding)
	assert.False(t, cfg.Output.AtomicWriteEnabled())
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoadPartialYAMLKeepsDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, "worksheet: DYN\n"), true)
	require.NoError(t, err)

	assert.Equal(t, "DYN", cfg.Worksheet)
	assert.Equal(t, "SPL.xlsx", cfg.InputFile)
	assert.Equal(t, "ISO-8859-14", cfg.Output.Encoding)
	assert.True(t, cfg.Output.AtomicWriteEnabled())
}

func TestEnvironmentOverridesYAML(t *testing.T) {
	path := writeConfig(t, `
input_file: from-yaml.xlsx
log:
  level: warn
`)
	t.Setenv("SPL_INPUT_FILE", "from-env.xlsx")
	t.Setenv("SPL_OUTPUT_ENCODING", "ISO-8859-1")
	t.Setenv("SPL_OUTPUT_ATOMIC_WRITE", "false")
	t.Setenv("SPL_LOG_FORMAT", "json")

	cfg, err := Load(path, true)
	require.NoError(t, err)

	assert.Equal(t, "from-env.xlsx", cfg.InputFile)
	assert.Equal(t, "ISO-8859-1", cfg.Output.Encoding)
	assert.False(t, cfg.Output.AtomicWriteEnabled())
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoadInvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		content string
		env     map[string]string
	}{
		{name: "unknown log level", content: "log:\n  level: loud\n"},
		{name: "unknown log format", content: "log:\n  format: xml\n"},
		{name: "malformed yaml", content: "input_file: [unclosed\n"},
		{name: "bad bool in env", content: "", env: map[string]string{"SPL_OUTPUT_ATOMIC_WRITE": "maybe"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := Load(writeConfig(t, tt.content), true)

			var cfgErr *Error
			require.True(t, errors.As(err, &cfgErr), "got %T: %v", err, err)
		})
	}
}

func TestValidateReportsField(t *testing.T) {
	cfg := Default()
	cfg.InputFile = ""

	err := Validate(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "InputFile")
	assert.Contains(t, err.Error(), "required")
}
