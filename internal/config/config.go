// =============================================================================
// Supplier Price List Converter - Configuration Module
// =============================================================================
//
// This module loads the converter configuration. Values are layered, each
// layer overriding the one before it:
//
//   1. Built-in defaults         (applyDefaults)
//   2. config.yaml               (optional unless named with --config)
//   3. .env file                 (loaded into the environment if present)
//   4. SPL_* environment vars    (envconfig)
//   5. Command line flags        (applied by the cmd package)
//
// EXAMPLE config.yaml:
//
//   input_file: SPL.xlsx
//   output_file: supplier_pricelist.csv
//   worksheet: ""            # empty = first worksheet
//   output:
//     encoding: ISO-8859-14
//     atomic_write: true
//   log:
//     level: info            # debug, info, warn, error
//     format: console        # console, json
//
// ENVIRONMENT VARIABLES:
//   SPL_INPUT_FILE, SPL_OUTPUT_FILE, SPL_WORKSHEET, SPL_OUTPUT_ENCODING,
//   SPL_OUTPUT_ATOMIC_WRITE, SPL_LOG_LEVEL, SPL_LOG_FORMAT
//
// =============================================================================

package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"

	"github.com/ginjaninja78/supplier-pricelist-converter/pkg/utils"
)

// EnvPrefix is the prefix of every environment override.
const EnvPrefix = "SPL"

// =============================================================================
// CONFIGURATION STRUCTURE
// =============================================================================

// Config holds the settings for one conversion run.
type Config struct {
	// InputFile is the supplier workbook.
	// Default: "SPL.xlsx"
	InputFile string `yaml:"input_file" envconfig:"INPUT_FILE" validate:"required"`

	// OutputFile is the import file to write.
	// Default: "supplier_pricelist.csv"
	OutputFile string `yaml:"output_file" envconfig:"OUTPUT_FILE" validate:"required"`

	// Worksheet selects a worksheet by name. Empty means the first worksheet.
	Worksheet string `yaml:"worksheet" envconfig:"WORKSHEET"`

	// Output holds output file settings.
	Output OutputConfig `yaml:"output" envconfig:"OUTPUT"`

	// Log holds logging settings.
	Log LogConfig `yaml:"log" envconfig:"LOG"`
}

// OutputConfig holds output file settings.
type OutputConfig struct {
	// Encoding is the IANA name of the output character encoding.
	// Default: "ISO-8859-14", which the downstream importer expects.
	Encoding string `yaml:"encoding" envconfig:"ENCODING" validate:"required"`

	// AtomicWrite writes to a temp file and renames it into place.
	// Default: true
	AtomicWrite *bool `yaml:"atomic_write" envconfig:"ATOMIC_WRITE"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	// Level controls the verbosity of logging.
	// Default: "info"
	Level string `yaml:"level" envconfig:"LEVEL" validate:"oneof=debug info warn error"`

	// Format is "console" for people or "json" for log collectors.
	// Default: "console"
	Format string `yaml:"format" envconfig:"FORMAT" validate:"oneof=console json"`
}

// AtomicWriteEnabled reports whether output should be written atomically.
func (c OutputConfig) AtomicWriteEnabled() bool {
	return c.AtomicWrite == nil || *c.AtomicWrite
}

// =============================================================================
// ERRORS
// =============================================================================

// Error is returned when configuration cannot be loaded or is invalid.
type Error struct {
	// Path is the config file involved, if any.
	Path string

	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("invalid configuration: %v", e.Err)
	}
	return fmt.Sprintf("invalid configuration %s: %v", e.Path, e.Err)
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

// =============================================================================
// LOADING
// =============================================================================

// Default returns the configuration used when nothing is overridden.
func Default() *Config {
	config := &Config{}
	applyDefaults(config)
	return config
}

// Load builds the configuration.
//
// PARAMETERS:
//   - path: The YAML config file. May be empty to skip the file layer.
//   - required: When false, a missing file at path is not an error. The
//     CLI passes true only when --config was given explicitly.
//
// RETURNS:
//   - The validated configuration.
//   - A *Error if the file cannot be read or parsed, an environment value
//     cannot be decoded, or validation fails.
func Load(path string, required bool) (*Config, error) {
	config := &Config{}

	if path != "" {
		if err := loadFile(path, required, config); err != nil {
			return nil, &Error{Path: path, Err: err}
		}
	}

	applyDefaults(config)

	// A missing .env file is normal.
	_ = godotenv.Load()

	if err := envconfig.Process(EnvPrefix, config); err != nil {
		return nil, &Error{Err: fmt.Errorf("failed to read environment: %w", err)}
	}

	if err := Validate(config); err != nil {
		return nil, &Error{Path: path, Err: err}
	}

	return config, nil
}

// loadFile parses the YAML file at path into config.
func loadFile(path string, required bool, config *Config) error {
	if !required && !utils.FileExists(path) {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, config); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}
	return nil
}

// applyDefaults sets default values for any unset configuration options.
func applyDefaults(config *Config) {
	if config.InputFile == "" {
		config.InputFile = "SPL.xlsx"
	}
	if config.OutputFile == "" {
		config.OutputFile = "supplier_pricelist.csv"
	}
	if config.Output.Encoding == "" {
		config.Output.Encoding = "ISO-8859-14"
	}
	if config.Log.Level == "" {
		config.Log.Level = "info"
	}
	if config.Log.Format == "" {
		config.Log.Format = "console"
	}
}

// Validate checks the configuration's field rules.
func Validate(config *Config) error {
	validate := validator.New(validator.WithRequiredStructEnabled())

	err := validate.Struct(config)
	if err == nil {
		return nil
	}

	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) {
		return err
	}

	first := fieldErrors[0]
	return fmt.Errorf("%s: failed %q rule (value %q)", first.Namespace(), first.Tag(), fmt.Sprint(first.Value()))
}
