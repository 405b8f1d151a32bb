// =============================================================================
// Supplier Price List Converter - Root Command
// =============================================================================
//
// This file defines the root command for the Cobra CLI. The root command
// takes the supplier variant as its one positional argument and runs the
// conversion.
//
// COBRA CLI STRUCTURE:
//   rootCmd (splconv <variant>)
//   ├── variantsCmd (splconv variants)
//   ├── schemaCmd   (splconv schema)
//   └── versionCmd  (splconv version)
//
// EXIT CODES:
//   0 success                        5 worksheet not found
//   1 unexpected error               6 missing field
//   2 usage (no variant given)       7 invalid cell value
//   3 unknown variant                8 output write error
//   4 workbook cannot be loaded      9 configuration error
//
// =============================================================================

package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ginjaninja78/supplier-pricelist-converter/internal/config"
	"github.com/ginjaninja78/supplier-pricelist-converter/internal/converter"
	"github.com/ginjaninja78/supplier-pricelist-converter/internal/csvwriter"
	"github.com/ginjaninja78/supplier-pricelist-converter/internal/extractor"
	"github.com/ginjaninja78/supplier-pricelist-converter/internal/logging"
	"github.com/ginjaninja78/supplier-pricelist-converter/internal/xlsxparser"
)

// =============================================================================
// EXIT CODES
// =============================================================================

const (
	ExitOK              = 0
	ExitUnexpected      = 1
	ExitUsage           = 2
	ExitUnknownVariant  = 3
	ExitWorkbookLoad    = 4
	ExitWorksheetAbsent = 5
	ExitMissingField    = 6
	ExitInvalidValue    = 7
	ExitWrite           = 8
	ExitConfig          = 9
)

// errUsage is returned when the variant argument is missing.
var errUsage = errors.New("missing supplier variant argument")

// ExitCode maps a run error to the process exit code.
func ExitCode(err error) int {
	var (
		unknownVariant *extractor.UnknownVariantError
		workbookLoad   *xlsxparser.WorkbookLoadError
		sheetAbsent    *xlsxparser.WorksheetNotFoundError
		missingField   *extractor.MissingFieldError
		invalidValue   *extractor.InvalidValueError
		writeErr       *csvwriter.WriteError
		configErr      *config.Error
	)

	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, errUsage):
		return ExitUsage
	case errors.As(err, &unknownVariant):
		return ExitUnknownVariant
	case errors.As(err, &workbookLoad):
		return ExitWorkbookLoad
	case errors.As(err, &sheetAbsent):
		return ExitWorksheetAbsent
	case errors.As(err, &missingField):
		return ExitMissingField
	case errors.As(err, &invalidValue):
		return ExitInvalidValue
	case errors.As(err, &writeErr):
		return ExitWrite
	case errors.As(err, &configErr):
		return ExitConfig
	default:
		return ExitUnexpected
	}
}

// =============================================================================
// GLOBAL VARIABLES
// =============================================================================

// cfgFile holds the path to the configuration file.
var cfgFile string

// verbose forces debug logging.
var verbose bool

// Flags overriding the configuration for this run.
var (
	inputFile  string
	outputFile string
	sheetName  string
	dryRun     bool
)

// defaultConfigFile is read when present; --config makes the file required.
const defaultConfigFile = "config.yaml"

// =============================================================================
// ROOT COMMAND DEFINITION
// =============================================================================

// rootCmd converts one supplier workbook into the import file.
var rootCmd = &cobra.Command{
	Use:   "splconv <variant>",
	Short: "Supplier price list converter - normalize supplier spreadsheets for ERP import",
	Long: `splconv reads a supplier price list workbook, normalizes the supplier's
column layout into canonical item records, and writes the fixed 51-column
CSV import file expected by the ERP.

The variant argument selects the supplier layout. Run 'splconv variants'
to list them.

Example Usage:
  splconv DYN                                  # SPL.xlsx -> supplier_pricelist.csv
  splconv BRO_craft --input bro.xlsx --sheet "Price List"
  splconv CSS --dry-run -v                     # Extract and log, write nothing`,

	Args: cobra.MaximumNArgs(1),

	// Errors are printed once by Execute.
	SilenceUsage:  true,
	SilenceErrors: true,

	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			cmd.Usage()
			return errUsage
		}
		return runConvert(cmd, args[0])
	},
}

// =============================================================================
// EXECUTE FUNCTION
// =============================================================================

// Execute runs the CLI and exits with the mapped exit code on failure.
// This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(ExitCode(err))
	}
}

// =============================================================================
// INITIALIZATION
// =============================================================================

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"config",
		"",
		"Path to a configuration file (default is config.yaml if present)",
	)

	rootCmd.PersistentFlags().BoolVarP(
		&verbose,
		"verbose",
		"v",
		false,
		"Enable debug logging",
	)

	rootCmd.Flags().StringVarP(&inputFile, "input", "i", "", "Supplier workbook (default SPL.xlsx)")
	rootCmd.Flags().StringVarP(&outputFile, "output", "o", "", "Import file to write (default supplier_pricelist.csv)")
	rootCmd.Flags().StringVarP(&sheetName, "sheet", "s", "", "Worksheet name (default first worksheet)")
	rootCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Extract items without writing the import file")
}

// =============================================================================
// CONVERSION
// =============================================================================

// runConvert resolves the variant, loads configuration and runs the
// conversion.
func runConvert(cmd *cobra.Command, variantName string) error {
	variant, err := extractor.Lookup(variantName)
	if err != nil {
		return err
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	logger, err := logging.New(logging.Config{Level: cfg.Log.Level, Format: cfg.Log.Format})
	if err != nil {
		return &config.Error{Err: fmt.Errorf("failed to build logger: %w", err)}
	}
	defer logger.Sync()

	result, err := converter.New(cfg, variant,
		converter.WithLogger(logger),
		converter.WithDryRun(dryRun),
	).Run()
	if err != nil {
		logger.Error("conversion failed", zap.Error(err))
		return err
	}

	if result.OutputFile == "" {
		fmt.Fprintf(cmd.OutOrStdout(), "%d item(s) extracted from %s (dry run)\n", len(result.Items), result.InputFile)
	} else {
		fmt.Fprintf(cmd.OutOrStdout(), "%d item(s) written to %s\n", len(result.Items), result.OutputFile)
	}
	return nil
}

// loadConfig loads the configuration file and applies flag overrides.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, required := defaultConfigFile, false
	if cfgFile != "" {
		path, required = cfgFile, true
	}

	cfg, err := config.Load(path, required)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("input") {
		cfg.InputFile = inputFile
	}
	if flags.Changed("output") {
		cfg.OutputFile = outputFile
	}
	if flags.Changed("sheet") {
		cfg.Worksheet = sheetName
	}
	if verbose {
		cfg.Log.Level = "debug"
	}

	if err := config.Validate(cfg); err != nil {
		return nil, &config.Error{Path: path, Err: err}
	}
	return cfg, nil
}
