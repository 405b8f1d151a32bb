// =============================================================================
// Supplier Price List Converter - Converter Module
// =============================================================================
//
// This module runs one conversion from supplier workbook to import file.
//
// CONVERSION PIPELINE:
//   1. Resolve the output encoding
//   2. Extract items from the workbook with the selected variant
//   3. Write the items to the import file (skipped on dry run)
//
// A run is synchronous and independent of any other run. Re-running with
// the same input overwrites the output with identical bytes.
//
// =============================================================================

package converter

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ginjaninja78/supplier-pricelist-converter/internal/config"
	"github.com/ginjaninja78/supplier-pricelist-converter/internal/csvwriter"
	"github.com/ginjaninja78/supplier-pricelist-converter/internal/extractor"
	"github.com/ginjaninja78/supplier-pricelist-converter/internal/types"
)

// =============================================================================
// RESULT STRUCTURE
// =============================================================================

// Result represents the outcome of one run.
type Result struct {
	// RunID identifies the run in log output.
	RunID string

	// Variant is the supplier variant used.
	Variant extractor.Variant

	// InputFile is the workbook that was read.
	InputFile string

	// OutputFile is the import file written. Empty on dry run.
	OutputFile string

	// Items are the extracted items in worksheet order.
	Items []types.Item

	// Elapsed is the time taken by the run.
	Elapsed time.Duration
}

// =============================================================================
// CONVERTER STRUCTURE
// =============================================================================

// Converter runs conversions for one variant and configuration.
type Converter struct {
	config  *config.Config
	variant extractor.Variant
	logger  *zap.Logger

	// dryRun extracts without writing the output file.
	dryRun bool
}

// Option configures a Converter.
type Option func(*Converter)

// WithLogger sets the logger. The default discards output.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Converter) {
		c.logger = logger
	}
}

// WithDryRun skips writing the output file.
func WithDryRun(dryRun bool) Option {
	return func(c *Converter) {
		c.dryRun = dryRun
	}
}

// New creates a new Converter.
//
// PARAMETERS:
//   - cfg: The run configuration.
//   - variant: The supplier variant used to read the workbook.
//   - options: Optional logger and dry run settings.
func New(cfg *config.Config, variant extractor.Variant, options ...Option) *Converter {
	c := &Converter{
		config:  cfg,
		variant: variant,
		logger:  zap.NewNop(),
	}
	for _, option := range options {
		option(c)
	}
	return c
}

// =============================================================================
// MAIN PROCESSING FUNCTION
// =============================================================================

// Run executes the conversion.
//
// RETURNS:
//   - The run result.
//   - The first error encountered. Extraction errors come from the
//     extractor and xlsxparser packages, write errors are
//     *csvwriter.WriteError, and a bad encoding name is *config.Error.
func (c *Converter) Run() (*Result, error) {
	startTime := time.Now()
	result := &Result{
		RunID:     uuid.New().String(),
		Variant:   c.variant,
		InputFile: c.config.InputFile,
	}

	logger := c.logger.With(
		zap.String("run_id", result.RunID),
		zap.String("variant", c.variant.String()),
	)

	// =========================================================================
	// STEP 1: RESOLVE OUTPUT OPTIONS
	// =========================================================================

	options, err := c.writerOptions()
	if err != nil {
		return nil, err
	}

	// =========================================================================
	// STEP 2: EXTRACT
	// =========================================================================

	logger.Info("reading workbook",
		zap.String("input", c.config.InputFile),
		zap.String("sheet", c.config.Worksheet),
	)

	ext, err := extractor.New(c.variant, logger)
	if err != nil {
		return nil, err
	}

	items, err := ext.Load(c.config.InputFile, c.config.Worksheet)
	if err != nil {
		return nil, fmt.Errorf("extract %s: %w", c.config.InputFile, err)
	}
	result.Items = items

	logger.Info("items extracted", zap.Int("items", len(items)))

	// =========================================================================
	// STEP 3: EXPORT
	// =========================================================================

	if c.dryRun {
		logger.Info("dry run, output not written", zap.String("output", c.config.OutputFile))
	} else {
		if err := csvwriter.ExportWithOptions(c.config.OutputFile, items, options); err != nil {
			return nil, err
		}
		result.OutputFile = c.config.OutputFile
		logger.Info("import file written",
			zap.String("output", c.config.OutputFile),
			zap.String("encoding", c.config.Output.Encoding),
			zap.Bool("atomic", options.Atomic),
		)
	}

	result.Elapsed = time.Since(startTime)
	logger.Debug("run complete", zap.Duration("elapsed", result.Elapsed))

	return result, nil
}

// writerOptions builds CSV writer options from the configuration.
func (c *Converter) writerOptions() (csvwriter.Options, error) {
	options := csvwriter.DefaultOptions()
	options.Atomic = c.config.Output.AtomicWriteEnabled()

	if c.config.Output.Encoding != "" {
		enc, err := csvwriter.LookupEncoding(c.config.Output.Encoding)
		if err != nil {
			return csvwriter.Options{}, &config.Error{Err: err}
		}
		options.Encoding = enc
	}

	return options, nil
}
