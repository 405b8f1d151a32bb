// =============================================================================
// Supplier Price List Converter - Extractor
// =============================================================================
//
// This module turns one supplier worksheet into an ordered list of canonical
// items. The scanning algorithm is the same for every supplier; only the
// variant's override points differ.
//
// EXTRACTION STEPS:
//   1. Take the header row index from the variant.
//   2. Read header cells from column A rightwards until the first empty cell,
//      normalizing each into a field key (see NormalizeFieldName).
//   3. Scan data rows downward from the row after the header. The variant
//      includes, skips or stops on each row. Scanning never goes back.
//   4. For each included row, read one cell per header column and map the
//      resulting field values to an item.
//
// =============================================================================

package extractor

import (
	"fmt"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/ginjaninja78/supplier-pricelist-converter/internal/types"
	"github.com/ginjaninja78/supplier-pricelist-converter/internal/xlsxparser"
)

// =============================================================================
// ROW
// =============================================================================

// Row holds the raw values of one data row keyed by normalized field name.
type Row struct {
	// Number is the 1-based worksheet row.
	Number int

	// Fields maps each header field key to the cell value in this row.
	// When two headers normalize to the same key, the rightmost one wins.
	Fields map[string]string
}

// Require returns the value for key, or a *MissingFieldError if the header
// row did not produce that key.
func (r Row) Require(key string) (string, error) {
	value, ok := r.Fields[key]
	if !ok {
		return "", &MissingFieldError{Field: key, Row: r.Number}
	}
	return value, nil
}

// ValueOr returns the value for key, or fallback if the key is absent or
// its cell is blank.
func (r Row) ValueOr(key, fallback string) string {
	if value := r.Fields[key]; value != "" {
		return value
	}
	return fallback
}

// Decimal returns the value for key parsed as an exact decimal.
func (r Row) Decimal(key string) (decimal.Decimal, error) {
	raw, err := r.Require(key)
	if err != nil {
		return decimal.Decimal{}, err
	}

	value, err := parseDecimal(raw)
	if err != nil {
		return decimal.Decimal{}, &InvalidValueError{Field: key, Row: r.Number, Value: raw, Err: err}
	}
	return value, nil
}

// =============================================================================
// EXTRACTOR
// =============================================================================

// Extractor reads worksheets with one variant's policy.
type Extractor struct {
	variant Variant
	policy  *policy
	logger  *zap.Logger
}

// New creates an extractor for the variant.
//
// PARAMETERS:
//   - variant: The supplier variant, usually from Lookup.
//   - logger: Receives debug output about headers and skipped rows. May be nil.
//
// RETURNS:
//   - The extractor.
//   - An *UnknownVariantError if the variant is not registered.
func New(variant Variant, logger *zap.Logger) (*Extractor, error) {
	p, ok := policies[variant]
	if !ok {
		return nil, &UnknownVariantError{Name: variant.String()}
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Extractor{
		variant: variant,
		policy:  p,
		logger:  logger.With(zap.String("variant", p.name)),
	}, nil
}

// Variant returns the variant the extractor was built for.
func (e *Extractor) Variant() Variant {
	return e.variant
}

// HeaderRow returns the 1-based header row index.
func (e *Extractor) HeaderRow() int {
	return e.policy.headerRow
}

// Load opens the workbook at path and extracts items from a worksheet.
//
// PARAMETERS:
//   - path: The workbook file.
//   - sheetName: The worksheet name. If empty, the first worksheet is used.
//
// RETURNS:
//   - The items in worksheet row order.
//   - A *xlsxparser.WorkbookLoadError, *xlsxparser.WorksheetNotFoundError,
//     *MissingFieldError or *InvalidValueError on failure.
func (e *Extractor) Load(path, sheetName string) ([]types.Item, error) {
	workbook, err := xlsxparser.Open(path)
	if err != nil {
		return nil, err
	}
	defer workbook.Close()

	sheet, err := workbook.Sheet(sheetName)
	if err != nil {
		return nil, err
	}

	e.logger.Debug("worksheet selected",
		zap.String("path", path),
		zap.String("sheet", sheet.Name),
		zap.Int("rows", sheet.RowCount()),
	)

	return e.Extract(sheet)
}

// Extract reads items from an in-memory worksheet.
func (e *Extractor) Extract(sheet *xlsxparser.Sheet) ([]types.Item, error) {
	fields := e.FieldNames(sheet)
	e.logger.Debug("header fields", zap.Int("header_row", e.policy.headerRow), zap.Strings("fields", fields))

	rows := e.OccupiedRows(sheet)
	items := make([]types.Item, 0, len(rows))

	for _, rowIndex := range rows {
		row := readRow(sheet, fields, rowIndex)

		item, err := e.policy.mapRow(row)
		if err != nil {
			return nil, fmt.Errorf("sheet %q: %w", sheet.Name, err)
		}
		items = append(items, item)
	}

	return items, nil
}

// FieldNames returns the normalized header keys, one per occupied header
// column, after any variant remapping.
func (e *Extractor) FieldNames(sheet *xlsxparser.Sheet) []string {
	var fields []string
	for col := 1; !sheet.IsEmpty(e.policy.headerRow, col); col++ {
		fields = append(fields, NormalizeFieldName(sheet.Cell(e.policy.headerRow, col)))
	}

	if e.policy.remapFields != nil {
		fields = e.policy.remapFields(fields)
	}
	return fields
}

// OccupiedRows returns the 1-based indices of data rows the variant
// includes, in ascending order.
//
// Every classifier stops on an empty cell, and every cell past the stored
// grid is empty, so the scan always ends.
func (e *Extractor) OccupiedRows(sheet *xlsxparser.Sheet) []int {
	var rows []int
	for row := e.policy.headerRow + 1; ; row++ {
		switch e.policy.classify(sheet, row) {
		case stopScan:
			return rows
		case skipRow:
			e.logger.Debug("row skipped", zap.Int("row", row))
		case includeRow:
			rows = append(rows, row)
		}
	}
}

// readRow reads one cell per header column by position.
func readRow(sheet *xlsxparser.Sheet, fields []string, rowIndex int) Row {
	values := make(map[string]string, len(fields))
	for i, field := range fields {
		values[field] = sheet.Cell(rowIndex, i+1)
	}
	return Row{Number: rowIndex, Fields: values}
}
