// =============================================================================
// Supplier Price List Converter - XLSX Workbook Reader
// =============================================================================
//
// This module opens supplier price list workbooks and exposes a worksheet as
// a grid of raw cell values addressed by 1-based row and column, the same
// way the spreadsheet itself numbers them (A1 = row 1, column 1).
//
// RAW VALUES:
//   Cells are read with excelize's RawCellValue option, so a price stored as
//   the number 4.5 with a "$#,##0.00" format is returned as "4.5", not
//   "$4.50". Formulas are not evaluated; the cached value is returned.
//
// ERRORS:
//   - WorkbookLoadError      : the file is missing, corrupt or not a workbook
//   - WorksheetNotFoundError : a named worksheet does not exist
//
// =============================================================================

package xlsxparser

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// =============================================================================
// ERROR TYPES
// =============================================================================

// WorkbookLoadError is returned when a workbook cannot be opened or read.
type WorkbookLoadError struct {
	// Path is the workbook file that failed to load.
	Path string

	// Err is the underlying excelize or filesystem error.
	Err error
}

// Error implements the error interface.
func (e *WorkbookLoadError) Error() string {
	return fmt.Sprintf("failed to load workbook %s: %v", e.Path, e.Err)
}

// Unwrap returns the underlying error.
func (e *WorkbookLoadError) Unwrap() error {
	return e.Err
}

// WorksheetNotFoundError is returned when a requested worksheet is absent.
type WorksheetNotFoundError struct {
	// Path is the workbook that was searched.
	Path string

	// Sheet is the worksheet name that was requested.
	Sheet string
}

// Error implements the error interface.
func (e *WorksheetNotFoundError) Error() string {
	if e.Sheet == "" {
		return fmt.Sprintf("workbook %s has no worksheets", e.Path)
	}
	return fmt.Sprintf("worksheet %q not found in %s", e.Sheet, e.Path)
}

// =============================================================================
// WORKBOOK
// =============================================================================

// Workbook is an open spreadsheet file.
type Workbook struct {
	path string
	file *excelize.File
}

// Open opens the workbook at path for reading.
//
// PARAMETERS:
//   - path: The path to the .xlsx file.
//
// RETURNS:
//   - The open workbook. The caller must Close it.
//   - A *WorkbookLoadError if the file cannot be opened or parsed.
func Open(path string) (*Workbook, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, &WorkbookLoadError{Path: path, Err: err}
	}

	return &Workbook{path: path, file: f}, nil
}

// Path returns the file the workbook was opened from.
func (w *Workbook) Path() string {
	return w.path
}

// SheetNames returns the worksheet names in workbook order.
func (w *Workbook) SheetNames() []string {
	return w.file.GetSheetList()
}

// Sheet reads a worksheet into memory.
//
// PARAMETERS:
//   - name: The worksheet name. If empty, the first worksheet is used.
//
// RETURNS:
//   - The worksheet grid.
//   - A *WorksheetNotFoundError if the named sheet does not exist.
//   - A *WorkbookLoadError if the sheet data cannot be parsed.
func (w *Workbook) Sheet(name string) (*Sheet, error) {
	sheetName, err := w.resolveSheetName(name)
	if err != nil {
		return nil, err
	}

	rows, err := w.file.GetRows(sheetName, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, &WorkbookLoadError{
			Path: w.path,
			Err:  fmt.Errorf("failed to read rows from %q: %w", sheetName, err),
		}
	}

	return NewSheet(sheetName, rows), nil
}

// resolveSheetName maps the requested name to an existing worksheet name.
// Sheet names are matched exactly, as Excel displays them.
func (w *Workbook) resolveSheetName(name string) (string, error) {
	sheets := w.SheetNames()

	if name == "" {
		if len(sheets) == 0 {
			return "", &WorksheetNotFoundError{Path: w.path}
		}
		return sheets[0], nil
	}

	for _, sheet := range sheets {
		if sheet == name {
			return sheet, nil
		}
	}

	return "", &WorksheetNotFoundError{Path: w.path, Sheet: name}
}

// Close releases the workbook.
func (w *Workbook) Close() error {
	return w.file.Close()
}

// =============================================================================
// SHEET
// =============================================================================

// Sheet is an in-memory worksheet grid of raw cell values.
type Sheet struct {
	// Name is the worksheet name.
	Name string

	rows [][]string
}

// NewSheet builds a sheet from rows of cell values.
// rows[0][0] is cell A1. Rows may have different lengths.
func NewSheet(name string, rows [][]string) *Sheet {
	return &Sheet{Name: name, rows: rows}
}

// Cell returns the raw value at the 1-based row and column.
// Cells outside the stored grid are empty.
func (s *Sheet) Cell(row, col int) string {
	if row < 1 || row > len(s.rows) {
		return ""
	}
	cells := s.rows[row-1]
	if col < 1 || col > len(cells) {
		return ""
	}
	return cells[col-1]
}

// IsEmpty reports whether the cell at row and column has no value.
func (s *Sheet) IsEmpty(row, col int) bool {
	return s.Cell(row, col) == ""
}

// RowCount returns the number of stored rows, including trailing rows
// that excelize kept because they carry formatting.
func (s *Sheet) RowCount() int {
	return len(s.rows)
}
