package extractor

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/ginjaninja78/supplier-pricelist-converter/internal/xlsxparser"
)

// writeWorkbook saves sheets of cell values as an .xlsx file in dir.
// The first entry becomes the first worksheet.
func writeWorkbook(t *testing.T, dir string, sheets []string, rows map[string][][]any) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	for i, name := range sheets {
		if i == 0 {
			require.NoError(t, f.SetSheetName(f.GetSheetName(0), name))
		} else {
			_, err := f.NewSheet(name)
			require.NoError(t, err)
		}

		for r, row := range rows[name] {
			for c, v := range row {
				if v == nil {
					continue
				}
				cell, err := excelize.CoordinatesToCellName(c+1, r+1)
				require.NoError(t, err)
				require.NoError(t, f.SetCellValue(name, cell, v))
			}
		}
	}

	path := filepath.Join(dir, "SPL.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestLoadDefaultsToFirstWorksheet(t *testing.T) {
	path := writeWorkbook(t, t.TempDir(), []string{"Prices", "Notes"}, map[string][][]any{
		"Prices": {
			{"Supp Code", "Supp Item Code", "Supp Price"},
			{"ABC", "123", "4.50"},
			{"ABC", 456, 7.25},
		},
		"Notes": {
			{"Supp Code", "Supp Item Code", "Supp Price"},
			{"NOT", "THIS", "1"},
		},
	})

	items, err := mustExtractor(t, Generic).Load(path, "")
	require.NoError(t, err)
	require.Equal(t, []string{"123", "456"}, itemCodes(items))
	requireDecimal(t, "4.50", items[0].SupplierPrice)
	requireDecimal(t, "7.25", items[1].SupplierPrice)
}

func TestLoadNamedWorksheet(t *testing.T) {
	path := writeWorkbook(t, t.TempDir(), []string{"Cover", "DYN"}, map[string][][]any{
		"Cover": {{"Nothing here"}},
		"DYN": {
			{"DYN Stationery"},
			{nil},
			{"No", "DS Code", "Brand", "Description", "Pack", "Buy Price (ex GST)"},
			{1, "D-1", "Acme", "Pen", 1, 1.2},
			{2, "TBA", "Acme", "Pencil", 1, 0.8},
			{3, "D-3", "Acme", "Marker", 1, "POA"},
		},
	})

	items, err := mustExtractor(t, DYN).Load(path, "DYN")
	require.NoError(t, err)
	require.Equal(t, []string{"D-1"}, itemCodes(items))
	requireDecimal(t, "1.2", items[0].SupplierPrice)
	assert.Equal(t, 4, items[0].SourceRow)
}

func TestLoadBROCraftMultilineProduct(t *testing.T) {
	path := writeWorkbook(t, t.TempDir(), []string{"Sheet1"}, map[string][][]any{
		"Sheet1": {
			{"BRO Craft"},
			{"Category", "Product", "Ex GST"},
			{"Paint", "WIDGET-9 NEW\n:extra", "4.50"},
		},
	})

	items, err := mustExtractor(t, BROCraft).Load(path, "")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "WIDGET-9", items[0].SupplierItemCode)
}

func TestLoadMissingWorksheet(t *testing.T) {
	path := writeWorkbook(t, t.TempDir(), []string{"Sheet1"}, map[string][][]any{
		"Sheet1": {{"Supp Code"}},
	})

	_, err := mustExtractor(t, Generic).Load(path, "Prices")

	var notFound *xlsxparser.WorksheetNotFoundError
	require.True(t, errors.As(err, &notFound), "got %T: %v", err, err)
	assert.Equal(t, "Prices", notFound.Sheet)
}

func TestLoadUnreadableWorkbook(t *testing.T) {
	dir := t.TempDir()

	notXLSX := filepath.Join(dir, "SPL.xlsx")
	require.NoError(t, os.WriteFile(notXLSX, []byte("code,price\nA,1\n"), 0644))

	for _, path := range []string{notXLSX, filepath.Join(dir, "missing.xlsx")} {
		_, err := mustExtractor(t, Generic).Load(path, "")

		var loadErr *xlsxparser.WorkbookLoadError
		require.True(t, errors.As(err, &loadErr), "%s: got %T: %v", path, err, err)
		assert.Equal(t, path, loadErr.Path)
	}
}
