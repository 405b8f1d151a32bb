// =============================================================================
// Supplier Price List Converter - CSV Writer
// =============================================================================
//
// This module writes canonical items as the supplier price list import file
// expected by the downstream ERP.
//
// OUTPUT FORMAT:
//   - 51 columns in the fixed order of Columns. No header row.
//   - Six columns are populated per item; all others are left blank.
//   - Comma separated, fields quoted only when they need it, CRLF line ends.
//   - Encoded as ISO-8859-14. The importer reads this encoding; do not
//     change the default without confirming it with the consumer.
//
// COLUMN MAPPING:
//   | Column           | Item field               |
//   |------------------|--------------------------|
//   | supplier_code    | SupplierCode             |
//   | supp_item_code   | SupplierItemCode         |
//   | supp_uom         | SupplierUOM              |
//   | supp_eoq         | SupplierEOQ              |
//   | supp_conv_factor | SupplierConversionFactor |
//   | supp_price_1     | SupplierPrice            |
//
// =============================================================================

package csvwriter

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/transform"

	"github.com/ginjaninja78/supplier-pricelist-converter/internal/types"
	"github.com/ginjaninja78/supplier-pricelist-converter/pkg/utils"
)

// =============================================================================
// SCHEMA
// =============================================================================

// Columns is the import file schema. Adding, removing or reordering a
// column breaks the downstream import.
var Columns = []string{
	"supplier_code",
	"catalogue_part_no",
	"supp_item_code",
	"desc_line_1",
	"desc_line_2",
	"supp_uom",
	"supp_sell_uom",
	"supp_eoq",
	"supp_conv_factor",
	"supp_price_1",
	"supp_price_2",
	"supp_price_3",
	"supp_price_4",
	"gst",
	"barcode",
	"carton_size",
	"flc_page_no",
	"rrp",
	"major_category",
	"minor_category",
	"was_manufacturer_code",
	"item_code",
	"office_choice_code",
	"quantity_1_pronto_0",
	"quantity_2_pronto_1",
	"quantity_3_pronto_2",
	"quantity_4_pronto_3",
	"price_1_pronto_0",
	"price_2_pronto_1",
	"price_3_pronto_2",
	"price_4_pronto_3",
	"supp_priority",
	"supp_inner_uom",
	"supp_inner_barcode",
	"supp_inner_conversion_factor",
	"supp_outer_uom",
	"supp_outer_barcode",
	"supp_outer_conversion_factor",
	"unit_measurements",
	"unit_weight",
	"cartons_per_pallet",
	"eoq",
	"sell_uom",
	"is_consumable",
	"is_branded",
	"is_green",
	"created_on",
	"status",
	"product_class",
	"product_group",
	"legacy_item_code",
}

// columnIndex maps a column name to its position in Columns.
var columnIndex = func() map[string]int {
	index := make(map[string]int, len(Columns))
	for i, name := range Columns {
		index[name] = i
	}
	return index
}()

// DefaultEncoding is the name of the import file encoding.
const DefaultEncoding = "ISO-8859-14"

// =============================================================================
// ERRORS
// =============================================================================

// WriteError is returned when the output file cannot be created or written.
type WriteError struct {
	Path string
	Err  error
}

// Error implements the error interface.
func (e *WriteError) Error() string {
	return fmt.Sprintf("failed to write %s: %v", e.Path, e.Err)
}

// Unwrap returns the underlying error.
func (e *WriteError) Unwrap() error {
	return e.Err
}

// =============================================================================
// OPTIONS
// =============================================================================

// Options controls how the file is written.
type Options struct {
	// Encoding is applied to every byte written. Default: ISO-8859-14.
	Encoding encoding.Encoding

	// Atomic writes to a temporary sibling file and renames it over the
	// destination only after every row was written. Default: true.
	Atomic bool

	// UseCRLF ends records with "\r\n", as spreadsheet tools do. Default: true.
	UseCRLF bool
}

// DefaultOptions returns the options the downstream import expects.
func DefaultOptions() Options {
	return Options{
		Encoding: charmap.ISO8859_14,
		Atomic:   true,
		UseCRLF:  true,
	}
}

// LookupEncoding resolves an IANA encoding name such as "ISO-8859-14" or
// "windows-1252".
func LookupEncoding(name string) (encoding.Encoding, error) {
	enc, err := ianaindex.IANA.Encoding(name)
	if err != nil {
		return nil, fmt.Errorf("unknown encoding %q: %w", name, err)
	}
	if enc == nil {
		return nil, fmt.Errorf("encoding %q is not supported", name)
	}
	return enc, nil
}

// =============================================================================
// EXPORT
// =============================================================================

// Export writes items to path with DefaultOptions.
func Export(path string, items []types.Item) error {
	return ExportWithOptions(path, items, DefaultOptions())
}

// ExportWithOptions writes items to path.
//
// PARAMETERS:
//   - path: The destination file. It is created or truncated.
//   - items: The items, written in order.
//   - options: Encoding, atomic write and line ending settings.
//
// RETURNS:
//   - A *WriteError if the file cannot be created, written or renamed, or
//     if an item contains a character the encoding cannot represent.
func ExportWithOptions(path string, items []types.Item, options Options) error {
	write := func(w io.Writer) error {
		return Write(w, items, options)
	}

	var err error
	if options.Atomic {
		err = utils.WriteFileAtomic(path, write)
	} else {
		err = writeFileInPlace(path, write)
	}
	if err != nil {
		return &WriteError{Path: path, Err: err}
	}
	return nil
}

// Write encodes items as CSV into w.
func Write(w io.Writer, items []types.Item, options Options) error {
	enc := options.Encoding
	if enc == nil {
		enc = charmap.ISO8859_14
	}

	encoded := transform.NewWriter(w, enc.NewEncoder())
	buffered := bufio.NewWriter(encoded)
	writer := csv.NewWriter(buffered)
	writer.UseCRLF = options.UseCRLF

	for _, item := range items {
		if err := writer.Write(ItemToRecord(item)); err != nil {
			return fmt.Errorf("item %q (row %d): %w", item.SupplierItemCode, item.SourceRow, err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return err
	}
	if err := buffered.Flush(); err != nil {
		return err
	}
	return encoded.Close()
}

// ItemToRecord lays an item out over the schema columns.
func ItemToRecord(item types.Item) []string {
	record := make([]string, len(Columns))

	set := func(column, value string) {
		record[columnIndex[column]] = value
	}

	set("supplier_code", item.SupplierCode)
	set("supp_item_code", item.SupplierItemCode)
	set("supp_uom", item.SupplierUOM)
	set("supp_eoq", item.SupplierEOQ)
	set("supp_conv_factor", item.SupplierConversionFactor.String())
	set("supp_price_1", item.SupplierPrice.String())

	return record
}

// writeFileInPlace truncates path and writes to it directly.
func writeFileInPlace(path string, write func(io.Writer) error) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}

	if err := write(file); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}
