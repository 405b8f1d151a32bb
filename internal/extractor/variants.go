// =============================================================================
// Supplier Price List Converter - Supplier Variants
// =============================================================================
//
// Each supplier publishes its price list with a different layout. A variant
// captures one supplier's layout as three override points:
//
//   | Variant   | Header row | Row rule                                         |
//   |-----------|------------|--------------------------------------------------|
//   | Generic   | 1          | stop at empty A                                  |
//   | BRO craft | 2          | stop at empty A, skip empty B                    |
//   | CSS       | 1          | stop at empty A                                  |
//   | DYN       | 3          | stop at empty D, skip empty/"TBA" B or "POA" F   |
//
// The set of variants is closed. Adding a supplier means adding a Variant
// constant, a policy entry and its names in variantNames.
//
// =============================================================================

package extractor

import (
	"sort"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/ginjaninja78/supplier-pricelist-converter/internal/types"
	"github.com/ginjaninja78/supplier-pricelist-converter/internal/xlsxparser"
)

// =============================================================================
// VARIANT ENUM
// =============================================================================

// Variant selects a supplier extraction policy.
type Variant int

const (
	// Generic reads a sheet whose headers already name the canonical fields.
	Generic Variant = iota

	// BROCraft reads the BRO craft supplies price list.
	BROCraft

	// CSS reads the CSS price list.
	CSS

	// DYN reads the DYN price list.
	DYN
)

// String returns the variant's primary CLI name.
func (v Variant) String() string {
	if p, ok := policies[v]; ok {
		return p.name
	}
	return "Variant(" + strconv.Itoa(int(v)) + ")"
}

// variantNames maps lower-cased CLI names to variants.
// "DataGridReader" is the name the generic layout has always been run by.
var variantNames = map[string]Variant{
	"generic":        Generic,
	"datagridreader": Generic,
	"bro_craft":      BROCraft,
	"css":            CSS,
	"dyn":            DYN,
}

// Lookup resolves a CLI variant name. Matching ignores case.
//
// RETURNS:
//   - The variant.
//   - An *UnknownVariantError if the name is not registered.
func Lookup(name string) (Variant, error) {
	v, ok := variantNames[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return 0, &UnknownVariantError{Name: name}
	}
	return v, nil
}

// VariantInfo describes a registered variant for listing.
type VariantInfo struct {
	Variant      Variant
	Name         string
	SupplierCode string
	HeaderRow    int
	Description  string
}

// Variants lists every registered variant in enum order.
func Variants() []VariantInfo {
	infos := make([]VariantInfo, 0, len(policies))
	for v, p := range policies {
		infos = append(infos, VariantInfo{
			Variant:      v,
			Name:         p.name,
			SupplierCode: p.supplierCode,
			HeaderRow:    p.headerRow,
			Description:  p.description,
		})
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].Variant < infos[j].Variant })
	return infos
}

// =============================================================================
// POLICY
// =============================================================================

// rowAction is a variant's verdict on one data row.
type rowAction int

const (
	includeRow rowAction = iota
	skipRow
	stopScan
)

// policy holds one variant's override points.
type policy struct {
	name         string
	description  string
	supplierCode string

	// headerRow is the 1-based row holding the column headers.
	headerRow int

	// remapFields rewrites normalized header keys. Optional.
	remapFields func(fields []string) []string

	// classify decides whether a data row is included, skipped or ends the scan.
	classify func(sheet *xlsxparser.Sheet, row int) rowAction

	// mapRow converts a row's field values into an item.
	mapRow func(row Row) (types.Item, error)
}

var policies = map[Variant]*policy{
	Generic: {
		name:        "generic",
		description: "headers name the canonical fields (supp_code, supp_item_code, supp_price, ...)",
		headerRow:   1,
		classify:    stopAtEmptyColumn(1),
		mapRow:      mapGenericRow,
	},
	BROCraft: {
		name:         "BRO_craft",
		description:  "BRO craft: headers on row 2, item code parsed from the product text",
		supplierCode: "BRO",
		headerRow:    2,
		classify:     classifyBROCraftRow,
		mapRow:       mapBROCraftRow,
	},
	CSS: {
		name:         "CSS",
		description:  "CSS: price taken from the *CSSC Sell column",
		supplierCode: "CSS",
		headerRow:    1,
		remapFields:  remapCSSFields,
		classify:     stopAtEmptyColumn(1),
		mapRow:       mapCSSRow,
	},
	DYN: {
		name:         "DYN",
		description:  "DYN: headers on row 3, TBA codes and POA prices skipped",
		supplierCode: "DYN",
		headerRow:    3,
		classify:     classifyDYNRow,
		mapRow:       mapDYNRow,
	},
}

// =============================================================================
// ROW CLASSIFIERS
// =============================================================================

// stopAtEmptyColumn includes rows until the given column is empty.
func stopAtEmptyColumn(col int) func(*xlsxparser.Sheet, int) rowAction {
	return func(sheet *xlsxparser.Sheet, row int) rowAction {
		if sheet.IsEmpty(row, col) {
			return stopScan
		}
		return includeRow
	}
}

// classifyBROCraftRow stops at an empty column A. Rows with A populated but
// B empty are section headings in the BRO sheet and are skipped.
func classifyBROCraftRow(sheet *xlsxparser.Sheet, row int) rowAction {
	switch {
	case sheet.IsEmpty(row, 1):
		return stopScan
	case sheet.IsEmpty(row, 2):
		return skipRow
	default:
		return includeRow
	}
}

const (
	dynPendingCode  = "TBA"
	dynPendingPrice = "POA"
)

// classifyDYNRow stops at an empty description (column D). Items without a
// code, with a "TBA" code or with a "POA" buy price (column F) are skipped.
func classifyDYNRow(sheet *xlsxparser.Sheet, row int) rowAction {
	if sheet.IsEmpty(row, 4) {
		return stopScan
	}

	itemCode := sheet.Cell(row, 2)
	buyPrice := sheet.Cell(row, 6)
	if itemCode == "" || itemCode == dynPendingCode || buyPrice == dynPendingPrice {
		return skipRow
	}
	return includeRow
}

// =============================================================================
// FIELD MAPPERS
// =============================================================================

const (
	defaultUOM = "EACH"
	defaultEOQ = "1"
)

var defaultConversionFactor = decimal.NewFromInt(1)

// fixedItem builds an item for suppliers that only vary code and price.
func fixedItem(supplierCode, itemCode string, price decimal.Decimal, row int) types.Item {
	return types.Item{
		SupplierCode:             supplierCode,
		SupplierItemCode:         itemCode,
		SupplierPrice:            price,
		SupplierUOM:              defaultUOM,
		SupplierSellUOM:          defaultUOM,
		SupplierEOQ:              defaultEOQ,
		SupplierConversionFactor: defaultConversionFactor,
		SourceRow:                row,
	}
}

// mapGenericRow maps headers that already use canonical names.
// supp_code, supp_item_code and supp_price are required. The remaining
// fields fall back to EACH, the purchase UOM, 1 and 1 when absent or blank.
func mapGenericRow(row Row) (types.Item, error) {
	supplierCode, err := row.Require("supp_code")
	if err != nil {
		return types.Item{}, err
	}
	itemCode, err := row.Require("supp_item_code")
	if err != nil {
		return types.Item{}, err
	}
	price, err := row.Decimal("supp_price")
	if err != nil {
		return types.Item{}, err
	}

	uom := row.ValueOr("supp_uom", defaultUOM)
	conversionFactor := defaultConversionFactor
	if row.ValueOr("supp_conv_factor", "") != "" {
		conversionFactor, err = row.Decimal("supp_conv_factor")
		if err != nil {
			return types.Item{}, err
		}
	}

	return types.Item{
		SupplierCode:             supplierCode,
		SupplierItemCode:         itemCode,
		SupplierPrice:            price,
		SupplierUOM:              uom,
		SupplierSellUOM:          row.ValueOr("supp_sell_uom", uom),
		SupplierEOQ:              row.ValueOr("supp_eoq", defaultEOQ),
		SupplierConversionFactor: conversionFactor,
		SourceRow:                row.Number,
	}, nil
}

func mapBROCraftRow(row Row) (types.Item, error) {
	product, err := row.Require("product")
	if err != nil {
		return types.Item{}, err
	}
	price, err := row.Decimal("ex_gst")
	if err != nil {
		return types.Item{}, err
	}
	return fixedItem("BRO", ParseBROItemCode(product), price, row.Number), nil
}

// ParseBROItemCode extracts the item code from a BRO product cell, which
// holds the code followed by an optional " NEW" flag, a colon and a
// description, sometimes over several lines.
//
// EXAMPLE:
//   "WIDGET-9 NEW\n:extra" -> "WIDGET-9"
func ParseBROItemCode(product string) string {
	value, _, _ := strings.Cut(product, "\n")
	value, _, _ = strings.Cut(value, ":")
	value = strings.TrimRight(value, " \t\r")
	value = strings.TrimSuffix(value, " NEW")
	return strings.TrimSpace(value)
}

// cssPriceSuffix matches the CSS sell column, whose full header text
// changes between price list editions.
const cssPriceSuffix = "cssc_sell"

func remapCSSFields(fields []string) []string {
	remapped := make([]string, len(fields))
	for i, field := range fields {
		if strings.HasSuffix(field, cssPriceSuffix) {
			field = "buy_price_ex_gst"
		}
		remapped[i] = field
	}
	return remapped
}

func mapCSSRow(row Row) (types.Item, error) {
	itemCode, err := row.Require("code")
	if err != nil {
		return types.Item{}, err
	}
	price, err := row.Decimal("buy_price_ex_gst")
	if err != nil {
		return types.Item{}, err
	}
	return fixedItem("CSS", itemCode, price, row.Number), nil
}

func mapDYNRow(row Row) (types.Item, error) {
	itemCode, err := row.Require("ds_code")
	if err != nil {
		return types.Item{}, err
	}
	price, err := row.Decimal("buy_price_ex_gst")
	if err != nil {
		return types.Item{}, err
	}
	return fixedItem("DYN", itemCode, price, row.Number), nil
}
