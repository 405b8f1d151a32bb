// =============================================================================
// Supplier Price List Converter - Shared Types
// =============================================================================
//
// This package contains the canonical item record shared by the extractor,
// the CSV writer and the converter. Keeping it here avoids import cycles
// between those packages.
//
// =============================================================================

package types

import (
	"github.com/shopspring/decimal"
)

// =============================================================================
// CANONICAL ITEM RECORD
// =============================================================================

// Item is one supplier price list line, independent of the layout of the
// spreadsheet it was read from.
//
// All seven canonical fields are always populated. Suppliers that do not
// publish a value get a fixed default (for example "EACH" or 1).
type Item struct {
	// SupplierCode is the fixed per-supplier identifier, e.g. "BRO".
	SupplierCode string

	// SupplierItemCode is the supplier's SKU or part number.
	SupplierItemCode string

	// SupplierPrice is the unit buy price.
	// Always an exact decimal; never round-tripped through float64.
	SupplierPrice decimal.Decimal

	// SupplierUOM is the purchase unit of measure.
	SupplierUOM string

	// SupplierSellUOM is the sell unit of measure.
	SupplierSellUOM string

	// SupplierEOQ is the economic order quantity as published by the supplier.
	SupplierEOQ string

	// SupplierConversionFactor converts between purchase and sell UOM.
	SupplierConversionFactor decimal.Decimal

	// SourceRow is the 1-based worksheet row the item was read from.
	// It is used for diagnostics only and is never exported.
	SourceRow int
}
