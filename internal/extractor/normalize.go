package extractor

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	// droppedChars are removed from header text entirely.
	droppedChars = regexp.MustCompile(`[().]`)

	// separatorRuns are whitespace (including newlines) and / = : - in any
	// combination. Each run becomes a single underscore.
	separatorRuns = regexp.MustCompile(`[\s/=:\-]+`)

	underscoreRuns = regexp.MustCompile(`_+`)
)

// NormalizeFieldName turns a header cell into a field key.
//
// EXAMPLES:
//   "Supp Item Code"        -> "supp_item_code"
//   "Buy Price (ex. GST)"   -> "buy_price_ex_gst"
//   "DS\nCode"              -> "ds_code"
//   " Ex-GST "              -> "ex_gst"
//
// The function is idempotent: normalizing a normalized key returns it
// unchanged.
func NormalizeFieldName(value string) string {
	value = strings.TrimSpace(value)
	value = strings.ToLower(value)
	value = droppedChars.ReplaceAllString(value, "")
	value = separatorRuns.ReplaceAllString(value, "_")
	value = underscoreRuns.ReplaceAllString(value, "_")
	return strings.Trim(value, "_")
}

// parseDecimal parses a raw cell value as an exact decimal.
// A leading "$" and thousands separators are accepted, since some suppliers
// type prices as text.
func parseDecimal(raw string) (decimal.Decimal, error) {
	value := strings.TrimSpace(raw)
	value = strings.TrimPrefix(value, "$")
	value = strings.ReplaceAll(value, ",", "")
	return decimal.NewFromString(value)
}
