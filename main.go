// =============================================================================
// Supplier Price List Converter - Main Entry Point
// =============================================================================
//
// This is the main entry point for the splconv CLI. It delegates to the
// Cobra commands in the cmd package.
//
// USAGE:
//   splconv <variant>    - Convert SPL.xlsx to supplier_pricelist.csv
//   splconv variants     - List supported supplier variants
//   splconv schema       - Print the import file columns
//   splconv version      - Display the application version
//
// ARCHITECTURE:
//   - cmd/                : CLI command definitions (Cobra)
//   - internal/config     : YAML, .env and SPL_* environment configuration
//   - internal/xlsxparser : Workbook and worksheet access
//   - internal/extractor  : Header normalization and supplier variants
//   - internal/csvwriter  : Fixed-schema ISO-8859-14 import file
//   - internal/converter  : One conversion run
//   - pkg/utils           : Atomic file replacement
//
// =============================================================================

package main

import (
	"github.com/ginjaninja78/supplier-pricelist-converter/cmd"
)

func main() {
	cmd.Execute()
}
