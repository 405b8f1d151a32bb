// =============================================================================
// Supplier Price List Converter - Variants and Schema Commands
// =============================================================================
//
// COMMAND USAGE:
//   splconv variants   - List the supplier variants accepted by splconv
//   splconv schema     - Print the import file columns in output order
//
// =============================================================================

package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ginjaninja78/supplier-pricelist-converter/internal/csvwriter"
	"github.com/ginjaninja78/supplier-pricelist-converter/internal/extractor"
)

// variantsCmd lists the registered supplier variants.
var variantsCmd = &cobra.Command{
	Use:   "variants",
	Short: "List the supported supplier variants",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "NAME\tSUPPLIER\tHEADER ROW\tDESCRIPTION")
		for _, info := range extractor.Variants() {
			supplier := info.SupplierCode
			if supplier == "" {
				supplier = "(from sheet)"
			}
			fmt.Fprintf(w, "%s\t%s\t%d\t%s\n", info.Name, supplier, info.HeaderRow, info.Description)
		}
		return w.Flush()
	},
}

// schemaCmd prints the fixed import file columns.
var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the import file columns in output order",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		for i, column := range csvwriter.Columns {
			fmt.Fprintf(cmd.OutOrStdout(), "%2d  %s\n", i+1, column)
		}
	},
}

func init() {
	rootCmd.AddCommand(variantsCmd)
	rootCmd.AddCommand(schemaCmd)
}
