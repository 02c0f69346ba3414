// Package export contains the command that writes the transaction set to
// a CSV or JSON file in the stable record schema.
package export

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"fjacquet/fintrack/cmd/root"
	"fjacquet/fintrack/internal/ledger"
	"fjacquet/fintrack/internal/models"
	"fjacquet/fintrack/internal/report"
)

var (
	format   string
	output   string
	category string
	txType   string
	budgets  bool
)

// Cmd is the export command.
var Cmd = &cobra.Command{
	Use:   "export",
	Short: "Export transactions as CSV or JSON",
	Run: func(cmd *cobra.Command, args []string) {
		s, err := root.OpenSession()
		if err != nil {
			root.Log.WithError(err).Fatal("Failed to open session")
		}

		var rendered []byte
		if budgets {
			rendered, err = report.RenderBudgets(s.Reports.ExportBudgets(), format)
		} else {
			filter := ledger.Filter{Category: category}
			if txType != "" {
				typ, typeErr := models.ParseTransactionType(txType)
				if typeErr != nil {
					root.Log.WithError(typeErr).Fatal("Invalid transaction type")
				}
				filter.Type = &typ
			}
			rendered, err = report.RenderRecords(s.Reports.ExportRecords(filter), format)
		}
		if err != nil {
			root.Log.WithError(err).Fatal("Failed to render records")
		}

		if output == "" {
			fmt.Print(string(rendered))
			return
		}
		if err := os.WriteFile(output, rendered, models.PermissionExport); err != nil {
			root.Log.WithError(err).Fatal("Failed to write export file")
		}
		fmt.Printf("Exported to %s\n", output)
	},
}

func init() {
	Cmd.Flags().StringVarP(&format, "format", "f", report.FormatCSV, "Output format: csv or json")
	Cmd.Flags().StringVarP(&output, "output", "o", "", "Write to file instead of stdout")
	Cmd.Flags().StringVarP(&category, "category", "c", "", "Restrict to one category")
	Cmd.Flags().StringVarP(&txType, "type", "t", "", "Restrict to one transaction type")
	Cmd.Flags().BoolVar(&budgets, "budgets", false, "Export budget limits instead of transactions")
}
