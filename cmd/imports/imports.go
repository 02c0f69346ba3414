// Package imports contains the command that bulk-imports transaction
// records from CSV or JSON files.
package imports

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"fjacquet/fintrack/cmd/root"
	"fjacquet/fintrack/internal/report"
)

// Cmd is the import command.
var Cmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import transactions from a CSV or JSON file",
	Long: `Import reads transaction records from the given file and adds each one
through the ledger. Duplicates and invalid records are skipped and
reported individually; the batch never aborts on a single bad record.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		s, err := root.OpenSession()
		if err != nil {
			root.Log.WithError(err).Fatal("Failed to open session")
		}

		path := args[0]
		format, err := formatFromExtension(path)
		if err != nil {
			root.Log.WithError(err).Fatal("Unsupported file format")
		}

		data, err := os.ReadFile(path)
		if err != nil {
			root.Log.WithError(err).Fatal("Failed to read import file")
		}

		records, err := report.ParseRecords(data, format)
		if err != nil {
			root.Log.WithError(err).Fatal("Failed to parse import file")
		}

		results, err := s.ImportRecords(records)
		if err != nil {
			root.Log.WithError(err).Fatal("Failed to persist imported records")
		}

		added, duplicates, invalid := 0, 0, 0
		for _, result := range results {
			switch result.Outcome {
			case report.ImportAdded:
				added++
			case report.ImportDuplicate:
				duplicates++
			case report.ImportInvalid:
				invalid++
				fmt.Printf("record %d rejected: %v\n", result.Index+1, result.Err)
			}
		}
		fmt.Printf("%d new transactions imported, %d duplicates skipped, %d invalid\n",
			added, duplicates, invalid)
	},
}

func formatFromExtension(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return report.FormatCSV, nil
	case ".json":
		return report.FormatJSON, nil
	default:
		return "", fmt.Errorf("unsupported file extension: %s (use .csv or .json)", filepath.Ext(path))
	}
}
