// Package remove contains the command that removes transactions matching
// selector flags, singly or in bulk.
package remove

import (
	"fmt"

	"github.com/spf13/cobra"

	"fjacquet/fintrack/cmd/root"
	"fjacquet/fintrack/internal/dateutils"
	"fjacquet/fintrack/internal/ledger"
)

var (
	selectID          string
	selectDate        string
	selectCategory    string
	selectDescription string
)

// Cmd is the delete command.
var Cmd = &cobra.Command{
	Use:   "delete",
	Short: "Delete every transaction matching the selector flags",
	Long: `Delete removes the transactions matching the --id/--on/--in/--match
selector flags. Multiple matches are all removed; zero matches is
reported as a zero count, not an error.`,
	Run: func(cmd *cobra.Command, args []string) {
		s, err := root.OpenSession()
		if err != nil {
			root.Log.WithError(err).Fatal("Failed to open session")
		}

		sel, err := buildSelector()
		if err != nil {
			root.Log.WithError(err).Fatal("Invalid selector")
		}
		if sel.IsEmpty() {
			root.Log.Fatal("At least one selector flag is required (--id, --on, --in or --match)")
		}

		removed, err := s.DeleteTransactions(sel)
		if err != nil {
			root.Log.WithError(err).Fatal("Failed to delete transactions")
		}
		fmt.Printf("%d transaction(s) deleted\n", removed)
	},
}

func buildSelector() (ledger.Selector, error) {
	sel := ledger.Selector{
		ID:          selectID,
		Category:    selectCategory,
		Description: selectDescription,
	}
	if selectDate != "" {
		date, err := dateutils.ParseDate(selectDate)
		if err != nil {
			return ledger.Selector{}, err
		}
		sel.Date = &date
	}
	return sel, nil
}

func init() {
	Cmd.Flags().StringVar(&selectID, "id", "", "Select by transaction ID")
	Cmd.Flags().StringVar(&selectDate, "on", "", "Select by date (YYYY-MM-DD)")
	Cmd.Flags().StringVar(&selectCategory, "in", "", "Select by category")
	Cmd.Flags().StringVar(&selectDescription, "match", "", "Select by exact description")
}
