// Package update contains the command that modifies exactly one existing
// transaction.
package update

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"fjacquet/fintrack/cmd/root"
	"fjacquet/fintrack/internal/dateutils"
	"fjacquet/fintrack/internal/ledger"
	"fjacquet/fintrack/internal/models"
)

var (
	selectID          string
	selectDate        string
	selectCategory    string
	selectDescription string

	newDate        string
	newType        string
	newAmount      string
	newCategory    string
	newDescription string
)

// Cmd is the update command.
var Cmd = &cobra.Command{
	Use:   "update",
	Short: "Update one transaction located by selector flags",
	Long: `Update locates exactly one transaction through the --id/--on/--in/--match
selector flags and applies the --set-* changes to it. The command fails
when the selector matches no transaction or more than one, and when the
changed transaction would duplicate another one.`,
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

		changes, err := buildChanges()
		if err != nil {
			root.Log.WithError(err).Fatal("Invalid change set")
		}
		if changes.IsEmpty() {
			root.Log.Fatal("Nothing to change; pass at least one --set-* flag")
		}

		updated, err := s.UpdateTransaction(sel, changes)
		if err != nil {
			root.Log.WithError(err).Fatal("Update rejected")
		}

		fmt.Printf("Updated %s: %s %s in %s on %s\n",
			updated.ID,
			updated.Type,
			updated.Amount.StringFixed(models.AmountPrecision),
			updated.Category,
			dateutils.ToISODate(updated.Date))
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

func buildChanges() (ledger.Changes, error) {
	var changes ledger.Changes

	if newDate != "" {
		date, err := dateutils.ParseDate(newDate)
		if err != nil {
			return ledger.Changes{}, err
		}
		changes.Date = &date
	}
	if newType != "" {
		typ, err := models.ParseTransactionType(newType)
		if err != nil {
			return ledger.Changes{}, err
		}
		changes.Type = &typ
	}
	if newAmount != "" {
		amount, err := decimal.NewFromString(newAmount)
		if err != nil {
			return ledger.Changes{}, fmt.Errorf("invalid amount %q: %w", newAmount, err)
		}
		changes.Amount = &amount
	}
	if newCategory != "" {
		changes.Category = &newCategory
	}
	if newDescription != "" {
		changes.Description = &newDescription
	}
	return changes, nil
}

func init() {
	Cmd.Flags().StringVar(&selectID, "id", "", "Select by transaction ID")
	Cmd.Flags().StringVar(&selectDate, "on", "", "Select by date (YYYY-MM-DD)")
	Cmd.Flags().StringVar(&selectCategory, "in", "", "Select by category")
	Cmd.Flags().StringVar(&selectDescription, "match", "", "Select by exact description")

	Cmd.Flags().StringVar(&newDate, "set-date", "", "New date (YYYY-MM-DD)")
	Cmd.Flags().StringVar(&newType, "set-type", "", "New type: income or expense")
	Cmd.Flags().StringVar(&newAmount, "set-amount", "", "New amount")
	Cmd.Flags().StringVar(&newCategory, "set-category", "", "New category")
	Cmd.Flags().StringVar(&newDescription, "set-description", "", "New description")
}
