// Package budget contains the commands that manage per-category budget
// limits.
package budget

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"fjacquet/fintrack/cmd/root"
	budgets "fjacquet/fintrack/internal/budget"
	"fjacquet/fintrack/internal/models"
)

var limitAmount string

// Cmd is the budget command with its set/remove/view subcommands.
var Cmd = &cobra.Command{
	Use:   "budget",
	Short: "Manage per-category budget limits",
}

var setCmd = &cobra.Command{
	Use:   "set <category>",
	Short: "Set or replace the limit for a category",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		s, err := root.OpenSession()
		if err != nil {
			root.Log.WithError(err).Fatal("Failed to open session")
		}

		amount, err := decimal.NewFromString(limitAmount)
		if err != nil {
			root.Log.WithError(err).Fatal("Invalid limit amount")
		}
		if err := s.SetLimit(args[0], amount); err != nil {
			root.Log.WithError(err).Fatal("Failed to set budget limit")
		}
		fmt.Printf("Budget set for %s: %s\n", args[0], amount.StringFixed(models.AmountPrecision))
	},
}

var removeCmd = &cobra.Command{
	Use:   "remove <category>",
	Short: "Remove the limit for a category",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		s, err := root.OpenSession()
		if err != nil {
			root.Log.WithError(err).Fatal("Failed to open session")
		}
		if err := s.RemoveLimit(args[0]); err != nil {
			root.Log.WithError(err).Fatal("Failed to remove budget limit")
		}
		fmt.Printf("Budget removed for %s\n", args[0])
	},
}

var viewCmd = &cobra.Command{
	Use:   "view",
	Short: "Show every budgeted category with spent and remaining amounts",
	Run: func(cmd *cobra.Command, args []string) {
		s, err := root.OpenSession()
		if err != nil {
			root.Log.WithError(err).Fatal("Failed to open session")
		}

		statuses := s.Budgets.EvaluateAll()
		if len(statuses) == 0 {
			fmt.Println("No budgets set.")
			return
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "Category\tLimit\tSpent\tRemaining")
		for _, status := range statuses {
			remaining := status.Remaining.StringFixed(models.AmountPrecision)
			if status.State == budgets.BudgetExceeded {
				remaining = "-" + status.Overage.StringFixed(models.AmountPrecision)
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
				status.Category,
				status.Limit.StringFixed(models.AmountPrecision),
				status.Spent.StringFixed(models.AmountPrecision),
				remaining)
		}
		if err := w.Flush(); err != nil {
			root.Log.WithError(err).Fatal("Failed to render table")
		}
	},
}

func init() {
	setCmd.Flags().StringVarP(&limitAmount, "limit", "l", "", "Positive limit amount")
	Cmd.AddCommand(setCmd)
	Cmd.AddCommand(removeCmd)
	Cmd.AddCommand(viewCmd)
}
