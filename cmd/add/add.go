// Package add contains the command that records a new transaction.
package add

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"fjacquet/fintrack/cmd/root"
	"fjacquet/fintrack/internal/budget"
	"fjacquet/fintrack/internal/dateutils"
	"fjacquet/fintrack/internal/logging"
	"fjacquet/fintrack/internal/models"
)

var (
	txType      string
	txDate      string
	txAmount    string
	txCategory  string
	description string
)

// Cmd is the add command.
var Cmd = &cobra.Command{
	Use:   "add",
	Short: "Record an income or expense transaction",
	Long: `Add validates and commits one transaction. When no category is given it
is inferred from the description. For expenses the category budget is
evaluated immediately after the commit and any exceeded limit is reported.`,
	Run: func(cmd *cobra.Command, args []string) {
		s, err := root.OpenSession()
		if err != nil {
			root.Log.WithError(err).Fatal("Failed to open session")
		}

		typ, err := models.ParseTransactionType(txType)
		if err != nil {
			root.Log.WithError(err).Fatal("Invalid transaction type")
		}

		date, err := dateutils.ParseDate(txDate)
		if err != nil {
			root.Log.WithError(err).Fatal("Invalid date")
		}

		amount, err := decimal.NewFromString(txAmount)
		if err != nil {
			root.Log.WithError(err).Fatal("Invalid amount")
		}

		outcome, err := s.AddTransaction(models.NewTransaction(date, typ, amount, txCategory, description))
		if err != nil {
			root.Log.WithError(err).Fatal("Transaction rejected")
		}

		fmt.Printf("Added %s %s in %s on %s\n",
			outcome.Transaction.Type,
			outcome.Transaction.Amount.StringFixed(models.AmountPrecision),
			outcome.Transaction.Category,
			dateutils.ToISODate(outcome.Transaction.Date))

		if status := outcome.BudgetStatus; status != nil && status.State == budget.BudgetExceeded {
			root.Log.Warn("Budget exceeded",
				logging.F("category", status.Category),
				logging.F("overage", status.Overage.StringFixed(models.AmountPrecision)))
		}
		if outcome.LowBalance {
			root.Log.Warn("Balance is low",
				logging.F("balance", outcome.Balance.StringFixed(models.AmountPrecision)))
		}
	},
}

func init() {
	Cmd.Flags().StringVarP(&txType, "type", "t", "expense", "Transaction type: income or expense")
	Cmd.Flags().StringVarP(&txDate, "date", "d", "", "Transaction date (YYYY-MM-DD)")
	Cmd.Flags().StringVarP(&txAmount, "amount", "a", "", "Amount")
	Cmd.Flags().StringVarP(&txCategory, "category", "c", "", "Category (inferred from description when empty)")
	Cmd.Flags().StringVarP(&description, "description", "m", "", "Free-text description")
}
