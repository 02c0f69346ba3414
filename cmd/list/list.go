// Package list contains the command that queries and prints transactions.
package list

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"fjacquet/fintrack/cmd/root"
	"fjacquet/fintrack/internal/dateutils"
	"fjacquet/fintrack/internal/ledger"
	"fjacquet/fintrack/internal/models"
)

var (
	fromDate string
	toDate   string
	category string
	contains string
	txType   string
	sortBy   string
)

// Cmd is the list command.
var Cmd = &cobra.Command{
	Use:   "list",
	Short: "List transactions matching the given filters",
	Run: func(cmd *cobra.Command, args []string) {
		s, err := root.OpenSession()
		if err != nil {
			root.Log.WithError(err).Fatal("Failed to open session")
		}

		filter, err := buildFilter()
		if err != nil {
			root.Log.WithError(err).Fatal("Invalid filter")
		}

		txs := s.Store.Query(filter)
		if len(txs) == 0 {
			fmt.Println("No matching transactions found.")
			return
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tDate\tType\tAmount\tCategory\tDescription")
		for _, t := range txs {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
				t.ID,
				dateutils.ToISODate(t.Date),
				t.Type,
				t.Amount.StringFixed(models.AmountPrecision),
				t.Category,
				t.Description)
		}
		if err := w.Flush(); err != nil {
			root.Log.WithError(err).Fatal("Failed to render table")
		}
	},
}

func buildFilter() (ledger.Filter, error) {
	filter := ledger.Filter{
		Category:    category,
		Description: contains,
	}

	if fromDate != "" || toDate != "" {
		r, err := parseRange(fromDate, toDate)
		if err != nil {
			return ledger.Filter{}, err
		}
		filter.Range = &r
	}

	if txType != "" {
		typ, err := models.ParseTransactionType(txType)
		if err != nil {
			return ledger.Filter{}, err
		}
		filter.Type = &typ
	}

	key, err := ledger.ParseSortKey(sortBy)
	if err != nil {
		return ledger.Filter{}, err
	}
	filter.SortBy = key
	return filter, nil
}

func parseRange(from, to string) (dateutils.Range, error) {
	var r dateutils.Range
	if from != "" {
		parsed, err := dateutils.ParseDate(from)
		if err != nil {
			return r, err
		}
		r.From = parsed
	}
	if to != "" {
		parsed, err := dateutils.ParseDate(to)
		if err != nil {
			return r, err
		}
		r.To = parsed
	}
	return dateutils.NewRange(r.From, r.To)
}

func init() {
	Cmd.Flags().StringVar(&fromDate, "from", "", "Start date (YYYY-MM-DD)")
	Cmd.Flags().StringVar(&toDate, "to", "", "End date (YYYY-MM-DD)")
	Cmd.Flags().StringVarP(&category, "category", "c", "", "Exact category match")
	Cmd.Flags().StringVarP(&contains, "search", "s", "", "Description substring")
	Cmd.Flags().StringVarP(&txType, "type", "t", "", "Transaction type: income or expense")
	Cmd.Flags().StringVar(&sortBy, "sort", "", "Sort key: date, amount or category")
}
