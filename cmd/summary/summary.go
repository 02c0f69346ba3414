// Package summary contains the command that renders the financial
// summary.
package summary

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"fjacquet/fintrack/cmd/root"
	"fjacquet/fintrack/internal/dateutils"
	"fjacquet/fintrack/internal/models"
	"fjacquet/fintrack/internal/report"
)

var (
	format   string
	output   string
	fromDate string
	toDate   string
)

// Cmd is the summary command.
var Cmd = &cobra.Command{
	Use:   "summary",
	Short: "Show totals, budget status and spending highlights",
	Run: func(cmd *cobra.Command, args []string) {
		s, err := root.OpenSession()
		if err != nil {
			root.Log.WithError(err).Fatal("Failed to open session")
		}

		dateRange, err := parseRange()
		if err != nil {
			root.Log.WithError(err).Fatal("Invalid date range")
		}

		rendered, err := report.RenderSummary(s.Reports.Summary(dateRange), format)
		if err != nil {
			root.Log.WithError(err).Fatal("Failed to render summary")
		}

		if output == "" {
			fmt.Print(string(rendered))
			return
		}
		if err := os.WriteFile(output, rendered, models.PermissionExport); err != nil {
			root.Log.WithError(err).Fatal("Failed to write summary file")
		}
		fmt.Printf("Summary written to %s\n", output)
	},
}

func parseRange() (*dateutils.Range, error) {
	if fromDate == "" && toDate == "" {
		return nil, nil
	}

	var from, to time.Time
	var err error
	if fromDate != "" {
		if from, err = dateutils.ParseDate(fromDate); err != nil {
			return nil, err
		}
	}
	if toDate != "" {
		if to, err = dateutils.ParseDate(toDate); err != nil {
			return nil, err
		}
	}

	r, err := dateutils.NewRange(from, to)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

func init() {
	Cmd.Flags().StringVarP(&format, "format", "f", report.FormatText, "Output format: text, csv or json")
	Cmd.Flags().StringVarP(&output, "output", "o", "", "Write to file instead of stdout")
	Cmd.Flags().StringVar(&fromDate, "from", "", "Start date (YYYY-MM-DD)")
	Cmd.Flags().StringVar(&toDate, "to", "", "End date (YYYY-MM-DD)")
}
