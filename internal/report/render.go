package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/gocarina/gocsv"

	"fjacquet/fintrack/internal/models"
)

// Supported render formats.
const (
	FormatText = "text"
	FormatCSV  = "csv"
	FormatJSON = "json"
)

// RenderSummary renders a summary in the requested format (text, csv or
// json) and returns it as a byte slice.
func RenderSummary(s Summary, format string) ([]byte, error) {
	switch format {
	case FormatJSON:
		return json.MarshalIndent(s, "", "  ")
	case FormatCSV:
		return renderSummaryCSV(s)
	case FormatText:
		return renderSummaryText(s)
	default:
		return nil, fmt.Errorf("unsupported report format: %s", format)
	}
}

// RenderRecords renders a transaction record batch as CSV or JSON.
func RenderRecords(records []models.TransactionRecord, format string) ([]byte, error) {
	switch format {
	case FormatJSON:
		return json.MarshalIndent(records, "", "  ")
	case FormatCSV:
		out, err := gocsv.MarshalString(&records)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal records to CSV: %w", err)
		}
		return []byte(out), nil
	default:
		return nil, fmt.Errorf("unsupported record format: %s", format)
	}
}

// RenderBudgets renders a budget record batch as CSV or JSON.
func RenderBudgets(records []models.BudgetRecord, format string) ([]byte, error) {
	switch format {
	case FormatJSON:
		return json.MarshalIndent(records, "", "  ")
	case FormatCSV:
		out, err := gocsv.MarshalString(&records)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal budgets to CSV: %w", err)
		}
		return []byte(out), nil
	default:
		return nil, fmt.Errorf("unsupported record format: %s", format)
	}
}

// ParseRecords decodes a CSV or JSON byte stream into transaction records.
func ParseRecords(data []byte, format string) ([]models.TransactionRecord, error) {
	var records []models.TransactionRecord
	switch format {
	case FormatJSON:
		if err := json.Unmarshal(data, &records); err != nil {
			return nil, fmt.Errorf("failed to parse JSON records: %w", err)
		}
	case FormatCSV:
		if err := gocsv.UnmarshalBytes(data, &records); err != nil {
			return nil, fmt.Errorf("failed to parse CSV records: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported record format: %s", format)
	}
	return records, nil
}

func renderSummaryCSV(s Summary) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString("Category,Spent,Limit,Remaining,Overage\n")
	for _, line := range s.Categories {
		limit, remaining, overage := "", "", ""
		if line.HasLimit {
			limit = line.Limit.StringFixed(models.AmountPrecision)
			remaining = line.Remaining.StringFixed(models.AmountPrecision)
			overage = line.Overage.StringFixed(models.AmountPrecision)
		}
		fmt.Fprintf(&buf, "%s,%s,%s,%s,%s\n",
			csvEscape(line.Category),
			line.Spent.StringFixed(models.AmountPrecision),
			limit, remaining, overage)
	}
	fmt.Fprintf(&buf, "\nTotal Income,%s\n", s.TotalIncome.StringFixed(models.AmountPrecision))
	fmt.Fprintf(&buf, "Total Expenses,%s\n", s.TotalExpense.StringFixed(models.AmountPrecision))
	fmt.Fprintf(&buf, "Net Balance,%s\n", s.NetBalance.StringFixed(models.AmountPrecision))
	fmt.Fprintf(&buf, "Total Budget Allocation,%s\n", s.TotalAllocation.StringFixed(models.AmountPrecision))
	fmt.Fprintf(&buf, "Planned Savings,%s\n", s.PlannedSavings.StringFixed(models.AmountPrecision))
	return buf.Bytes(), nil
}

func renderSummaryText(s Summary) ([]byte, error) {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "Financial Summary for %s\n\n", s.Username)

	w := tabwriter.NewWriter(&buf, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "Category\tSpent\tLimit\tRemaining")
	for _, line := range s.Categories {
		limit, remaining := "-", "-"
		if line.HasLimit {
			limit = line.Limit.StringFixed(models.AmountPrecision)
			if line.Overage.IsPositive() {
				remaining = "-" + line.Overage.StringFixed(models.AmountPrecision)
			} else {
				remaining = line.Remaining.StringFixed(models.AmountPrecision)
			}
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			line.Category, line.Spent.StringFixed(models.AmountPrecision), limit, remaining)
	}
	if err := w.Flush(); err != nil {
		return nil, err
	}

	fmt.Fprintf(&buf, "\nTotal Income:            %s\n", s.TotalIncome.StringFixed(models.AmountPrecision))
	fmt.Fprintf(&buf, "Total Expenses:          %s\n", s.TotalExpense.StringFixed(models.AmountPrecision))
	fmt.Fprintf(&buf, "Net Balance:             %s\n", s.NetBalance.StringFixed(models.AmountPrecision))
	fmt.Fprintf(&buf, "Total Budget Allocation: %s\n", s.TotalAllocation.StringFixed(models.AmountPrecision))
	fmt.Fprintf(&buf, "Planned Savings:         %s\n", s.PlannedSavings.StringFixed(models.AmountPrecision))

	if len(s.TopSpending) > 0 {
		fmt.Fprintf(&buf, "\nTop Spending Categories:\n")
		for i, top := range s.TopSpending {
			fmt.Fprintf(&buf, "%d. %s: %s\n", i+1, top.Category, top.Spent.StringFixed(models.AmountPrecision))
		}
	}
	if s.BiggestExpense != nil {
		fmt.Fprintf(&buf, "\nBiggest Expense: %s %s on %s (%s)\n",
			s.BiggestExpense.Category,
			s.BiggestExpense.Amount.StringFixed(models.AmountPrecision),
			s.BiggestExpense.Date,
			s.BiggestExpense.Description)
	}
	return buf.Bytes(), nil
}

func csvEscape(field string) string {
	if strings.ContainsAny(field, ",\"\n") {
		return `"` + strings.ReplaceAll(field, `"`, `""`) + `"`
	}
	return field
}
