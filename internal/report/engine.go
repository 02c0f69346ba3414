// Package report computes financial summaries from the ledger and budget
// manager and converts transactions to and from the stable external record
// schema. Rendering and file handling belong to the adapters and command
// layer; the engine only supplies data.
package report

import (
	"sort"

	"github.com/shopspring/decimal"

	"fjacquet/fintrack/internal/budget"
	"fjacquet/fintrack/internal/dateutils"
	"fjacquet/fintrack/internal/ledger"
	"fjacquet/fintrack/internal/ledgererror"
	"fjacquet/fintrack/internal/logging"
	"fjacquet/fintrack/internal/models"
)

// topCategoryCount bounds the "top spending" section of a summary.
const topCategoryCount = 3

// CategoryLine is one row of the per-category budget breakdown.
type CategoryLine struct {
	Category  string          `json:"category"`
	Spent     decimal.Decimal `json:"spent"`
	HasLimit  bool            `json:"has_limit"`
	Limit     decimal.Decimal `json:"limit"`
	Remaining decimal.Decimal `json:"remaining"`
	Overage   decimal.Decimal `json:"overage"`
}

// CategorySpend is a (category, total) pair used for the top-spending
// ranking.
type CategorySpend struct {
	Category string          `json:"category"`
	Spent    decimal.Decimal `json:"spent"`
}

// Summary is the aggregate financial picture for one user, deterministic
// given the store and budget state.
type Summary struct {
	Username        string                    `json:"username"`
	TotalIncome     decimal.Decimal           `json:"total_income"`
	TotalExpense    decimal.Decimal           `json:"total_expense"`
	NetBalance      decimal.Decimal           `json:"net_balance"`
	Categories      []CategoryLine            `json:"categories"`
	TotalAllocation decimal.Decimal           `json:"total_allocation"`
	PlannedSavings  decimal.Decimal           `json:"planned_savings"`
	TopSpending     []CategorySpend           `json:"top_spending"`
	BiggestExpense  *models.TransactionRecord `json:"biggest_expense,omitempty"`
}

// Engine reads from the transaction store and budget manager to produce
// summaries and record batches.
type Engine struct {
	store   *ledger.Store
	budgets *budget.Manager
	logger  logging.Logger
}

// NewEngine creates a report engine over one user's store and budgets.
func NewEngine(store *ledger.Store, budgets *budget.Manager, logger logging.Logger) *Engine {
	if logger == nil {
		logger = logging.NewLogrusAdapterFromLogger(nil)
	}
	return &Engine{
		store:   store,
		budgets: budgets,
		logger:  logger.WithField("component", "report"),
	}
}

// Summary computes aggregate totals, the per-category budget breakdown and
// the spending highlights, optionally restricted to a date range. Budget
// lines always compare against all-time spend, the contract the budget
// manager defines; the date range narrows the income/expense totals and
// the spending ranking.
func (e *Engine) Summary(dateRange *dateutils.Range) Summary {
	totalIncome := e.store.TotalIncome(dateRange)
	totalExpense := e.store.TotalExpense(dateRange)
	spentByCategory := e.store.TotalsByCategory(models.TypeExpense, dateRange)

	s := Summary{
		Username:        e.store.Username(),
		TotalIncome:     totalIncome,
		TotalExpense:    totalExpense,
		NetBalance:      totalIncome.Sub(totalExpense),
		TotalAllocation: e.budgets.TotalAllocation(),
		PlannedSavings:  e.budgets.PlannedSavings(totalIncome),
		Categories:      e.categoryLines(spentByCategory),
		TopSpending:     topSpending(spentByCategory),
	}

	if biggest := e.biggestExpense(dateRange); biggest != nil {
		record := models.NewTransactionRecord(*biggest)
		s.BiggestExpense = &record
	}
	return s
}

// categoryLines merges budgeted categories with observed spending into one
// breakdown, sorted by category name.
func (e *Engine) categoryLines(spent map[string]decimal.Decimal) []CategoryLine {
	names := make(map[string]struct{}, len(spent))
	for category := range spent {
		names[category] = struct{}{}
	}
	for _, category := range e.budgets.Categories() {
		names[category] = struct{}{}
	}

	lines := make([]CategoryLine, 0, len(names))
	for category := range names {
		line := CategoryLine{Category: category, Spent: spent[category]}
		if status := e.budgets.Evaluate(category); status.State != budget.NoLimitSet {
			line.HasLimit = true
			line.Limit = status.Limit
			line.Remaining = status.Remaining
			line.Overage = status.Overage
		}
		lines = append(lines, line)
	}
	sort.Slice(lines, func(i, j int) bool { return lines[i].Category < lines[j].Category })
	return lines
}

func topSpending(spent map[string]decimal.Decimal) []CategorySpend {
	ranked := make([]CategorySpend, 0, len(spent))
	for category, total := range spent {
		ranked = append(ranked, CategorySpend{Category: category, Spent: total})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if !ranked[i].Spent.Equal(ranked[j].Spent) {
			return ranked[i].Spent.GreaterThan(ranked[j].Spent)
		}
		return ranked[i].Category < ranked[j].Category
	})
	if len(ranked) > topCategoryCount {
		ranked = ranked[:topCategoryCount]
	}
	return ranked
}

func (e *Engine) biggestExpense(dateRange *dateutils.Range) *models.Transaction {
	typ := models.TypeExpense
	var biggest *models.Transaction
	for _, t := range e.store.Query(ledger.Filter{Range: dateRange, Type: &typ}) {
		t := t
		if biggest == nil || t.Amount.GreaterThan(biggest.Amount) {
			biggest = &t
		}
	}
	return biggest
}

// ExportRecords serializes the current transaction set, or the filtered
// subset, into the stable external record schema. It never touches
// storage; writing the records somewhere is the adapter's job.
func (e *Engine) ExportRecords(filter ledger.Filter) []models.TransactionRecord {
	txs := e.store.Query(filter)
	records := make([]models.TransactionRecord, 0, len(txs))
	for _, t := range txs {
		records = append(records, models.NewTransactionRecord(t))
	}
	return records
}

// ExportBudgets serializes the current budget limits, sorted by category.
func (e *Engine) ExportBudgets() []models.BudgetRecord {
	categories := e.budgets.Categories()
	records := make([]models.BudgetRecord, 0, len(categories))
	for _, category := range categories {
		limit, _ := e.budgets.Limit(category)
		records = append(records, models.BudgetRecord{Category: category, Limit: limit})
	}
	return records
}

// ImportOutcome classifies the result of importing one record.
type ImportOutcome string

const (
	ImportAdded     ImportOutcome = "added"
	ImportDuplicate ImportOutcome = "duplicate"
	ImportInvalid   ImportOutcome = "invalid"
)

// ImportResult is the per-record outcome of a bulk import.
type ImportResult struct {
	Index       int
	Outcome     ImportOutcome
	Transaction models.Transaction
	Err         error
}

// ImportRecords adds each incoming record through the store and collects a
// per-record result list. Duplicates and invalid records are reported, not
// fatal: the batch always runs to completion.
func (e *Engine) ImportRecords(records []models.TransactionRecord) []ImportResult {
	results := make([]ImportResult, 0, len(records))
	for i, record := range records {
		result := ImportResult{Index: i}

		t, err := record.ToTransaction()
		if err == nil {
			t, err = e.store.Add(t)
		}

		switch {
		case err == nil:
			result.Outcome = ImportAdded
			result.Transaction = t
		case ledgererror.IsDuplicate(err):
			result.Outcome = ImportDuplicate
			result.Err = err
		default:
			result.Outcome = ImportInvalid
			result.Err = err
		}
		results = append(results, result)
	}

	e.logger.Debug("Import finished",
		logging.F("total", len(records)),
		logging.F("added", countOutcome(results, ImportAdded)),
		logging.F("duplicates", countOutcome(results, ImportDuplicate)),
		logging.F("invalid", countOutcome(results, ImportInvalid)),
	)
	return results
}

func countOutcome(results []ImportResult, outcome ImportOutcome) int {
	n := 0
	for _, r := range results {
		if r.Outcome == outcome {
			n++
		}
	}
	return n
}
