// Package budget owns the per-category spending limits for one user and
// evaluates spend-to-date against them. Evaluation is a pure query over
// the transaction ledger; the manager never blocks a commit, it only
// reports.
package budget

import (
	"sort"

	"github.com/shopspring/decimal"

	"fjacquet/fintrack/internal/dateutils"
	"fjacquet/fintrack/internal/ledgererror"
	"fjacquet/fintrack/internal/models"
)

// ExpenseTotals is the slice of the ledger the manager depends on.
type ExpenseTotals interface {
	TotalsByCategory(typ models.TransactionType, dateRange *dateutils.Range) map[string]decimal.Decimal
}

// State is the outcome kind of a budget evaluation.
type State string

const (
	NoLimitSet     State = "no_limit_set"
	WithinBudget   State = "within_budget"
	BudgetExceeded State = "budget_exceeded"
)

// Status is the result of evaluating one category against its limit.
// Remaining is set for WithinBudget, Overage for BudgetExceeded; both are
// zero for NoLimitSet.
type Status struct {
	Category  string
	State     State
	Limit     decimal.Decimal
	Spent     decimal.Decimal
	Remaining decimal.Decimal
	Overage   decimal.Decimal
}

// Exceeded reports whether the status is a budget-exceeded alert.
func (s Status) Exceeded() bool {
	return s.State == BudgetExceeded
}

// Manager holds the budget limits for a single user. Like the ledger it
// assumes the caller serializes access per user.
type Manager struct {
	username string
	limits   map[string]decimal.Decimal
	store    ExpenseTotals
}

// NewManager creates an empty budget manager reading spend figures from
// store.
func NewManager(username string, store ExpenseTotals) *Manager {
	return &Manager{
		username: username,
		limits:   make(map[string]decimal.Decimal),
		store:    store,
	}
}

// SetLimit sets or replaces the limit for a category. The amount must be
// positive.
func (m *Manager) SetLimit(category string, amount decimal.Decimal) error {
	if category == "" {
		return &ledgererror.ValidationError{
			Field:  "category",
			Value:  "",
			Reason: "category is required",
		}
	}
	if !amount.IsPositive() {
		return &ledgererror.ValidationError{
			Field:  "limit",
			Value:  amount.String(),
			Reason: "budget limit must be greater than zero",
		}
	}
	m.limits[category] = amount.Round(models.AmountPrecision)
	return nil
}

// RemoveLimit deletes the limit for a category. Removing an absent limit
// is not an error.
func (m *Manager) RemoveLimit(category string) {
	delete(m.limits, category)
}

// Limit returns the limit for a category and whether one is set.
func (m *Manager) Limit(category string) (decimal.Decimal, bool) {
	limit, ok := m.limits[category]
	return limit, ok
}

// Limits returns a copy of all limits.
func (m *Manager) Limits() map[string]decimal.Decimal {
	out := make(map[string]decimal.Decimal, len(m.limits))
	for category, limit := range m.limits {
		out[category] = limit
	}
	return out
}

// Categories returns the budgeted categories in stable (sorted) order.
func (m *Manager) Categories() []string {
	out := make([]string, 0, len(m.limits))
	for category := range m.limits {
		out = append(out, category)
	}
	sort.Strings(out)
	return out
}

// Evaluate compares cumulative expense spend for a category against its
// limit. Spend is computed fresh from the ledger on every call, so the
// result always reflects the latest committed transactions.
func (m *Manager) Evaluate(category string) Status {
	spent := m.store.TotalsByCategory(models.TypeExpense, nil)[category]

	limit, ok := m.limits[category]
	if !ok {
		return Status{Category: category, State: NoLimitSet, Spent: spent}
	}

	if spent.GreaterThan(limit) {
		return Status{
			Category: category,
			State:    BudgetExceeded,
			Limit:    limit,
			Spent:    spent,
			Overage:  spent.Sub(limit),
		}
	}
	return Status{
		Category:  category,
		State:     WithinBudget,
		Limit:     limit,
		Spent:     spent,
		Remaining: limit.Sub(spent),
	}
}

// EvaluateAll evaluates every budgeted category, in stable order.
func (m *Manager) EvaluateAll() []Status {
	categories := m.Categories()
	out := make([]Status, 0, len(categories))
	for _, category := range categories {
		out = append(out, m.Evaluate(category))
	}
	return out
}

// TotalAllocation sums every configured limit.
func (m *Manager) TotalAllocation() decimal.Decimal {
	total := decimal.Zero
	for _, limit := range m.limits {
		total = total.Add(limit)
	}
	return total
}

// PlannedSavings returns income left over after the full budget
// allocation. Negative means the limits overcommit the income.
func (m *Manager) PlannedSavings(totalIncome decimal.Decimal) decimal.Decimal {
	return totalIncome.Sub(m.TotalAllocation())
}

// Load replaces all limits with previously persisted values, validating
// each one.
func (m *Manager) Load(limits map[string]decimal.Decimal) error {
	m.limits = make(map[string]decimal.Decimal, len(limits))
	for category, limit := range limits {
		if err := m.SetLimit(category, limit); err != nil {
			return err
		}
	}
	return nil
}
