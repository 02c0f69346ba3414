// Package ledger owns the ordered collection of one user's transactions.
// It enforces the full-tuple uniqueness invariant, resolves categories
// through an injected classifier, and answers the aggregate queries the
// budget manager and report engine are built on.
//
// The store assumes its caller serializes access per user; it holds no
// locks of its own.
package ledger

import (
	"sort"

	"github.com/shopspring/decimal"

	"fjacquet/fintrack/internal/classifier"
	"fjacquet/fintrack/internal/dateutils"
	"fjacquet/fintrack/internal/ledgererror"
	"fjacquet/fintrack/internal/logging"
	"fjacquet/fintrack/internal/models"
)

// Store is the transaction ledger for a single user.
type Store struct {
	username   string
	classifier classifier.Classifier
	logger     logging.Logger

	txs  []models.Transaction
	keys map[string]struct{} // identity tuples currently in the ledger
}

// NewStore creates an empty ledger for username. The classifier resolves
// categories for transactions added without one; pass nil to disable
// auto-tagging (unclassified entries then fall back to the sentinel).
func NewStore(username string, cls classifier.Classifier, logger logging.Logger) *Store {
	if logger == nil {
		logger = logging.NewLogrusAdapterFromLogger(nil)
	}
	return &Store{
		username:   username,
		classifier: cls,
		logger:     logger.WithField("user", username),
		keys:       make(map[string]struct{}),
	}
}

// Username returns the owner of this ledger.
func (s *Store) Username() string {
	return s.username
}

// Len returns the number of transactions in the ledger.
func (s *Store) Len() int {
	return len(s.txs)
}

// Add validates the candidate, resolves its category if unset, checks the
// uniqueness invariant and appends it to the ledger. The stored record,
// with resolved category and assigned ID, is returned.
func (s *Store) Add(candidate models.Transaction) (models.Transaction, error) {
	t := candidate
	if t.ID == "" {
		t = models.NewTransaction(t.Date, t.Type, t.Amount, t.Category, t.Description)
	}

	s.resolveCategory(&t)
	if err := t.Validate(); err != nil {
		return models.Transaction{}, err
	}

	key := t.Key()
	if _, exists := s.keys[key]; exists {
		return models.Transaction{}, &ledgererror.DuplicateError{Key: key}
	}

	s.txs = append(s.txs, t)
	s.keys[key] = struct{}{}
	s.logger.Debug("Transaction committed",
		logging.F("id", t.ID),
		logging.F("type", t.Type),
		logging.F("category", t.Category),
		logging.F("amount", t.Amount.StringFixed(models.AmountPrecision)),
	)
	return t, nil
}

// Update locates exactly one transaction matching sel, applies the change
// set, re-validates and re-checks uniqueness against the other
// transactions. On success the committed record is returned.
func (s *Store) Update(sel Selector, changes Changes) (models.Transaction, error) {
	idx, err := s.findOne(sel)
	if err != nil {
		return models.Transaction{}, err
	}

	updated := s.txs[idx]
	if changes.Date != nil {
		updated.Date = dateutils.Normalize(*changes.Date)
	}
	if changes.Type != nil {
		updated.Type = *changes.Type
	}
	if changes.Amount != nil {
		updated.Amount = changes.Amount.Round(models.AmountPrecision)
	}
	if changes.Category != nil {
		updated.Category = *changes.Category
	}
	if changes.Description != nil {
		updated.Description = *changes.Description
	}

	s.resolveCategory(&updated)
	if err := updated.Validate(); err != nil {
		return models.Transaction{}, err
	}

	oldKey := s.txs[idx].Key()
	newKey := updated.Key()
	if newKey != oldKey {
		if _, exists := s.keys[newKey]; exists {
			return models.Transaction{}, &ledgererror.DuplicateError{Key: newKey}
		}
		delete(s.keys, oldKey)
		s.keys[newKey] = struct{}{}
	}

	s.txs[idx] = updated
	s.logger.Debug("Transaction updated", logging.F("id", updated.ID))
	return updated, nil
}

// Delete removes every transaction matching sel and returns the count.
// Zero matches is not an error.
func (s *Store) Delete(sel Selector) int {
	kept := s.txs[:0]
	removed := 0
	for _, t := range s.txs {
		if sel.Matches(t) {
			delete(s.keys, t.Key())
			removed++
			continue
		}
		kept = append(kept, t)
	}
	s.txs = kept
	if removed > 0 {
		s.logger.Debug("Transactions deleted", logging.F("count", removed))
	}
	return removed
}

// Query returns the transactions matching the filter as a fresh slice, in
// insertion order unless the filter requests a sort key. The read is pure:
// repeated calls with the same filter over unchanged state return equal
// results.
func (s *Store) Query(f Filter) []models.Transaction {
	var out []models.Transaction
	for _, t := range s.txs {
		if f.matches(t) {
			out = append(out, t)
		}
	}

	switch f.SortBy {
	case SortDate:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	case SortAmount:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Amount.LessThan(out[j].Amount) })
	case SortCategory:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Category < out[j].Category })
	}
	return out
}

// All returns every transaction in insertion order.
func (s *Store) All() []models.Transaction {
	return s.Query(Filter{})
}

// TotalsByCategory sums amounts per category for the given transaction
// type, optionally restricted to a date range.
func (s *Store) TotalsByCategory(typ models.TransactionType, dateRange *dateutils.Range) map[string]decimal.Decimal {
	totals := make(map[string]decimal.Decimal)
	for _, t := range s.txs {
		if t.Type != typ {
			continue
		}
		if dateRange != nil && !dateRange.Contains(t.Date) {
			continue
		}
		totals[t.Category] = totals[t.Category].Add(t.Amount)
	}
	return totals
}

// TotalIncome sums all income amounts, optionally within a date range.
func (s *Store) TotalIncome(dateRange *dateutils.Range) decimal.Decimal {
	return s.totalByType(models.TypeIncome, dateRange)
}

// TotalExpense sums all expense amounts, optionally within a date range.
func (s *Store) TotalExpense(dateRange *dateutils.Range) decimal.Decimal {
	return s.totalByType(models.TypeExpense, dateRange)
}

// Balance returns total income minus total expense over the whole ledger.
func (s *Store) Balance() decimal.Decimal {
	return s.TotalIncome(nil).Sub(s.TotalExpense(nil))
}

// Load replaces the ledger contents with previously persisted
// transactions. Each entry is validated and deduplicated the same way Add
// does it, so a corrupted state file cannot smuggle invariant violations
// into memory.
func (s *Store) Load(txs []models.Transaction) error {
	s.txs = nil
	s.keys = make(map[string]struct{})
	for _, t := range txs {
		if _, err := s.Add(t); err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) totalByType(typ models.TransactionType, dateRange *dateutils.Range) decimal.Decimal {
	total := decimal.Zero
	for _, t := range s.txs {
		if t.Type != typ {
			continue
		}
		if dateRange != nil && !dateRange.Contains(t.Date) {
			continue
		}
		total = total.Add(t.Amount)
	}
	return total
}

// resolveCategory fills an empty category: through the classifier when one
// is injected, otherwise with the type-appropriate fallback. Income with no
// keyword match defaults to Salary, matching long-standing tracker
// behavior.
func (s *Store) resolveCategory(t *models.Transaction) {
	if t.Category != "" {
		return
	}
	if s.classifier != nil {
		t.Category = s.classifier.Classify(t.Description)
	} else {
		t.Category = classifier.Uncategorized
	}
	if t.Category == classifier.Uncategorized && t.Type == models.TypeIncome {
		t.Category = models.CategorySalary
	}
}

// findOne resolves a selector that must match exactly one transaction.
func (s *Store) findOne(sel Selector) (int, error) {
	found := -1
	matches := 0
	for i, t := range s.txs {
		if sel.Matches(t) {
			found = i
			matches++
		}
	}
	switch matches {
	case 0:
		return -1, &ledgererror.NotFoundError{Selector: sel.String()}
	case 1:
		return found, nil
	default:
		return -1, &ledgererror.AmbiguousSelectorError{Selector: sel.String(), Matches: matches}
	}
}
