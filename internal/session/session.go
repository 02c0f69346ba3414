// Package session scopes a user's ledger, budgets and reports to one
// login. A Session is constructed after authentication from persisted
// state and discarded at logout; nothing in the core is shared across
// users or ambient.
package session

import (
	"fmt"

	"github.com/shopspring/decimal"

	"fjacquet/fintrack/internal/budget"
	"fjacquet/fintrack/internal/classifier"
	"fjacquet/fintrack/internal/ledger"
	"fjacquet/fintrack/internal/logging"
	"fjacquet/fintrack/internal/models"
	"fjacquet/fintrack/internal/report"
	"fjacquet/fintrack/internal/storage"
)

// AddOutcome is the observable result of committing one transaction: the
// stored record plus the alerts the commit produced. BudgetStatus is set
// for expense commits; it is never suppressed.
type AddOutcome struct {
	Transaction  models.Transaction
	BudgetStatus *budget.Status
	Balance      decimal.Decimal
	LowBalance   bool
}

// Session owns one user's store/manager/engine triple and flushes state
// through the storage adapter after every mutation.
type Session struct {
	Username string
	Store    *ledger.Store
	Budgets  *budget.Manager
	Reports  *report.Engine

	adapter             storage.Adapter
	lowBalanceThreshold decimal.Decimal
	logger              logging.Logger
}

// Options configures session construction.
type Options struct {
	Classifier          classifier.Classifier
	Adapter             storage.Adapter
	LowBalanceThreshold decimal.Decimal
	Logger              logging.Logger
}

// Open builds the session for username and restores its persisted state.
func Open(username string, opts Options) (*Session, error) {
	logger := opts.Logger
	if logger == nil {
		logger = logging.NewLogrusAdapterFromLogger(nil)
	}

	store := ledger.NewStore(username, opts.Classifier, logger)
	budgets := budget.NewManager(username, store)
	s := &Session{
		Username:            username,
		Store:               store,
		Budgets:             budgets,
		Reports:             report.NewEngine(store, budgets, logger),
		adapter:             opts.Adapter,
		lowBalanceThreshold: opts.LowBalanceThreshold,
		logger:              logger.WithField("user", username),
	}

	if s.adapter != nil {
		state, err := s.adapter.Load(username)
		if err != nil {
			return nil, fmt.Errorf("load ledger state: %w", err)
		}
		if err := s.restore(state); err != nil {
			return nil, fmt.Errorf("restore ledger state: %w", err)
		}
	}
	return s, nil
}

func (s *Session) restore(state storage.UserState) error {
	txs := make([]models.Transaction, 0, len(state.Transactions))
	for _, record := range state.Transactions {
		t, err := record.ToTransaction()
		if err != nil {
			return err
		}
		txs = append(txs, t)
	}
	if err := s.Store.Load(txs); err != nil {
		return err
	}
	return s.Budgets.Load(state.Budgets)
}

// AddTransaction commits a candidate through the store and, for expenses,
// evaluates the category budget synchronously as part of the same commit
// path. The evaluation result and the low-balance alert travel back with
// the stored record.
func (s *Session) AddTransaction(candidate models.Transaction) (AddOutcome, error) {
	stored, err := s.Store.Add(candidate)
	if err != nil {
		return AddOutcome{}, err
	}

	outcome := AddOutcome{
		Transaction: stored,
		Balance:     s.Store.Balance(),
	}
	if stored.IsExpense() {
		status := s.Budgets.Evaluate(stored.Category)
		outcome.BudgetStatus = &status
	}
	if s.lowBalanceThreshold.IsPositive() && outcome.Balance.LessThan(s.lowBalanceThreshold) {
		outcome.LowBalance = true
	}

	if err := s.Save(); err != nil {
		return AddOutcome{}, err
	}
	return outcome, nil
}

// UpdateTransaction applies a change set and persists.
func (s *Session) UpdateTransaction(sel ledger.Selector, changes ledger.Changes) (models.Transaction, error) {
	updated, err := s.Store.Update(sel, changes)
	if err != nil {
		return models.Transaction{}, err
	}
	return updated, s.Save()
}

// DeleteTransactions removes matching transactions and persists when
// anything changed.
func (s *Session) DeleteTransactions(sel ledger.Selector) (int, error) {
	removed := s.Store.Delete(sel)
	if removed == 0 {
		return 0, nil
	}
	return removed, s.Save()
}

// SetLimit sets a budget limit and persists.
func (s *Session) SetLimit(category string, amount decimal.Decimal) error {
	if err := s.Budgets.SetLimit(category, amount); err != nil {
		return err
	}
	return s.Save()
}

// RemoveLimit removes a budget limit and persists.
func (s *Session) RemoveLimit(category string) error {
	s.Budgets.RemoveLimit(category)
	return s.Save()
}

// ImportRecords bulk-imports external records and persists once the batch
// completes, whatever mix of outcomes it produced.
func (s *Session) ImportRecords(records []models.TransactionRecord) ([]report.ImportResult, error) {
	results := s.Reports.ImportRecords(records)
	return results, s.Save()
}

// Save flushes the current state through the storage adapter.
func (s *Session) Save() error {
	if s.adapter == nil {
		return nil
	}
	state := storage.UserState{
		Budgets: s.Budgets.Limits(),
	}
	for _, t := range s.Store.All() {
		state.Transactions = append(state.Transactions, models.NewTransactionRecord(t))
	}
	if err := s.adapter.Save(s.Username, state); err != nil {
		return fmt.Errorf("save ledger state: %w", err)
	}
	return nil
}
