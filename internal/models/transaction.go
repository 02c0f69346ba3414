// Package models provides the data structures used throughout the application.
package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"fjacquet/fintrack/internal/dateutils"
	"fjacquet/fintrack/internal/ledgererror"
)

// TransactionType distinguishes money coming in from money going out.
type TransactionType string

const (
	TypeIncome  TransactionType = "income"
	TypeExpense TransactionType = "expense"
)

// ParseTransactionType converts a wire-format type string to a
// TransactionType, case-insensitively.
func ParseTransactionType(s string) (TransactionType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case string(TypeIncome):
		return TypeIncome, nil
	case string(TypeExpense):
		return TypeExpense, nil
	default:
		return "", &ledgererror.ValidationError{
			Field:  "type",
			Value:  s,
			Reason: "must be 'income' or 'expense'",
		}
	}
}

// Transaction represents a single ledger entry for one user. Its identity
// for duplicate detection is the full (date, type, amount, category,
// description) tuple; the ID only exists so callers can address a specific
// row.
type Transaction struct {
	ID          string
	Date        time.Time
	Type        TransactionType
	Amount      decimal.Decimal
	Category    string
	Description string
}

// NewTransaction builds a transaction with a fresh ID and a normalized
// date and amount. The result is not yet validated; the store validates on
// commit once the category has been resolved.
func NewTransaction(date time.Time, typ TransactionType, amount decimal.Decimal, category, description string) Transaction {
	t := Transaction{
		ID:          uuid.NewString(),
		Date:        date,
		Type:        typ,
		Amount:      amount,
		Category:    strings.TrimSpace(category),
		Description: strings.TrimSpace(description),
	}
	t.normalize()
	return t
}

// normalize rounds the amount to currency-unit precision and strips the
// time component from the date.
func (t *Transaction) normalize() {
	t.Amount = t.Amount.Round(AmountPrecision)
	if !t.Date.IsZero() {
		t.Date = dateutils.Normalize(t.Date)
	}
}

// Validate checks the committed form of a transaction: positive amount,
// well-formed date, recognized type and a resolved category. Zero amounts
// are invalid.
func (t *Transaction) Validate() error {
	if t.Type != TypeIncome && t.Type != TypeExpense {
		return &ledgererror.ValidationError{
			Field:  "type",
			Value:  string(t.Type),
			Reason: "must be 'income' or 'expense'",
		}
	}
	if t.Date.IsZero() {
		return &ledgererror.ValidationError{
			Field:  "date",
			Value:  "",
			Reason: "date is required",
		}
	}
	if !t.Amount.IsPositive() {
		return &ledgererror.ValidationError{
			Field:  "amount",
			Value:  t.Amount.String(),
			Reason: "amount must be greater than zero",
		}
	}
	if t.Category == "" {
		return &ledgererror.ValidationError{
			Field:  "category",
			Value:  "",
			Reason: "category is required",
		}
	}
	return nil
}

// Key returns the identity tuple used for duplicate detection. Two
// transactions with equal keys are the same transaction as far as the
// uniqueness invariant is concerned, regardless of their IDs.
func (t *Transaction) Key() string {
	return fmt.Sprintf("%s|%s|%s|%s|%s",
		dateutils.ToISODate(t.Date),
		t.Type,
		t.Amount.StringFixed(AmountPrecision),
		t.Category,
		t.Description,
	)
}

// IsExpense reports whether the transaction is an expense.
func (t *Transaction) IsExpense() bool {
	return t.Type == TypeExpense
}

// IsIncome reports whether the transaction is an income entry.
func (t *Transaction) IsIncome() bool {
	return t.Type == TypeIncome
}
