package models

import (
	"github.com/shopspring/decimal"

	"fjacquet/fintrack/internal/dateutils"
	"fjacquet/fintrack/internal/ledgererror"
)

// TransactionRecord is the stable external schema for a transaction, the
// contract import/export adapters must honor. Dates travel as ISO calendar
// date strings, amounts as fixed-point decimals.
type TransactionRecord struct {
	Date        string          `csv:"Date" json:"date"`
	Type        string          `csv:"Type" json:"type"`
	Amount      decimal.Decimal `csv:"Amount" json:"amount"`
	Category    string          `csv:"Category" json:"category"`
	Description string          `csv:"Description" json:"description"`
}

// BudgetRecord is the stable external schema for a per-category budget
// limit.
type BudgetRecord struct {
	Category string          `csv:"Category" json:"category"`
	Limit    decimal.Decimal `csv:"Limit" json:"limit"`
}

// ToTransaction converts an external record into a core transaction,
// parsing and validating the wire fields. The category is carried over
// verbatim; an empty category is resolved later by the store.
func (r TransactionRecord) ToTransaction() (Transaction, error) {
	typ, err := ParseTransactionType(r.Type)
	if err != nil {
		return Transaction{}, err
	}

	date, err := dateutils.ParseDate(r.Date)
	if err != nil {
		return Transaction{}, &ledgererror.ValidationError{
			Field:  "date",
			Value:  r.Date,
			Reason: "not a recognized calendar date",
		}
	}

	return NewTransaction(date, typ, r.Amount, r.Category, r.Description), nil
}

// NewTransactionRecord converts a core transaction to its external record
// form.
func NewTransactionRecord(t Transaction) TransactionRecord {
	return TransactionRecord{
		Date:        dateutils.ToISODate(t.Date),
		Type:        string(t.Type),
		Amount:      t.Amount,
		Category:    t.Category,
		Description: t.Description,
	}
}
