// Package storage persists per-user ledger state through pluggable
// adapters. The persisted layout is one transaction collection keyed by
// username plus one budget map keyed by (username, category); both
// adapters honor it.
package storage

import (
	"github.com/shopspring/decimal"

	"fjacquet/fintrack/internal/models"
)

// UserState is the complete persisted state for one user.
type UserState struct {
	Transactions []models.TransactionRecord
	Budgets      map[string]decimal.Decimal
}

// Adapter loads and saves one user's state. Load for an unknown user
// returns an empty state, not an error; a new user simply has no history
// yet.
type Adapter interface {
	Load(username string) (UserState, error)
	Save(username string, state UserState) error
}
