package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/shopspring/decimal"

	"fjacquet/fintrack/internal/models"
)

// jsonState is the on-disk layout of a user's ledger file: transactions
// split by type plus the budget map, the same shape earlier versions of
// the tracker wrote.
type jsonState struct {
	Transactions struct {
		Income  []models.TransactionRecord `json:"income"`
		Expense []models.TransactionRecord `json:"expense"`
	} `json:"transactions"`
	Budgets map[string]decimal.Decimal `json:"budgets"`
}

// JSONAdapter stores one <username>_ledger.json file per user under a data
// directory.
type JSONAdapter struct {
	dir string
}

// NewJSONAdapter creates an adapter rooted at dir, creating the directory
// if needed.
func NewJSONAdapter(dir string) (*JSONAdapter, error) {
	if err := os.MkdirAll(dir, models.PermissionDirectory); err != nil {
		return nil, fmt.Errorf("error creating data directory: %w", err)
	}
	return &JSONAdapter{dir: dir}, nil
}

func (a *JSONAdapter) userFile(username string) string {
	return filepath.Join(a.dir, username+"_ledger.json")
}

// Load reads a user's state file. A missing file yields an empty state.
func (a *JSONAdapter) Load(username string) (UserState, error) {
	data, err := os.ReadFile(a.userFile(username))
	if err != nil {
		if os.IsNotExist(err) {
			return UserState{Budgets: map[string]decimal.Decimal{}}, nil
		}
		return UserState{}, fmt.Errorf("error reading ledger file: %w", err)
	}

	var state jsonState
	if err := json.Unmarshal(data, &state); err != nil {
		return UserState{}, fmt.Errorf("error parsing ledger file for %s: %w", username, err)
	}

	out := UserState{Budgets: state.Budgets}
	if out.Budgets == nil {
		out.Budgets = map[string]decimal.Decimal{}
	}
	out.Transactions = append(out.Transactions, state.Transactions.Income...)
	out.Transactions = append(out.Transactions, state.Transactions.Expense...)
	return out, nil
}

// Save writes a user's state file atomically (write to temp file, then
// rename).
func (a *JSONAdapter) Save(username string, state UserState) error {
	var file jsonState
	file.Budgets = state.Budgets
	if file.Budgets == nil {
		file.Budgets = map[string]decimal.Decimal{}
	}
	file.Transactions.Income = []models.TransactionRecord{}
	file.Transactions.Expense = []models.TransactionRecord{}
	for _, r := range state.Transactions {
		if r.Type == string(models.TypeIncome) {
			file.Transactions.Income = append(file.Transactions.Income, r)
		} else {
			file.Transactions.Expense = append(file.Transactions.Expense, r)
		}
	}

	data, err := json.MarshalIndent(file, "", "  ")
	if err != nil {
		return fmt.Errorf("error marshaling ledger state: %w", err)
	}

	target := a.userFile(username)
	tmp := target + ".tmp"
	if err := os.WriteFile(tmp, data, models.PermissionDataFile); err != nil {
		return fmt.Errorf("error writing ledger file: %w", err)
	}
	if err := os.Rename(tmp, target); err != nil {
		return fmt.Errorf("error replacing ledger file: %w", err)
	}
	return nil
}
