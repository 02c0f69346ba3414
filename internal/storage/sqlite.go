package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite"

	"fjacquet/fintrack/internal/models"
)

const schema = `
CREATE TABLE IF NOT EXISTS transactions (
	username    TEXT NOT NULL,
	position    INTEGER NOT NULL,
	date        TEXT NOT NULL,
	type        TEXT NOT NULL,
	amount      TEXT NOT NULL,
	category    TEXT NOT NULL,
	description TEXT NOT NULL,
	PRIMARY KEY (username, position)
);
CREATE TABLE IF NOT EXISTS budgets (
	username     TEXT NOT NULL,
	category     TEXT NOT NULL,
	limit_amount TEXT NOT NULL,
	PRIMARY KEY (username, category)
);
`

// SQLiteAdapter persists user state in a single SQLite database file.
// Amounts are stored as fixed-point strings to keep decimal precision
// intact.
type SQLiteAdapter struct {
	db *sql.DB
}

// NewSQLiteAdapter opens (or creates) the database at dbPath and ensures
// the schema exists.
func NewSQLiteAdapter(dbPath string) (*SQLiteAdapter, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), models.PermissionDirectory); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return &SQLiteAdapter{db: db}, nil
}

// Close releases the underlying database handle.
func (a *SQLiteAdapter) Close() error {
	if a.db != nil {
		return a.db.Close()
	}
	return nil
}

// Load reads all transactions (in insertion order) and budget limits for
// one user. An unknown user yields an empty state.
func (a *SQLiteAdapter) Load(username string) (UserState, error) {
	state := UserState{Budgets: map[string]decimal.Decimal{}}

	rows, err := a.db.Query(
		`SELECT date, type, amount, category, description
		 FROM transactions WHERE username = ? ORDER BY position`, username)
	if err != nil {
		return UserState{}, fmt.Errorf("query transactions: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var r models.TransactionRecord
		var amount string
		if err := rows.Scan(&r.Date, &r.Type, &amount, &r.Category, &r.Description); err != nil {
			return UserState{}, fmt.Errorf("scan transaction: %w", err)
		}
		r.Amount, err = decimal.NewFromString(amount)
		if err != nil {
			return UserState{}, fmt.Errorf("parse stored amount '%s': %w", amount, err)
		}
		state.Transactions = append(state.Transactions, r)
	}
	if err := rows.Err(); err != nil {
		return UserState{}, fmt.Errorf("iterate transactions: %w", err)
	}

	budgetRows, err := a.db.Query(
		`SELECT category, limit_amount FROM budgets WHERE username = ?`, username)
	if err != nil {
		return UserState{}, fmt.Errorf("query budgets: %w", err)
	}
	defer budgetRows.Close()

	for budgetRows.Next() {
		var category, limit string
		if err := budgetRows.Scan(&category, &limit); err != nil {
			return UserState{}, fmt.Errorf("scan budget: %w", err)
		}
		parsed, err := decimal.NewFromString(limit)
		if err != nil {
			return UserState{}, fmt.Errorf("parse stored limit '%s': %w", limit, err)
		}
		state.Budgets[category] = parsed
	}
	if err := budgetRows.Err(); err != nil {
		return UserState{}, fmt.Errorf("iterate budgets: %w", err)
	}
	return state, nil
}

// Save replaces the user's rows with the given state in one transaction.
func (a *SQLiteAdapter) Save(username string, state UserState) error {
	tx, err := a.db.Begin()
	if err != nil {
		return fmt.Errorf("begin save: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM transactions WHERE username = ?`, username); err != nil {
		return fmt.Errorf("clear transactions: %w", err)
	}
	if _, err := tx.Exec(`DELETE FROM budgets WHERE username = ?`, username); err != nil {
		return fmt.Errorf("clear budgets: %w", err)
	}

	for i, r := range state.Transactions {
		_, err := tx.Exec(
			`INSERT INTO transactions (username, position, date, type, amount, category, description)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			username, i, r.Date, r.Type, r.Amount.StringFixed(models.AmountPrecision), r.Category, r.Description)
		if err != nil {
			return fmt.Errorf("insert transaction: %w", err)
		}
	}
	for category, limit := range state.Budgets {
		_, err := tx.Exec(
			`INSERT INTO budgets (username, category, limit_amount) VALUES (?, ?, ?)`,
			username, category, limit.StringFixed(models.AmountPrecision))
		if err != nil {
			return fmt.Errorf("insert budget: %w", err)
		}
	}
	return tx.Commit()
}
