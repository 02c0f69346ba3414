package storage

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fjacquet/fintrack/internal/models"
)

func sampleState() UserState {
	return UserState{
		Transactions: []models.TransactionRecord{
			{Date: "2025-06-01", Type: "income", Amount: decimal.RequireFromString("2500.00"), Category: "Salary", Description: "paycheck"},
			{Date: "2025-06-05", Type: "expense", Amount: decimal.RequireFromString("45.00"), Category: "Groceries", Description: "weekly shop"},
			{Date: "2025-06-20", Type: "expense", Amount: decimal.RequireFromString("800.00"), Category: "Rent", Description: "june rent"},
		},
		Budgets: map[string]decimal.Decimal{
			"Groceries": decimal.RequireFromString("300.00"),
			"Rent":      decimal.RequireFromString("850.00"),
		},
	}
}

func assertStateEquivalent(t *testing.T, expected, actual UserState) {
	t.Helper()
	require.Len(t, actual.Transactions, len(expected.Transactions))

	// The JSON layout groups transactions by type, so order across types is
	// not preserved. Compare as sets keyed by description.
	byDescription := make(map[string]models.TransactionRecord)
	for _, r := range actual.Transactions {
		byDescription[r.Description] = r
	}
	for _, want := range expected.Transactions {
		got, ok := byDescription[want.Description]
		require.True(t, ok, "missing transaction %q", want.Description)
		assert.Equal(t, want.Date, got.Date)
		assert.Equal(t, want.Type, got.Type)
		assert.Equal(t, want.Category, got.Category)
		assert.True(t, want.Amount.Equal(got.Amount))
	}

	require.Len(t, actual.Budgets, len(expected.Budgets))
	for category, want := range expected.Budgets {
		assert.True(t, want.Equal(actual.Budgets[category]), "budget %s", category)
	}
}

func TestJSONAdapterRoundTrip(t *testing.T) {
	adapter, err := NewJSONAdapter(t.TempDir())
	require.NoError(t, err)

	state := sampleState()
	require.NoError(t, adapter.Save("alice", state))

	loaded, err := adapter.Load("alice")
	require.NoError(t, err)
	assertStateEquivalent(t, state, loaded)
}

func TestJSONAdapterMissingFileIsEmptyState(t *testing.T) {
	adapter, err := NewJSONAdapter(t.TempDir())
	require.NoError(t, err)

	state, err := adapter.Load("nobody")
	assert.NoError(t, err)
	assert.Empty(t, state.Transactions)
	assert.NotNil(t, state.Budgets)
	assert.Empty(t, state.Budgets)
}

func TestJSONAdapterFileLayout(t *testing.T) {
	dir := t.TempDir()
	adapter, err := NewJSONAdapter(dir)
	require.NoError(t, err)
	require.NoError(t, adapter.Save("alice", sampleState()))

	data, err := os.ReadFile(filepath.Join(dir, "alice_ledger.json"))
	require.NoError(t, err)

	var layout struct {
		Transactions struct {
			Income  []json.RawMessage `json:"income"`
			Expense []json.RawMessage `json:"expense"`
		} `json:"transactions"`
		Budgets map[string]json.RawMessage `json:"budgets"`
	}
	require.NoError(t, json.Unmarshal(data, &layout))
	assert.Len(t, layout.Transactions.Income, 1)
	assert.Len(t, layout.Transactions.Expense, 2)
	assert.Len(t, layout.Budgets, 2)
}

func TestJSONAdapterIsolatesUsers(t *testing.T) {
	adapter, err := NewJSONAdapter(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, adapter.Save("alice", sampleState()))
	require.NoError(t, adapter.Save("bob", UserState{Budgets: map[string]decimal.Decimal{}}))

	bobState, err := adapter.Load("bob")
	require.NoError(t, err)
	assert.Empty(t, bobState.Transactions)

	aliceState, err := adapter.Load("alice")
	require.NoError(t, err)
	assert.Len(t, aliceState.Transactions, 3)
}

func TestJSONAdapterCorruptFile(t *testing.T) {
	dir := t.TempDir()
	adapter, err := NewJSONAdapter(dir)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "alice_ledger.json"), []byte("{broken"), 0600))
	_, err = adapter.Load("alice")
	assert.Error(t, err)
}

func TestJSONAdapterOverwrite(t *testing.T) {
	adapter, err := NewJSONAdapter(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, adapter.Save("alice", sampleState()))

	smaller := UserState{
		Transactions: []models.TransactionRecord{
			{Date: "2025-07-01", Type: "expense", Amount: decimal.NewFromInt(5), Category: "Groceries", Description: "snack"},
		},
		Budgets: map[string]decimal.Decimal{},
	}
	require.NoError(t, adapter.Save("alice", smaller))

	loaded, err := adapter.Load("alice")
	require.NoError(t, err)
	require.Len(t, loaded.Transactions, 1)
	assert.Equal(t, "snack", loaded.Transactions[0].Description)
	assert.Empty(t, loaded.Budgets)
}
