package ledger

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fjacquet/fintrack/internal/classifier"
	"fjacquet/fintrack/internal/dateutils"
	"fjacquet/fintrack/internal/ledgererror"
	"fjacquet/fintrack/internal/logging"
	"fjacquet/fintrack/internal/models"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return NewStore("alice", classifier.NewDefaultClassifier(), logging.NewMockLogger())
}

func day(d int) time.Time {
	return time.Date(2025, time.June, d, 0, 0, 0, 0, time.UTC)
}

func expense(d int, amount, category, description string) models.Transaction {
	return models.NewTransaction(day(d), models.TypeExpense, decimal.RequireFromString(amount), category, description)
}

func income(d int, amount, category, description string) models.Transaction {
	return models.NewTransaction(day(d), models.TypeIncome, decimal.RequireFromString(amount), category, description)
}

func TestAddAndRetrieve(t *testing.T) {
	s := newTestStore(t)

	stored, err := s.Add(expense(1, "45.50", "Groceries", "weekly shop"))
	require.NoError(t, err)
	assert.NotEmpty(t, stored.ID)
	assert.Equal(t, "Groceries", stored.Category)
	assert.Equal(t, 1, s.Len())

	all := s.All()
	require.Len(t, all, 1)
	assert.Equal(t, stored.Key(), all[0].Key())
}

func TestAddRejectsExactDuplicate(t *testing.T) {
	s := newTestStore(t)

	_, err := s.Add(expense(1, "45.50", "Groceries", "weekly shop"))
	require.NoError(t, err)

	_, err = s.Add(expense(1, "45.50", "Groceries", "weekly shop"))
	assert.Error(t, err)
	assert.True(t, ledgererror.IsDuplicate(err))
	assert.Equal(t, 1, s.Len())
}

func TestAddAcceptsNearDuplicate(t *testing.T) {
	s := newTestStore(t)

	_, err := s.Add(expense(1, "45.50", "Groceries", "weekly shop"))
	require.NoError(t, err)

	// Any differing tuple field makes it a distinct transaction.
	_, err = s.Add(expense(1, "45.50", "Groceries", "second weekly shop"))
	assert.NoError(t, err)
	_, err = s.Add(expense(2, "45.50", "Groceries", "weekly shop"))
	assert.NoError(t, err)
	_, err = s.Add(expense(1, "45.51", "Groceries", "weekly shop"))
	assert.NoError(t, err)
	assert.Equal(t, 4, s.Len())
}

func TestAddResolvesCategoryThroughClassifier(t *testing.T) {
	s := newTestStore(t)

	stored, err := s.Add(expense(3, "12.00", "", "supermarket run"))
	require.NoError(t, err)
	assert.Equal(t, "Groceries", stored.Category)

	stored, err = s.Add(expense(3, "30.00", "", "nothing recognizable"))
	require.NoError(t, err)
	assert.Equal(t, classifier.Uncategorized, stored.Category)
}

func TestAddIncomeFallsBackToSalary(t *testing.T) {
	s := newTestStore(t)

	stored, err := s.Add(income(25, "2500.00", "", "monthly transfer"))
	require.NoError(t, err)
	assert.Equal(t, models.CategorySalary, stored.Category)
}

func TestAddExplicitCategoryWins(t *testing.T) {
	s := newTestStore(t)

	stored, err := s.Add(expense(3, "12.00", "Gifts", "supermarket run"))
	require.NoError(t, err)
	assert.Equal(t, "Gifts", stored.Category)
}

func TestAddValidation(t *testing.T) {
	s := newTestStore(t)

	tests := []struct {
		name      string
		candidate models.Transaction
	}{
		{"Zero amount", expense(1, "0", "Groceries", "free lunch")},
		{"Negative amount", expense(1, "-5.00", "Groceries", "refund")},
		{"Zero date", models.NewTransaction(time.Time{}, models.TypeExpense, decimal.NewFromInt(5), "Groceries", "x")},
		{"Bad type", models.NewTransaction(day(1), "loan", decimal.NewFromInt(5), "Groceries", "x")},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := s.Add(tc.candidate)
			assert.Error(t, err)
			assert.True(t, ledgererror.IsValidation(err))
		})
	}
	assert.Equal(t, 0, s.Len())
}

func TestUpdateByID(t *testing.T) {
	s := newTestStore(t)
	stored, err := s.Add(expense(1, "45.50", "Groceries", "weekly shop"))
	require.NoError(t, err)

	newAmount := decimal.RequireFromString("50.00")
	updated, err := s.Update(Selector{ID: stored.ID}, Changes{Amount: &newAmount})
	require.NoError(t, err)
	assert.Equal(t, "50.00", updated.Amount.StringFixed(models.AmountPrecision))
	assert.Equal(t, stored.ID, updated.ID)

	all := s.All()
	require.Len(t, all, 1)
	assert.Equal(t, "50.00", all[0].Amount.StringFixed(models.AmountPrecision))
}

func TestUpdateNotFound(t *testing.T) {
	s := newTestStore(t)

	_, err := s.Update(Selector{ID: "missing"}, Changes{})
	assert.Error(t, err)
	assert.True(t, ledgererror.IsNotFound(err))
}

func TestUpdateAmbiguousSelector(t *testing.T) {
	s := newTestStore(t)
	_, err := s.Add(expense(1, "10.00", "Groceries", "shop one"))
	require.NoError(t, err)
	_, err = s.Add(expense(1, "20.00", "Groceries", "shop two"))
	require.NoError(t, err)

	newCategory := "Food"
	_, err = s.Update(Selector{Category: "Groceries"}, Changes{Category: &newCategory})
	assert.Error(t, err)
	assert.True(t, ledgererror.IsAmbiguous(err))
}

func TestUpdateRejectsCollision(t *testing.T) {
	s := newTestStore(t)
	_, err := s.Add(expense(1, "10.00", "Groceries", "shop"))
	require.NoError(t, err)
	second, err := s.Add(expense(1, "20.00", "Groceries", "shop"))
	require.NoError(t, err)

	// Changing the amount to 10.00 would collide with the first entry.
	collide := decimal.RequireFromString("10.00")
	_, err = s.Update(Selector{ID: second.ID}, Changes{Amount: &collide})
	assert.Error(t, err)
	assert.True(t, ledgererror.IsDuplicate(err))

	// The original row is untouched and still addressable.
	kept, err := s.Update(Selector{ID: second.ID}, Changes{})
	assert.NoError(t, err)
	assert.Equal(t, "20.00", kept.Amount.StringFixed(models.AmountPrecision))
}

func TestUpdateSameRowKeepsKey(t *testing.T) {
	s := newTestStore(t)
	stored, err := s.Add(expense(1, "10.00", "Groceries", "shop"))
	require.NoError(t, err)

	// Re-asserting the current values is not a collision with itself.
	same := decimal.RequireFromString("10.00")
	updated, err := s.Update(Selector{ID: stored.ID}, Changes{Amount: &same})
	assert.NoError(t, err)
	assert.Equal(t, stored.Key(), updated.Key())
}

func TestUpdateValidationRejected(t *testing.T) {
	s := newTestStore(t)
	stored, err := s.Add(expense(1, "10.00", "Groceries", "shop"))
	require.NoError(t, err)

	bad := decimal.Zero
	_, err = s.Update(Selector{ID: stored.ID}, Changes{Amount: &bad})
	assert.Error(t, err)
	assert.True(t, ledgererror.IsValidation(err))
}

func TestDeleteBulkAndCount(t *testing.T) {
	s := newTestStore(t)
	_, err := s.Add(expense(1, "10.00", "Groceries", "shop one"))
	require.NoError(t, err)
	_, err = s.Add(expense(2, "20.00", "Groceries", "shop two"))
	require.NoError(t, err)
	_, err = s.Add(expense(3, "30.00", "Rent", "march rent"))
	require.NoError(t, err)

	removed := s.Delete(Selector{Category: "groceries"})
	assert.Equal(t, 2, removed)
	assert.Equal(t, 1, s.Len())

	// No matches is a zero count, not an error.
	assert.Equal(t, 0, s.Delete(Selector{Category: "Groceries"}))

	// Deleted tuples can be re-added.
	_, err = s.Add(expense(1, "10.00", "Groceries", "shop one"))
	assert.NoError(t, err)
}

func TestDeleteEmptySelectorMatchesNothing(t *testing.T) {
	s := newTestStore(t)
	_, err := s.Add(expense(1, "10.00", "Groceries", "shop"))
	require.NoError(t, err)

	assert.Equal(t, 0, s.Delete(Selector{}))
	assert.Equal(t, 1, s.Len())
}

func TestQueryFilters(t *testing.T) {
	s := newTestStore(t)
	_, err := s.Add(income(1, "2500.00", "Salary", "paycheck"))
	require.NoError(t, err)
	_, err = s.Add(expense(5, "45.00", "Groceries", "weekly shop"))
	require.NoError(t, err)
	_, err = s.Add(expense(20, "800.00", "Rent", "june rent"))
	require.NoError(t, err)

	expenseType := models.TypeExpense
	r, err := dateutils.NewRange(day(2), day(10))
	require.NoError(t, err)

	tests := []struct {
		name     string
		filter   Filter
		expected int
	}{
		{"All", Filter{}, 3},
		{"By type", Filter{Type: &expenseType}, 2},
		{"By category case-insensitive", Filter{Category: "rent"}, 1},
		{"By description substring", Filter{Description: "WEEKLY"}, 1},
		{"By date range", Filter{Range: &r}, 1},
		{"Combined", Filter{Type: &expenseType, Category: "Groceries"}, 1},
		{"No match", Filter{Category: "Travel"}, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Len(t, s.Query(tc.filter), tc.expected)
		})
	}
}

func TestQuerySortKeys(t *testing.T) {
	s := newTestStore(t)
	_, err := s.Add(expense(20, "800.00", "Rent", "june rent"))
	require.NoError(t, err)
	_, err = s.Add(expense(5, "45.00", "Groceries", "weekly shop"))
	require.NoError(t, err)
	_, err = s.Add(expense(10, "12.00", "Utilities", "water bill"))
	require.NoError(t, err)

	byDate := s.Query(Filter{SortBy: SortDate})
	assert.Equal(t, "weekly shop", byDate[0].Description)
	assert.Equal(t, "june rent", byDate[2].Description)

	byAmount := s.Query(Filter{SortBy: SortAmount})
	assert.Equal(t, "water bill", byAmount[0].Description)
	assert.Equal(t, "june rent", byAmount[2].Description)

	byCategory := s.Query(Filter{SortBy: SortCategory})
	assert.Equal(t, "Groceries", byCategory[0].Category)
	assert.Equal(t, "Utilities", byCategory[2].Category)
}

func TestQueryIsPure(t *testing.T) {
	s := newTestStore(t)
	_, err := s.Add(expense(5, "45.00", "Groceries", "weekly shop"))
	require.NoError(t, err)
	_, err = s.Add(expense(10, "12.00", "Utilities", "water bill"))
	require.NoError(t, err)

	first := s.Query(Filter{SortBy: SortAmount})
	second := s.Query(Filter{SortBy: SortAmount})
	assert.Equal(t, first, second)
	assert.Equal(t, 2, s.Len())
}

func TestTotalsAndBalance(t *testing.T) {
	s := newTestStore(t)
	_, err := s.Add(income(1, "2500.00", "Salary", "paycheck"))
	require.NoError(t, err)
	_, err = s.Add(expense(5, "45.00", "Groceries", "weekly shop"))
	require.NoError(t, err)
	_, err = s.Add(expense(20, "800.00", "Rent", "june rent"))
	require.NoError(t, err)

	assert.Equal(t, "2500.00", s.TotalIncome(nil).StringFixed(2))
	assert.Equal(t, "845.00", s.TotalExpense(nil).StringFixed(2))
	assert.Equal(t, "1655.00", s.Balance().StringFixed(2))

	byCategory := s.TotalsByCategory(models.TypeExpense, nil)
	assert.Equal(t, "45.00", byCategory["Groceries"].StringFixed(2))
	assert.Equal(t, "800.00", byCategory["Rent"].StringFixed(2))

	r, err := dateutils.NewRange(day(1), day(10))
	require.NoError(t, err)
	assert.Equal(t, "45.00", s.TotalExpense(&r).StringFixed(2))
}

func TestLoadReplaysInvariants(t *testing.T) {
	s := newTestStore(t)

	txs := []models.Transaction{
		expense(1, "10.00", "Groceries", "shop"),
		expense(2, "20.00", "Rent", "rent"),
	}
	require.NoError(t, s.Load(txs))
	assert.Equal(t, 2, s.Len())

	// A duplicate in the persisted snapshot is rejected on replay.
	dup := append(txs, expense(1, "10.00", "Groceries", "shop"))
	err := s.Load(dup)
	assert.Error(t, err)
	assert.True(t, ledgererror.IsDuplicate(err))
}

func TestParseSortKey(t *testing.T) {
	tests := []struct {
		input     string
		expected  SortKey
		expectErr bool
	}{
		{"date", SortDate, false},
		{"AMOUNT", SortAmount, false},
		{" category ", SortCategory, false},
		{"", SortNone, false},
		{"color", SortNone, true},
	}

	for _, tc := range tests {
		t.Run("key "+tc.input, func(t *testing.T) {
			key, err := ParseSortKey(tc.input)
			if tc.expectErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tc.expected, key)
		})
	}
}

func TestSelectorMatching(t *testing.T) {
	tx := expense(5, "45.00", "Groceries", "weekly shop")
	date := day(5)
	otherDate := day(6)

	tests := []struct {
		name     string
		selector Selector
		expected bool
	}{
		{"Empty never matches", Selector{}, false},
		{"By date", Selector{Date: &date}, true},
		{"Wrong date", Selector{Date: &otherDate}, false},
		{"Category case-insensitive", Selector{Category: "groceries"}, true},
		{"Description exact, case-insensitive", Selector{Description: "Weekly Shop"}, true},
		{"Description partial does not match", Selector{Description: "weekly"}, false},
		{"All criteria must hold", Selector{Category: "Groceries", Description: "other"}, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, tc.selector.Matches(tx))
		})
	}
}
