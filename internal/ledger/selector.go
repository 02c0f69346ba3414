package ledger

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"fjacquet/fintrack/internal/dateutils"
	"fjacquet/fintrack/internal/models"
)

// Selector is a criteria set used to locate transactions for update or
// delete. Zero-valued fields are ignored; a selector with no criteria
// matches nothing rather than everything.
type Selector struct {
	ID          string
	Date        *time.Time
	Category    string
	Description string
}

// IsEmpty reports whether no criteria are set.
func (s Selector) IsEmpty() bool {
	return s.ID == "" && s.Date == nil && s.Category == "" && s.Description == ""
}

// Matches reports whether the transaction satisfies every set criterion.
func (s Selector) Matches(t models.Transaction) bool {
	if s.IsEmpty() {
		return false
	}
	if s.ID != "" && t.ID != s.ID {
		return false
	}
	if s.Date != nil && !dateutils.Normalize(*s.Date).Equal(t.Date) {
		return false
	}
	if s.Category != "" && !strings.EqualFold(t.Category, s.Category) {
		return false
	}
	if s.Description != "" && !strings.EqualFold(t.Description, s.Description) {
		return false
	}
	return true
}

// String renders the set criteria for error messages.
func (s Selector) String() string {
	var parts []string
	if s.ID != "" {
		parts = append(parts, "id="+s.ID)
	}
	if s.Date != nil {
		parts = append(parts, "date="+dateutils.ToISODate(*s.Date))
	}
	if s.Category != "" {
		parts = append(parts, "category="+s.Category)
	}
	if s.Description != "" {
		parts = append(parts, "description="+s.Description)
	}
	if len(parts) == 0 {
		return "(empty)"
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

// Changes describes a partial update to one transaction. Nil fields are
// left untouched.
type Changes struct {
	Date        *time.Time
	Type        *models.TransactionType
	Amount      *decimal.Decimal
	Category    *string
	Description *string
}

// IsEmpty reports whether the change set would alter nothing.
func (c Changes) IsEmpty() bool {
	return c.Date == nil && c.Type == nil && c.Amount == nil && c.Category == nil && c.Description == nil
}

// SortKey selects the ordering of query results.
type SortKey string

const (
	SortNone     SortKey = ""
	SortDate     SortKey = "date"
	SortAmount   SortKey = "amount"
	SortCategory SortKey = "category"
)

// ParseSortKey validates a sort key string.
func ParseSortKey(s string) (SortKey, error) {
	switch SortKey(strings.ToLower(strings.TrimSpace(s))) {
	case SortNone, SortDate, SortAmount, SortCategory:
		return SortKey(strings.ToLower(strings.TrimSpace(s))), nil
	default:
		return SortNone, fmt.Errorf("unsupported sort key: %s (use date, amount or category)", s)
	}
}

// Filter narrows a query. Zero-valued fields are ignored; an empty filter
// matches every transaction. Ordering is insertion order unless SortBy is
// set.
type Filter struct {
	Range       *dateutils.Range
	Category    string
	Description string // substring match, case-insensitive
	Type        *models.TransactionType
	SortBy      SortKey
}

// matches reports whether the transaction passes the filter.
func (f Filter) matches(t models.Transaction) bool {
	if f.Range != nil && !f.Range.Contains(t.Date) {
		return false
	}
	if f.Category != "" && !strings.EqualFold(t.Category, f.Category) {
		return false
	}
	if f.Description != "" && !strings.Contains(strings.ToLower(t.Description), strings.ToLower(f.Description)) {
		return false
	}
	if f.Type != nil && t.Type != *f.Type {
		return false
	}
	return true
}
