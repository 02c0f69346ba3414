package models

// Categories
const (
	CategoryUncategorized  = "Uncategorized"
	CategorySalary         = "Salary"
	CategoryGroceries      = "Groceries"
	CategoryRent           = "Rent"
	CategoryUtilities      = "Utilities"
	CategoryEntertainment  = "Entertainment"
	CategoryTransportation = "Transportation"
	CategoryShopping       = "Shopping"
	CategoryHealth         = "Health"
	CategoryOther          = "Other"
)

// DefaultCategories is the curated category list offered to callers.
var DefaultCategories = []string{
	CategoryGroceries,
	CategoryRent,
	CategoryUtilities,
	CategoryEntertainment,
	CategoryTransportation,
	CategoryShopping,
	CategoryHealth,
	CategorySalary,
	CategoryOther,
}

// AmountPrecision is the number of decimal places amounts are stored with
// (currency-unit precision).
const AmountPrecision = 2

// File permissions
const (
	PermissionDataFile  = 0600
	PermissionDirectory = 0750
	PermissionExport    = 0644
)
