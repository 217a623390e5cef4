package model

// Category represents an expense bucket identified by name. Keywords are
// matched case-insensitively as substrings of expense descriptions; the
// position of a category in the stored list is part of the matching
// contract (earlier categories win keyword-count ties).
type Category struct {
	Name      string
	Keywords  []string
	ID        int64
	IsDefault bool
}

// FallbackCategory is where descriptions land when no keyword matches.
const FallbackCategory = "Miscellaneous"

// CategoryTotal pairs a category name with a summed amount.
type CategoryTotal struct {
	Category string
	Total    float64
}

// CategoryCount pairs a category name with a transaction count.
type CategoryCount struct {
	Category string
	Count    int
}

// CategoryStatistic aggregates per-category spending.
type CategoryStatistic struct {
	Category         string
	TotalAmount      float64
	AverageAmount    float64
	TransactionCount int
}
