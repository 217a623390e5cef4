package nlp

import (
	"regexp"
	"strings"
)

// expenseIndicators are action and context words suggesting the text
// describes a spend rather than a question about spending.
var expenseIndicators = []string{
	// Action words
	"bought", "purchased", "paid", "spent", "got", "ordered",
	"bill", "cost", "price", "charge", "fare", "fee", "subscription",
	// Context indicators
	"for", "at", "from", "to", "on", "in", "of", "worth",
}

// detectorCategoryKeywords is a fixed probe list; the live category store
// is not consulted here because detection must stay pure.
var detectorCategoryKeywords = []string{
	"food", "transport", "shopping", "medical", "fuel",
	"groceries", "coffee", "lunch", "dinner", "taxi", "uber",
	"netflix", "spotify", "subscription", "membership", "plan",
}

var detectorAmountPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\d+\s*(?:rupees?|rs\.?|₹|bucks?)`),
	regexp.MustCompile(`(?i)(?:rupees?|rs\.?|₹)\s*\d+`),
	regexp.MustCompile(`(?i)\d+(?:\.\d+)?\s*k\b`),
	regexp.MustCompile(`(?i)(?:cost|paid|spent|bill|fare|fee|price|charge|worth)\s*(?:is|was|of)?\s*\d+`),
	regexp.MustCompile(`(?i)of\s+\d+\s*(?:rupees?|rs\.?|₹)?`),
}

var expenseStructurePatterns = []*regexp.Regexp{
	regexp.MustCompile(`^\w+\s+\d+`),          // "coffee 50"
	regexp.MustCompile(`\d+\s+for\s+\w+`),     // "50 for coffee"
	regexp.MustCompile(`\w+\s+for\s+\d+`),     // "coffee for 50"
	regexp.MustCompile(`\d+\s+\w+`),           // "50 coffee"
	regexp.MustCompile(`\w+\s+of\s+\w+\s+of\s+\d+`), // "subscription of netflix of 100"
}

var servicePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(?:subscription|membership|plan)\s+(?:of|for)\s+\w+`),
	regexp.MustCompile(`(?i)(?:bought|got|purchased)\s+(?:subscription|membership|plan)`),
}

var digitPattern = regexp.MustCompile(`\d+`)

// IsExpenseInput reports whether text looks like an expense statement.
// An amount pattern alone is not enough: the text must also show expense
// context, an expense-like structure, a category keyword next to a digit,
// or a subscription phrase. Pure queries ("show me 5 biggest expenses")
// fail the conjunction and fall through to query handling.
func IsExpenseInput(input string) bool {
	normalized := strings.ToLower(strings.TrimSpace(input))

	if !hasAmountPattern(normalized) {
		return false
	}

	return hasExpenseContext(normalized) ||
		hasExpenseStructure(normalized) ||
		hasCategoryWithAmount(normalized) ||
		hasServicePattern(normalized)
}

func hasAmountPattern(input string) bool {
	for _, p := range detectorAmountPatterns {
		if p.MatchString(input) {
			return true
		}
	}
	return false
}

func hasExpenseContext(input string) bool {
	for _, word := range expenseIndicators {
		if strings.Contains(input, word) {
			return true
		}
	}
	return false
}

func hasExpenseStructure(input string) bool {
	for _, p := range expenseStructurePatterns {
		if p.MatchString(input) {
			return true
		}
	}
	return false
}

func hasCategoryWithAmount(input string) bool {
	if !digitPattern.MatchString(input) {
		return false
	}
	for _, kw := range detectorCategoryKeywords {
		if strings.Contains(input, kw) {
			return true
		}
	}
	return false
}

func hasServicePattern(input string) bool {
	for _, p := range servicePatterns {
		if p.MatchString(input) {
			return true
		}
	}
	return false
}
