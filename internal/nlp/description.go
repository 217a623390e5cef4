package nlp

import (
	"regexp"
	"strings"
)

// DescriptionPlaceholder is returned when no usable label survives
// cleanup; the extractor never returns blank.
const DescriptionPlaceholder = "Expense"

const maxFallbackWords = 4

// actionObjectPatterns capture the purchased object from common expense
// phrasings. Checked in order; the first capture wins.
var actionObjectPatterns = []*regexp.Regexp{
	// "bought coffee for 50", "purchased a shirt worth 900"
	regexp.MustCompile(`(?i)(?:i\s+)?(?:bought|purchased|got|ordered)\s+(?:a\s+|an\s+|some\s+)?(.+?)\s+(?:for|of|worth|at)\s+\d`),
	// "paid for parking", "spent on groceries 200"
	regexp.MustCompile(`(?i)(?:i\s+)?(?:paid\s+for|spent\s+on)\s+(.+?)(?:\s+(?:for|of|worth)\s+\d|\s+\d|$)`),
	// "bought coffee" with the amount elsewhere
	regexp.MustCompile(`(?i)(?:i\s+)?(?:bought|purchased|got|ordered|paid\s+for|spent\s+on)\s+(.+)$`),
}

// residual amount/currency text stripped from candidate descriptions.
var descriptionCleanupPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b(?:for|of|worth)\s+\d+(?:\.\d{1,2})?\s*` + currencyUnit),
	regexp.MustCompile(`(?i)\d+(?:\.\d{1,2})?\s*` + currencyUnit),
	regexp.MustCompile(`(?i)(?:rupees?|rs\.?|₹)\s*\d+(?:\.\d{1,2})?`),
	regexp.MustCompile(`(?i)\d+(?:\.\d+)?\s*k\b`),
	regexp.MustCompile(`(?i)\b(?:rupees?|rs\.?|₹|bucks?|only|total)\b`),
	regexp.MustCompile(`\d+(?:\.\d{1,2})?`),
}

var leadingActionPattern = regexp.MustCompile(`(?i)^(?:i\s+)?(?:bought|purchased|paid|spent|got|ordered)\s+`)

var edgePrepositions = map[string]bool{
	"for": true, "of": true, "on": true, "at": true, "to": true,
	"from": true, "the": true, "a": true, "an": true, "worth": true,
	"in": true, "is": true, "was": true,
}

var whitespacePattern = regexp.MustCompile(`\s+`)
var digitsOnlyPattern = regexp.MustCompile(`^[\d\s.,]+$`)

// ExtractDescription derives a human-readable expense label from raw
// text. It tries the ordered action-phrase patterns first, then falls
// back to stripping the action verb and amount tokens from the whole
// input and truncating to a few words.
func ExtractDescription(text string) string {
	cleanText := strings.TrimSpace(text)

	for _, pattern := range actionObjectPatterns {
		match := pattern.FindStringSubmatch(cleanText)
		if match == nil {
			continue
		}
		if desc := cleanDescription(match[1]); desc != "" {
			return desc
		}
	}

	// Fallback: strip the action verb and amount tokens from the whole
	// input, then keep at most a few leading words.
	fallback := leadingActionPattern.ReplaceAllString(cleanText, "")
	if desc := cleanDescription(fallback); desc != "" {
		words := strings.Fields(desc)
		if len(words) > maxFallbackWords {
			words = words[:maxFallbackWords]
		}
		return strings.Join(words, " ")
	}

	return DescriptionPlaceholder
}

func cleanDescription(s string) string {
	for _, pattern := range descriptionCleanupPatterns {
		s = pattern.ReplaceAllString(s, " ")
	}
	s = whitespacePattern.ReplaceAllString(strings.TrimSpace(s), " ")

	words := strings.Fields(s)
	for len(words) > 0 && edgePrepositions[strings.ToLower(words[0])] {
		words = words[1:]
	}
	for len(words) > 0 && edgePrepositions[strings.ToLower(words[len(words)-1])] {
		words = words[:len(words)-1]
	}

	cleaned := strings.Join(words, " ")
	if cleaned == "" || digitsOnlyPattern.MatchString(cleaned) {
		return ""
	}
	return cleaned
}
