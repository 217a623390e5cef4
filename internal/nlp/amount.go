// Package nlp implements the deterministic text pipeline: amount and
// description extraction, expense detection, category matching, and
// natural-language date resolution. Everything here is pure; persistence
// lives behind the service interfaces.
package nlp

import (
	"log/slog"
	"regexp"
	"strconv"
	"strings"
)

// amountKind selects how a matched pattern's captures become a number.
type amountKind int

const (
	amountPlain     amountKind = iota // group 1 is the amount
	amountThousands                   // group 1 × 1000 ("2k")
	amountRange                       // mean of groups 1 and 2 ("100 to 200")
	amountWord                        // optional group 1 × word multiplier
)

// amountRule is one entry in the ranked matcher table. Rules are evaluated
// strictly in Priority order and the first positive capture wins; looser
// rules must never preempt currency-qualified ones, so the ordering is a
// contract, not a tuning knob.
type amountRule struct {
	Pattern  *regexp.Regexp
	Name     string
	Kind     amountKind
	Priority int
}

const currencyUnit = `(?:rupees?|rs\.?|₹|bucks?)`

var amountRules = []amountRule{
	{
		Priority: 1,
		Name:     "currency-qualified range",
		Kind:     amountRange,
		// Ranked above the plain currency rule so "100 to 200 rupees"
		// resolves to the midpoint, not the upper bound.
		Pattern: regexp.MustCompile(`(?i)(\d+)\s*(?:to|-)\s*(\d+)\s*` + currencyUnit),
	},
	{
		Priority: 2,
		Name:     "number before currency",
		Kind:     amountPlain,
		Pattern:  regexp.MustCompile(`(?i)(\d+(?:\.\d{1,2})?)\s*` + currencyUnit),
	},
	{
		Priority: 3,
		Name:     "currency before number",
		Kind:     amountPlain,
		Pattern:  regexp.MustCompile(`(?i)(?:rupees?|rs\.?|₹)\s*(\d+(?:\.\d{1,2})?)`),
	},
	{
		Priority: 4,
		Name:     "k shorthand",
		Kind:     amountThousands,
		Pattern:  regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*k\b(?:\s*` + currencyUnit + `)?`),
	},
	{
		Priority: 5,
		Name:     "action context",
		Kind:     amountPlain,
		Pattern:  regexp.MustCompile(`(?i)(?:cost|paid|spent|bill|fare|fee|price|charge|worth)\s*(?:is|was|of)?\s*(\d+(?:\.\d{1,2})?)(?:\s*` + currencyUnit + `)?`),
	},
	{
		Priority: 6,
		Name:     "of-amount phrase",
		Kind:     amountPlain,
		Pattern:  regexp.MustCompile(`(?i)of\s+(\d+(?:\.\d{1,2})?)\s*` + currencyUnit),
	},
	{
		Priority: 7,
		Name:     "action proximity scan",
		Kind:     amountPlain,
		Pattern:  regexp.MustCompile(`(?i)(?:bought|purchased|paid|spent|got|ordered).{0,50}?(\d+(?:\.\d{1,2})?)(?:\s*(?:rupees?|rs\.?|₹|only|total))?`),
	},
	{
		Priority: 8,
		Name:     "bare range",
		Kind:     amountRange,
		Pattern:  regexp.MustCompile(`(?i)(\d+)\s*(?:to|-)\s*(\d+)`),
	},
	{
		Priority: 9,
		Name:     "word multiplier",
		Kind:     amountWord,
		Pattern:  regexp.MustCompile(`(?i)(\d+)?\s*\b(hundred|thousand|lakh)\b(?:\s*` + currencyUnit + `)?`),
	},
}

// wordMultipliers maps spelled-out magnitude words to their value.
var wordMultipliers = map[string]float64{
	"hundred":  100,
	"thousand": 1000,
	"lakh":     100000,
}

// ExtractAmount pulls a monetary amount out of free text. It walks the
// ranked matcher table and returns the first strictly positive capture;
// zero and negative results count as no match.
func ExtractAmount(text string) (float64, bool) {
	normalized := strings.ToLower(strings.TrimSpace(text))

	for _, rule := range amountRules {
		match := rule.Pattern.FindStringSubmatch(normalized)
		if match == nil {
			continue
		}

		amount, ok := evalAmount(rule, match)
		if !ok || amount <= 0 {
			continue
		}

		slog.Debug("amount pattern matched", "rule", rule.Name, "amount", amount)
		return amount, true
	}

	return 0, false
}

func evalAmount(rule amountRule, match []string) (float64, bool) {
	switch rule.Kind {
	case amountThousands:
		n, err := strconv.ParseFloat(match[1], 64)
		if err != nil {
			return 0, false
		}
		return n * 1000, true

	case amountRange:
		lo, err1 := strconv.ParseFloat(match[1], 64)
		hi, err2 := strconv.ParseFloat(match[2], 64)
		if err1 != nil || err2 != nil {
			return 0, false
		}
		return (lo + hi) / 2, true

	case amountWord:
		multiplier, ok := wordMultipliers[strings.ToLower(match[2])]
		if !ok {
			return 0, false
		}
		base := 1.0
		if match[1] != "" {
			n, err := strconv.ParseFloat(match[1], 64)
			if err != nil {
				return 0, false
			}
			base = n
		}
		return base * multiplier, true

	default:
		n, err := strconv.ParseFloat(match[1], 64)
		if err != nil {
			return 0, false
		}
		return n, true
	}
}
