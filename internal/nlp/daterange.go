package nlp

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// DateRange is an inclusive day-aligned range in local time, expressed as
// epoch milliseconds. Start is the first millisecond of the first day and
// End the last millisecond (23:59:59.999) of the last day.
type DateRange struct {
	StartMillis int64
	EndMillis   int64
}

// DateResolver turns natural-language date expressions into concrete
// ranges. The clock is injectable so relative expressions are testable.
type DateResolver struct {
	now func() time.Time
}

// NewDateResolver creates a resolver using the system clock.
func NewDateResolver() *DateResolver {
	return &DateResolver{now: time.Now}
}

// NewDateResolverAt creates a resolver with a fixed clock.
func NewDateResolverAt(now func() time.Time) *DateResolver {
	return &DateResolver{now: now}
}

var ordinalSuffixPattern = regexp.MustCompile(`(?i)(\d+)(st|nd|rd|th)`)

// monthAlternation lists full names before abbreviations so submatches
// capture the whole word.
const monthAlternation = `january|jan|february|feb|march|mar|april|apr|may|june|jun|july|jul|august|aug|september|sep|october|oct|november|nov|december|dec`

var (
	numericDatePattern = regexp.MustCompile(`\b(\d{1,2})/(\d{1,2})(?:/(\d{2,4}))?\b`)
	dayMonthPattern    = regexp.MustCompile(`\b(\d{1,2})\s+(` + monthAlternation + `)(?:\s+(\d{4}))?\b`)
	monthDayPattern    = regexp.MustCompile(`\b(` + monthAlternation + `)\s+(\d{1,2})(?:\s+(\d{4}))?\b`)
)

var monthsByName = map[string]time.Month{
	"jan": time.January, "january": time.January,
	"feb": time.February, "february": time.February,
	"mar": time.March, "march": time.March,
	"apr": time.April, "april": time.April,
	"may": time.May,
	"jun": time.June, "june": time.June,
	"jul": time.July, "july": time.July,
	"aug": time.August, "august": time.August,
	"sep": time.September, "september": time.September,
	"oct": time.October, "october": time.October,
	"nov": time.November, "november": time.November,
	"dec": time.December, "december": time.December,
}

// Resolve parses a natural-language date expression. Resolution order:
// literal today/yesterday/tomorrow, then week phrases, then month
// phrases, then numeric dates (M/D with optional year), then textual
// dates (day-month or month-day). Missing years default to the current
// year. Returns false when nothing matches.
func (r *DateResolver) Resolve(raw string) (DateRange, bool) {
	normalized := NormalizeOrdinals(strings.ToLower(strings.TrimSpace(raw)))
	now := r.now()

	switch {
	case strings.Contains(normalized, "today"):
		return DayRange(now), true
	case strings.Contains(normalized, "yesterday"):
		return DayRange(now.AddDate(0, 0, -1)), true
	case strings.Contains(normalized, "tomorrow"):
		return DayRange(now.AddDate(0, 0, 1)), true
	case strings.Contains(normalized, "this week") || strings.Contains(normalized, "current week"):
		return r.CurrentWeekRange(), true
	case strings.Contains(normalized, "last week") || strings.Contains(normalized, "previous week"):
		return r.LastWeekRange(), true
	case strings.Contains(normalized, "this month") || strings.Contains(normalized, "current month"):
		return r.CurrentMonthRange(), true
	case strings.Contains(normalized, "last month") || strings.Contains(normalized, "previous month"):
		return r.LastMonthRange(), true
	}

	if rng, ok := r.resolveNumericDate(normalized, now); ok {
		return rng, true
	}
	if rng, ok := r.resolveTextualDate(normalized, now); ok {
		return rng, true
	}

	return DateRange{}, false
}

// HasExplicitDate reports whether text contains a textual date
// ("5 march", "march 5th"), a numeric date ("3/5", "03/05/2025"), or a
// relative day word. Used by the intent router to route date-bearing
// sentences to query handling.
func HasExplicitDate(text string) bool {
	normalized := NormalizeOrdinals(strings.ToLower(strings.TrimSpace(text)))

	for _, word := range []string{"today", "yesterday", "tomorrow"} {
		if strings.Contains(normalized, word) {
			return true
		}
	}
	return numericDatePattern.MatchString(normalized) ||
		dayMonthPattern.MatchString(normalized) ||
		monthDayPattern.MatchString(normalized)
}

// NormalizeOrdinals strips ordinal suffixes after digits ("1st" -> "1").
func NormalizeOrdinals(input string) string {
	return ordinalSuffixPattern.ReplaceAllString(input, "${1}")
}

func (r *DateResolver) resolveNumericDate(input string, now time.Time) (DateRange, bool) {
	match := numericDatePattern.FindStringSubmatch(input)
	if match == nil {
		return DateRange{}, false
	}

	month, _ := strconv.Atoi(match[1])
	day, _ := strconv.Atoi(match[2])
	year := now.Year()
	if match[3] != "" {
		y, _ := strconv.Atoi(match[3])
		if y < 100 {
			y += 2000
		}
		year = y
	}

	date, ok := calendarDate(year, time.Month(month), day, now.Location())
	if !ok {
		return DateRange{}, false
	}
	return DayRange(date), true
}

func (r *DateResolver) resolveTextualDate(input string, now time.Time) (DateRange, bool) {
	var day, year int
	var monthName string

	if match := dayMonthPattern.FindStringSubmatch(input); match != nil {
		day, _ = strconv.Atoi(match[1])
		monthName = match[2]
		if match[3] != "" {
			year, _ = strconv.Atoi(match[3])
		}
	} else if match := monthDayPattern.FindStringSubmatch(input); match != nil {
		monthName = match[1]
		day, _ = strconv.Atoi(match[2])
		if match[3] != "" {
			year, _ = strconv.Atoi(match[3])
		}
	} else {
		return DateRange{}, false
	}

	if year == 0 {
		year = now.Year()
	}

	month, ok := monthsByName[monthName]
	if !ok {
		return DateRange{}, false
	}

	date, ok := calendarDate(year, month, day, now.Location())
	if !ok {
		return DateRange{}, false
	}
	return DayRange(date), true
}

// calendarDate builds a date and rejects values that would roll over
// (e.g. 31 February), matching a non-lenient parser.
func calendarDate(year int, month time.Month, day int, loc *time.Location) (time.Time, bool) {
	if month < time.January || month > time.December || day < 1 || day > 31 {
		return time.Time{}, false
	}
	t := time.Date(year, month, day, 0, 0, 0, 0, loc)
	if t.Day() != day || t.Month() != month {
		return time.Time{}, false
	}
	return t, true
}

// DayRange returns the full-day range containing t in local time.
func DayRange(t time.Time) DateRange {
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	end := time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 999000000, t.Location())
	return DateRange{StartMillis: start.UnixMilli(), EndMillis: end.UnixMilli()}
}

// TodayRange returns the full-day range for the current day.
func (r *DateResolver) TodayRange() DateRange {
	return DayRange(r.now())
}

// CurrentWeekRange returns Monday through Sunday of the current week,
// full day bounds.
func (r *DateResolver) CurrentWeekRange() DateRange {
	return weekRange(r.now())
}

// LastWeekRange returns Monday through Sunday of the previous week.
func (r *DateResolver) LastWeekRange() DateRange {
	return weekRange(r.now().AddDate(0, 0, -7))
}

func weekRange(t time.Time) DateRange {
	weekday := int(t.Weekday())
	if weekday == 0 { // Sunday belongs to the week that started 6 days ago
		weekday = 7
	}
	monday := t.AddDate(0, 0, -(weekday - 1))
	sunday := monday.AddDate(0, 0, 6)

	start := time.Date(monday.Year(), monday.Month(), monday.Day(), 0, 0, 0, 0, t.Location())
	end := time.Date(sunday.Year(), sunday.Month(), sunday.Day(), 23, 59, 59, 999000000, t.Location())
	return DateRange{StartMillis: start.UnixMilli(), EndMillis: end.UnixMilli()}
}

// CurrentMonthRange returns the first through last day of the current
// calendar month, full day bounds.
func (r *DateResolver) CurrentMonthRange() DateRange {
	now := r.now()
	return monthRange(now.Year(), now.Month(), now.Location())
}

// LastMonthRange returns the previous calendar month.
func (r *DateResolver) LastMonthRange() DateRange {
	now := r.now()
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).AddDate(0, -1, 0)
	return monthRange(first.Year(), first.Month(), now.Location())
}

// MonthKeyRange resolves a "YYYY-MM" month key into its calendar range.
func (r *DateResolver) MonthKeyRange(month string) (DateRange, error) {
	year, m, err := parseMonthKey(month)
	if err != nil {
		return DateRange{}, err
	}
	return monthRange(year, m, r.now().Location()), nil
}

func monthRange(year int, month time.Month, loc *time.Location) DateRange {
	start := time.Date(year, month, 1, 0, 0, 0, 0, loc)
	end := start.AddDate(0, 1, 0).Add(-time.Millisecond)
	return DateRange{StartMillis: start.UnixMilli(), EndMillis: end.UnixMilli()}
}

// CurrentMonthKey returns the current month as "YYYY-MM".
func (r *DateResolver) CurrentMonthKey() string {
	return r.now().Format("2006-01")
}

// PreviousMonthKey returns the month key before the given one; January
// wraps to December of the previous year. Invalid keys fall back to the
// current month.
func (r *DateResolver) PreviousMonthKey(month string) string {
	year, m, err := parseMonthKey(month)
	if err != nil {
		return r.CurrentMonthKey()
	}
	if m == time.January {
		return fmt.Sprintf("%d-12", year-1)
	}
	return fmt.Sprintf("%d-%02d", year, int(m)-1)
}

// MonthKeyName renders a month key as "Jan 2006" for display. Unparseable
// keys are returned unchanged.
func MonthKeyName(month string) string {
	year, m, err := parseMonthKey(month)
	if err != nil {
		return month
	}
	return fmt.Sprintf("%s %d", m.String()[:3], year)
}

func parseMonthKey(month string) (int, time.Month, error) {
	parts := strings.SplitN(month, "-", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid month key: %q", month)
	}
	year, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid month key year: %q", month)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 1 || m > 12 {
		return 0, 0, fmt.Errorf("invalid month key month: %q", month)
	}
	return year, time.Month(m), nil
}
