package nlp

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixedClock pins the resolver to Wednesday, 12 March 2025, 15:30 local.
func fixedClock() func() time.Time {
	return func() time.Time {
		return time.Date(2025, time.March, 12, 15, 30, 0, 0, time.Local)
	}
}

func millisOf(year int, month time.Month, day, hour, minute, sec, milli int) int64 {
	return time.Date(year, month, day, hour, minute, sec, milli*int(time.Millisecond), time.Local).UnixMilli()
}

func dayBounds(year int, month time.Month, day int) (int64, int64) {
	return millisOf(year, month, day, 0, 0, 0, 0), millisOf(year, month, day, 23, 59, 59, 999)
}

func TestDateResolver_Resolve(t *testing.T) {
	resolver := NewDateResolverAt(fixedClock())

	tests := []struct {
		name      string
		input     string
		wantStart int64
		wantEnd   int64
		found     bool
	}{
		{
			name:  "today",
			input: "expenses today",
			found: true,
		},
		{
			name:  "yesterday",
			input: "what did I spend yesterday",
			found: true,
		},
		{
			name:  "numeric month slash day",
			input: "expenses on 3/5",
			found: true,
		},
		{
			name:  "numeric with two digit year",
			input: "spent on 3/5/24",
			found: true,
		},
		{
			name:  "day before month name",
			input: "insights for 5 march",
			found: true,
		},
		{
			name:  "month name before day with ordinal",
			input: "expenses on march 5th",
			found: true,
		},
		{
			name:  "explicit year honored",
			input: "spending on 15 august 2024",
			found: true,
		},
		{
			name:  "abbreviated month",
			input: "expenses on 1 jan",
			found: true,
		},
		{
			name:  "rollover date rejected",
			input: "expenses on 31 february",
			found: false,
		},
		{
			name:  "no date at all",
			input: "how much did I spend",
			found: false,
		},
	}

	wantRanges := map[string][2]int64{}
	set := func(name string, year int, month time.Month, day int) {
		start, end := dayBounds(year, month, day)
		wantRanges[name] = [2]int64{start, end}
	}
	set("today", 2025, time.March, 12)
	set("yesterday", 2025, time.March, 11)
	set("numeric month slash day", 2025, time.March, 5)
	set("numeric with two digit year", 2024, time.March, 5)
	set("day before month name", 2025, time.March, 5)
	set("month name before day with ordinal", 2025, time.March, 5)
	set("explicit year honored", 2024, time.August, 15)
	set("abbreviated month", 2025, time.January, 1)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rng, found := resolver.Resolve(tt.input)
			require.Equal(t, tt.found, found)
			if !tt.found {
				return
			}
			want := wantRanges[tt.name]
			assert.Equal(t, want[0], rng.StartMillis)
			assert.Equal(t, want[1], rng.EndMillis)
		})
	}
}

func TestDateResolver_DaySpan(t *testing.T) {
	resolver := NewDateResolverAt(fixedClock())

	rng, found := resolver.Resolve("today")
	require.True(t, found)

	// Full day: 24h minus the final millisecond.
	assert.Equal(t, int64(86399999), rng.EndMillis-rng.StartMillis)
}

func TestDateResolver_Weeks(t *testing.T) {
	resolver := NewDateResolverAt(fixedClock())

	rng, found := resolver.Resolve("this week")
	require.True(t, found)
	wantStart, _ := dayBounds(2025, time.March, 10) // Monday
	_, wantEnd := dayBounds(2025, time.March, 16)   // Sunday
	assert.Equal(t, wantStart, rng.StartMillis)
	assert.Equal(t, wantEnd, rng.EndMillis)

	rng, found = resolver.Resolve("last week")
	require.True(t, found)
	wantStart, _ = dayBounds(2025, time.March, 3)
	_, wantEnd = dayBounds(2025, time.March, 9)
	assert.Equal(t, wantStart, rng.StartMillis)
	assert.Equal(t, wantEnd, rng.EndMillis)
}

func TestDateResolver_SundayBelongsToCurrentWeek(t *testing.T) {
	// Sunday, 16 March 2025: the week still starts the previous Monday.
	resolver := NewDateResolverAt(func() time.Time {
		return time.Date(2025, time.March, 16, 9, 0, 0, 0, time.Local)
	})

	rng, found := resolver.Resolve("this week")
	require.True(t, found)
	wantStart, _ := dayBounds(2025, time.March, 10)
	_, wantEnd := dayBounds(2025, time.March, 16)
	assert.Equal(t, wantStart, rng.StartMillis)
	assert.Equal(t, wantEnd, rng.EndMillis)
}

func TestDateResolver_Months(t *testing.T) {
	resolver := NewDateResolverAt(fixedClock())

	rng, found := resolver.Resolve("this month")
	require.True(t, found)
	wantStart, _ := dayBounds(2025, time.March, 1)
	_, wantEnd := dayBounds(2025, time.March, 31)
	assert.Equal(t, wantStart, rng.StartMillis)
	assert.Equal(t, wantEnd, rng.EndMillis)

	rng, found = resolver.Resolve("last month")
	require.True(t, found)
	wantStart, _ = dayBounds(2025, time.February, 1)
	_, wantEnd = dayBounds(2025, time.February, 28)
	assert.Equal(t, wantStart, rng.StartMillis)
	assert.Equal(t, wantEnd, rng.EndMillis)
}

func TestDateResolver_MonthKeys(t *testing.T) {
	resolver := NewDateResolverAt(fixedClock())

	assert.Equal(t, "2025-03", resolver.CurrentMonthKey())
	assert.Equal(t, "2025-02", resolver.PreviousMonthKey("2025-03"))
	assert.Equal(t, "2024-12", resolver.PreviousMonthKey("2025-01"))
	assert.Equal(t, "Mar 2025", MonthKeyName("2025-03"))
	assert.Equal(t, "not-a-month-00", MonthKeyName("not-a-month-00"))

	rng, err := resolver.MonthKeyRange("2025-02")
	require.NoError(t, err)
	wantStart, _ := dayBounds(2025, time.February, 1)
	_, wantEnd := dayBounds(2025, time.February, 28)
	assert.Equal(t, wantStart, rng.StartMillis)
	assert.Equal(t, wantEnd, rng.EndMillis)

	_, err = resolver.MonthKeyRange("garbage")
	assert.Error(t, err)
}

func TestNormalizeOrdinals(t *testing.T) {
	assert.Equal(t, "1 march", NormalizeOrdinals("1st march"))
	assert.Equal(t, "22 june", NormalizeOrdinals("22nd june"))
	assert.Equal(t, "3 and 4", NormalizeOrdinals("3rd and 4th"))
	assert.Equal(t, "no dates here", NormalizeOrdinals("no dates here"))
}

func TestHasExplicitDate(t *testing.T) {
	assert.True(t, HasExplicitDate("expenses on 5 march"))
	assert.True(t, HasExplicitDate("what did I buy yesterday"))
	assert.True(t, HasExplicitDate("spent on 3/5"))
	assert.True(t, HasExplicitDate("insights for march 5th"))
	assert.False(t, HasExplicitDate("how much did I spend"))
	assert.False(t, HasExplicitDate("show my budget"))
}
