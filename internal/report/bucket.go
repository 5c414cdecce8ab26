// Package report is the aggregation engine: pure functions that turn a
// snapshot of entries plus the vehicle cost-per-km setting into per-entry
// profitability metrics, time-bucketed summaries and range statistics.
// Nothing in this package touches the database, the clock (callers pass
// reference times) or the network.
package report

import (
	"fmt"
	"time"
)

var dateLayouts = []string{"2006-01-02", time.RFC3339}

// ParseDate parses an entry's business date. It accepts YYYY-MM-DD and
// RFC 3339 (the time-of-day part is discarded). ok is false for anything
// else; callers skip such entries rather than failing the whole computation.
func ParseDate(s string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), true
		}
	}
	return time.Time{}, false
}

// WeekKey returns the ISO-8601 week bucket, e.g. "2019-S01". Weeks start on
// Monday and belong to the year owning their Thursday, so keys around a year
// boundary land in the correct year (2018-12-31 -> "2019-S01"). Keys sort
// lexicographically in chronological order.
func WeekKey(t time.Time) string {
	year, week := t.ISOWeek()
	return fmt.Sprintf("%d-S%02d", year, week)
}

// MonthKey returns the calendar month bucket, e.g. "2024-01".
func MonthKey(t time.Time) string {
	return t.Format("2006-01")
}

// YearKey returns the calendar year bucket, e.g. "2024".
func YearKey(t time.Time) string {
	return t.Format("2006")
}

// DayOfWeekIndex returns 0=Sunday .. 6=Saturday. This is a different week
// convention than WeekKey (Sunday-start vs ISO Monday-start); the two are
// used by different reports and must not be unified.
func DayOfWeekIndex(t time.Time) int {
	return int(t.Weekday())
}

// WeekLabel turns "2019-S01" into "Week 01 · 2019".
func WeekLabel(key string) string {
	var year, week int
	if _, err := fmt.Sscanf(key, "%d-S%d", &year, &week); err != nil {
		return key
	}
	return fmt.Sprintf("Week %02d · %d", week, year)
}

// MonthLabel turns "2024-01" into "Jan 2024".
func MonthLabel(key string) string {
	t, err := time.Parse("2006-01", key)
	if err != nil {
		return key
	}
	return t.Format("Jan 2006")
}

func YearLabel(key string) string {
	return key
}

var dayNames = [7]string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"}

// DayOfWeekName returns the English name for a 0=Sunday .. 6=Saturday index.
func DayOfWeekName(idx int) string {
	if idx < 0 || idx > 6 {
		return ""
	}
	return dayNames[idx]
}
