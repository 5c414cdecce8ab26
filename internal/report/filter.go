package report

import (
	"time"

	"github.com/sadopc/drivelog/internal/store"
)

// Window is an inclusive date range. Start and End carry time-of-day bounds
// (start of day / end of day) but comparisons against entries are date-only.
type Window struct {
	Start time.Time
	End   time.Time
}

// Unit selects the calendar unit for window navigation.
type Unit int

const (
	UnitWeek Unit = iota
	UnitMonth
)

// startOfDay normalizes any time to UTC midnight of its calendar date. Both
// entry dates and window bounds go through this, so an entry on a window
// edge cannot be dropped by a local-time/UTC mismatch.
func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// LastNDays keeps entries dated within the n days ending at now (inclusive
// of today). Invalid dates are dropped.
func LastNDays(entries []store.Entry, n int, now time.Time) []store.Entry {
	cutoff := startOfDay(now).AddDate(0, 0, -n)
	filtered := make([]store.Entry, 0, len(entries))
	for _, e := range entries {
		date, ok := ParseDate(e.Date)
		if !ok {
			continue
		}
		if !date.Before(cutoff) {
			filtered = append(filtered, e)
		}
	}
	return filtered
}

// InRange keeps entries whose date falls inside the window, both bounds
// inclusive, comparing calendar dates only.
func InRange(entries []store.Entry, w Window) []store.Entry {
	start := startOfDay(w.Start)
	end := startOfDay(w.End)
	filtered := make([]store.Entry, 0, len(entries))
	for _, e := range entries {
		date, ok := ParseDate(e.Date)
		if !ok {
			continue
		}
		if !date.Before(start) && !date.After(end) {
			filtered = append(filtered, e)
		}
	}
	return filtered
}

// WeekContaining returns the ISO week around t: Monday 00:00:00 through
// Sunday 23:59:59. Note the Monday-start convention here versus the
// Sunday-start DayOfWeekIndex; the two serve different reports.
func WeekContaining(t time.Time) Window {
	day := startOfDay(t)
	weekday := int(day.Weekday())
	if weekday == 0 {
		weekday = 7
	}
	monday := day.AddDate(0, 0, 1-weekday)
	sunday := monday.AddDate(0, 0, 6)
	return Window{
		Start: monday,
		End:   sunday.Add(24*time.Hour - time.Second),
	}
}

// MonthContaining returns the calendar month around t, first through last
// day, end-of-day boundary.
func MonthContaining(t time.Time) Window {
	first := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, 0).Add(-time.Millisecond)
	return Window{Start: first, End: last}
}

// ShiftWindow moves an anchor date one unit forward (direction > 0) or back
// (direction < 0) with exact calendar arithmetic. A month shift clamps the
// day-of-month (Jan 31 -> Feb 28), it never spills into the next month the
// way naive AddDate arithmetic does.
func ShiftWindow(anchor time.Time, unit Unit, direction int) time.Time {
	step := 1
	if direction < 0 {
		step = -1
	}
	day := startOfDay(anchor)

	if unit == UnitWeek {
		return day.AddDate(0, 0, 7*step)
	}

	year, month := day.Year(), int(day.Month())+step
	if month < 1 {
		month = 12
		year--
	} else if month > 12 {
		month = 1
		year++
	}
	dom := day.Day()
	if max := daysInMonth(year, time.Month(month)); dom > max {
		dom = max
	}
	return time.Date(year, time.Month(month), dom, 0, 0, 0, 0, time.UTC)
}

func daysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
