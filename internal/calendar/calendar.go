package calendar

import (
	"fmt"
	"time"
)

// Month identifies one calendar month. Two Months are equal iff year and month match.
type Month struct {
	Year  int
	Month time.Month
}

// Days returns the number of days in the month (proleptic Gregorian, leap-aware).
func (m Month) Days() int {
	// Day 0 of the next month is the last day of this one.
	return time.Date(m.Year, m.Month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// Start returns the first instant of the month in UTC.
func (m Month) Start() time.Time {
	return time.Date(m.Year, m.Month, 1, 0, 0, 0, 0, time.UTC)
}

// Key returns the ledger key form, e.g. "2025-03".
func (m Month) Key() string {
	return fmt.Sprintf("%04d-%02d", m.Year, int(m.Month))
}

// Label returns the human-readable form, e.g. "March 2025".
func (m Month) Label() string {
	return m.Start().Format("January 2006")
}

// Abbr returns the short month name, e.g. "Mar".
func (m Month) Abbr() string {
	return m.Start().Format("Jan")
}

// Contains reports whether the given local timestamp falls inside the month.
func (m Month) Contains(t time.Time) bool {
	return t.Year() == m.Year && t.Month() == m.Month
}

// Before reports chronological ordering.
func (m Month) Before(other Month) bool {
	if m.Year != other.Year {
		return m.Year < other.Year
	}
	return m.Month < other.Month
}

// RollingWindow returns the n calendar months ending at the month containing now,
// oldest first.
func RollingWindow(now time.Time, n int) []Month {
	last := Month{Year: now.Year(), Month: now.Month()}
	return MonthsFrom(last.Year, int(last.Month)-n+1, n)
}

// MonthsFrom returns n consecutive months starting at (year, month), oldest first.
// month may be outside 1..12; it is normalized the way time.Date normalizes.
func MonthsFrom(year, month, n int) []Month {
	months := make([]Month, n)
	for i := 0; i < n; i++ {
		t := time.Date(year, time.Month(month+i), 1, 0, 0, 0, 0, time.UTC)
		months[i] = Month{Year: t.Year(), Month: t.Month()}
	}
	return months
}

// IndexOf returns the position of m in window, or -1 if it is not tracked.
func IndexOf(window []Month, m Month) int {
	for i, w := range window {
		if w == m {
			return i
		}
	}
	return -1
}

// ParseLabel parses a label produced by Label back into a Month.
func ParseLabel(label string) (Month, bool) {
	t, err := time.Parse("January 2006", label)
	if err != nil {
		return Month{}, false
	}
	return Month{Year: t.Year(), Month: t.Month()}, true
}

// Labels returns the display labels for a window, in window order.
func Labels(window []Month) []string {
	labels := make([]string, len(window))
	for i, m := range window {
		labels[i] = m.Label()
	}
	return labels
}
