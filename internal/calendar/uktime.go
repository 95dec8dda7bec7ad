package calendar

import "time"

// The board displays athlete-facing times in UK civil time: UTC in winter, UTC+1
// between the last Sunday of March and the last Sunday of October. Implemented as
// a fixed rule rather than a tz database lookup so the output does not depend on
// the host's zoneinfo.

// DSTBounds returns the instants UK summer time starts and ends in the given year:
// 01:00 UTC on the last Sunday of March and of October.
func DSTBounds(year int) (start, end time.Time) {
	start = lastSunday(year, time.March)
	end = lastSunday(year, time.October)
	return start, end
}

func lastSunday(year int, month time.Month) time.Time {
	d := time.Date(year, month, 31, 1, 0, 0, 0, time.UTC)
	for d.Weekday() != time.Sunday {
		d = d.AddDate(0, 0, -1)
	}
	return d
}

// DisplayNow converts a UTC instant to UK display time.
func DisplayNow(utc time.Time) time.Time {
	utc = utc.UTC()
	start, end := DSTBounds(utc.Year())
	if !utc.Before(start) && utc.Before(end) {
		return utc.Add(time.Hour)
	}
	return utc
}
