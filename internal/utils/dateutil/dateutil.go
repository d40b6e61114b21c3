package dateutil

import (
	"fmt"
	"time"
)

// ISODate is the wire format for every date crossing the storage or API
// boundary. Dates carry no time component; all calendar math happens on
// day granularity.
const ISODate = "2006-01-02"

// AtNoon anchors t to 12:00 UTC on the same calendar day. Anchoring to a
// neutral hour before adding calendar units keeps a date-only value from
// slipping a day when it is serialized back to an ISO string.
func AtNoon(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 12, 0, 0, 0, time.UTC)
}

// ParseISO parses an ISO 8601 date-only string and anchors it to noon UTC.
func ParseISO(s string) (time.Time, error) {
	t, err := time.Parse(ISODate, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid ISO date %q: %w", s, err)
	}
	return AtNoon(t), nil
}

// FormatISO renders t as an ISO 8601 date-only string.
func FormatISO(t time.Time) string {
	return t.Format(ISODate)
}

// ISOWeekdayIndex maps t's weekday to the ISO convention Monday=0..Sunday=6,
// regardless of Go's native Sunday-first numbering.
func ISOWeekdayIndex(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}

// WeekWindow returns the inclusive window [ref's day, end of ref's calendar
// week]. The week ends on Sunday; when ref already is a Sunday the window is
// that single day. Both bounds are anchored to noon UTC.
func WeekWindow(ref time.Time) (start, end time.Time) {
	start = AtNoon(ref)
	daysToSunday := (7 - int(ref.Weekday())) % 7
	end = start.AddDate(0, 0, daysToSunday)
	return start, end
}

// InWindow reports whether d falls inside the inclusive [start, end] window,
// comparing on day granularity via noon anchoring.
func InWindow(d, start, end time.Time) bool {
	d = AtNoon(d)
	return !d.Before(AtNoon(start)) && !d.After(AtNoon(end))
}

// SameDay reports whether a and b fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}
