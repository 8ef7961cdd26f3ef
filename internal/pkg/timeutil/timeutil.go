package timeutil

import (
	"fmt"
	"time"
)

// DateLayout is the wire format for calendar dates everywhere in the API.
const DateLayout = "2006-01-02"

// DateOf strips the clock part of t, keeping the calendar day in t's location.
func DateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a YYYY-MM-DD date string into a midnight-UTC time.Time.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return t, nil
}

// FormatDate renders a date value as YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// LocalDate converts a UTC instant into the calendar date it falls on in loc.
// Every date-boundary decision in the system goes through the organization
// timezone, never the process-local zone.
func LocalDate(utc time.Time, loc *time.Location) time.Time {
	return DateOf(utc.In(loc))
}

// DayBoundsUTC returns the UTC instants covering the whole of the local
// calendar day `date` in loc: [start, end). date carries only Y/M/D.
func DayBoundsUTC(date time.Time, loc *time.Location) (time.Time, time.Time) {
	start := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, loc)
	return start.UTC(), start.AddDate(0, 0, 1).UTC()
}

// Weekday maps Go's Sunday-first weekday onto the schedule convention
// 0=Monday .. 6=Sunday.
func Weekday(date time.Time) int {
	return (int(date.Weekday()) + 6) % 7
}

// TimeOfDay is a wall-clock time without a date, stored as HH:MM.
type TimeOfDay struct {
	Hour   int
	Minute int
}

// ParseTimeOfDay parses "HH:MM" (24h).
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return TimeOfDay{}, fmt.Errorf("invalid time %q: %w", s, err)
	}
	return TimeOfDay{Hour: t.Hour(), Minute: t.Minute()}, nil
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// At anchors the wall-clock time on a calendar date in loc.
func (t TimeOfDay) At(date time.Time, loc *time.Location) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), t.Hour, t.Minute, 0, 0, loc)
}

// Before reports whether t is earlier in the day than u.
func (t TimeOfDay) Before(u TimeOfDay) bool {
	return t.Hour < u.Hour || (t.Hour == u.Hour && t.Minute < u.Minute)
}
