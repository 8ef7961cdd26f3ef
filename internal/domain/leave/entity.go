package leave

import "time"

type Type string

const (
	TypeVacation Type = "VACATION"
	TypeSick     Type = "SICK"
)

var TypeValues = []string{string(TypeVacation), string(TypeSick)}

// Period is an approved leave interval, dates inclusive. Overlapping
// periods for one employee may exist transiently; any covering period wins,
// they are never merged.
type Period struct {
	ID         string
	EmployeeID int64
	StartDate  time.Time
	EndDate    time.Time
	Type       Type
	CreatedAt  time.Time
}

// Covers reports whether date falls inside the period.
func (p Period) Covers(date time.Time) bool {
	return !date.Before(p.StartDate) && !date.After(p.EndDate)
}

// Overlaps reports whether the period touches [start, end] at all.
func (p Period) Overlaps(start, end time.Time) bool {
	return !p.StartDate.After(end) && !p.EndDate.Before(start)
}

// Holiday is organization-wide, independent of any employee.
type Holiday struct {
	Date time.Time
	Name string
}
