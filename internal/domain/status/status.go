package status

import "github.com/qadam-hq/checkin-backend-go/internal/domain/leave"

// Kind is the closed set of attendance states one (employee, date) can be
// in. Exactly one applies; derivation precedence picks it.
type Kind string

const (
	KindHoliday Kind = "HOLIDAY"
	KindRestDay Kind = "REST_DAY"
	KindOnLeave Kind = "ON_LEAVE"
	KindOnTime  Kind = "ON_TIME"
	KindLate    Kind = "LATE"
	KindMissed  Kind = "MISSED"
	KindPending Kind = "PENDING"
	KindAbsent  Kind = "ABSENT"
)

// Suffix qualifies how an attended day was closed out.
type Suffix string

const (
	SuffixNone Suffix = ""
	// SuffixLeftEarly marks an admin-approved early departure.
	SuffixLeftEarly Suffix = "left early (approved)"
	// SuffixDayNotClosed marks an arrival that was never matched by a
	// departure before the end-of-day sweep ran.
	SuffixDayNotClosed Suffix = "day not closed"
)

// Composite is the single derived attendance label for one employee on one
// date. It is computed on demand and never persisted.
type Composite struct {
	Kind      Kind
	LeaveType leave.Type // set only when Kind == KindOnLeave
	Suffix    Suffix     // set only when Kind is KindOnTime or KindLate
}

// Attended reports whether the employee showed up (on time or late).
func (c Composite) Attended() bool {
	return c.Kind == KindOnTime || c.Kind == KindLate
}

// Label renders the full human-readable status.
func (c Composite) Label() string {
	base := c.ShortLabel()
	if c.Suffix != SuffixNone {
		return base + " (" + string(c.Suffix) + ")"
	}
	return base
}

// ShortLabel renders the compact form used in monthly matrix cells.
func (c Composite) ShortLabel() string {
	switch c.Kind {
	case KindHoliday:
		return "Holiday"
	case KindRestDay:
		return "Rest day"
	case KindOnLeave:
		if c.LeaveType == leave.TypeSick {
			return "Sick leave"
		}
		return "Vacation"
	case KindOnTime:
		return "On time"
	case KindLate:
		return "Late"
	case KindMissed:
		return "Missed"
	case KindPending:
		return "—"
	case KindAbsent:
		return "Absent"
	}
	return string(c.Kind)
}
