package schedule

import (
	"time"

	"github.com/qadam-hq/checkin-backend-go/internal/pkg/timeutil"
)

// Version is one weekday's working hours (or rest) for an employee, valid
// from EffectiveFrom until superseded by a version with a later effective
// date. Versions are never mutated, only superseded.
//
// A nil Start/End pair is an explicit rest day. That is distinct from no
// version existing at all, which means the employee has no obligation on
// that weekday yet.
type Version struct {
	EmployeeID    int64
	DayOfWeek     int // 0=Monday .. 6=Sunday
	EffectiveFrom time.Time
	Start         *timeutil.TimeOfDay
	End           *timeutil.TimeOfDay
	CreatedAt     time.Time
}

// IsRest reports whether this version declares the weekday a rest day.
func (v Version) IsRest() bool {
	return v.Start == nil || v.End == nil
}

// ResolvedKind classifies the outcome of resolving the schedule in force.
type ResolvedKind int

const (
	// ResolvedNone means no version exists yet: no obligation.
	ResolvedNone ResolvedKind = iota
	// ResolvedRest means the version in force declares a rest day.
	ResolvedRest
	// ResolvedWork means the version in force carries working hours.
	ResolvedWork
)

// Resolved is the schedule in force for one (employee, date).
type Resolved struct {
	Kind  ResolvedKind
	Start timeutil.TimeOfDay // valid only when Kind == ResolvedWork
	End   timeutil.TimeOfDay
}

// Obligated reports whether the employee owes attendance on this day.
func (r Resolved) Obligated() bool {
	return r.Kind == ResolvedWork
}
