package status

import (
	"github.com/qadam-hq/checkin-backend-go/internal/domain/event"
	"github.com/qadam-hq/checkin-backend-go/internal/domain/leave"
	"github.com/qadam-hq/checkin-backend-go/internal/domain/schedule"
)

// Facts are the pre-assembled inputs for one (employee, date). Callers pull
// them from the schedule store, the leave/holiday registry and the event
// ledger; Derive itself does no I/O.
type Facts struct {
	Schedule  schedule.Resolved
	Leave     *leave.Period // covering period, nil when none
	IsHoliday bool
	Events    []event.Event // the employee's events on the local date
	IsPast    bool          // date is strictly before today (org timezone)
}

// Derive computes the composite status from the facts. It is pure and
// total: missing optional facts resolve to defined statuses, never an
// error, and identical inputs always produce identical output.
//
// Precedence, strictly in order: holiday, rest/no-obligation, leave,
// forced-absence override, then the arrival/closing scan.
func Derive(f Facts) Composite {
	if f.IsHoliday {
		return Composite{Kind: KindHoliday}
	}
	if !f.Schedule.Obligated() {
		return Composite{Kind: KindRestDay}
	}
	if f.Leave != nil {
		return Composite{Kind: KindOnLeave, LeaveType: f.Leave.Type}
	}

	// A forced absence written by the scheduler trumps whatever else was
	// logged that day.
	if hasEvent(f.Events, event.CategorySystem, event.OutcomeAbsent) {
		return Composite{Kind: KindAbsent}
	}

	var base Kind
	switch {
	case hasEvent(f.Events, event.CategoryArrival, event.OutcomeLate):
		base = KindLate
	case hasEvent(f.Events, event.CategoryArrival, event.OutcomeSuccess):
		base = KindOnTime
	default:
		if f.IsPast {
			return Composite{Kind: KindMissed}
		}
		return Composite{Kind: KindPending}
	}

	return Composite{Kind: base, Suffix: closingSuffix(f.Events)}
}

// closingSuffix inspects how an attended day ended. An approved early leave
// wins over the unclosed-day marker: the two are written by different paths
// and the approval is the stronger signal.
func closingSuffix(events []event.Event) Suffix {
	if hasEvent(events, event.CategorySystemLeave, event.OutcomeApprovedLeave) {
		return SuffixLeftEarly
	}
	departed := hasEvent(events, event.CategoryDeparture, event.OutcomeSuccess)
	if !departed && hasEvent(events, event.CategorySystem, event.OutcomeAbsentIncomplete) {
		return SuffixDayNotClosed
	}
	return SuffixNone
}

func hasEvent(events []event.Event, cat event.Category, out event.Outcome) bool {
	for _, ev := range events {
		if ev.Category == cat && ev.Outcome == out {
			return true
		}
	}
	return false
}
