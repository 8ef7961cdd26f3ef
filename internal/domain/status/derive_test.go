package status

import (
	"testing"
	"time"

	"github.com/qadam-hq/checkin-backend-go/internal/domain/event"
	"github.com/qadam-hq/checkin-backend-go/internal/domain/leave"
	"github.com/qadam-hq/checkin-backend-go/internal/domain/schedule"
	"github.com/qadam-hq/checkin-backend-go/internal/pkg/timeutil"
	"github.com/stretchr/testify/assert"
)

func workSchedule() schedule.Resolved {
	return schedule.Resolved{
		Kind:  schedule.ResolvedWork,
		Start: timeutil.TimeOfDay{Hour: 9},
		End:   timeutil.TimeOfDay{Hour: 18},
	}
}

func ev(cat event.Category, out event.Outcome) event.Event {
	return event.Event{Category: cat, Outcome: out, Timestamp: time.Now().UTC()}
}

func TestDerive_HolidayBeatsEverything(t *testing.T) {
	got := Derive(Facts{
		Schedule:  workSchedule(),
		IsHoliday: true,
		Events:    []event.Event{ev(event.CategoryArrival, event.OutcomeSuccess)},
		IsPast:    true,
	})
	assert.Equal(t, KindHoliday, got.Kind)
}

func TestDerive_RestAndNoObligation(t *testing.T) {
	got := Derive(Facts{Schedule: schedule.Resolved{Kind: schedule.ResolvedRest}})
	assert.Equal(t, KindRestDay, got.Kind)

	// No version at all renders the same for reporting.
	got = Derive(Facts{Schedule: schedule.Resolved{Kind: schedule.ResolvedNone}, IsPast: true})
	assert.Equal(t, KindRestDay, got.Kind)
}

func TestDerive_LeaveBeatsArrival(t *testing.T) {
	p := leave.Period{Type: leave.TypeVacation}
	got := Derive(Facts{
		Schedule: workSchedule(),
		Leave:    &p,
		Events:   []event.Event{ev(event.CategoryArrival, event.OutcomeSuccess)},
	})
	assert.Equal(t, KindOnLeave, got.Kind)
	assert.Equal(t, leave.TypeVacation, got.LeaveType)
	assert.Equal(t, "Vacation", got.ShortLabel())
}

func TestDerive_ForcedAbsenceOverridesArrival(t *testing.T) {
	got := Derive(Facts{
		Schedule: workSchedule(),
		Events: []event.Event{
			ev(event.CategoryArrival, event.OutcomeSuccess),
			ev(event.CategorySystem, event.OutcomeAbsent),
		},
		IsPast: true,
	})
	assert.Equal(t, KindAbsent, got.Kind)
}

func TestDerive_ArrivalOutcomes(t *testing.T) {
	cases := []struct {
		name   string
		events []event.Event
		isPast bool
		want   Composite
	}{
		{
			name:   "on time",
			events: []event.Event{ev(event.CategoryArrival, event.OutcomeSuccess)},
			want:   Composite{Kind: KindOnTime},
		},
		{
			name: "late wins over a later success",
			events: []event.Event{
				ev(event.CategoryArrival, event.OutcomeLate),
				ev(event.CategoryArrival, event.OutcomeSuccess),
			},
			want: Composite{Kind: KindLate},
		},
		{
			name: "failed attempts carry no weight",
			events: []event.Event{
				ev(event.CategoryArrival, event.OutcomeFailFace),
				ev(event.CategoryArrival, event.OutcomeFailLocation),
			},
			isPast: true,
			want:   Composite{Kind: KindMissed},
		},
		{
			name: "no arrival yet today",
			want: Composite{Kind: KindPending},
		},
		{
			name:   "no arrival yesterday",
			isPast: true,
			want:   Composite{Kind: KindMissed},
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := Derive(Facts{Schedule: workSchedule(), Events: c.events, IsPast: c.isPast})
			assert.Equal(t, c.want, got)
		})
	}
}

func TestDerive_ClosingSuffixes(t *testing.T) {
	// Arrived and left early with approval.
	got := Derive(Facts{
		Schedule: workSchedule(),
		Events: []event.Event{
			ev(event.CategoryArrival, event.OutcomeSuccess),
			ev(event.CategorySystemLeave, event.OutcomeApprovedLeave),
		},
	})
	assert.Equal(t, KindOnTime, got.Kind)
	assert.Equal(t, SuffixLeftEarly, got.Suffix)
	assert.Equal(t, "On time (left early (approved))", got.Label())

	// Arrived, never departed, sweep marked the day unclosed.
	got = Derive(Facts{
		Schedule: workSchedule(),
		Events: []event.Event{
			ev(event.CategoryArrival, event.OutcomeLate),
			ev(event.CategorySystem, event.OutcomeAbsentIncomplete),
		},
		IsPast: true,
	})
	assert.Equal(t, KindLate, got.Kind)
	assert.Equal(t, SuffixDayNotClosed, got.Suffix)

	// A real departure clears the unclosed marker.
	got = Derive(Facts{
		Schedule: workSchedule(),
		Events: []event.Event{
			ev(event.CategoryArrival, event.OutcomeSuccess),
			ev(event.CategoryDeparture, event.OutcomeSuccess),
			ev(event.CategorySystem, event.OutcomeAbsentIncomplete),
		},
		IsPast: true,
	})
	assert.Equal(t, SuffixNone, got.Suffix)
}

func TestDerive_TrustsRecordedOutcome(t *testing.T) {
	// The core never re-derives lateness from the raw timestamp: an
	// arrival logged as SUCCESS at 09:05:29 stays on time even though the
	// shift started at 09:00.
	arrival := event.Event{
		Category:  event.CategoryArrival,
		Outcome:   event.OutcomeSuccess,
		Timestamp: time.Date(2024, 6, 11, 4, 5, 29, 0, time.UTC), // 09:05:29 Almaty
	}
	got := Derive(Facts{Schedule: workSchedule(), Events: []event.Event{arrival}})
	assert.Equal(t, KindOnTime, got.Kind)
}

func TestDerive_Deterministic(t *testing.T) {
	f := Facts{
		Schedule: workSchedule(),
		Events: []event.Event{
			ev(event.CategoryArrival, event.OutcomeLate),
			ev(event.CategorySystem, event.OutcomeAbsentIncomplete),
		},
		IsPast: true,
	}
	first := Derive(f)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Derive(f))
	}
}
