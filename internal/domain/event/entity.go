package event

import "time"

// Category partitions ledger events by who produced them and what they mean.
type Category string

const (
	CategoryArrival   Category = "ARRIVAL"
	CategoryDeparture Category = "DEPARTURE"
	// CategorySystem marks scheduler-written overrides (forced absence,
	// unclosed-day sweeps).
	CategorySystem Category = "SYSTEM"
	// CategorySystemLeave marks an admin-approved early leave for the day.
	CategorySystemLeave Category = "SYSTEM_LEAVE"
)

var CategoryValues = []string{
	string(CategoryArrival),
	string(CategoryDeparture),
	string(CategorySystem),
	string(CategorySystemLeave),
}

// Outcome is the result recorded for one attempt or override.
type Outcome string

const (
	OutcomeSuccess          Outcome = "SUCCESS"
	OutcomeLate             Outcome = "LATE"
	OutcomeFailLocation     Outcome = "FAIL_LOCATION"
	OutcomeFailFace         Outcome = "FAIL_FACE"
	OutcomeApprovedLeave    Outcome = "APPROVED_LEAVE"
	OutcomeAbsentIncomplete Outcome = "ABSENT_INCOMPLETE"
	OutcomeAbsent           Outcome = "ABSENT"
)

var OutcomeValues = []string{
	string(OutcomeSuccess),
	string(OutcomeLate),
	string(OutcomeFailLocation),
	string(OutcomeFailFace),
	string(OutcomeApprovedLeave),
	string(OutcomeAbsentIncomplete),
	string(OutcomeAbsent),
}

// Event is one immutable, timestamped fact in the ledger. Timestamps are
// always UTC; the calendar day an event belongs to is decided by converting
// through the organization timezone. Failed attempts are kept for audit but
// carry no weight in status derivation.
type Event struct {
	ID             string
	EmployeeID     int64
	Timestamp      time.Time // UTC
	Category       Category
	Outcome        Outcome
	Latitude       *float64
	Longitude      *float64
	DistanceMeters *float64
	FaceSimilarity *float64
}
