package checkin

import (
	"strings"

	"github.com/qadam-hq/checkin-backend-go/internal/domain/event"
	"github.com/qadam-hq/checkin-backend-go/internal/pkg/validator"
)

// RecordRequest records an outcome the external flow already verified
// (geofence and face match both ran before this call).
type RecordRequest struct {
	EmployeeID     int64    `json:"employee_id"`
	Category       string   `json:"category"` // ARRIVAL or DEPARTURE
	Outcome        string   `json:"outcome"`
	Latitude       *float64 `json:"latitude,omitempty"`
	Longitude      *float64 `json:"longitude,omitempty"`
	DistanceMeters *float64 `json:"distance_meters,omitempty"`
	FaceSimilarity *float64 `json:"face_similarity,omitempty"`
}

func (r *RecordRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.EmployeeID <= 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}
	if r.Category != string(event.CategoryArrival) && r.Category != string(event.CategoryDeparture) {
		errs = append(errs, validator.ValidationError{
			Field:   "category",
			Message: "category must be ARRIVAL or DEPARTURE",
		})
	}
	if !validator.IsInSlice(r.Outcome, event.OutcomeValues) {
		errs = append(errs, validator.ValidationError{
			Field:   "outcome",
			Message: "outcome must be one of: " + strings.Join(event.OutcomeValues, ", "),
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// VerifiedRequest runs the geofence check and the injected face verifier
// before anything is recorded.
type VerifiedRequest struct {
	EmployeeID int64   `json:"employee_id"`
	Category   string  `json:"category"`
	Latitude   float64 `json:"latitude"`
	Longitude  float64 `json:"longitude"`
	PhotoRef   string  `json:"photo_ref"`
	// Late is set when the employee checks in through the late-entry path
	// the scheduler unlocked after the cutoff.
	Late bool `json:"late"`
}

func (r *VerifiedRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.EmployeeID <= 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}
	if r.Category != string(event.CategoryArrival) && r.Category != string(event.CategoryDeparture) {
		errs = append(errs, validator.ValidationError{
			Field:   "category",
			Message: "category must be ARRIVAL or DEPARTURE",
		})
	}
	if validator.IsEmpty(r.PhotoRef) {
		errs = append(errs, validator.ValidationError{
			Field:   "photo_ref",
			Message: "photo_ref is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Result reports what was logged.
type Result struct {
	EventID        string   `json:"event_id"`
	Category       string   `json:"category"`
	Outcome        string   `json:"outcome"`
	DistanceMeters *float64 `json:"distance_meters,omitempty"`
	FaceSimilarity *float64 `json:"face_similarity,omitempty"`
}
