package response

import (
	"errors"
	"net/http"

	"github.com/qadam-hq/checkin-backend-go/internal/domain/checkin"
	"github.com/qadam-hq/checkin-backend-go/internal/domain/employee"
	"github.com/qadam-hq/checkin-backend-go/internal/domain/leave"
	"github.com/qadam-hq/checkin-backend-go/internal/domain/schedule"
	"github.com/qadam-hq/checkin-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrEmployeeInactive):
		Forbidden(w, "Employee is deactivated")

	// Check-in domain errors
	case errors.Is(err, checkin.ErrAlreadyCheckedIn):
		Conflict(w, "Arrival already recorded today")
	case errors.Is(err, checkin.ErrAlreadyCheckedOut):
		Conflict(w, "Departure already recorded today")
	case errors.Is(err, checkin.ErrNotCheckedIn):
		Conflict(w, "No arrival recorded today")
	case errors.Is(err, checkin.ErrNoScheduleToday):
		BadRequest(w, "No schedule in force today", nil)
	case errors.Is(err, checkin.ErrOutsideRadius):
		Forbidden(w, "You are outside the allowed check-in radius")
	case errors.Is(err, checkin.ErrFaceMismatch):
		Forbidden(w, "Face verification failed")

	// Schedule domain errors
	case errors.Is(err, schedule.ErrEndBeforeStart),
		errors.Is(err, schedule.ErrInvalidWeekday),
		errors.Is(err, schedule.ErrInvalidDayCell),
		errors.Is(err, schedule.ErrMalformedCSVRow),
		errors.Is(err, schedule.ErrMissingCSVHeader):
		BadRequest(w, err.Error(), nil)

	// Leave domain errors
	case errors.Is(err, leave.ErrEndBeforeStart), errors.Is(err, leave.ErrInvalidType):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, leave.ErrHolidayNotFound):
		NotFound(w, "Holiday not found")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
