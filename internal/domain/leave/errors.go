package leave

import "errors"

var (
	ErrEndBeforeStart  = errors.New("leave end date must not be before start date")
	ErrInvalidType     = errors.New("leave type must be VACATION or SICK")
	ErrHolidayNotFound = errors.New("holiday not found")
)
