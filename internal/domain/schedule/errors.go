package schedule

import "errors"

var (
	ErrEndBeforeStart   = errors.New("schedule end time must be after start time")
	ErrInvalidWeekday   = errors.New("day of week must be between 0 (Monday) and 6 (Sunday)")
	ErrInvalidDayCell   = errors.New("day cell must be HH:MM-HH:MM or 0")
	ErrMalformedCSVRow  = errors.New("malformed schedule import row")
	ErrMissingCSVHeader = errors.New("schedule import file is missing the expected header")
)
