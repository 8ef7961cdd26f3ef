package checkin

import "errors"

var (
	ErrAlreadyCheckedIn  = errors.New("arrival already recorded today")
	ErrAlreadyCheckedOut = errors.New("departure already recorded today")
	ErrNotCheckedIn      = errors.New("no arrival recorded today")
	ErrNoScheduleToday   = errors.New("no schedule in force today")
	ErrOutsideRadius     = errors.New("outside the allowed radius")
	ErrFaceMismatch      = errors.New("face not recognized")
)
