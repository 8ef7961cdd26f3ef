package validator

import (
	"regexp"
	"strings"
	"time"
)

type ValidationError struct {
	Field   string
	Message string
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	var msgs []string
	for _, err := range v {
		msgs = append(msgs, err.Field+": "+err.Message)
	}
	return strings.Join(msgs, "; ")
}

func (v ValidationErrors) ToMap() map[string]string {
	result := make(map[string]string)
	for _, err := range v {
		result[err.Field] = err.Message
	}
	return result
}

// IsEmpty checks if a string is empty after trimming whitespace.
func IsEmpty(s string) bool {
	return strings.TrimSpace(s) == ""
}

// Numeric validation
var numericRegex = regexp.MustCompile(`^[0-9]+$`)

func IsNumeric(s string) bool {
	return numericRegex.MatchString(s)
}

// Date validation
func IsValidDate(dateStr string) (time.Time, bool) {
	date, err := time.Parse("2006-01-02", dateStr)
	return date, err == nil
}

// Telegram chat IDs are positive integers.
func IsValidChatID(id int64) bool {
	return id > 0
}

// Day-cell validation for schedule input: "HH:MM-HH:MM" working hours or
// "0" for an explicit rest day.
var dayScheduleRegex = regexp.MustCompile(`^([01]\d|2[0-3]):([0-5]\d)-([01]\d|2[0-3]):([0-5]\d)$`)

// ParseDaySchedule returns (start, end, true) for a working-hours cell,
// ("", "", true) for a rest cell, and ok=false for anything malformed.
func ParseDaySchedule(cell string) (start, end string, ok bool) {
	cell = strings.TrimSpace(strings.ToLower(cell))
	if cell == "0" {
		return "", "", true
	}
	m := dayScheduleRegex.FindStringSubmatch(cell)
	if m == nil {
		return "", "", false
	}
	return m[1] + ":" + m[2], m[3] + ":" + m[4], true
}

// Slice contains check
func IsInSlice(value string, slice []string) bool {
	for _, item := range slice {
		if item == value {
			return true
		}
	}
	return false
}
