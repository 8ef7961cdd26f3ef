package report

import (
	"time"

	"github.com/qadam-hq/checkin-backend-go/internal/pkg/timeutil"
	"github.com/qadam-hq/checkin-backend-go/internal/pkg/validator"
)

// PeriodRequest covers an inclusive date range.
type PeriodRequest struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

func (r *PeriodRequest) Validate() error {
	var errs validator.ValidationErrors

	start, okStart := validator.IsValidDate(r.StartDate)
	if !okStart {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date must be YYYY-MM-DD",
		})
	}
	end, okEnd := validator.IsValidDate(r.EndDate)
	if !okEnd {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must be YYYY-MM-DD",
		})
	}
	if okStart && okEnd && end.Before(start) {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must not be before start_date",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func (r *PeriodRequest) Range() (time.Time, time.Time) {
	start, _ := timeutil.ParseDate(r.StartDate)
	end, _ := timeutil.ParseDate(r.EndDate)
	return start, end
}

// PeriodReport aggregates one inclusive date range.
//
// TotalObligatedDays counts every (employee, day) with a non-rest schedule
// in force, including days later consumed by a leave or holiday branch.
// That asymmetry is deliberate and matches how the reports have always been
// read: the denominator is "planned attendance", the other counters are
// "what actually happened".
type PeriodReport struct {
	StartDate          string          `json:"start_date"`
	EndDate            string          `json:"end_date"`
	TotalObligatedDays int             `json:"total_obligated_days"`
	TotalArrivals      int             `json:"total_arrivals"`
	TotalLates         int             `json:"total_lates"`
	LateEmployees      []EmployeeDates `json:"late_employees"`
	Absences           []EmployeeDates `json:"absences"`
}

// EmployeeDates lists the dates (DD.MM) one employee hit a counter on.
type EmployeeDates struct {
	EmployeeID int64    `json:"employee_id"`
	FullName   string   `json:"full_name"`
	Dates      []string `json:"dates"`
}

// MonthlyRequest selects a calendar month.
type MonthlyRequest struct {
	Year  int `json:"year"`
	Month int `json:"month"`
}

func (r *MonthlyRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Year < 2000 || r.Year > 2200 {
		errs = append(errs, validator.ValidationError{
			Field:   "year",
			Message: "year is out of range",
		})
	}
	if r.Month < 1 || r.Month > 12 {
		errs = append(errs, validator.ValidationError{
			Field:   "month",
			Message: "month must be between 1 and 12",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// MonthlyMatrix is the per-day status grid for one month: a header of
// day-of-month labels and one row per active employee. It exports verbatim
// as CSV.
type MonthlyMatrix struct {
	Year   int        `json:"year"`
	Month  int        `json:"month"`
	Header []string   `json:"header"`
	Rows   [][]string `json:"rows"`
}
