package leave

import (
	"context"
	"strings"

	"github.com/qadam-hq/checkin-backend-go/internal/domain/employee"
	"github.com/qadam-hq/checkin-backend-go/internal/domain/leave"
	"github.com/qadam-hq/checkin-backend-go/internal/pkg/timeutil"
	"github.com/qadam-hq/checkin-backend-go/internal/pkg/validator"
)

// GrantRequest covers an inclusive date range with one leave type.
type GrantRequest struct {
	EmployeeID int64  `json:"employee_id"`
	StartDate  string `json:"start_date"`
	EndDate    string `json:"end_date"`
	Type       string `json:"type"`
}

func (r *GrantRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidChatID(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}
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
	if !validator.IsInSlice(strings.ToUpper(r.Type), leave.TypeValues) {
		errs = append(errs, validator.ValidationError{
			Field:   "type",
			Message: "type must be one of: " + strings.Join(leave.TypeValues, ", "),
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// CancelRequest removes every leave record of the employee touching the
// range. Overlapping records are deleted whole, never trimmed.
type CancelRequest struct {
	EmployeeID int64  `json:"employee_id"`
	StartDate  string `json:"start_date"`
	EndDate    string `json:"end_date"`
}

func (r *CancelRequest) Validate() error {
	grant := GrantRequest{
		EmployeeID: r.EmployeeID,
		StartDate:  r.StartDate,
		EndDate:    r.EndDate,
		Type:       string(leave.TypeVacation),
	}
	return grant.Validate()
}

type HolidayRequest struct {
	Date string `json:"date"`
	Name string `json:"name,omitempty"`
}

func (r *HolidayRequest) Validate() error {
	var errs validator.ValidationErrors

	if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date must be YYYY-MM-DD",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type Service interface {
	Grant(ctx context.Context, req GrantRequest) (leave.Period, error)

	// Cancel returns how many leave records were removed.
	Cancel(ctx context.Context, req CancelRequest) (int64, error)

	SetHoliday(ctx context.Context, req HolidayRequest) error
	RemoveHoliday(ctx context.Context, date string) error
	ListHolidays(ctx context.Context, start, end string) ([]leave.Holiday, error)
}

type ServiceImpl struct {
	periodRepo   leave.PeriodRepository
	holidayRepo  leave.HolidayRepository
	employeeRepo employee.EmployeeRepository
}

func NewService(periodRepo leave.PeriodRepository, holidayRepo leave.HolidayRepository, employeeRepo employee.EmployeeRepository) Service {
	return &ServiceImpl{
		periodRepo:   periodRepo,
		holidayRepo:  holidayRepo,
		employeeRepo: employeeRepo,
	}
}

func (s *ServiceImpl) Grant(ctx context.Context, req GrantRequest) (leave.Period, error) {
	if err := req.Validate(); err != nil {
		return leave.Period{}, err
	}
	if _, err := s.employeeRepo.GetByTelegramID(ctx, req.EmployeeID, false); err != nil {
		return leave.Period{}, err
	}

	start, _ := timeutil.ParseDate(req.StartDate)
	end, _ := timeutil.ParseDate(req.EndDate)

	return s.periodRepo.Create(ctx, leave.Period{
		EmployeeID: req.EmployeeID,
		StartDate:  start,
		EndDate:    end,
		Type:       leave.Type(strings.ToUpper(req.Type)),
	})
}

func (s *ServiceImpl) Cancel(ctx context.Context, req CancelRequest) (int64, error) {
	if err := req.Validate(); err != nil {
		return 0, err
	}
	if _, err := s.employeeRepo.GetByTelegramID(ctx, req.EmployeeID, false); err != nil {
		return 0, err
	}

	start, _ := timeutil.ParseDate(req.StartDate)
	end, _ := timeutil.ParseDate(req.EndDate)

	return s.periodRepo.DeleteOverlapping(ctx, req.EmployeeID, start, end)
}

func (s *ServiceImpl) SetHoliday(ctx context.Context, req HolidayRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}
	date, _ := timeutil.ParseDate(req.Date)
	return s.holidayRepo.Put(ctx, leave.Holiday{Date: date, Name: req.Name})
}

func (s *ServiceImpl) RemoveHoliday(ctx context.Context, date string) error {
	parsed, err := timeutil.ParseDate(date)
	if err != nil {
		return validator.ValidationErrors{{Field: "date", Message: "date must be YYYY-MM-DD"}}
	}
	return s.holidayRepo.Delete(ctx, parsed)
}

func (s *ServiceImpl) ListHolidays(ctx context.Context, start, end string) ([]leave.Holiday, error) {
	startDate, err := timeutil.ParseDate(start)
	if err != nil {
		return nil, validator.ValidationErrors{{Field: "start_date", Message: "start_date must be YYYY-MM-DD"}}
	}
	endDate, err := timeutil.ParseDate(end)
	if err != nil {
		return nil, validator.ValidationErrors{{Field: "end_date", Message: "end_date must be YYYY-MM-DD"}}
	}
	return s.holidayRepo.ListInRange(ctx, startDate, endDate)
}
