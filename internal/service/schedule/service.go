package schedule

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/qadam-hq/checkin-backend-go/internal/domain/employee"
	"github.com/qadam-hq/checkin-backend-go/internal/domain/schedule"
	"github.com/qadam-hq/checkin-backend-go/internal/pkg/timeutil"
	"github.com/qadam-hq/checkin-backend-go/internal/pkg/validator"
)

// TxRunner executes fn atomically. Production wires it to a database
// transaction; tests pass the identity runner.
type TxRunner func(ctx context.Context, fn func(ctx context.Context) error) error

var csvHeader = []string{
	"telegram_id", "effective_from_date",
	"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday",
}

// SetVersionRequest upserts one weekday's hours. Empty Start and End declare
// an explicit rest day.
type SetVersionRequest struct {
	EmployeeID    int64  `json:"employee_id"`
	DayOfWeek     int    `json:"day_of_week"`
	EffectiveFrom string `json:"effective_from"`
	Start         string `json:"start,omitempty"`
	End           string `json:"end,omitempty"`
}

func (r *SetVersionRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidChatID(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}
	if r.DayOfWeek < 0 || r.DayOfWeek > 6 {
		errs = append(errs, validator.ValidationError{
			Field:   "day_of_week",
			Message: "day_of_week must be between 0 (Monday) and 6 (Sunday)",
		})
	}
	if _, ok := validator.IsValidDate(r.EffectiveFrom); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "effective_from",
			Message: "effective_from must be YYYY-MM-DD",
		})
	}
	if (r.Start == "") != (r.End == "") {
		errs = append(errs, validator.ValidationError{
			Field:   "start",
			Message: "start and end must be set together or both omitted",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// SetWeekRequest replaces a whole week for one effective date. Cells use the
// same format as the import file: "HH:MM-HH:MM" or "0" for rest.
type SetWeekRequest struct {
	EmployeeID    int64     `json:"employee_id"`
	EffectiveFrom string    `json:"effective_from"`
	Days          [7]string `json:"days"` // Monday first
}

func (r *SetWeekRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidChatID(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}
	if _, ok := validator.IsValidDate(r.EffectiveFrom); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "effective_from",
			Message: "effective_from must be YYYY-MM-DD",
		})
	}
	for day, cell := range r.Days {
		if _, _, ok := validator.ParseDaySchedule(cell); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   csvHeader[2+day],
				Message: "cell must be HH:MM-HH:MM or 0",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ImportSummary reports what a bulk import applied.
type ImportSummary struct {
	RowsImported    int `json:"rows_imported"`
	VersionsWritten int `json:"versions_written"`
}

type Service interface {
	// SetVersion upserts one (employee, weekday, effective date) version.
	SetVersion(ctx context.Context, req SetVersionRequest) error

	// SetWeek atomically upserts all seven weekdays for one effective date.
	SetWeek(ctx context.Context, req SetWeekRequest) error

	// GetEmployeeSchedule returns every stored version for the employee.
	GetEmployeeSchedule(ctx context.Context, employeeID int64) ([]schedule.Version, error)

	// ImportCSV applies a week per row. Re-importing the same file is a
	// no-op thanks to upsert semantics.
	ImportCSV(ctx context.Context, r io.Reader) (ImportSummary, error)
}

type ServiceImpl struct {
	versionRepo  schedule.VersionRepository
	employeeRepo employee.EmployeeRepository
	inTx         TxRunner
}

func NewService(versionRepo schedule.VersionRepository, employeeRepo employee.EmployeeRepository, inTx TxRunner) Service {
	return &ServiceImpl{
		versionRepo:  versionRepo,
		employeeRepo: employeeRepo,
		inTx:         inTx,
	}
}

func (s *ServiceImpl) SetVersion(ctx context.Context, req SetVersionRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}
	if _, err := s.employeeRepo.GetByTelegramID(ctx, req.EmployeeID, false); err != nil {
		return err
	}

	version, err := buildVersion(req.EmployeeID, req.DayOfWeek, req.EffectiveFrom, req.Start, req.End)
	if err != nil {
		return err
	}
	return s.versionRepo.Upsert(ctx, version)
}

func (s *ServiceImpl) SetWeek(ctx context.Context, req SetWeekRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}
	if _, err := s.employeeRepo.GetByTelegramID(ctx, req.EmployeeID, false); err != nil {
		return err
	}

	versions, err := buildWeek(req.EmployeeID, req.EffectiveFrom, req.Days)
	if err != nil {
		return err
	}

	return s.inTx(ctx, func(ctx context.Context) error {
		for _, version := range versions {
			if err := s.versionRepo.Upsert(ctx, version); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *ServiceImpl) GetEmployeeSchedule(ctx context.Context, employeeID int64) ([]schedule.Version, error) {
	if _, err := s.employeeRepo.GetByTelegramID(ctx, employeeID, false); err != nil {
		return nil, err
	}
	return s.versionRepo.GetByEmployee(ctx, employeeID)
}

func (s *ServiceImpl) ImportCSV(ctx context.Context, r io.Reader) (ImportSummary, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return ImportSummary{}, fmt.Errorf("%w: %v", schedule.ErrMissingCSVHeader, err)
	}
	if !headerMatches(header) {
		return ImportSummary{}, fmt.Errorf("%w: got %q", schedule.ErrMissingCSVHeader, strings.Join(header, ","))
	}

	var summary ImportSummary
	for rowNum := 2; ; rowNum++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return summary, fmt.Errorf("%w: row %d: %v", schedule.ErrMalformedCSVRow, rowNum, err)
		}
		if len(record) != len(csvHeader) {
			return summary, fmt.Errorf("%w: row %d has %d columns, want %d", schedule.ErrMalformedCSVRow, rowNum, len(record), len(csvHeader))
		}

		employeeID, err := strconv.ParseInt(strings.TrimSpace(record[0]), 10, 64)
		if err != nil || employeeID <= 0 {
			return summary, fmt.Errorf("%w: row %d: bad telegram_id %q", schedule.ErrMalformedCSVRow, rowNum, record[0])
		}
		if _, err := s.employeeRepo.GetByTelegramID(ctx, employeeID, false); err != nil {
			return summary, fmt.Errorf("row %d: %w", rowNum, err)
		}

		var days [7]string
		copy(days[:], record[2:])
		versions, err := buildWeek(employeeID, strings.TrimSpace(record[1]), days)
		if err != nil {
			return summary, fmt.Errorf("%w: row %d: %v", schedule.ErrMalformedCSVRow, rowNum, err)
		}

		err = s.inTx(ctx, func(ctx context.Context) error {
			for _, version := range versions {
				if err := s.versionRepo.Upsert(ctx, version); err != nil {
					return err
				}
			}
			return nil
		})
		if err != nil {
			return summary, fmt.Errorf("row %d: %w", rowNum, err)
		}

		summary.RowsImported++
		summary.VersionsWritten += len(versions)
	}

	return summary, nil
}

func headerMatches(header []string) bool {
	if len(header) != len(csvHeader) {
		return false
	}
	for i, col := range header {
		if !strings.EqualFold(strings.TrimSpace(col), csvHeader[i]) {
			return false
		}
	}
	return true
}

func buildVersion(employeeID int64, dayOfWeek int, effectiveFrom, start, end string) (schedule.Version, error) {
	date, err := timeutil.ParseDate(effectiveFrom)
	if err != nil {
		return schedule.Version{}, err
	}

	version := schedule.Version{
		EmployeeID:    employeeID,
		DayOfWeek:     dayOfWeek,
		EffectiveFrom: date,
	}
	if start == "" {
		return version, nil
	}

	startTod, err := timeutil.ParseTimeOfDay(start)
	if err != nil {
		return schedule.Version{}, err
	}
	endTod, err := timeutil.ParseTimeOfDay(end)
	if err != nil {
		return schedule.Version{}, err
	}
	if !startTod.Before(endTod) {
		return schedule.Version{}, schedule.ErrEndBeforeStart
	}

	version.Start = &startTod
	version.End = &endTod
	return version, nil
}

func buildWeek(employeeID int64, effectiveFrom string, days [7]string) ([]schedule.Version, error) {
	versions := make([]schedule.Version, 0, 7)
	for day, cell := range days {
		start, end, ok := validator.ParseDaySchedule(cell)
		if !ok {
			return nil, fmt.Errorf("%w: %s=%q", schedule.ErrInvalidDayCell, csvHeader[2+day], cell)
		}
		version, err := buildVersion(employeeID, day, effectiveFrom, start, end)
		if err != nil {
			return nil, err
		}
		versions = append(versions, version)
	}
	return versions, nil
}
