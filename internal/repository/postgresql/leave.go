package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/qadam-hq/checkin-backend-go/internal/domain/leave"
	"github.com/qadam-hq/checkin-backend-go/internal/pkg/database"
)

type leavePeriodRepository struct {
	db *database.DB
}

func NewLeavePeriodRepository(db *database.DB) leave.PeriodRepository {
	return &leavePeriodRepository{db: db}
}

// Create implements leave.PeriodRepository.
func (r *leavePeriodRepository) Create(ctx context.Context, period leave.Period) (leave.Period, error) {
	q := GetQuerier(ctx, r.db)

	if period.ID == "" {
		period.ID = uuid.NewString()
	}

	err := q.QueryRow(ctx, `
		INSERT INTO leave_periods (id, employee_id, start_date, end_date, type)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at
	`, period.ID, period.EmployeeID, period.StartDate, period.EndDate, string(period.Type)).
		Scan(&period.CreatedAt)
	if err != nil {
		return leave.Period{}, fmt.Errorf("failed to create leave period: %w", err)
	}

	return period, nil
}

// DeleteOverlapping implements leave.PeriodRepository.
func (r *leavePeriodRepository) DeleteOverlapping(ctx context.Context, employeeID int64, start, end time.Time) (int64, error) {
	q := GetQuerier(ctx, r.db)

	// Whole records touching the range go away; partial overlaps are not
	// split.
	tag, err := q.Exec(ctx, `
		DELETE FROM leave_periods
		WHERE employee_id = $1
		  AND start_date <= $3
		  AND end_date >= $2
	`, employeeID, start, end)
	if err != nil {
		return 0, fmt.Errorf("failed to delete leave periods: %w", err)
	}

	return tag.RowsAffected(), nil
}

// ListOverlapping implements leave.PeriodRepository.
func (r *leavePeriodRepository) ListOverlapping(ctx context.Context, start, end time.Time) ([]leave.Period, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `
		SELECT id, employee_id, start_date, end_date, type, created_at
		FROM leave_periods
		WHERE start_date <= $2 AND end_date >= $1
		ORDER BY employee_id, start_date
	`, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave periods: %w", err)
	}
	defer rows.Close()

	var periods []leave.Period
	for rows.Next() {
		var (
			p         leave.Period
			leaveType string
		)
		if err := rows.Scan(&p.ID, &p.EmployeeID, &p.StartDate, &p.EndDate, &leaveType, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan leave period: %w", err)
		}
		p.Type = leave.Type(leaveType)
		periods = append(periods, p)
	}

	return periods, rows.Err()
}

type holidayRepository struct {
	db *database.DB
}

func NewHolidayRepository(db *database.DB) leave.HolidayRepository {
	return &holidayRepository{db: db}
}

// Put implements leave.HolidayRepository.
func (r *holidayRepository) Put(ctx context.Context, holiday leave.Holiday) error {
	q := GetQuerier(ctx, r.db)

	_, err := q.Exec(ctx, `
		INSERT INTO holidays (date, name)
		VALUES ($1, $2)
		ON CONFLICT (date) DO UPDATE SET name = EXCLUDED.name
	`, holiday.Date, holiday.Name)
	if err != nil {
		return fmt.Errorf("failed to put holiday: %w", err)
	}

	return nil
}

// Delete implements leave.HolidayRepository.
func (r *holidayRepository) Delete(ctx context.Context, date time.Time) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM holidays WHERE date = $1`, date)
	if err != nil {
		return fmt.Errorf("failed to delete holiday: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return leave.ErrHolidayNotFound
	}

	return nil
}

// IsHoliday implements leave.HolidayRepository.
func (r *holidayRepository) IsHoliday(ctx context.Context, date time.Time) (bool, error) {
	q := GetQuerier(ctx, r.db)

	var exists bool
	err := q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM holidays WHERE date = $1)`, date).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check holiday: %w", err)
	}

	return exists, nil
}

// ListInRange implements leave.HolidayRepository.
func (r *holidayRepository) ListInRange(ctx context.Context, start, end time.Time) ([]leave.Holiday, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `
		SELECT date, name FROM holidays
		WHERE date >= $1 AND date <= $2
		ORDER BY date
	`, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to list holidays: %w", err)
	}
	defer rows.Close()

	var holidays []leave.Holiday
	for rows.Next() {
		var h leave.Holiday
		if err := rows.Scan(&h.Date, &h.Name); err != nil {
			return nil, fmt.Errorf("failed to scan holiday: %w", err)
		}
		holidays = append(holidays, h)
	}

	return holidays, rows.Err()
}
