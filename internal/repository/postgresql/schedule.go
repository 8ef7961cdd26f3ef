package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/qadam-hq/checkin-backend-go/internal/domain/schedule"
	"github.com/qadam-hq/checkin-backend-go/internal/pkg/database"
	"github.com/qadam-hq/checkin-backend-go/internal/pkg/timeutil"
)

type scheduleVersionRepository struct {
	db *database.DB
}

func NewScheduleVersionRepository(db *database.DB) schedule.VersionRepository {
	return &scheduleVersionRepository{db: db}
}

// Upsert implements schedule.VersionRepository.
func (r *scheduleVersionRepository) Upsert(ctx context.Context, v schedule.Version) error {
	q := GetQuerier(ctx, r.db)

	var start, end *string
	if v.Start != nil && v.End != nil {
		s, e := v.Start.String(), v.End.String()
		start, end = &s, &e
	}

	_, err := q.Exec(ctx, `
		INSERT INTO schedule_versions (employee_id, day_of_week, effective_from, start_time, end_time)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (employee_id, day_of_week, effective_from)
		DO UPDATE SET start_time = EXCLUDED.start_time, end_time = EXCLUDED.end_time
	`, v.EmployeeID, v.DayOfWeek, v.EffectiveFrom, start, end)
	if err != nil {
		return fmt.Errorf("failed to upsert schedule version: %w", err)
	}

	return nil
}

// GetByEmployee implements schedule.VersionRepository.
func (r *scheduleVersionRepository) GetByEmployee(ctx context.Context, employeeID int64) ([]schedule.Version, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `
		SELECT employee_id, day_of_week, effective_from, start_time, end_time, created_at
		FROM schedule_versions
		WHERE employee_id = $1
		ORDER BY day_of_week, effective_from
	`, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to get schedule versions: %w", err)
	}
	defer rows.Close()

	return scanVersions(rows)
}

// GetAllEffectiveBy implements schedule.VersionRepository.
func (r *scheduleVersionRepository) GetAllEffectiveBy(ctx context.Context, date time.Time) (map[int64][]schedule.Version, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `
		SELECT employee_id, day_of_week, effective_from, start_time, end_time, created_at
		FROM schedule_versions
		WHERE effective_from <= $1
		ORDER BY employee_id, day_of_week, effective_from
	`, date)
	if err != nil {
		return nil, fmt.Errorf("failed to get effective schedule versions: %w", err)
	}
	defer rows.Close()

	versions, err := scanVersions(rows)
	if err != nil {
		return nil, err
	}

	byEmployee := make(map[int64][]schedule.Version)
	for _, v := range versions {
		byEmployee[v.EmployeeID] = append(byEmployee[v.EmployeeID], v)
	}

	return byEmployee, nil
}

type versionRows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}

func scanVersions(rows versionRows) ([]schedule.Version, error) {
	var versions []schedule.Version
	for rows.Next() {
		var (
			v          schedule.Version
			start, end *string
		)
		if err := rows.Scan(&v.EmployeeID, &v.DayOfWeek, &v.EffectiveFrom, &start, &end, &v.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan schedule version: %w", err)
		}
		if start != nil && end != nil {
			s, err := timeutil.ParseTimeOfDay(*start)
			if err != nil {
				return nil, fmt.Errorf("corrupt start_time in schedule version: %w", err)
			}
			e, err := timeutil.ParseTimeOfDay(*end)
			if err != nil {
				return nil, fmt.Errorf("corrupt end_time in schedule version: %w", err)
			}
			v.Start, v.End = &s, &e
		}
		versions = append(versions, v)
	}

	return versions, rows.Err()
}
