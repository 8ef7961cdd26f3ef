package schedule

import (
	"context"
	"time"
)

type VersionRepository interface {
	// Upsert inserts the version or replaces the one already stored under
	// (employee, day_of_week, effective_from). Re-submitting identical
	// input is a no-op, which keeps bulk imports idempotent under retries.
	Upsert(ctx context.Context, version Version) error

	// GetByEmployee returns every version for the employee, all weekdays.
	GetByEmployee(ctx context.Context, employeeID int64) ([]Version, error)

	// GetAllEffectiveBy returns, for every employee, all versions with
	// effective_from <= date. One query feeds a whole aggregation range.
	GetAllEffectiveBy(ctx context.Context, date time.Time) (map[int64][]Version, error)
}
