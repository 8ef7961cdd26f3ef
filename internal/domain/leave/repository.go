package leave

import (
	"context"
	"time"
)

type PeriodRepository interface {
	Create(ctx context.Context, period Period) (Period, error)

	// DeleteOverlapping removes every period of the employee that touches
	// [start, end] and returns how many rows went away. Partially
	// overlapping records are removed whole, not split; see the product
	// note in DESIGN.md.
	DeleteOverlapping(ctx context.Context, employeeID int64, start, end time.Time) (int64, error)

	// ListOverlapping returns all periods, any employee, touching
	// [start, end].
	ListOverlapping(ctx context.Context, start, end time.Time) ([]Period, error)
}

type HolidayRepository interface {
	// Put inserts or renames the holiday on date.
	Put(ctx context.Context, holiday Holiday) error
	Delete(ctx context.Context, date time.Time) error
	IsHoliday(ctx context.Context, date time.Time) (bool, error)

	// ListInRange returns holidays with date in [start, end].
	ListInRange(ctx context.Context, start, end time.Time) ([]Holiday, error)
}
