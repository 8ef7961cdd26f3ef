package event

import (
	"context"
	"time"
)

// EventRepository is append-only: ledger rows are never updated or deleted.
type EventRepository interface {
	Append(ctx context.Context, ev Event) (Event, error)

	// ListInWindow returns all events with timestamp in [fromUTC, toUTC),
	// for all employees, ordered by timestamp. Callers compute the window
	// from local calendar dates in the organization timezone.
	ListInWindow(ctx context.Context, fromUTC, toUTC time.Time) ([]Event, error)

	// ListEmployeeInWindow is ListInWindow narrowed to one employee.
	ListEmployeeInWindow(ctx context.Context, employeeID int64, fromUTC, toUTC time.Time) ([]Event, error)

	// HasOutcomeInWindow reports whether the employee has at least one
	// event of the category with one of the outcomes inside the window.
	// The check-in flow uses it to block duplicate check-ins.
	HasOutcomeInWindow(ctx context.Context, employeeID int64, category Category, outcomes []Outcome, fromUTC, toUTC time.Time) (bool, error)

	// ListAll returns the full ledger newest-first, joined with employee
	// names, for CSV export.
	ListAll(ctx context.Context) ([]ExportRow, error)
}

// ExportRow is one line of the full-ledger CSV export.
type ExportRow struct {
	Timestamp      time.Time
	FullName       string
	Category       Category
	Outcome        Outcome
	Latitude       *float64
	Longitude      *float64
	DistanceMeters *float64
	FaceSimilarity *float64
}
