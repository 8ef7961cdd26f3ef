package employee

import "context"

type EmployeeRepository interface {
	// Upsert inserts the employee or, if the Telegram ID is already known,
	// updates the name and reactivates the row.
	Upsert(ctx context.Context, emp Employee) (Employee, error)

	// GetByTelegramID returns the employee; inactive rows are included only
	// when includeInactive is set.
	GetByTelegramID(ctx context.Context, telegramID int64, includeInactive bool) (Employee, error)

	// ListActive returns all active employees ordered by full name.
	ListActive(ctx context.Context) ([]Employee, error)

	SetActive(ctx context.Context, telegramID int64, isActive bool) error
}
