package employee

import "time"

// Employee is keyed by the Telegram chat ID the check-in bot talks to.
// Deactivation is a soft delete: the row and its historical events stay,
// but the employee drops out of all obligation and aggregation logic.
type Employee struct {
	TelegramID int64
	FullName   string
	IsActive   bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
