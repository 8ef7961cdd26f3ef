package notification

import "context"

// Action is an optional inline button attached to a message. The core only
// names the action; rendering is up to the delivery channel.
type Action struct {
	Label string
	Data  string
}

// Notifier is the outbound messaging port. The Telegram client implements
// it; tests plug in fakes. Implementations must be safe for concurrent use.
type Notifier interface {
	NotifyEmployee(ctx context.Context, telegramID int64, text string, actions ...Action) error
	NotifyAdmins(ctx context.Context, text string) error
}
