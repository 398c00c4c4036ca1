package ports

import (
	"context"
	"time"
)

// NotificationLevel classifies a notification for display purposes.
type NotificationLevel string

// Notification levels.
const (
	NotificationInfo    NotificationLevel = "info"
	NotificationSuccess NotificationLevel = "success"
	NotificationError   NotificationLevel = "error"
)

// Notification is a transient message about the outcome of an operation,
// consumed by staff-facing channels (in-process hub, message broker).
type Notification struct {
	Level   NotificationLevel `json:"level"`
	Event   string            `json:"event"`
	Message string            `json:"message"`
	Subject string            `json:"subject,omitempty"`
	At      time.Time         `json:"at"`
}

// Notifier publishes notifications about order and courier lifecycle
// events. Implementations must never block the calling flow on slow
// consumers and must swallow delivery failures (a lost toast is
// acceptable, a blocked order update is not).
type Notifier interface {
	Notify(ctx context.Context, n Notification)
}
