package notifications

import (
	"context"

	"restaurant/internal/core/ports"
)

// Fanout delivers each notification to every wrapped notifier.
type Fanout struct {
	notifiers []ports.Notifier
}

// NewFanout composes notifiers into one. Nil entries are skipped.
func NewFanout(notifiers ...ports.Notifier) *Fanout {
	kept := make([]ports.Notifier, 0, len(notifiers))
	for _, n := range notifiers {
		if n != nil {
			kept = append(kept, n)
		}
	}
	return &Fanout{notifiers: kept}
}

// Notify forwards the notification to every wrapped notifier.
func (f *Fanout) Notify(ctx context.Context, n ports.Notification) {
	for _, notifier := range f.notifiers {
		notifier.Notify(ctx, n)
	}
}
