// Package notifications fans staff notifications out to in-process
// subscribers. The HTTP adapter streams them to connected clients; a
// broker adapter can sit alongside via Fanout.
package notifications

import (
	"context"
	"log/slog"
	"sync"

	"restaurant/internal/core/ports"
)

// subscriberBuffer bounds the per-subscriber queue. A subscriber that
// falls behind loses notifications rather than blocking publishers.
const subscriberBuffer = 16

// Hub implements ports.Notifier by broadcasting to subscribed channels.
type Hub struct {
	mu          sync.RWMutex
	subscribers map[chan ports.Notification]struct{}
	closed      bool
	log         *slog.Logger
}

// NewHub creates an empty hub.
func NewHub(log *slog.Logger) *Hub {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Hub{
		subscribers: make(map[chan ports.Notification]struct{}),
		log:         log.With("component", "notification-hub"),
	}
}

// Subscribe registers a new listener. The returned cancel function
// removes the subscription and closes the channel.
func (h *Hub) Subscribe() (<-chan ports.Notification, func()) {
	ch := make(chan ports.Notification, subscriberBuffer)

	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		close(ch)
		return ch, func() {}
	}
	h.subscribers[ch] = struct{}{}

	cancel := func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		if _, ok := h.subscribers[ch]; ok {
			delete(h.subscribers, ch)
			close(ch)
		}
	}
	return ch, cancel
}

// Notify broadcasts to every subscriber without blocking. Full
// subscriber queues drop the notification.
func (h *Hub) Notify(ctx context.Context, n ports.Notification) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for ch := range h.subscribers {
		select {
		case ch <- n:
		default:
			h.log.WarnContext(ctx, "subscriber queue full, notification dropped", "event", n.Event)
		}
	}
}

// Close drops all subscribers and closes their channels. Further
// Notify calls become no-ops; further Subscribe calls return a closed
// channel.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return
	}
	h.closed = true
	for ch := range h.subscribers {
		close(ch)
	}
	h.subscribers = nil
}
