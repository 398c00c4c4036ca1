// Package amqp publishes staff notifications to a RabbitMQ fanout
// exchange so external consumers (kitchen displays, courier apps) can
// react to order and courier lifecycle events.
package amqp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"restaurant/internal/core/ports"
	"restaurant/internal/pkg/errs"

	amqp "github.com/rabbitmq/amqp091-go"
)

// exchangeName is the fanout exchange carrying all notifications.
const exchangeName = "restaurant.events"

// Notifier implements ports.Notifier over an AMQP channel. Publish
// failures are logged and swallowed; notifications are best effort.
type Notifier struct {
	conn *amqp.Connection
	ch   *amqp.Channel
	log  *slog.Logger
}

// NewNotifier dials the broker, declares the exchange and returns a
// ready publisher. Close releases the connection.
func NewNotifier(url string, log *slog.Logger) (*Notifier, error) {
	if url == "" {
		return nil, errs.NewValueIsRequiredError("url")
	}
	if log == nil {
		return nil, errs.NewValueIsRequiredError("log")
	}

	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial amqp: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	if err = ch.ExchangeDeclare(exchangeName, "fanout", true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("declare exchange %s: %w", exchangeName, err)
	}

	return &Notifier{
		conn: conn,
		ch:   ch,
		log:  log.With("component", "amqp-notifier"),
	}, nil
}

// Notify publishes the notification as a persistent JSON message.
func (n *Notifier) Notify(ctx context.Context, notification ports.Notification) {
	body, err := json.Marshal(notification)
	if err != nil {
		n.log.ErrorContext(ctx, "encode notification", "event", notification.Event, "error", err)
		return
	}

	err = n.ch.PublishWithContext(ctx, exchangeName, "", false, false, amqp.Publishing{
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		ContentType:  "application/json",
		Body:         body,
	})
	if err != nil {
		n.log.ErrorContext(ctx, "publish notification", "event", notification.Event, "error", err)
	}
}

// Close releases the channel and connection.
func (n *Notifier) Close() {
	if n.ch != nil {
		_ = n.ch.Close()
	}
	if n.conn != nil {
		_ = n.conn.Close()
	}
}
