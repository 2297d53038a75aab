package messaging

import (
	"context"
)

// Channel names for realtime events published after commit.
const (
	ChannelAppointments  = "lawlink:appointments"
	ChannelNotifications = "lawlink:notifications"
)

// Broker defines the interface for message brokers
type Broker interface {
	Publish(ctx context.Context, channel string, message interface{}) error
	Subscribe(ctx context.Context, channel string) (<-chan []byte, error)
	Close() error
}

// Event is the payload published on appointment and notification channels.
type Event struct {
	Type       string      `json:"type"`
	OccurredAt int64       `json:"occurred_at"`
	Payload    interface{} `json:"payload"`
}

// NoopBroker discards all messages. Used when Redis is not configured.
type NoopBroker struct{}

func (NoopBroker) Publish(ctx context.Context, channel string, message interface{}) error {
	return nil
}

func (NoopBroker) Subscribe(ctx context.Context, channel string) (<-chan []byte, error) {
	ch := make(chan []byte)
	close(ch)
	return ch, nil
}

func (NoopBroker) Close() error { return nil }
