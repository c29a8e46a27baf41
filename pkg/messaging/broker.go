package messaging

import (
	"context"
)

// Broker defines the interface for message brokers
type Broker interface {
	Publish(ctx context.Context, channel string, message interface{}) error
	Subscribe(ctx context.Context, channel string) (<-chan []byte, error)
	Close() error
}

// NoopBroker discards everything. Used when event publishing is disabled,
// which is the default for a standalone single-operator deployment.
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
