// Package messaging defines the queue abstraction events travel through.
package messaging

import (
	"context"
)

// Queue is a message queue for payloads of type T
type Queue[T any] interface {
	// Publish adds a message with payload t
	Publish(ctx context.Context, t *T) error

	// Consume blocks until a message is available or ctx is done
	Consume(ctx context.Context) (Message[T], error)
}

// Message is a consumed queue entry
type Message[T any] interface {
	// T returns the payload
	T() *T

	// Ack marks the message as processed
	Ack() error

	// Nack marks the message as failed, it may be redelivered
	Nack(err error) error
}
