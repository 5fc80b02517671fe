package event

import (
	"context"

	"github.com/viant/fluxterm/service/messaging"
)

type tryPublisher[T any] interface {
	TryPublish(t *T) bool
}

// Publisher publishes and consumes events of type T on a queue
type Publisher[T any] struct {
	queue messaging.Queue[Event[T]]
}

func NewPublisher[T any](queue messaging.Queue[Event[T]]) *Publisher[T] {
	return &Publisher[T]{queue: queue}
}

func (p *Publisher[T]) Publish(ctx context.Context, event *Event[T]) error {
	return p.queue.Publish(ctx, event)
}

// TryPublish publishes event unless the queue is full. Queues without
// a non-blocking publish fall back to Publish with ctx.
func (p *Publisher[T]) TryPublish(ctx context.Context, event *Event[T]) (bool, error) {
	if queue, ok := p.queue.(tryPublisher[Event[T]]); ok {
		return queue.TryPublish(event), nil
	}
	if err := p.queue.Publish(ctx, event); err != nil {
		return false, err
	}
	return true, nil
}

// Consume returns the next message, the caller acks or nacks it
func (p *Publisher[T]) Consume(ctx context.Context) (messaging.Message[Event[T]], error) {
	return p.queue.Consume(ctx)
}
