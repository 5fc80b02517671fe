package event

import (
	"context"
	"log"
	"sync/atomic"

	"github.com/viant/fluxterm/internal/idgen"
	"github.com/viant/fluxterm/model"
)

// QueueSink publishes core events wrapped in an Event envelope.
//
// While a listener is attached Emit waits for queue capacity. Without a
// listener, or once closed, events that do not fit are dropped so process
// goroutines never stall on a queue nobody drains.
type QueueSink struct {
	publisher *Publisher[model.Event]
	closing   context.Context
	cancel    context.CancelFunc
	attached  atomic.Bool
	dropping  atomic.Bool
}

// Emit publishes event tagged with the session id carried by ctx
func (s *QueueSink) Emit(ctx context.Context, event model.Event) error {
	envelope := NewEvent(&Context{
		ID:        idgen.New(),
		SessionID: model.SessionIDFrom(ctx),
		EventType: string(event.Kind()),
	}, event)
	if s.closing.Err() != nil {
		s.drop(event, "sink closed")
		return nil
	}
	if !s.attached.Load() {
		published, err := s.publisher.TryPublish(ctx, envelope)
		if err != nil {
			return err
		}
		if !published {
			s.drop(event, "no listener and queue full")
			return nil
		}
		s.dropping.Store(false)
		return nil
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	stop := context.AfterFunc(s.closing, cancel)
	defer stop()
	if err := s.publisher.Publish(ctx, envelope); err != nil {
		if s.closing.Err() != nil {
			s.drop(event, "sink closed")
			return nil
		}
		return err
	}
	s.dropping.Store(false)
	return nil
}

// drop logs the first event of a dropping streak
func (s *QueueSink) drop(event model.Event, reason string) {
	if s.dropping.CompareAndSwap(false, true) {
		log.Printf("fluxterm: dropping %v events: %v", event.Kind(), reason)
	}
}

func (s *QueueSink) attach(attached bool) {
	s.attached.Store(attached)
}

// NewQueueSink creates a sink publishing through publisher
func NewQueueSink(publisher *Publisher[model.Event]) *QueueSink {
	closing, cancel := context.WithCancel(context.Background())
	return &QueueSink{publisher: publisher, closing: closing, cancel: cancel}
}

// SinkFunc adapts a function to model.Sink
type SinkFunc func(ctx context.Context, event model.Event) error

func (f SinkFunc) Emit(ctx context.Context, event model.Event) error {
	return f(ctx, event)
}

var (
	_ model.Sink = (*QueueSink)(nil)
	_ model.Sink = SinkFunc(nil)
)
