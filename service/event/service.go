package event

import (
	"sync"

	"github.com/viant/fluxterm/model"
	"github.com/viant/fluxterm/service/messaging"
	"github.com/viant/fluxterm/service/messaging/memory"
)

// Service connects the core sink to a single replaceable listener
type Service struct {
	publisher *Publisher[model.Event]
	sink      *QueueSink
	listener  *Listener[model.Event]
	closed    bool
	mux       sync.Mutex
}

// Sink returns the sink feeding the queue
func (s *Service) Sink() model.Sink {
	return s.sink
}

// SetListener replaces the current listener, pending events are delivered
// to the new handler. It is a no-op once closed.
func (s *Service) SetListener(handler func(*Event[model.Event])) {
	s.mux.Lock()
	defer s.mux.Unlock()
	if s.closed {
		return
	}
	if s.listener != nil {
		s.listener.Stop()
	}
	s.listener = NewListener[model.Event](s.publisher, handler)
	s.listener.Start()
	s.sink.attach(true)
}

// Close stops the listener and releases publishers waiting on the queue,
// events emitted afterwards are dropped
func (s *Service) Close() {
	s.mux.Lock()
	defer s.mux.Unlock()
	s.closed = true
	s.sink.attach(false)
	s.sink.cancel()
	if s.listener != nil {
		s.listener.Stop()
		s.listener = nil
	}
}

// New creates a service on queue, a nil queue uses an in-memory queue
func New(queue messaging.Queue[Event[model.Event]]) *Service {
	if queue == nil {
		queue = memory.NewQueue[Event[model.Event]](memory.DefaultConfig())
	}
	publisher := NewPublisher[model.Event](queue)
	return &Service{publisher: publisher, sink: NewQueueSink(publisher)}
}
