package event

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/viant/fluxterm/service/messaging"
)

// Listener consumes events on its own goroutine and passes them to handler
// in publication order
type Listener[T any] struct {
	publisher *Publisher[T]
	handler   func(*Event[T])
	ctx       context.Context
	cancel    context.CancelFunc
	done      chan struct{}
	started   sync.Once
}

func NewListener[T any](publisher *Publisher[T], handler func(*Event[T])) *Listener[T] {
	ctx, cancel := context.WithCancel(context.Background())
	return &Listener[T]{
		publisher: publisher,
		handler:   handler,
		ctx:       ctx,
		cancel:    cancel,
		done:      make(chan struct{}),
	}
}

// Stop stops consuming and waits for an in-flight handler call to return.
// Events still queued stay on the queue for the next listener.
func (l *Listener[T]) Stop() {
	l.cancel()
	l.started.Do(func() { close(l.done) })
	<-l.done
}

// Start starts the consuming goroutine, it is a no-op once started or stopped
func (l *Listener[T]) Start() {
	l.started.Do(func() {
		go l.run()
	})
}

func (l *Listener[T]) run() {
	defer close(l.done)
	for {
		msg, err := l.publisher.Consume(l.ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return
			}
			log.Printf("fluxterm: failed to consume event: %v", err)
			continue
		}
		if msg != nil {
			l.dispatch(msg)
		}
	}
}

// dispatch acks msg once handler returns, a panicking handler nacks it
// so the queue can redeliver
func (l *Listener[T]) dispatch(msg messaging.Message[Event[T]]) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		log.Printf("fluxterm: event handler panic: %v", r)
		if err := msg.Nack(fmt.Errorf("handler panic: %v", r)); err != nil {
			log.Printf("fluxterm: failed to nack event: %v", err)
		}
	}()
	l.handler(msg.T())
	if err := msg.Ack(); err != nil {
		log.Printf("fluxterm: failed to ack event: %v", err)
	}
}
