package memory

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/viant/fluxterm/internal/idgen"
	"github.com/viant/fluxterm/service/messaging"
)

// ErrProcessed is returned when a message is acked or nacked twice
var ErrProcessed = errors.New("message already processed")

// Config configures an in-memory queue
type Config struct {
	MaxRetries  int
	RetryDelay  time.Duration
	QueueBuffer int
}

// DefaultConfig returns the default queue configuration
func DefaultConfig() Config {
	return Config{
		MaxRetries:  3,
		RetryDelay:  100 * time.Millisecond,
		QueueBuffer: 256,
	}
}

// Message is an in-memory queue entry
type Message[T any] struct {
	id        string
	payload   T
	queue     *Queue[T]
	retries   int
	processed bool
	mu        sync.Mutex
}

// ID returns message id, redeliveries keep the id
func (m *Message[T]) ID() string { return m.id }

// T returns the payload
func (m *Message[T]) T() *T { return &m.payload }

// Ack marks the message processed
func (m *Message[T]) Ack() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.processed {
		return ErrProcessed
	}
	m.processed = true
	return nil
}

// Nack redelivers the message after RetryDelay, once MaxRetries is exceeded
// the message is dropped
func (m *Message[T]) Nack(cause error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.processed {
		return ErrProcessed
	}
	m.processed = true
	q := m.queue
	if m.retries >= q.config.MaxRetries {
		log.Printf("fluxterm: message %v dropped after %d retries: %v", m.id, m.retries, cause)
		return nil
	}
	retry := &Message[T]{id: m.id, payload: m.payload, queue: q, retries: m.retries + 1}
	time.AfterFunc(q.config.RetryDelay, func() {
		if !q.offer(retry) {
			log.Printf("fluxterm: message %v dropped, queue full on redelivery", m.id)
		}
	})
	return nil
}

// Queue is a buffered channel backed messaging.Queue
type Queue[T any] struct {
	messages chan *Message[T]
	config   Config
}

// Publish enqueues a copy of t, it blocks while the buffer is full
func (q *Queue[T]) Publish(ctx context.Context, t *T) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	select {
	case q.messages <- q.newMessage(t):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// TryPublish enqueues a copy of t unless the buffer is full
func (q *Queue[T]) TryPublish(t *T) bool {
	return q.offer(q.newMessage(t))
}

func (q *Queue[T]) newMessage(t *T) *Message[T] {
	return &Message[T]{id: idgen.New(), payload: *t, queue: q}
}

func (q *Queue[T]) offer(msg *Message[T]) bool {
	select {
	case q.messages <- msg:
		return true
	default:
		return false
	}
}

// Consume returns the next message
func (q *Queue[T]) Consume(ctx context.Context) (messaging.Message[T], error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	select {
	case msg := <-q.messages:
		return msg, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// NewQueue creates a queue
func NewQueue[T any](config Config) *Queue[T] {
	if config.QueueBuffer <= 0 {
		config.QueueBuffer = DefaultConfig().QueueBuffer
	}
	return &Queue[T]{
		messages: make(chan *Message[T], config.QueueBuffer),
		config:   config,
	}
}

var _ messaging.Queue[any] = (*Queue[any])(nil)
