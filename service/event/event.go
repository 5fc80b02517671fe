package event

import (
	"time"

	"github.com/viant/fluxterm/internal/clock"
)

// Context describes where an event came from
type Context struct {
	ID        string `json:"id"`
	SessionID int    `json:"sessionID,omitempty"`
	EventType string `json:"eventType"`
}

// Event is an envelope carrying payload T
type Event[T any] struct {
	Context   *Context               `json:"context"`
	CreatedAt time.Time              `json:"createdAt"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Data      T                      `json:"data"`
}

// NewEvent creates an event
func NewEvent[T any](context *Context, data T) *Event[T] {
	return &Event[T]{
		Context:   context,
		CreatedAt: clock.Now(),
		Metadata:  make(map[string]interface{}),
		Data:      data,
	}
}
