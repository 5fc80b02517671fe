// Package registry holds the single currently active process session.
package registry

import (
	"sync"

	"github.com/viant/fluxterm/model"
)

// Registry is a mutex guarded single slot. The last Set wins the slot;
// a previously registered session is not terminated.
type Registry struct {
	session *model.Session
	mux     sync.Mutex
}

// New creates an empty registry
func New() *Registry {
	return &Registry{}
}

// Set stores session and returns the session it replaced, if any
func (r *Registry) Set(session *model.Session) *model.Session {
	r.mux.Lock()
	defer r.mux.Unlock()
	prev := r.session
	r.session = session
	return prev
}

// Take atomically returns and clears the slot
func (r *Registry) Take() *model.Session {
	r.mux.Lock()
	defer r.mux.Unlock()
	ret := r.session
	r.session = nil
	return ret
}

// Peek returns the slot without clearing it
func (r *Registry) Peek() *model.Session {
	r.mux.Lock()
	defer r.mux.Unlock()
	return r.session
}

// CompareAndClear clears the slot only when it still holds session
func (r *Registry) CompareAndClear(session *model.Session) bool {
	r.mux.Lock()
	defer r.mux.Unlock()
	if r.session == nil || r.session != session {
		return false
	}
	r.session = nil
	return true
}
