package progress

import (
	"sync"
	"time"

	"github.com/viant/fluxterm/internal/clock"
)

// Delta is an incremental counter change, fields may be negative
type Delta struct {
	Spawned int
	Running int
	Exited  int
	Killed  int
	Failed  int
}

// Counters is a read-only copy of the tracker state
type Counters struct {
	StartedAt time.Time `json:"startedAt"`
	Spawned   int       `json:"spawned"`
	Running   int       `json:"running"`
	Exited    int       `json:"exited"`
	Killed    int       `json:"killed"`
	Failed    int       `json:"failed"`
}

// Progress tracks session counters, it is safe for concurrent use
type Progress struct {
	counters Counters
	mux      sync.Mutex
}

// Update applies d
func (p *Progress) Update(d Delta) {
	if p == nil {
		return
	}
	p.mux.Lock()
	p.counters.Spawned += d.Spawned
	p.counters.Running += d.Running
	p.counters.Exited += d.Exited
	p.counters.Killed += d.Killed
	p.counters.Failed += d.Failed
	p.mux.Unlock()
}

// Snapshot returns current counters
func (p *Progress) Snapshot() Counters {
	if p == nil {
		return Counters{}
	}
	p.mux.Lock()
	defer p.mux.Unlock()
	return p.counters
}

// New creates a tracker
func New() *Progress {
	return &Progress{counters: Counters{StartedAt: clock.Now()}}
}
