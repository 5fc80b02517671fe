package model

import (
	"sync"
	"time"

	"github.com/viant/fluxterm/internal/clock"
	"github.com/viant/fluxterm/internal/idgen"
)

// State represents a session lifecycle state
type State string

const (
	StateRunning State = "running"
	StateExited  State = "exited"
	StateKilled  State = "killed"
	StateFailed  State = "failed"
)

// Session represents one spawned OS process. ID is the process id, Key
// identifies the session even after the OS recycles the pid.
//
// A live session is shared by the dispatcher, the registry and the
// terminator; read it through Snapshot or the accessor methods.
type Session struct {
	Key              string     `json:"key"`
	ID               int        `json:"id"`
	CommandLine      string     `json:"commandLine"`
	WorkingDirectory string     `json:"workingDirectory"`
	StartedAt        time.Time  `json:"startedAt"`
	EndedAt          *time.Time `json:"endedAt,omitempty"`
	State            State      `json:"state"`
	ExitCode         int        `json:"exitCode"`
	Reason           string     `json:"reason,omitempty"`
	killRequested    bool
	mux              sync.RWMutex
}

// NewSession creates a running session
func NewSession(id int, commandLine, workingDirectory string) *Session {
	return &Session{
		Key:              idgen.New(),
		ID:               id,
		CommandLine:      commandLine,
		WorkingDirectory: workingDirectory,
		StartedAt:        clock.Now(),
		State:            StateRunning,
		ExitCode:         -1,
	}
}

// Status returns current state, exit code and failure reason
func (s *Session) Status() (State, int, string) {
	s.mux.RLock()
	defer s.mux.RUnlock()
	return s.State, s.ExitCode, s.Reason
}

// IsRunning returns true until the exit has been observed
func (s *Session) IsRunning() bool {
	state, _, _ := s.Status()
	return state == StateRunning
}

// RequestKill records that a forceful termination was issued
func (s *Session) RequestKill() {
	s.mux.Lock()
	s.killRequested = true
	s.mux.Unlock()
}

// KillRequested reports whether RequestKill was called
func (s *Session) KillRequested() bool {
	s.mux.RLock()
	defer s.mux.RUnlock()
	return s.killRequested
}

// Exit marks the session as exited with code
func (s *Session) Exit(code int) {
	s.finish(StateExited, code, "")
}

// Kill marks the session as killed
func (s *Session) Kill(code int) {
	s.finish(StateKilled, code, "")
}

// Fail marks the session as failed when its status could not be observed
func (s *Session) Fail(reason string) {
	s.finish(StateFailed, -1, reason)
}

func (s *Session) finish(state State, code int, reason string) {
	now := clock.Now()
	s.mux.Lock()
	defer s.mux.Unlock()
	if s.State != StateRunning {
		return
	}
	s.State = state
	s.ExitCode = code
	s.Reason = reason
	s.EndedAt = &now
}

// Snapshot returns a detached copy safe to read without locking
func (s *Session) Snapshot() *Session {
	s.mux.RLock()
	defer s.mux.RUnlock()
	ret := &Session{
		Key:              s.Key,
		ID:               s.ID,
		CommandLine:      s.CommandLine,
		WorkingDirectory: s.WorkingDirectory,
		StartedAt:        s.StartedAt,
		State:            s.State,
		ExitCode:         s.ExitCode,
		Reason:           s.Reason,
		killRequested:    s.killRequested,
	}
	if s.EndedAt != nil {
		ended := *s.EndedAt
		ret.EndedAt = &ended
	}
	return ret
}
