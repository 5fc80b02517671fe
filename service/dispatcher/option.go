package dispatcher

import (
	"time"

	"github.com/viant/fluxterm/model"
	"github.com/viant/fluxterm/progress"
	"github.com/viant/fluxterm/service/dao"
)

// Option customises the dispatcher
type Option func(s *Service)

// WithShell sets the shell executable and the flag preceding the command line
func WithShell(path, flag string) Option {
	return func(s *Service) {
		s.shell = path
		s.shellFlag = flag
	}
}

// WithDrainTimeout sets how long output may keep draining after the
// process exited before the pipes are closed
func WithDrainTimeout(timeout time.Duration) Option {
	return func(s *Service) {
		s.drainTimeout = timeout
	}
}

// WithJournal records every session and its final state
func WithJournal(journal dao.Service[string, model.Session]) Option {
	return func(s *Service) {
		s.journal = journal
	}
}

// WithProgress counts spawned sessions and their outcomes
func WithProgress(tracker *progress.Progress) Option {
	return func(s *Service) {
		s.progress = tracker
	}
}
