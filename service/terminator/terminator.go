package terminator

import (
	"context"
	"fmt"

	"github.com/viant/fluxterm/service/registry"
)

// Platform kills processes using OS specific facilities
type Platform interface {
	// KillTree kills pid and all of its descendants
	KillTree(ctx context.Context, pid int) error
	// KillProcess kills pid only
	KillProcess(ctx context.Context, pid int) error
}

// Terminator ends the active session
type Terminator interface {
	Kill(ctx context.Context) error
}

// Service implements Terminator on top of a Platform
type Service struct {
	registry *registry.Registry
	platform Platform
}

// Option customises Service
type Option func(s *Service)

// WithPlatform overrides the platform kill strategy
func WithPlatform(platform Platform) Option {
	return func(s *Service) {
		s.platform = platform
	}
}

// Kill takes the registered session and kills its process tree, falling
// back to killing the pid alone. The slot stays cleared in every outcome
// once taken; a done ctx returns before the slot is touched.
func (s *Service) Kill(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	session := s.registry.Take()
	if session == nil {
		return ErrNoActiveProcess
	}
	session.RequestKill()
	treeErr := s.platform.KillTree(ctx, session.ID)
	if treeErr == nil {
		return nil
	}
	processErr := s.platform.KillProcess(ctx, session.ID)
	if processErr == nil {
		return nil
	}
	return fmt.Errorf("%w %d: tree kill: %v, process kill: %v", ErrKillFailed, session.ID, treeErr, processErr)
}

// New creates a terminator bound to registry
func New(registry *registry.Registry, opts ...Option) *Service {
	ret := &Service{registry: registry}
	for _, opt := range opts {
		opt(ret)
	}
	if ret.platform == nil {
		ret.platform = Default()
	}
	return ret
}

var _ Terminator = (*Service)(nil)
