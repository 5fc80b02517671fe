package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/viant/fluxterm/model"
	"github.com/viant/fluxterm/service/dao"
	"github.com/viant/fluxterm/service/dao/criteria"
)

// Service is an in-memory session journal keyed by session key. It stores
// and returns snapshots, so callers never share state with the live session.
type Service struct {
	sessions map[string]*model.Session
	mux      sync.RWMutex
}

var _ dao.Service[string, model.Session] = (*Service)(nil)

func (s *Service) Save(_ context.Context, session *model.Session) error {
	if session == nil {
		return dao.ErrNilEntity
	}
	if session.Key == "" {
		return dao.ErrInvalidID
	}
	snapshot := session.Snapshot()
	s.mux.Lock()
	s.sessions[snapshot.Key] = snapshot
	s.mux.Unlock()
	return nil
}

func (s *Service) Load(_ context.Context, key string) (*model.Session, error) {
	if key == "" {
		return nil, dao.ErrInvalidID
	}
	s.mux.RLock()
	session, ok := s.sessions[key]
	s.mux.RUnlock()
	if !ok {
		return nil, dao.ErrNotFound
	}
	return session.Snapshot(), nil
}

func (s *Service) Delete(_ context.Context, key string) error {
	if key == "" {
		return dao.ErrInvalidID
	}
	s.mux.Lock()
	defer s.mux.Unlock()
	if _, ok := s.sessions[key]; !ok {
		return dao.ErrNotFound
	}
	delete(s.sessions, key)
	return nil
}

// List returns sessions ordered by start time
func (s *Service) List(_ context.Context, parameters ...*dao.Parameter) ([]*model.Session, error) {
	s.mux.RLock()
	out := make([]*model.Session, 0, len(s.sessions))
	for _, session := range s.sessions {
		if !criteria.FilterByState(string(session.State), parameters) {
			continue
		}
		out = append(out, session.Snapshot())
	}
	s.mux.RUnlock()
	sort.Slice(out, func(i, j int) bool {
		if out[i].StartedAt.Equal(out[j].StartedAt) {
			if out[i].ID == out[j].ID {
				return out[i].Key < out[j].Key
			}
			return out[i].ID < out[j].ID
		}
		return out[i].StartedAt.Before(out[j].StartedAt)
	})
	return out, nil
}

// New creates an empty journal
func New() *Service {
	return &Service{sessions: map[string]*model.Session{}}
}
