package fs

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sort"
	"strings"
	"sync"

	"github.com/viant/afs"
	"github.com/viant/afs/file"
	"github.com/viant/afs/url"
	"github.com/viant/fluxterm/model"
	"github.com/viant/fluxterm/service/dao"
	"github.com/viant/fluxterm/service/dao/criteria"
)

const ext = ".json"

// Service is a session journal writing one JSON document per session key
// under baseURL
type Service struct {
	baseURL string
	fs      afs.Service
	mu      sync.RWMutex
}

var _ dao.Service[string, model.Session] = (*Service)(nil)

// Save writes a snapshot of session, overwriting a previous record
func (s *Service) Save(ctx context.Context, session *model.Session) error {
	if session == nil {
		return dao.ErrNilEntity
	}
	if session.Key == "" {
		return dao.ErrInvalidID
	}
	data, err := json.Marshal(session.Snapshot())
	if err != nil {
		return fmt.Errorf("failed to marshal session %v: %w", session.Key, err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	location := s.sessionURL(session.Key)
	if err = s.fs.Upload(ctx, location, file.DefaultFileOsMode, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("failed to save session to %s: %w", location, err)
	}
	return nil
}

func (s *Service) Load(ctx context.Context, key string) (*model.Session, error) {
	if key == "" {
		return nil, dao.ErrInvalidID
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	location := s.sessionURL(key)
	exists, err := s.fs.Exists(ctx, location)
	if err != nil {
		return nil, fmt.Errorf("failed to check session %v: %w", key, err)
	}
	if !exists {
		return nil, fmt.Errorf("session %v: %w", key, dao.ErrNotFound)
	}
	data, err := s.fs.DownloadWithURL(ctx, location)
	if err != nil {
		return nil, fmt.Errorf("failed to read session %v: %w", key, err)
	}
	session := &model.Session{}
	if err = json.Unmarshal(data, session); err != nil {
		return nil, fmt.Errorf("failed to decode session %v: %w", key, err)
	}
	return session, nil
}

func (s *Service) Delete(ctx context.Context, key string) error {
	if key == "" {
		return dao.ErrInvalidID
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	location := s.sessionURL(key)
	exists, err := s.fs.Exists(ctx, location)
	if err != nil {
		return fmt.Errorf("failed to check session %v: %w", key, err)
	}
	if !exists {
		return fmt.Errorf("session %v: %w", key, dao.ErrNotFound)
	}
	return s.fs.Delete(ctx, location)
}

// List reads every session document, unreadable ones are logged and skipped
func (s *Service) List(ctx context.Context, parameters ...*dao.Parameter) ([]*model.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	objects, err := s.fs.List(ctx, s.baseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	var sessions []*model.Session
	for _, object := range objects {
		if object.IsDir() || !strings.HasSuffix(object.Name(), ext) {
			continue
		}
		data, err := s.fs.Download(ctx, object)
		if err != nil {
			log.Printf("fluxterm: failed to read %v: %v", object.URL(), err)
			continue
		}
		session := &model.Session{}
		if err = json.Unmarshal(data, session); err != nil {
			log.Printf("fluxterm: failed to decode %v: %v", object.URL(), err)
			continue
		}
		if !criteria.FilterByState(string(session.State), parameters) {
			continue
		}
		sessions = append(sessions, session)
	}
	sort.Slice(sessions, func(i, j int) bool { return sessions[i].StartedAt.Before(sessions[j].StartedAt) })
	return sessions, nil
}

func (s *Service) sessionURL(key string) string {
	return url.Join(s.baseURL, key+ext)
}

// New creates a journal rooted at baseURL, creating the folder if needed
func New(ctx context.Context, baseURL string) (*Service, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("journal base URL was empty")
	}
	fs := afs.New()
	baseURL = url.Normalize(baseURL, file.Scheme)
	exists, _ := fs.Exists(ctx, baseURL)
	if !exists {
		if err := fs.Create(ctx, baseURL, file.DefaultDirOsMode, true); err != nil {
			return nil, fmt.Errorf("failed to create journal folder %v: %w", baseURL, err)
		}
	}
	return &Service{baseURL: baseURL, fs: fs}, nil
}
