// Package history keeps submitted command lines, most recent first.
package history

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"sync"

	"github.com/viant/afs"
	"github.com/viant/afs/file"
)

const (
	// DefaultURL keeps history in the process memory file system
	DefaultURL = "mem://localhost/fluxterm/history.json"
	// DefaultMaxSize caps the number of entries
	DefaultMaxSize = 100
)

// Service is a bounded de-duplicated command history
type Service struct {
	URL     string
	MaxSize int
	fs      afs.Service
	entries []string
	mux     sync.RWMutex
}

// Add moves command to the front, blank commands are ignored. The history
// is persisted when URL is set, failures are logged.
func (s *Service) Add(ctx context.Context, command string) {
	command = strings.TrimSpace(command)
	if command == "" {
		return
	}
	s.mux.Lock()
	entries := make([]string, 0, len(s.entries)+1)
	entries = append(entries, command)
	for _, entry := range s.entries {
		if entry != command {
			entries = append(entries, entry)
		}
	}
	if len(entries) > s.MaxSize {
		entries = entries[:s.MaxSize]
	}
	s.entries = entries
	s.mux.Unlock()

	if s.URL == "" {
		return
	}
	if err := s.Save(ctx); err != nil {
		log.Printf("fluxterm: %v", err)
	}
}

// List returns a copy of the entries, most recent first
func (s *Service) List() []string {
	s.mux.RLock()
	defer s.mux.RUnlock()
	return append([]string(nil), s.entries...)
}

// Load replaces entries with the ones stored at URL, a missing document
// leaves the history empty
func (s *Service) Load(ctx context.Context) error {
	if s.URL == "" {
		return nil
	}
	exists, err := s.fs.Exists(ctx, s.URL)
	if err != nil || !exists {
		return err
	}
	data, err := s.fs.DownloadWithURL(ctx, s.URL)
	if err != nil {
		return fmt.Errorf("failed to download history %v: %w", s.URL, err)
	}
	var entries []string
	if err = json.Unmarshal(data, &entries); err != nil {
		return fmt.Errorf("failed to decode history %v: %w", s.URL, err)
	}
	if len(entries) > s.MaxSize {
		entries = entries[:s.MaxSize]
	}
	s.mux.Lock()
	s.entries = entries
	s.mux.Unlock()
	return nil
}

// Save writes entries to URL
func (s *Service) Save(ctx context.Context) error {
	data, err := json.Marshal(s.List())
	if err != nil {
		return err
	}
	if err = s.fs.Upload(ctx, s.URL, file.DefaultFileOsMode, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("failed to save history %v: %w", s.URL, err)
	}
	return nil
}

// New creates a history persisted at URL, an empty URL keeps it in memory
// only, a non positive maxSize uses DefaultMaxSize
func New(URL string, maxSize int) *Service {
	if maxSize <= 0 {
		maxSize = DefaultMaxSize
	}
	return &Service{URL: URL, MaxSize: maxSize, fs: afs.New()}
}
