// Package secret keeps the assistant API key encrypted at rest.
package secret

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/viant/afs"
	"github.com/viant/scy"
	_ "github.com/viant/scy/kms/blowfish"
)

// DefaultKey is the scy encryption key used when none is configured
const DefaultKey = "blowfish://default"

// ErrKeyNotFound is returned by Load when no key was saved yet
var ErrKeyNotFound = errors.New("api key not found")

// Store saves a single secret at URL
type Store struct {
	URL string
	Key string
	fs  afs.Service
	scy *scy.Service
}

// Save encrypts and stores apiKey
func (s *Store) Save(ctx context.Context, apiKey string) error {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return fmt.Errorf("api key was empty")
	}
	secret := scy.NewSecret(apiKey, s.resource())
	if err := s.scy.Store(ctx, secret); err != nil {
		return fmt.Errorf("failed to store api key: %w", err)
	}
	return nil
}

// Load decrypts the stored key
func (s *Store) Load(ctx context.Context) (string, error) {
	exists, err := s.fs.Exists(ctx, s.URL)
	if err != nil {
		return "", fmt.Errorf("failed to check api key at %v: %w", s.URL, err)
	}
	if !exists {
		return "", ErrKeyNotFound
	}
	secret, err := s.scy.Load(ctx, s.resource())
	if err != nil {
		return "", fmt.Errorf("failed to load api key from %v: %w", s.URL, err)
	}
	return secret.String(), nil
}

func (s *Store) resource() *scy.Resource {
	return scy.NewResource(nil, s.URL, s.Key)
}

// New creates a store, an empty key uses DefaultKey
func New(URL, key string) *Store {
	if key == "" {
		key = DefaultKey
	}
	return &Store{URL: URL, Key: key, fs: afs.New(), scy: scy.New()}
}
