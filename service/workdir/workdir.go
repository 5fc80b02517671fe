// Package workdir keeps the working directory used for spawned commands.
package workdir

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/viant/afs"
)

// ErrNotDirectory is returned when cd targets something other than a directory
var ErrNotDirectory = errors.New("not a directory")

// Store holds the current working directory
type Store interface {
	// Get returns the current absolute directory
	Get() string
	// Change resolves target against the current directory, verifies it and
	// makes it current. It returns the new absolute path.
	Change(ctx context.Context, target string) (string, error)
}

// Memory is a Store keeping the directory as explicit state, independent
// from the process wide working directory.
type Memory struct {
	fs  afs.Service
	dir string
	mux sync.RWMutex
}

// Get returns the current directory
func (m *Memory) Get() string {
	m.mux.RLock()
	defer m.mux.RUnlock()
	return m.dir
}

// Change changes the current directory, the last writer wins
func (m *Memory) Change(ctx context.Context, target string) (string, error) {
	resolved, err := Resolve(m.Get(), target)
	if err != nil {
		return "", err
	}
	if err = ensureDirectory(ctx, m.fs, resolved); err != nil {
		return "", err
	}
	m.mux.Lock()
	m.dir = resolved
	m.mux.Unlock()
	return resolved, nil
}

// NewMemory creates a memory store starting at dir, or at the process
// working directory when dir is empty
func NewMemory(dir string) (*Memory, error) {
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get working directory: %w", err)
		}
		dir = wd
	}
	resolved, err := Resolve("", dir)
	if err != nil {
		return nil, err
	}
	return &Memory{fs: afs.New(), dir: resolved}, nil
}

// Process is a Store backed by the process wide working directory
type Process struct {
	fs afs.Service
}

// Get returns os.Getwd or an empty string when it cannot be determined
func (p *Process) Get() string {
	wd, _ := os.Getwd()
	return wd
}

// Change calls os.Chdir with the resolved target
func (p *Process) Change(ctx context.Context, target string) (string, error) {
	resolved, err := Resolve(p.Get(), target)
	if err != nil {
		return "", err
	}
	if err = ensureDirectory(ctx, p.fs, resolved); err != nil {
		return "", err
	}
	if err = os.Chdir(resolved); err != nil {
		return "", err
	}
	return resolved, nil
}

// NewProcess creates a process backed store
func NewProcess() *Process {
	return &Process{fs: afs.New()}
}

// Resolve expands a leading ~ and joins a relative target with base
func Resolve(base, target string) (string, error) {
	if target == "~" || strings.HasPrefix(target, "~/") || strings.HasPrefix(target, `~\`) {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		target = filepath.Join(home, target[1:])
	}
	if !filepath.IsAbs(target) {
		if base == "" {
			return filepath.Abs(target)
		}
		target = filepath.Join(base, target)
	}
	return filepath.Clean(target), nil
}

func ensureDirectory(ctx context.Context, fs afs.Service, location string) error {
	object, err := fs.Object(ctx, location)
	if err != nil {
		return err
	}
	if object == nil {
		return fmt.Errorf("%v: %w", location, os.ErrNotExist)
	}
	if !object.IsDir() {
		return fmt.Errorf("%v: %w", location, ErrNotDirectory)
	}
	return nil
}

var (
	_ Store = (*Memory)(nil)
	_ Store = (*Process)(nil)
)
