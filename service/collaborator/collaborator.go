// Package collaborator declares lookups and the assistant the shell front-end
// delegates to. Implementations live outside the execution core.
package collaborator

import (
	"context"
	"errors"
)

// ErrNotConfigured is returned when a collaborator was not provided
var ErrNotConfigured = errors.New("collaborator not configured")

// Entry is a directory listing item
type Entry struct {
	Name  string `json:"name"`
	IsDir bool   `json:"isDir"`
}

// DirectoryLister lists entries of a directory
type DirectoryLister interface {
	List(ctx context.Context, dir string) ([]Entry, error)
}

// ExecutableFinder enumerates executable names reachable on PATH
type ExecutableFinder interface {
	Executables(ctx context.Context) ([]string, error)
}

// Scripts describes package manager scripts found in a directory
type Scripts struct {
	PackageManager string            `json:"packageManager"`
	Scripts        map[string]string `json:"scripts"`
}

// ScriptLookup finds package manager scripts for a directory
type ScriptLookup interface {
	Scripts(ctx context.Context, dir string) (*Scripts, error)
}

// Assistant answers a prompt using an external AI service
type Assistant interface {
	Ask(ctx context.Context, apiKey, prompt string) (string, error)
}
