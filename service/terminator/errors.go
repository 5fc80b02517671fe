package terminator

import "errors"

var (
	// ErrNoActiveProcess is returned when Kill finds the registry empty.
	ErrNoActiveProcess = errors.New("no active process")

	// ErrKillFailed is returned when both the tree kill and the direct
	// kill failed; the process may still be running.
	ErrKillFailed = errors.New("failed to kill process")
)
