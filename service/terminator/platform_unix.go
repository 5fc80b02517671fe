//go:build !windows

package terminator

import (
	"context"

	"golang.org/x/sys/unix"
)

type unixPlatform struct{}

// Default returns the platform kill strategy
func Default() Platform {
	return unixPlatform{}
}

// KillTree signals the process group led by pid
func (unixPlatform) KillTree(_ context.Context, pid int) error {
	return unix.Kill(-pid, unix.SIGKILL)
}

func (unixPlatform) KillProcess(_ context.Context, pid int) error {
	return unix.Kill(pid, unix.SIGKILL)
}
