//go:build windows

package terminator

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"
)

type windowsPlatform struct{}

// Default returns the platform kill strategy
func Default() Platform {
	return windowsPlatform{}
}

// KillTree runs taskkill over the whole tree rooted at pid, ctx bounds
// the taskkill run
func (windowsPlatform) KillTree(ctx context.Context, pid int) error {
	output, err := exec.CommandContext(ctx, "taskkill", "/T", "/F", "/PID", strconv.Itoa(pid)).CombinedOutput()
	if err != nil {
		return fmt.Errorf("taskkill: %w: %s", err, strings.TrimSpace(string(output)))
	}
	return nil
}

func (windowsPlatform) KillProcess(_ context.Context, pid int) error {
	process, err := os.FindProcess(pid)
	if err != nil {
		return err
	}
	return process.Kill()
}
