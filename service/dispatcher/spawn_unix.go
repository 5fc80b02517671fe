//go:build !windows

package dispatcher

import (
	"os/exec"
	"syscall"
)

const (
	defaultShell     = "sh"
	defaultShellFlag = "-c"
)

// newCommand places the shell in its own process group so the whole tree
// can be signalled through the negative pid.
func newCommand(shell, flag, line string) *exec.Cmd {
	cmd := exec.Command(shell, flag, line)
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
	return cmd
}
