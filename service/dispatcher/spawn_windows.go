//go:build windows

package dispatcher

import (
	"os/exec"
	"syscall"

	"golang.org/x/sys/windows"
)

const (
	defaultShell     = "cmd"
	defaultShellFlag = "/C"
)

// newCommand passes the line verbatim, cmd.exe does its own parsing.
func newCommand(shell, flag, line string) *exec.Cmd {
	cmd := exec.Command(shell)
	cmd.SysProcAttr = &syscall.SysProcAttr{
		CmdLine:       shell + " " + flag + " " + line,
		CreationFlags: windows.CREATE_NEW_PROCESS_GROUP,
	}
	return cmd
}
