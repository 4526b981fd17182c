//go:build !windows

package execshell

import (
	"os/exec"
	"syscall"
)

// configurePlatformAttributes places the child in its own process group so the
// whole tree can be killed on interruption.
func configurePlatformAttributes(executable *exec.Cmd, _ ShellCommand) {
	executable.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
}

func terminateProcessTree(executable *exec.Cmd) error {
	if executable.Process == nil {
		return nil
	}
	return syscall.Kill(-executable.Process.Pid, syscall.SIGKILL)
}
