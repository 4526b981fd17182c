//go:build windows

package execshell

import (
	"os/exec"
	"strings"
	"syscall"
)

const (
	commandLineSeparatorConstant = " "
)

// configurePlatformAttributes hands CMD invocations to the interpreter verbatim.
// CMD parses its own command line, so the default argument escaping would
// corrupt quoted tokens inside the script.
func configurePlatformAttributes(executable *exec.Cmd, command ShellCommand) {
	if !(ShellConfiguration{Interpreter: string(command.Name)}).IsWindowsInterpreter() {
		return
	}
	commandLineParts := append([]string{string(command.Name)}, command.Details.Arguments...)
	executable.SysProcAttr = &syscall.SysProcAttr{CmdLine: strings.Join(commandLineParts, commandLineSeparatorConstant)}
}

func terminateProcessTree(executable *exec.Cmd) error {
	if executable.Process == nil {
		return nil
	}
	return executable.Process.Kill()
}
