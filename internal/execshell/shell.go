package execshell

import (
	"runtime"
	"strings"
)

const (
	windowsOperatingSystemNameConstant = "windows"
	windowsInterpreterConstant         = "CMD"
	windowsCommandFlagConstant         = "/c"
	posixInterpreterConstant           = "sh"
	posixCommandFlagConstant           = "-c"
)

// ShellConfiguration names the interpreter that runs command strings.
type ShellConfiguration struct {
	Interpreter string
	CommandFlag string
}

// DetectShellConfiguration selects the interpreter for the named operating system.
// Windows hosts use CMD /c; every other host uses a POSIX sh -c.
func DetectShellConfiguration(operatingSystemName string) ShellConfiguration {
	normalizedName := strings.ToLower(strings.TrimSpace(operatingSystemName))
	if strings.HasPrefix(normalizedName, windowsOperatingSystemNameConstant) {
		return ShellConfiguration{Interpreter: windowsInterpreterConstant, CommandFlag: windowsCommandFlagConstant}
	}
	return ShellConfiguration{Interpreter: posixInterpreterConstant, CommandFlag: posixCommandFlagConstant}
}

// HostShellConfiguration returns the configuration for the running host.
func HostShellConfiguration() ShellConfiguration {
	return DetectShellConfiguration(runtime.GOOS)
}

// IsWindowsInterpreter reports whether the interpreter follows CMD quoting rules.
func (configuration ShellConfiguration) IsWindowsInterpreter() bool {
	return strings.EqualFold(strings.TrimSpace(configuration.Interpreter), windowsInterpreterConstant)
}

// Validate reports ErrShellNotConfigured when the interpreter or flag is missing.
func (configuration ShellConfiguration) Validate() error {
	if len(strings.TrimSpace(configuration.Interpreter)) == 0 || len(strings.TrimSpace(configuration.CommandFlag)) == 0 {
		return ErrShellNotConfigured
	}
	return nil
}

// WrapScript builds the interpreter invocation that runs script in workingDirectory.
func (configuration ShellConfiguration) WrapScript(workingDirectory string, script string) ShellCommand {
	return ShellCommand{
		Name: CommandName(configuration.Interpreter),
		Details: CommandDetails{
			Arguments:        []string{configuration.CommandFlag, script},
			WorkingDirectory: workingDirectory,
		},
	}
}
