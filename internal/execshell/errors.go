package execshell

import (
	"errors"
	"fmt"
	"strings"
)

const (
	loggerNotConfiguredMessageConstant        = "logger not configured"
	commandRunnerNotConfiguredMessageConstant = "command runner not configured"
	shellNotConfiguredMessageConstant         = "shell interpreter not configured"
	executionInterruptedMessageConstant       = "command execution interrupted"
	commandFailedErrorTemplateConstant        = "error returned from command %s on path %s (exit code %d)%s"
	commandExecutionErrorTemplateConstant     = "unable to run command %s on path %s: %v"
	commandInterruptedErrorTemplateConstant   = "command %s on path %s did not finish: %v"
	standardErrorDetailTemplateConstant       = ":\n%s"
)

// ErrLoggerNotConfigured indicates that a nil logger was supplied.
var ErrLoggerNotConfigured = errors.New(loggerNotConfiguredMessageConstant)

// ErrCommandRunnerNotConfigured indicates that a nil command runner was supplied.
var ErrCommandRunnerNotConfigured = errors.New(commandRunnerNotConfiguredMessageConstant)

// ErrShellNotConfigured indicates that the shell interpreter or its command flag is empty.
var ErrShellNotConfigured = errors.New(shellNotConfiguredMessageConstant)

// ErrExecutionInterrupted marks failures of the wait or reader-join step, including
// deadline expiry and cancellation. It never denotes a non-zero exit code.
var ErrExecutionInterrupted = errors.New(executionInterruptedMessageConstant)

// CommandFailedError reports a command that exited with a non-zero status.
type CommandFailedError struct {
	CommandText      string
	WorkingDirectory string
	ExitCode         int
	StandardError    string
}

// Error describes the failed command together with its captured standard error.
func (failure CommandFailedError) Error() string {
	standardErrorDetail := ""
	if len(strings.TrimSpace(failure.StandardError)) > 0 {
		standardErrorDetail = fmt.Sprintf(standardErrorDetailTemplateConstant, failure.StandardError)
	}
	return fmt.Sprintf(commandFailedErrorTemplateConstant, failure.CommandText, failure.WorkingDirectory, failure.ExitCode, standardErrorDetail)
}

// CommandExecutionError reports a command that could not be started.
type CommandExecutionError struct {
	CommandText      string
	WorkingDirectory string
	Cause            error
}

// Error describes the spawn failure.
func (failure CommandExecutionError) Error() string {
	return fmt.Sprintf(commandExecutionErrorTemplateConstant, failure.CommandText, failure.WorkingDirectory, failure.Cause)
}

// Unwrap exposes the underlying spawn failure.
func (failure CommandExecutionError) Unwrap() error {
	return failure.Cause
}

// CommandInterruptedError reports a command whose exit wait or output draining was interrupted.
type CommandInterruptedError struct {
	CommandText      string
	WorkingDirectory string
	Cause            error
}

// Error describes the interruption.
func (failure CommandInterruptedError) Error() string {
	return fmt.Sprintf(commandInterruptedErrorTemplateConstant, failure.CommandText, failure.WorkingDirectory, failure.Cause)
}

// Unwrap exposes the interruption cause, which wraps ErrExecutionInterrupted.
func (failure CommandInterruptedError) Unwrap() error {
	return failure.Cause
}
