package execshell

import (
	"context"
	"strings"
)

const (
	commandTextSeparatorConstant = " "
)

// CommandName identifies an executable launched by the executor.
type CommandName string

// Known executables.
const (
	CommandGit  CommandName = CommandName("git")
	CommandJava CommandName = CommandName("java")
)

// CommandDetails describes the arguments and process environment of an invocation.
type CommandDetails struct {
	Arguments            []string
	WorkingDirectory     string
	EnvironmentVariables map[string]string
	StandardInput        []byte
}

// ShellCommand couples an executable with its invocation details.
type ShellCommand struct {
	Name    CommandName
	Details CommandDetails
}

// Text renders the command as a single space-separated line for diagnostics.
func (command ShellCommand) Text() string {
	commandParts := append([]string{string(command.Name)}, command.Details.Arguments...)
	return strings.Join(commandParts, commandTextSeparatorConstant)
}

// ExecutionResult captures the observable outcome of a finished process.
//
// StandardOutput is line-accumulated: every line read from the child is followed
// by a single "\n" separator. StandardError is captured verbatim.
type ExecutionResult struct {
	StandardOutput string
	StandardError  string
	ExitCode       int
}

// CommandRunner starts a process for the command and waits for it to finish.
//
// A non-zero exit code is reported through ExecutionResult, not through the
// returned error. Errors are reserved for spawn failures and interruptions.
type CommandRunner interface {
	Run(executionContext context.Context, command ShellCommand) (ExecutionResult, error)
}
