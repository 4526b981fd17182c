package execshell

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"

	"golang.org/x/sync/errgroup"
)

const (
	environmentAssignmentSeparatorConstant = "="
	environmentAssignmentTemplateConstant  = "%s%s%s"
	pipeCreationErrorTemplateConstant      = "unable to create %s pipe: %w"
	standardOutputStreamLabelConstant      = "standard output"
	standardErrorStreamLabelConstant       = "standard error"
	streamDrainErrorTemplateConstant       = "%w: draining output: %w"
	contextInterruptionTemplateConstant    = "%w: %w"
)

// OSCommandRunner executes commands as operating system processes.
type OSCommandRunner struct{}

// NewOSCommandRunner constructs a runner backed by os/exec.
func NewOSCommandRunner() *OSCommandRunner {
	return &OSCommandRunner{}
}

// Run spawns the command, drains standard output and standard error concurrently,
// waits for the process to exit, and only then joins the two readers.
//
// When the context is cancelled or its deadline expires, either before the
// process exits or while the readers are still being joined, the process tree
// is killed, the readers are released and the returned error wraps
// ErrExecutionInterrupted.
func (runner *OSCommandRunner) Run(executionContext context.Context, command ShellCommand) (ExecutionResult, error) {
	if contextError := executionContext.Err(); contextError != nil {
		return ExecutionResult{}, fmt.Errorf(contextInterruptionTemplateConstant, ErrExecutionInterrupted, contextError)
	}

	executable := exec.Command(string(command.Name), command.Details.Arguments...)
	if len(command.Details.WorkingDirectory) > 0 {
		executable.Dir = command.Details.WorkingDirectory
	}

	if len(command.Details.EnvironmentVariables) > 0 {
		mergedEnvironment := append([]string{}, os.Environ()...)
		for environmentKey, environmentValue := range command.Details.EnvironmentVariables {
			mergedEnvironment = append(mergedEnvironment, fmt.Sprintf(environmentAssignmentTemplateConstant, environmentKey, environmentAssignmentSeparatorConstant, environmentValue))
		}
		executable.Env = mergedEnvironment
	}

	if len(command.Details.StandardInput) > 0 {
		executable.Stdin = bytes.NewReader(command.Details.StandardInput)
	}

	configurePlatformAttributes(executable, command)

	standardOutputReader, standardOutputWriter, pipeError := os.Pipe()
	if pipeError != nil {
		return ExecutionResult{}, fmt.Errorf(pipeCreationErrorTemplateConstant, standardOutputStreamLabelConstant, pipeError)
	}
	defer closeQuietly(standardOutputReader)

	standardErrorReader, standardErrorWriter, pipeError := os.Pipe()
	if pipeError != nil {
		closeQuietly(standardOutputWriter)
		return ExecutionResult{}, fmt.Errorf(pipeCreationErrorTemplateConstant, standardErrorStreamLabelConstant, pipeError)
	}
	defer closeQuietly(standardErrorReader)

	executable.Stdout = standardOutputWriter
	executable.Stderr = standardErrorWriter

	startError := executable.Start()
	// The child holds its own copies of the write ends; the readers see
	// end-of-stream only once every writer is closed.
	closeQuietly(standardOutputWriter)
	closeQuietly(standardErrorWriter)
	if startError != nil {
		return ExecutionResult{}, startError
	}

	standardOutputCollector := newStreamCollector(standardOutputReader, streamModeLines)
	standardErrorCollector := newStreamCollector(standardErrorReader, streamModeVerbatim)

	var drainGroup errgroup.Group
	drainGroup.Go(standardOutputCollector.Drain)
	drainGroup.Go(standardErrorCollector.Drain)

	waitOutcome := make(chan error, 1)
	go func() {
		waitOutcome <- executable.Wait()
	}()

	interruptExecution := func() {
		_ = terminateProcessTree(executable)
		closeQuietly(standardOutputReader)
		closeQuietly(standardErrorReader)
	}

	var waitError error
	interrupted := false
	select {
	case waitError = <-waitOutcome:
	case <-executionContext.Done():
		interrupted = true
		interruptExecution()
		waitError = <-waitOutcome
	}

	drainOutcome := make(chan error, 1)
	go func() {
		drainOutcome <- drainGroup.Wait()
	}()

	// Background descendants may still hold the write ends after the shell exits.
	var drainError error
	if interrupted {
		drainError = <-drainOutcome
	} else {
		select {
		case drainError = <-drainOutcome:
		case <-executionContext.Done():
			interrupted = true
			interruptExecution()
			drainError = <-drainOutcome
		}
	}

	partialResult := ExecutionResult{
		StandardOutput: standardOutputCollector.String(),
		StandardError:  standardErrorCollector.String(),
		ExitCode:       -1,
	}

	if interrupted {
		return partialResult, fmt.Errorf(contextInterruptionTemplateConstant, ErrExecutionInterrupted, context.Cause(executionContext))
	}

	if drainError != nil {
		return partialResult, fmt.Errorf(streamDrainErrorTemplateConstant, ErrExecutionInterrupted, drainError)
	}

	if waitError != nil {
		exitError := &exec.ExitError{}
		if errors.As(waitError, &exitError) {
			partialResult.ExitCode = exitError.ExitCode()
			return partialResult, nil
		}
		return ExecutionResult{}, waitError
	}

	partialResult.ExitCode = 0
	return partialResult, nil
}

func closeQuietly(closer io.Closer) {
	_ = closer.Close()
}
