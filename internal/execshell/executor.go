package execshell

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
)

const (
	logFieldCommandConstant          = "command"
	logFieldWorkingDirectoryConstant = "working_directory"
	logFieldExitCodeConstant         = "exit_code"
	logFieldStandardErrorConstant    = "standard_error"
	logFieldTimeoutConstant          = "timeout"
)

// ShellExecutor runs commands through a CommandRunner and translates outcomes into typed results.
type ShellExecutor struct {
	logger           *zap.Logger
	runner           CommandRunner
	shell            ShellConfiguration
	commandTimeout   time.Duration
	messageFormatter CommandMessageFormatter
	observer         CommandEventObserver
}

// NewShellExecutor validates its collaborators and constructs a ShellExecutor.
// The shell configuration is fixed for the lifetime of the executor.
func NewShellExecutor(logger *zap.Logger, runner CommandRunner, shell ShellConfiguration) (*ShellExecutor, error) {
	if logger == nil {
		return nil, ErrLoggerNotConfigured
	}
	if runner == nil {
		return nil, ErrCommandRunnerNotConfigured
	}
	if validationError := shell.Validate(); validationError != nil {
		return nil, validationError
	}

	return &ShellExecutor{
		logger:           logger,
		runner:           runner,
		shell:            shell,
		messageFormatter: CommandMessageFormatter{Shell: shell},
		observer:         noopCommandEventObserver{},
	}, nil
}

// WithCommandTimeout returns a copy of the executor that bounds every invocation by timeout.
// A non-positive timeout disables the deadline.
func (executor *ShellExecutor) WithCommandTimeout(timeout time.Duration) *ShellExecutor {
	duplicate := *executor
	duplicate.commandTimeout = timeout
	return &duplicate
}

// WithObserver returns a copy of the executor that reports lifecycle events to observer.
func (executor *ShellExecutor) WithObserver(observer CommandEventObserver) *ShellExecutor {
	duplicate := *executor
	if observer == nil {
		observer = noopCommandEventObserver{}
	}
	duplicate.observer = observer
	return &duplicate
}

// Shell exposes the interpreter configuration used for scripts.
func (executor *ShellExecutor) Shell() ShellConfiguration {
	return executor.shell
}

// ExecuteScript runs script through the configured interpreter inside workingDirectory.
func (executor *ShellExecutor) ExecuteScript(executionContext context.Context, workingDirectory string, script string) (ExecutionResult, error) {
	return executor.run(executionContext, executor.shell.WrapScript(workingDirectory, script), script)
}

func (executor *ShellExecutor) run(executionContext context.Context, command ShellCommand, commandText string) (ExecutionResult, error) {
	if executionContext == nil {
		executionContext = context.Background()
	}
	if executor.commandTimeout > 0 {
		var cancel context.CancelFunc
		executionContext, cancel = context.WithTimeout(executionContext, executor.commandTimeout)
		defer cancel()
	}

	commandFields := []zap.Field{
		zap.String(logFieldCommandConstant, commandText),
		zap.String(logFieldWorkingDirectoryConstant, command.Details.WorkingDirectory),
	}

	executor.observer.CommandStarted(command)
	executor.logger.Debug(executor.messageFormatter.BuildStartedMessage(command), commandFields...)

	executionResult, runError := executor.runner.Run(executionContext, command)
	if runError != nil {
		executor.observer.CommandExecutionFailed(command, runError)
		failureFields := append(commandFields, zap.Error(runError))
		if errors.Is(runError, ErrExecutionInterrupted) {
			failureFields = append(failureFields, zap.Duration(logFieldTimeoutConstant, executor.commandTimeout))
			executor.logger.Error(executor.messageFormatter.BuildExecutionFailureMessage(command, runError), failureFields...)
			return ExecutionResult{}, CommandInterruptedError{
				CommandText:      commandText,
				WorkingDirectory: command.Details.WorkingDirectory,
				Cause:            runError,
			}
		}
		executor.logger.Error(executor.messageFormatter.BuildExecutionFailureMessage(command, runError), failureFields...)
		return ExecutionResult{}, CommandExecutionError{
			CommandText:      commandText,
			WorkingDirectory: command.Details.WorkingDirectory,
			Cause:            runError,
		}
	}

	executor.observer.CommandCompleted(command, executionResult)

	if executionResult.ExitCode != 0 {
		executor.logger.Warn(
			executor.messageFormatter.BuildFailureMessage(command, executionResult),
			append(commandFields,
				zap.Int(logFieldExitCodeConstant, executionResult.ExitCode),
				zap.String(logFieldStandardErrorConstant, executionResult.StandardError),
			)...,
		)
		return ExecutionResult{}, CommandFailedError{
			CommandText:      commandText,
			WorkingDirectory: command.Details.WorkingDirectory,
			ExitCode:         executionResult.ExitCode,
			StandardError:    executionResult.StandardError,
		}
	}

	executor.logger.Debug(executor.messageFormatter.BuildSuccessMessage(command), commandFields...)
	return executionResult, nil
}
