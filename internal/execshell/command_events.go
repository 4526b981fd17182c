package execshell

// CommandEventObserver receives lifecycle notifications for processes launched by ShellExecutor.
type CommandEventObserver interface {
	// CommandStarted is called before the process is spawned.
	CommandStarted(command ShellCommand)
	// CommandCompleted is called once the process exited and both streams were drained.
	CommandCompleted(command ShellCommand, result ExecutionResult)
	// CommandExecutionFailed reports spawn failures and interruptions, which produce no exit code.
	CommandExecutionFailed(command ShellCommand, failure error)
}

type noopCommandEventObserver struct{}

func (noopCommandEventObserver) CommandStarted(ShellCommand) {}

func (noopCommandEventObserver) CommandCompleted(ShellCommand, ExecutionResult) {}

func (noopCommandEventObserver) CommandExecutionFailed(ShellCommand, error) {}
