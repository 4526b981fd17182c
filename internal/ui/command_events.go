package ui

import (
	"fmt"

	"github.com/fatih/color"
	"go.uber.org/zap"

	"github.com/temirov/gitsense/internal/execshell"
)

// MessageStyle colours a console message.
type MessageStyle func(arguments ...interface{}) string

// ConsoleStyles holds the colouring applied per lifecycle stage.
type ConsoleStyles struct {
	Started   MessageStyle
	Completed MessageStyle
	Failed    MessageStyle
}

// PlainStyles leaves messages untouched.
func PlainStyles() ConsoleStyles {
	return ConsoleStyles{Started: plainStyle, Completed: plainStyle, Failed: plainStyle}
}

// ColorStyles dims start notices and colours outcomes green or red.
func ColorStyles() ConsoleStyles {
	return ConsoleStyles{
		Started:   color.New(color.FgHiBlack).SprintFunc(),
		Completed: color.New(color.FgGreen).SprintFunc(),
		Failed:    color.New(color.FgRed).SprintFunc(),
	}
}

func plainStyle(arguments ...interface{}) string {
	return fmt.Sprint(arguments...)
}

// ConsoleCommandEventLogger renders command lifecycle events using a zap logger configured for human-readable output.
type ConsoleCommandEventLogger struct {
	logger    *zap.Logger
	formatter execshell.CommandMessageFormatter
	styles    ConsoleStyles
}

// NewConsoleCommandEventLogger constructs a console event logger backed by the provided zap logger.
// Scripts run through shell are described by the operation they perform.
func NewConsoleCommandEventLogger(logger *zap.Logger, shell execshell.ShellConfiguration) *ConsoleCommandEventLogger {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ConsoleCommandEventLogger{
		logger:    logger,
		formatter: execshell.CommandMessageFormatter{Shell: shell},
		styles:    PlainStyles(),
	}
}

// WithStyles returns a copy of the event logger that colours messages with styles.
func (eventLogger *ConsoleCommandEventLogger) WithStyles(styles ConsoleStyles) *ConsoleCommandEventLogger {
	styledLogger := *eventLogger
	styledLogger.styles = styles
	return &styledLogger
}

// CommandStarted implements execshell.CommandEventObserver by logging command start notifications.
func (eventLogger *ConsoleCommandEventLogger) CommandStarted(command execshell.ShellCommand) {
	if eventLogger == nil {
		return
	}
	eventLogger.logger.Info(eventLogger.styles.Started(eventLogger.formatter.BuildStartedMessage(command)))
}

// CommandCompleted implements execshell.CommandEventObserver by logging command completion notifications.
func (eventLogger *ConsoleCommandEventLogger) CommandCompleted(command execshell.ShellCommand, result execshell.ExecutionResult) {
	if eventLogger == nil {
		return
	}
	if result.ExitCode == 0 {
		eventLogger.logger.Info(eventLogger.styles.Completed(eventLogger.formatter.BuildSuccessMessage(command)))
		return
	}
	eventLogger.logger.Warn(eventLogger.styles.Failed(eventLogger.formatter.BuildFailureMessage(command, result)))
}

// CommandExecutionFailed implements execshell.CommandEventObserver by logging unexpected execution failures.
func (eventLogger *ConsoleCommandEventLogger) CommandExecutionFailed(command execshell.ShellCommand, failure error) {
	if eventLogger == nil {
		return
	}
	eventLogger.logger.Error(eventLogger.styles.Failed(eventLogger.formatter.BuildExecutionFailureMessage(command, failure)))
}
