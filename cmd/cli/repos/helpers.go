package repos

import (
	"context"
	"errors"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/gitsense/internal/gitcommand"
	pathutils "github.com/temirov/gitsense/internal/utils/path"
)

const (
	outputLineTerminatorConstant    = "\n"
	logFieldRepositoryRootConstant  = "repository_root"
	logFieldOperationConstant       = "operation"
	operationStartedMessageConstant = "repository operation started"
	missingOperationsErrorMessage   = "repository operations are not configured"
)

// ErrOperationsNotConfigured indicates that a command was built without an operations provider.
var ErrOperationsNotConfigured = errors.New(missingOperationsErrorMessage)

var repositoryLocationResolver = pathutils.NewLocationResolver()

// LoggerProvider yields a zap logger for command execution.
type LoggerProvider func() *zap.Logger

// RepositoryOperations lists the repository interactions exposed on the command line.
type RepositoryOperations interface {
	Log(executionContext context.Context, repositoryRoot string, query gitcommand.LogQuery) (string, error)
	Checkout(executionContext context.Context, repositoryRoot string, hash string) error
	CheckoutToDate(executionContext context.Context, repositoryRoot string, branch string, untilDate *time.Time) error
	Blame(executionContext context.Context, repositoryRoot string, filePath string) (string, error)
	DiffCommit(executionContext context.Context, repositoryRoot string, commitHash string) (string, error)
	CommitHashBeforeDate(executionContext context.Context, repositoryRoot string, branch string, date *time.Time) (string, error)
	CurrentBranch(executionContext context.Context, repositoryRoot string) (string, error)
	ShortlogSummary(executionContext context.Context, repositoryRoot string, sinceDate *time.Time, untilDate *time.Time) (string, error)
	Clone(executionContext context.Context, repositoriesRoot string, location string, repositoryName string) (string, error)
	CheckStyle(executionContext context.Context, directory string) (string, error)
}

// OperationsProvider constructs the repository operations once configuration is loaded.
type OperationsProvider func() (RepositoryOperations, error)

func resolveLogger(provider LoggerProvider) *zap.Logger {
	if provider == nil {
		return zap.NewNop()
	}
	logger := provider()
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}

func resolveOperations(provider OperationsProvider) (RepositoryOperations, error) {
	if provider == nil {
		return nil, ErrOperationsNotConfigured
	}
	operations, operationsError := provider()
	if operationsError != nil {
		return nil, operationsError
	}
	if operations == nil {
		return nil, ErrOperationsNotConfigured
	}
	return operations, nil
}

func resolveRepositoryRoot(rawRoot string) (string, error) {
	return repositoryLocationResolver.Resolve(rawRoot)
}

func commandContext(command *cobra.Command) context.Context {
	if command == nil || command.Context() == nil {
		return context.Background()
	}
	return command.Context()
}

func logOperationStart(logger *zap.Logger, command *cobra.Command, repositoryRoot string) {
	logger.Debug(
		operationStartedMessageConstant,
		zap.String(logFieldOperationConstant, command.Name()),
		zap.String(logFieldRepositoryRootConstant, repositoryRoot),
	)
}

func prepareRepositoryOperation(command *cobra.Command, loggerProvider LoggerProvider, operationsProvider OperationsProvider, rawRoot string) (RepositoryOperations, string, error) {
	operations, operationsError := resolveOperations(operationsProvider)
	if operationsError != nil {
		return nil, "", operationsError
	}
	repositoryRoot, rootError := resolveRepositoryRoot(rawRoot)
	if rootError != nil {
		return nil, "", rootError
	}
	logOperationStart(resolveLogger(loggerProvider), command, repositoryRoot)
	return operations, repositoryRoot, nil
}

// writeOutput prints raw command output and terminates it with a newline when missing.
func writeOutput(writer io.Writer, output string) error {
	if len(output) == 0 {
		return nil
	}
	if _, writeError := io.WriteString(writer, output); writeError != nil {
		return writeError
	}
	if strings.HasSuffix(output, outputLineTerminatorConstant) {
		return nil
	}
	_, writeError := io.WriteString(writer, outputLineTerminatorConstant)
	return writeError
}
