package repos_test

import (
	"bytes"
	"context"
	"time"

	"github.com/spf13/cobra"

	repos "github.com/temirov/gitsense/cmd/cli/repos"
	"github.com/temirov/gitsense/internal/gitcommand"
)

type recordedOperation struct {
	name           string
	repositoryRoot string
	argument       string
	branch         string
	sinceDate      *time.Time
	untilDate      *time.Time
	query          gitcommand.LogQuery
}

type stubRepositoryOperations struct {
	operations  []recordedOperation
	logOutputs  []string
	output      string
	commitHash  string
	branchName  string
	failure     error
}

func (stub *stubRepositoryOperations) record(operation recordedOperation) {
	stub.operations = append(stub.operations, operation)
}

func (stub *stubRepositoryOperations) Log(_ context.Context, repositoryRoot string, query gitcommand.LogQuery) (string, error) {
	stub.record(recordedOperation{name: "log", repositoryRoot: repositoryRoot, query: query})
	if stub.failure != nil {
		return "", stub.failure
	}
	if len(stub.logOutputs) == 0 {
		return "", nil
	}
	output := stub.logOutputs[0]
	stub.logOutputs = stub.logOutputs[1:]
	return output, nil
}

func (stub *stubRepositoryOperations) Checkout(_ context.Context, repositoryRoot string, hash string) error {
	stub.record(recordedOperation{name: "checkout", repositoryRoot: repositoryRoot, argument: hash})
	return stub.failure
}

func (stub *stubRepositoryOperations) CheckoutToDate(_ context.Context, repositoryRoot string, branch string, untilDate *time.Time) error {
	stub.record(recordedOperation{name: "checkout-date", repositoryRoot: repositoryRoot, branch: branch, untilDate: untilDate})
	return stub.failure
}

func (stub *stubRepositoryOperations) Blame(_ context.Context, repositoryRoot string, filePath string) (string, error) {
	stub.record(recordedOperation{name: "blame", repositoryRoot: repositoryRoot, argument: filePath})
	return stub.output, stub.failure
}

func (stub *stubRepositoryOperations) DiffCommit(_ context.Context, repositoryRoot string, commitHash string) (string, error) {
	stub.record(recordedOperation{name: "diff", repositoryRoot: repositoryRoot, argument: commitHash})
	return stub.output, stub.failure
}

func (stub *stubRepositoryOperations) CommitHashBeforeDate(_ context.Context, repositoryRoot string, branch string, date *time.Time) (string, error) {
	stub.record(recordedOperation{name: "revision", repositoryRoot: repositoryRoot, branch: branch, sinceDate: date})
	return stub.commitHash, stub.failure
}

func (stub *stubRepositoryOperations) CurrentBranch(_ context.Context, repositoryRoot string) (string, error) {
	stub.record(recordedOperation{name: "branch", repositoryRoot: repositoryRoot})
	return stub.branchName, stub.failure
}

func (stub *stubRepositoryOperations) ShortlogSummary(_ context.Context, repositoryRoot string, sinceDate *time.Time, untilDate *time.Time) (string, error) {
	stub.record(recordedOperation{name: "shortlog", repositoryRoot: repositoryRoot, sinceDate: sinceDate, untilDate: untilDate})
	return stub.output, stub.failure
}

func (stub *stubRepositoryOperations) Clone(_ context.Context, repositoriesRoot string, location string, repositoryName string) (string, error) {
	stub.record(recordedOperation{name: "clone", repositoryRoot: repositoriesRoot, argument: location, branch: repositoryName})
	return stub.output, stub.failure
}

func (stub *stubRepositoryOperations) CheckStyle(_ context.Context, directory string) (string, error) {
	stub.record(recordedOperation{name: "checkstyle", repositoryRoot: directory})
	return stub.output, stub.failure
}

func operationsProviderFor(stub *stubRepositoryOperations) repos.OperationsProvider {
	return func() (repos.RepositoryOperations, error) {
		return stub, nil
	}
}

func executeCommand(command *cobra.Command, arguments []string) (string, error) {
	outputBuffer := &bytes.Buffer{}
	command.SetOut(outputBuffer)
	command.SetErr(&bytes.Buffer{})
	command.SetArgs(arguments)
	command.SetContext(context.Background())
	executionError := command.Execute()
	return outputBuffer.String(), executionError
}

func calendarDay(year int, month time.Month, day int) *time.Time {
	date := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return &date
}
