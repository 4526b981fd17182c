package gitrepo

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/temirov/gitsense/internal/execshell"
	"github.com/temirov/gitsense/internal/gitcommand"
)

const (
	cloneDirectoryPermissionsConstant   = 0o755
	cloneDirectoryErrorTemplateConstant = "unable to create clone directory %s: %w"
)

// ScriptExecutor runs a command line through the configured shell.
type ScriptExecutor interface {
	ExecuteScript(executionContext context.Context, workingDirectory string, script string) (execshell.ExecutionResult, error)
}

// RepositoryManager executes git and static-analysis commands against local checkouts.
type RepositoryManager struct {
	executor ScriptExecutor
	builder  gitcommand.CommandBuilder
}

// NewRepositoryManager constructs a RepositoryManager.
func NewRepositoryManager(executor ScriptExecutor, builder gitcommand.CommandBuilder) (*RepositoryManager, error) {
	if executor == nil {
		return nil, ErrExecutorNotConfigured
	}
	return &RepositoryManager{executor: executor, builder: builder}, nil
}

// Log returns the raw commit log of repositoryRoot restricted by query.
func (manager *RepositoryManager) Log(executionContext context.Context, repositoryRoot string, query gitcommand.LogQuery) (string, error) {
	return manager.run(executionContext, repositoryRoot, manager.builder.LogCommand(query))
}

// Checkout checks out hash in repositoryRoot.
func (manager *RepositoryManager) Checkout(executionContext context.Context, repositoryRoot string, hash string) error {
	_, checkoutError := manager.run(executionContext, repositoryRoot, manager.builder.CheckoutCommand(hash))
	return checkoutError
}

// CheckoutToDate checks out the latest commit of branch made no later than the
// end of untilDate. A nil date leaves the checkout untouched.
func (manager *RepositoryManager) CheckoutToDate(executionContext context.Context, repositoryRoot string, branch string, untilDate *time.Time) error {
	if untilDate == nil {
		return nil
	}
	output, lookupError := manager.run(executionContext, repositoryRoot, manager.builder.CheckoutBeforeDateCommand(branch, *untilDate))
	if lookupError != nil {
		return lookupError
	}
	commitHash := strings.TrimSpace(output)
	if len(commitHash) == 0 {
		return ErrCommitNotFound
	}
	return manager.Checkout(executionContext, repositoryRoot, commitHash)
}

// Blame returns the author and commit header lines of the line-porcelain blame of filePath.
func (manager *RepositoryManager) Blame(executionContext context.Context, repositoryRoot string, filePath string) (string, error) {
	output, blameError := manager.run(executionContext, repositoryRoot, manager.builder.BlameCommand(filePath))
	if blameError != nil {
		return "", blameError
	}
	return FilterBlameOutput(output), nil
}

// DiffCommit diffs the working tree against commitHash without context lines.
func (manager *RepositoryManager) DiffCommit(executionContext context.Context, repositoryRoot string, commitHash string) (string, error) {
	return manager.run(executionContext, repositoryRoot, manager.builder.DiffNoContextCommand(commitHash))
}

// CommitHashBeforeDate returns the latest commit of branch made before date starts.
// The result is empty when date is nil or no such commit exists.
func (manager *RepositoryManager) CommitHashBeforeDate(executionContext context.Context, repositoryRoot string, branch string, date *time.Time) (string, error) {
	if date == nil {
		return "", nil
	}
	output, lookupError := manager.run(executionContext, repositoryRoot, manager.builder.RevListBeforeDateCommand(branch, *date))
	if lookupError != nil {
		return "", lookupError
	}
	return strings.TrimSpace(output), nil
}

// CurrentBranch returns the checked-out branch of repositoryRoot.
func (manager *RepositoryManager) CurrentBranch(executionContext context.Context, repositoryRoot string) (string, error) {
	output, branchError := manager.run(executionContext, repositoryRoot, manager.builder.CurrentBranchCommand())
	if branchError != nil {
		return "", branchError
	}
	return ExtractCurrentBranch(output)
}

// ShortlogSummary returns per-author commit counts inside the optional date range.
func (manager *RepositoryManager) ShortlogSummary(executionContext context.Context, repositoryRoot string, sinceDate *time.Time, untilDate *time.Time) (string, error) {
	return manager.run(executionContext, repositoryRoot, manager.builder.ShortlogSummaryCommand(sinceDate, untilDate))
}

// Clone creates repositoriesRoot/repositoryName and clones location inside it.
// A blank repositoryName is derived from location.
func (manager *RepositoryManager) Clone(executionContext context.Context, repositoriesRoot string, location string, repositoryName string) (string, error) {
	trimmedRepositoryName := strings.TrimSpace(repositoryName)
	if len(trimmedRepositoryName) == 0 {
		derivedRepositoryName, derivationError := RepositoryNameFromLocation(location)
		if derivationError != nil {
			return "", derivationError
		}
		trimmedRepositoryName = derivedRepositoryName
	}

	cloneDirectory := filepath.Join(repositoriesRoot, trimmedRepositoryName)
	if makeDirectoryError := os.MkdirAll(cloneDirectory, cloneDirectoryPermissionsConstant); makeDirectoryError != nil {
		return "", fmt.Errorf(cloneDirectoryErrorTemplateConstant, cloneDirectory, makeDirectoryError)
	}
	return manager.run(executionContext, cloneDirectory, manager.builder.CloneCommand(location))
}

// CheckStyle runs the static-analysis tool over directory and returns its XML report.
func (manager *RepositoryManager) CheckStyle(executionContext context.Context, directory string) (string, error) {
	return manager.run(executionContext, directory, manager.builder.StaticAnalysisCommand(directory))
}

func (manager *RepositoryManager) run(executionContext context.Context, workingDirectory string, script string) (string, error) {
	result, executionError := manager.executor.ExecuteScript(executionContext, workingDirectory, script)
	if executionError != nil {
		return "", executionError
	}
	return result.StandardOutput, nil
}
