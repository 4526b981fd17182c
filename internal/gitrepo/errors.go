package gitrepo

import "errors"

const (
	executorNotConfiguredMessageConstant    = "script executor not configured"
	commitNotFoundMessageConstant           = "commit before until date not found"
	currentBranchNotFoundMessageConstant    = "current branch not found"
	repositoryNameUnresolvedMessageConstant = "repository name could not be resolved"
)

var (
	// ErrExecutorNotConfigured indicates the manager was constructed without an executor.
	ErrExecutorNotConfigured = errors.New(executorNotConfiguredMessageConstant)
	// ErrCommitNotFound indicates no commit exists before the requested date.
	ErrCommitNotFound = errors.New(commitNotFoundMessageConstant)
	// ErrCurrentBranchNotFound indicates the branch listing carried no current-branch marker.
	ErrCurrentBranchNotFound = errors.New(currentBranchNotFoundMessageConstant)
	// ErrRepositoryNameUnresolved indicates a clone target directory could not be derived.
	ErrRepositoryNameUnresolved = errors.New(repositoryNameUnresolvedMessageConstant)
)
