// Package gitrepo runs the commands rendered by gitcommand against a repository
// checkout and post-processes their output.
//
// RepositoryManager is the facade used by the CLI. The filter helpers are
// exported separately so callers holding raw command output can reuse them.
package gitrepo
