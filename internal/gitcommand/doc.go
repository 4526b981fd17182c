// Package gitcommand builds git and static-analysis command lines from typed query parameters.
//
// Every function in this package is pure: it renders a single command string
// and never executes anything. Values that may contain spaces are quoted with
// the ArgumentQuoter matching the target shell, author names are escaped so
// that regular-expression metacharacters match literally, and date bounds are
// anchored to a configurable fixed offset.
package gitcommand
