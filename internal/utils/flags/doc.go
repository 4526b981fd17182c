// Package flags binds the repository, branch, date-range and choice flags shared by gitsense commands.
package flags
