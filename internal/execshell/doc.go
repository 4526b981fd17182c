// Package execshell runs external tools as child processes and captures their output.
//
// ShellExecutor wraps a CommandRunner with structured logging, deadlines, and
// typed failures. OSCommandRunner is the process-backed runner: it drains the
// standard output and standard error streams concurrently while the child is
// running so that large output never blocks the child on a full pipe.
// ShellConfiguration selects the command interpreter used for shell scripts and
// is injected at construction time rather than discovered globally.
package execshell
