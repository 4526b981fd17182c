// Package cli constructs the gitsense command-line interface, wiring the Cobra
// command hierarchy, the layered configuration loader, the zap loggers and the
// shell executor that every repository command runs through.
package cli
