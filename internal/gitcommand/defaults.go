package gitcommand

import "time"

var defaultCommandBuilder = NewCommandBuilder()

// LogCommand renders a commit log listing with the default builder.
func LogCommand(query LogQuery) string {
	return defaultCommandBuilder.LogCommand(query)
}

// CheckoutCommand renders a checkout with the default builder.
func CheckoutCommand(hash string) string {
	return defaultCommandBuilder.CheckoutCommand(hash)
}

// CheckoutBeforeDateCommand renders the end-of-day commit lookup with the default builder.
func CheckoutBeforeDateCommand(branch string, untilDate time.Time) string {
	return defaultCommandBuilder.CheckoutBeforeDateCommand(branch, untilDate)
}

// RevListBeforeDateCommand renders the start-of-day commit lookup with the default builder.
func RevListBeforeDateCommand(branch string, date time.Time) string {
	return defaultCommandBuilder.RevListBeforeDateCommand(branch, date)
}

// BlameCommand renders a blame with the default builder.
func BlameCommand(filePath string) string {
	return defaultCommandBuilder.BlameCommand(filePath)
}

// DiffNoContextCommand renders a context-free diff with the default builder.
func DiffNoContextCommand(commitHash string) string {
	return defaultCommandBuilder.DiffNoContextCommand(commitHash)
}

// CurrentBranchCommand renders the branch listing.
func CurrentBranchCommand() string {
	return defaultCommandBuilder.CurrentBranchCommand()
}

// ShortlogSummaryCommand renders a per-author commit count with the default builder.
func ShortlogSummaryCommand(sinceDate *time.Time, untilDate *time.Time) string {
	return defaultCommandBuilder.ShortlogSummaryCommand(sinceDate, untilDate)
}

// CloneCommand renders a clone with the default builder.
func CloneCommand(location string) string {
	return defaultCommandBuilder.CloneCommand(location)
}

// StaticAnalysisCommand renders a Checkstyle run with the default builder.
func StaticAnalysisCommand(directory string) string {
	return defaultCommandBuilder.StaticAnalysisCommand(directory)
}
