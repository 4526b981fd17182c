package gitcommand

import "strings"

const (
	doubleQuoteConstant = `"`
)

// ArgumentQuoter wraps a value so the target shell passes it as a single token.
type ArgumentQuoter interface {
	Quote(value string) string
}

// POSIXQuoter quotes for sh-compatible shells. Inside double quotes the
// backslash, double quote, dollar sign and backtick are escaped.
type POSIXQuoter struct{}

var posixDoubleQuoteEscaper = strings.NewReplacer(
	`\`, `\\`,
	`"`, `\"`,
	`$`, `\$`,
	"`", "\\`",
)

// Quote implements ArgumentQuoter.
func (POSIXQuoter) Quote(value string) string {
	return doubleQuoteConstant + posixDoubleQuoteEscaper.Replace(value) + doubleQuoteConstant
}

// WindowsQuoter quotes for CMD. Embedded double quotes are escaped with a backslash,
// which the receiving program's argument parser turns back into a literal quote.
type WindowsQuoter struct{}

var windowsDoubleQuoteEscaper = strings.NewReplacer(`"`, `\"`)

// Quote implements ArgumentQuoter.
func (WindowsQuoter) Quote(value string) string {
	return doubleQuoteConstant + windowsDoubleQuoteEscaper.Replace(value) + doubleQuoteConstant
}

// QuoterForShell returns the quoter matching the interpreter family.
func QuoterForShell(windowsInterpreter bool) ArgumentQuoter {
	if windowsInterpreter {
		return WindowsQuoter{}
	}
	return POSIXQuoter{}
}
