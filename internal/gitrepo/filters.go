package gitrepo

import (
	"fmt"
	"regexp"
	"strings"
)

const (
	lineSeparatorConstant             = "\n"
	wholeLinePatternTemplateConstant  = "^(?:%s)$"
	blameRetainedLinePatternConstant  = `(^author .*)|(^[0-9a-f]{40} .*)`
	currentBranchLinePatternConstant  = `\* .*`
	currentBranchMarkerPrefixConstant = "* "
)

var (
	blameRetainedLinePattern = compileWholeLinePattern(blameRetainedLinePatternConstant)
	currentBranchLinePattern = compileWholeLinePattern(currentBranchLinePatternConstant)
)

// FilterBlameOutput keeps the author lines and the commit header lines of
// line-porcelain blame output.
func FilterBlameOutput(text string) string {
	return filterLines(text, blameRetainedLinePattern)
}

// ExtractCurrentBranch returns the name on the line marked with an asterisk in
// git branch output.
func ExtractCurrentBranch(text string) (string, error) {
	markedLines := filterLines(text, currentBranchLinePattern)
	for _, line := range strings.Split(markedLines, lineSeparatorConstant) {
		branchName := strings.TrimSpace(strings.TrimPrefix(line, currentBranchMarkerPrefixConstant))
		if len(branchName) == 0 {
			continue
		}
		return branchName, nil
	}
	return "", ErrCurrentBranchNotFound
}

func filterLines(text string, pattern *regexp.Regexp) string {
	var builder strings.Builder
	for _, line := range strings.Split(text, lineSeparatorConstant) {
		if !pattern.MatchString(line) {
			continue
		}
		builder.WriteString(line)
		builder.WriteString(lineSeparatorConstant)
	}
	return builder.String()
}

func compileWholeLinePattern(pattern string) *regexp.Regexp {
	return regexp.MustCompile(fmt.Sprintf(wholeLinePatternTemplateConstant, pattern))
}
