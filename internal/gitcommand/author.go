package gitcommand

import (
	"fmt"
	"regexp"
	"strings"
)

const (
	authorNamePatternTemplateConstant  = "^%s <.*>$"
	authorAlternationSeparatorConstant = "|"
)

// AuthorIdentity names a contributor by git author name plus any aliases the
// contributor committed under, and the path globs excluded for that contributor.
type AuthorIdentity struct {
	GitID       string   `yaml:"git_id"`
	Aliases     []string `yaml:"aliases"`
	IgnoreGlobs []string `yaml:"ignore_globs"`
}

// Candidates lists the primary identity followed by its aliases, skipping blanks.
func (identity AuthorIdentity) Candidates() []string {
	candidates := make([]string, 0, len(identity.Aliases)+1)
	for _, candidate := range append([]string{identity.GitID}, identity.Aliases...) {
		if len(strings.TrimSpace(candidate)) == 0 {
			continue
		}
		candidates = append(candidates, candidate)
	}
	return candidates
}

// AuthorPattern builds the extended regular expression that matches the author
// field of any candidate by name. E-mail addresses are ignored. Metacharacters
// in names are escaped so every name matches literally.
func AuthorPattern(identity AuthorIdentity) string {
	candidates := identity.Candidates()
	patterns := make([]string, 0, len(candidates))
	for _, candidate := range candidates {
		patterns = append(patterns, fmt.Sprintf(authorNamePatternTemplateConstant, EscapeRegularExpression(candidate)))
	}
	return strings.Join(patterns, authorAlternationSeparatorConstant)
}

// EscapeRegularExpression prefixes every extended-regex metacharacter with a backslash.
func EscapeRegularExpression(value string) string {
	return regexp.QuoteMeta(value)
}
