package gitcommand

import (
	"strings"
	"time"
)

const (
	tokenSeparatorConstant = " "

	gitLogPrefixConstant             = "git log --no-merges -i --extended-regexp"
	gitLogPrettyFormatConstant       = `--pretty=format:"%H|%aN|%ad|%s"`
	gitLogDateFormatFlagConstant     = "--date=iso"
	gitLogShortStatFlagConstant      = "--shortstat"
	gitAuthorFlagPrefixConstant      = "--author="
	gitSinceFlagPrefixConstant       = "--since="
	gitUntilFlagPrefixConstant       = "--until="
	gitBeforeFlagPrefixConstant      = "--before="
	pathspecSeparatorConstant        = "--"
	formatPathspecPrefixConstant     = "*."
	excludePathspecPrefixConstant    = ":(exclude)"
	gitCheckoutPrefixConstant        = "git checkout"
	gitRevListPrefixConstant         = "git rev-list -1"
	gitBlamePrefixConstant           = "git blame -w --line-porcelain"
	gitDiffNoContextPrefixConstant   = "git diff -U0"
	gitBranchCommandConstant         = "git branch"
	gitShortlogLogPrefixConstant     = "git log --pretty=short"
	gitShortlogPipeSuffixConstant    = "| git shortlog --summary"
	gitClonePrefixConstant           = "git clone"
	staticAnalysisPrefixConstant     = "java -jar"
	staticAnalysisConfigFlagConstant = "-c"
	staticAnalysisFormatArgsConstant = "-f xml"

	// DefaultStaticAnalysisJarPath is the Checkstyle distribution run by StaticAnalysisCommand.
	DefaultStaticAnalysisJarPath = "checkstyle-7.7-all.jar"
	// DefaultStaticAnalysisConfigurationPath is the rule set passed to Checkstyle.
	DefaultStaticAnalysisConfigurationPath = "/google_checks.xml"
)

// LogQuery carries the filters applied to a commit log listing.
// Nil dates impose no bound; an empty format list matches every file.
type LogQuery struct {
	SinceDate *time.Time
	UntilDate *time.Time
	Author    AuthorIdentity
	Formats   []string
}

// CommandBuilder renders command strings. Its methods never execute anything.
type CommandBuilder struct {
	dateFormatter                   DateBoundaryFormatter
	quoter                          ArgumentQuoter
	staticAnalysisJarPath           string
	staticAnalysisConfigurationPath string
}

// BuilderOption customizes a CommandBuilder.
type BuilderOption func(builder *CommandBuilder)

// WithDateBoundaryFormatter anchors date bounds to the formatter's offset.
func WithDateBoundaryFormatter(formatter DateBoundaryFormatter) BuilderOption {
	return func(builder *CommandBuilder) {
		builder.dateFormatter = formatter
	}
}

// WithQuoter selects the quoting rules of the target shell.
func WithQuoter(quoter ArgumentQuoter) BuilderOption {
	return func(builder *CommandBuilder) {
		if quoter != nil {
			builder.quoter = quoter
		}
	}
}

// WithStaticAnalysisTool overrides the Checkstyle jar and rule set paths. Blank values keep the defaults.
func WithStaticAnalysisTool(jarPath string, configurationPath string) BuilderOption {
	return func(builder *CommandBuilder) {
		if trimmedJarPath := strings.TrimSpace(jarPath); len(trimmedJarPath) > 0 {
			builder.staticAnalysisJarPath = trimmedJarPath
		}
		if trimmedConfigurationPath := strings.TrimSpace(configurationPath); len(trimmedConfigurationPath) > 0 {
			builder.staticAnalysisConfigurationPath = trimmedConfigurationPath
		}
	}
}

// NewCommandBuilder constructs a builder with POSIX quoting and the default UTC+8 bounds.
func NewCommandBuilder(options ...BuilderOption) CommandBuilder {
	builder := CommandBuilder{
		dateFormatter:                   DefaultDateBoundaryFormatter(),
		quoter:                          POSIXQuoter{},
		staticAnalysisJarPath:           DefaultStaticAnalysisJarPath,
		staticAnalysisConfigurationPath: DefaultStaticAnalysisConfigurationPath,
	}
	for _, option := range options {
		if option != nil {
			option(&builder)
		}
	}
	return builder
}

// LogCommand lists non-merge commits with hash, author name, date, subject and
// shortstat, restricted to the author's names, the requested suffixes, and
// excluding the author's ignore globs.
func (builder CommandBuilder) LogCommand(query LogQuery) string {
	tokens := []string{gitLogPrefixConstant}
	tokens = append(tokens, builder.dateRangeArguments(query.SinceDate, query.UntilDate)...)
	tokens = append(tokens, gitLogPrettyFormatConstant, gitLogDateFormatFlagConstant, gitLogShortStatFlagConstant)

	if authorPattern := AuthorPattern(query.Author); len(authorPattern) > 0 {
		tokens = append(tokens, gitAuthorFlagPrefixConstant+builder.quoter.Quote(authorPattern))
	}

	pathspecs := builder.pathspecArguments(query.Formats, query.Author.IgnoreGlobs)
	if len(pathspecs) > 0 {
		tokens = append(tokens, pathspecSeparatorConstant)
		tokens = append(tokens, pathspecs...)
	}

	return joinTokens(tokens)
}

// CheckoutCommand checks out hash.
func (builder CommandBuilder) CheckoutCommand(hash string) string {
	return joinTokens([]string{gitCheckoutPrefixConstant, strings.TrimSpace(hash)})
}

// CheckoutBeforeDateCommand finds the latest commit on branch at or before the end of untilDate.
func (builder CommandBuilder) CheckoutBeforeDateCommand(branch string, untilDate time.Time) string {
	return builder.revListBefore(branch, builder.dateFormatter.FormatUntil(untilDate))
}

// RevListBeforeDateCommand finds the latest commit on branch before the start of date.
func (builder CommandBuilder) RevListBeforeDateCommand(branch string, date time.Time) string {
	return builder.revListBefore(branch, builder.dateFormatter.FormatSince(date))
}

// BlameCommand produces line-porcelain blame for filePath, ignoring whitespace changes.
func (builder CommandBuilder) BlameCommand(filePath string) string {
	return joinTokens([]string{gitBlamePrefixConstant, builder.quoter.Quote(filePath)})
}

// DiffNoContextCommand diffs the working tree against commitHash without context lines.
func (builder CommandBuilder) DiffNoContextCommand(commitHash string) string {
	return joinTokens([]string{gitDiffNoContextPrefixConstant, strings.TrimSpace(commitHash)})
}

// CurrentBranchCommand lists local branches with the current one marked.
func (builder CommandBuilder) CurrentBranchCommand() string {
	return gitBranchCommandConstant
}

// ShortlogSummaryCommand counts commits per author inside the optional date range.
func (builder CommandBuilder) ShortlogSummaryCommand(sinceDate *time.Time, untilDate *time.Time) string {
	tokens := []string{gitShortlogLogPrefixConstant}
	tokens = append(tokens, builder.dateRangeArguments(sinceDate, untilDate)...)
	tokens = append(tokens, gitShortlogPipeSuffixConstant)
	return joinTokens(tokens)
}

// CloneCommand clones location into the working directory.
func (builder CommandBuilder) CloneCommand(location string) string {
	return joinTokens([]string{gitClonePrefixConstant, builder.quoter.Quote(location)})
}

// StaticAnalysisCommand runs Checkstyle over directory and reports in XML.
func (builder CommandBuilder) StaticAnalysisCommand(directory string) string {
	return joinTokens([]string{
		staticAnalysisPrefixConstant,
		builder.quoter.Quote(builder.staticAnalysisJarPath),
		staticAnalysisConfigFlagConstant,
		builder.quoter.Quote(builder.staticAnalysisConfigurationPath),
		staticAnalysisFormatArgsConstant,
		builder.quoter.Quote(directory),
	})
}

func (builder CommandBuilder) revListBefore(branch string, bound string) string {
	return joinTokens([]string{
		gitRevListPrefixConstant,
		gitBeforeFlagPrefixConstant + builder.quoter.Quote(bound),
		builder.quoter.Quote(strings.TrimSpace(branch)),
	})
}

func (builder CommandBuilder) dateRangeArguments(sinceDate *time.Time, untilDate *time.Time) []string {
	var arguments []string
	if sinceDate != nil {
		arguments = append(arguments, gitSinceFlagPrefixConstant+builder.quoter.Quote(builder.dateFormatter.FormatSince(*sinceDate)))
	}
	if untilDate != nil {
		arguments = append(arguments, gitUntilFlagPrefixConstant+builder.quoter.Quote(builder.dateFormatter.FormatUntil(*untilDate)))
	}
	return arguments
}

// pathspecArguments lists format restrictions followed by exclusions, in input order.
func (builder CommandBuilder) pathspecArguments(formats []string, excludeGlobs []string) []string {
	var pathspecs []string
	for _, format := range formats {
		trimmedFormat := strings.TrimSpace(format)
		if len(trimmedFormat) == 0 {
			continue
		}
		pathspecs = append(pathspecs, builder.quoter.Quote(formatPathspecPrefixConstant+trimmedFormat))
	}
	for _, excludeGlob := range excludeGlobs {
		if len(strings.TrimSpace(excludeGlob)) == 0 {
			continue
		}
		pathspecs = append(pathspecs, builder.quoter.Quote(excludePathspecPrefixConstant+excludeGlob))
	}
	return pathspecs
}

func joinTokens(tokens []string) string {
	return strings.Join(tokens, tokenSeparatorConstant)
}
