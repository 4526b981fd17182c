package repos

import (
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/gitsense/internal/gitcommand"
	"github.com/temirov/gitsense/internal/query"
	flagutils "github.com/temirov/gitsense/internal/utils/flags"
)

const (
	logUseConstant              = "log"
	logShortDescription         = "List commits by author, date range and file format"
	logLongDescription          = "log prints commits as hash|author|date|subject. Filters come from flags or, with --query, from a YAML repository configuration that names the repository, dates, formats and authors."
	logQueryFlagName            = "query"
	logQueryFlagUsage           = "YAML repository configuration; replaces the filter flags and runs one query per author"
	logAuthorFlagName           = "author"
	logAuthorFlagUsage          = "Primary git author name"
	logAliasFlagName            = "alias"
	logAliasFlagUsage           = "Additional author names (repeatable)"
	logFormatFlagName           = "format"
	logFormatFlagUsage          = "File extensions to include, without the dot (repeatable)"
	logIgnoreFlagName           = "ignore"
	logIgnoreFlagUsage          = "Pathspec globs to exclude (repeatable)"
	shortlogUseConstant         = "shortlog"
	shortlogShortDescription    = "Summarize commit counts per author"
	shortlogLongDescription     = "shortlog prints the number of commits per author inside the optional date range."
	logFieldQueryFileConstant   = "query_file"
	queryLoadedMessageConstant  = "repository configuration loaded"
	logFieldAuthorCountConstant = "author_count"
)

// LogCommandBuilder assembles the log command.
type LogCommandBuilder struct {
	LoggerProvider     LoggerProvider
	OperationsProvider OperationsProvider
}

type logCommandOptions struct {
	repository    *flagutils.RepositoryFlagValues
	dateRange     *flagutils.DateRangeFlagValues
	queryFilePath string
	author        string
	aliases       []string
	formats       []string
	ignoreGlobs   []string
}

// Build constructs the log command.
func (builder *LogCommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   logUseConstant,
		Short: logShortDescription,
		Long:  logLongDescription,
		Args:  cobra.NoArgs,
	}

	options := &logCommandOptions{
		repository: flagutils.BindRepositoryFlags(command, flagutils.RepositoryFlagValues{Root: flagutils.DefaultRootValue}, flagutils.DefaultRepositoryFlagDefinitions(false)),
		dateRange:  flagutils.BindDateRangeFlags(command),
	}
	command.Flags().StringVar(&options.queryFilePath, logQueryFlagName, "", logQueryFlagUsage)
	command.Flags().StringVar(&options.author, logAuthorFlagName, "", logAuthorFlagUsage)
	command.Flags().StringSliceVar(&options.aliases, logAliasFlagName, nil, logAliasFlagUsage)
	command.Flags().StringSliceVar(&options.formats, logFormatFlagName, nil, logFormatFlagUsage)
	command.Flags().StringSliceVar(&options.ignoreGlobs, logIgnoreFlagName, nil, logIgnoreFlagUsage)

	command.RunE = func(command *cobra.Command, arguments []string) error {
		return builder.run(command, options)
	}

	return command, nil
}

func (builder *LogCommandBuilder) run(command *cobra.Command, options *logCommandOptions) error {
	logger := resolveLogger(builder.LoggerProvider)
	operations, operationsError := resolveOperations(builder.OperationsProvider)
	if operationsError != nil {
		return operationsError
	}

	rawRoot := options.repository.Root
	logQueries := []gitcommand.LogQuery{{
		SinceDate: options.dateRange.Since,
		UntilDate: options.dateRange.Until,
		Author: gitcommand.AuthorIdentity{
			GitID:       strings.TrimSpace(options.author),
			Aliases:     options.aliases,
			IgnoreGlobs: options.ignoreGlobs,
		},
		Formats: options.formats,
	}}

	if len(strings.TrimSpace(options.queryFilePath)) > 0 {
		repositoryConfiguration, loadError := query.LoadRepositoryConfiguration(options.queryFilePath)
		if loadError != nil {
			return loadError
		}
		rawRoot = repositoryConfiguration.RepositoryRoot
		logQueries = repositoryConfiguration.LogQueries()
		if len(logQueries) == 0 {
			logQueries = []gitcommand.LogQuery{{
				SinceDate: repositoryConfiguration.SinceTime(),
				UntilDate: repositoryConfiguration.UntilTime(),
				Formats:   repositoryConfiguration.Formats,
			}}
		}
		logger.Info(
			queryLoadedMessageConstant,
			zap.String(logFieldQueryFileConstant, options.queryFilePath),
			zap.Int(logFieldAuthorCountConstant, len(repositoryConfiguration.Authors)),
		)
	}

	repositoryRoot, rootError := resolveRepositoryRoot(rawRoot)
	if rootError != nil {
		return rootError
	}
	logOperationStart(logger, command, repositoryRoot)

	for _, logQuery := range logQueries {
		output, logError := operations.Log(commandContext(command), repositoryRoot, logQuery)
		if logError != nil {
			return logError
		}
		if writeError := writeOutput(command.OutOrStdout(), output); writeError != nil {
			return writeError
		}
	}
	return nil
}

// ShortlogCommandBuilder assembles the shortlog command.
type ShortlogCommandBuilder struct {
	LoggerProvider     LoggerProvider
	OperationsProvider OperationsProvider
}

// Build constructs the shortlog command.
func (builder *ShortlogCommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   shortlogUseConstant,
		Short: shortlogShortDescription,
		Long:  shortlogLongDescription,
		Args:  cobra.NoArgs,
	}

	repositoryFlags := flagutils.BindRepositoryFlags(command, flagutils.RepositoryFlagValues{Root: flagutils.DefaultRootValue}, flagutils.DefaultRepositoryFlagDefinitions(false))
	dateRange := flagutils.BindDateRangeFlags(command)

	command.RunE = func(command *cobra.Command, arguments []string) error {
		operations, repositoryRoot, prepareError := prepareRepositoryOperation(command, builder.LoggerProvider, builder.OperationsProvider, repositoryFlags.Root)
		if prepareError != nil {
			return prepareError
		}
		output, shortlogError := operations.ShortlogSummary(commandContext(command), repositoryRoot, dateRange.Since, dateRange.Until)
		if shortlogError != nil {
			return shortlogError
		}
		return writeOutput(command.OutOrStdout(), output)
	}

	return command, nil
}
