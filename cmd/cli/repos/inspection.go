package repos

import (
	"github.com/spf13/cobra"

	flagutils "github.com/temirov/gitsense/internal/utils/flags"
)

const (
	blameUseConstant               = "blame <file>"
	blameShortDescription          = "Print author and commit header lines of a file's blame"
	diffUseConstant                = "diff <hash>"
	diffShortDescription           = "Print a commit's diff without context lines"
	checkstyleUseConstant          = "checkstyle [directory]"
	checkstyleShortDescription     = "Run Checkstyle over a directory and print the XML report"
	checkstyleLongDescription      = "checkstyle runs the configured Checkstyle jar with the configured rule set. The directory defaults to --root."
	singleArgumentIndexConstant    = 0
	checkstyleMaximumArgumentCount = 1
)

// BlameCommandBuilder assembles the blame command.
type BlameCommandBuilder struct {
	LoggerProvider     LoggerProvider
	OperationsProvider OperationsProvider
}

// Build constructs the blame command.
func (builder *BlameCommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   blameUseConstant,
		Short: blameShortDescription,
		Args:  cobra.ExactArgs(1),
	}

	repositoryFlags := flagutils.BindRepositoryFlags(command, flagutils.RepositoryFlagValues{Root: flagutils.DefaultRootValue}, flagutils.DefaultRepositoryFlagDefinitions(false))

	command.RunE = func(command *cobra.Command, arguments []string) error {
		operations, repositoryRoot, prepareError := prepareRepositoryOperation(command, builder.LoggerProvider, builder.OperationsProvider, repositoryFlags.Root)
		if prepareError != nil {
			return prepareError
		}
		output, blameError := operations.Blame(commandContext(command), repositoryRoot, arguments[singleArgumentIndexConstant])
		if blameError != nil {
			return blameError
		}
		return writeOutput(command.OutOrStdout(), output)
	}

	return command, nil
}

// DiffCommandBuilder assembles the diff command.
type DiffCommandBuilder struct {
	LoggerProvider     LoggerProvider
	OperationsProvider OperationsProvider
}

// Build constructs the diff command.
func (builder *DiffCommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   diffUseConstant,
		Short: diffShortDescription,
		Args:  cobra.ExactArgs(1),
	}

	repositoryFlags := flagutils.BindRepositoryFlags(command, flagutils.RepositoryFlagValues{Root: flagutils.DefaultRootValue}, flagutils.DefaultRepositoryFlagDefinitions(false))

	command.RunE = func(command *cobra.Command, arguments []string) error {
		operations, repositoryRoot, prepareError := prepareRepositoryOperation(command, builder.LoggerProvider, builder.OperationsProvider, repositoryFlags.Root)
		if prepareError != nil {
			return prepareError
		}
		output, diffError := operations.DiffCommit(commandContext(command), repositoryRoot, arguments[singleArgumentIndexConstant])
		if diffError != nil {
			return diffError
		}
		return writeOutput(command.OutOrStdout(), output)
	}

	return command, nil
}

// CheckstyleCommandBuilder assembles the checkstyle command.
type CheckstyleCommandBuilder struct {
	LoggerProvider     LoggerProvider
	OperationsProvider OperationsProvider
}

// Build constructs the checkstyle command.
func (builder *CheckstyleCommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   checkstyleUseConstant,
		Short: checkstyleShortDescription,
		Long:  checkstyleLongDescription,
		Args:  cobra.MaximumNArgs(checkstyleMaximumArgumentCount),
	}

	repositoryFlags := flagutils.BindRepositoryFlags(command, flagutils.RepositoryFlagValues{Root: flagutils.DefaultRootValue}, flagutils.DefaultRepositoryFlagDefinitions(false))

	command.RunE = func(command *cobra.Command, arguments []string) error {
		rawDirectory := repositoryFlags.Root
		if len(arguments) > 0 {
			rawDirectory = arguments[singleArgumentIndexConstant]
		}
		operations, directory, prepareError := prepareRepositoryOperation(command, builder.LoggerProvider, builder.OperationsProvider, rawDirectory)
		if prepareError != nil {
			return prepareError
		}
		report, checkstyleError := operations.CheckStyle(commandContext(command), directory)
		if checkstyleError != nil {
			return checkstyleError
		}
		return writeOutput(command.OutOrStdout(), report)
	}

	return command, nil
}
