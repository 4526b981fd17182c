package repos

import (
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const (
	cloneUseConstant                  = "clone <location> [name]"
	cloneShortDescription             = "Clone a repository under the repositories root"
	cloneLongDescription              = "clone creates <repositories-root>/<name> and clones <location> into it. The name defaults to the last path element of the location without .git."
	cloneMinimumArgumentCount         = 1
	cloneMaximumArgumentCount         = 2
	cloneLocationArgumentIndex        = 0
	cloneNameArgumentIndex            = 1
	cloneCompletedMessageConstant     = "repository cloned"
	logFieldCloneLocationConstant     = "location"
	logFieldRepositoriesRootConstant  = "repositories_root"
	defaultRepositoriesRootConstant   = "."
	repositoriesRootFlagUsageConstant = "Directory that receives cloned repositories"
	cloneRepositoriesRootKeyConstant  = "repositories_root"
	clonePrefixedKeyTemplateSeparator = "."

	// RepositoriesRootFlagName names the clone destination flag.
	RepositoriesRootFlagName = "repositories-root"
)

// CloneConfiguration describes configuration values for clone.
type CloneConfiguration struct {
	RepositoriesRoot string `mapstructure:"repositories_root"`
}

// DefaultCloneConfiguration returns the baseline clone configuration.
func DefaultCloneConfiguration() CloneConfiguration {
	return CloneConfiguration{RepositoriesRoot: defaultRepositoriesRootConstant}
}

// DefaultCloneConfigurationValues returns the configuration defaults keyed below prefix.
func DefaultCloneConfigurationValues(prefix string) map[string]any {
	defaults := DefaultCloneConfiguration()
	return map[string]any{
		prefix + clonePrefixedKeyTemplateSeparator + cloneRepositoriesRootKeyConstant: defaults.RepositoriesRoot,
	}
}

func (configuration CloneConfiguration) sanitize() CloneConfiguration {
	sanitized := configuration
	sanitized.RepositoriesRoot = strings.TrimSpace(sanitized.RepositoriesRoot)
	if len(sanitized.RepositoriesRoot) == 0 {
		sanitized.RepositoriesRoot = defaultRepositoriesRootConstant
	}
	return sanitized
}

// CloneCommandBuilder assembles the clone command.
type CloneCommandBuilder struct {
	LoggerProvider        LoggerProvider
	OperationsProvider    OperationsProvider
	ConfigurationProvider func() CloneConfiguration
}

// Build constructs the clone command. --repositories-root overrides the configured destination.
func (builder *CloneCommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   cloneUseConstant,
		Short: cloneShortDescription,
		Long:  cloneLongDescription,
		Args:  cobra.RangeArgs(cloneMinimumArgumentCount, cloneMaximumArgumentCount),
		RunE:  builder.run,
	}

	command.Flags().String(RepositoriesRootFlagName, defaultRepositoriesRootConstant, repositoriesRootFlagUsageConstant)

	return command, nil
}

func (builder *CloneCommandBuilder) run(command *cobra.Command, arguments []string) error {
	configuration := builder.resolveConfiguration()
	if command.Flags().Changed(RepositoriesRootFlagName) {
		flagValue, flagError := command.Flags().GetString(RepositoriesRootFlagName)
		if flagError != nil {
			return flagError
		}
		configuration.RepositoriesRoot = flagValue
	}

	repositoryName := ""
	if len(arguments) > cloneNameArgumentIndex {
		repositoryName = arguments[cloneNameArgumentIndex]
	}
	location := repositoryLocationResolver.ExpandHome(strings.TrimSpace(arguments[cloneLocationArgumentIndex]))

	operations, repositoriesRoot, prepareError := prepareRepositoryOperation(command, builder.LoggerProvider, builder.OperationsProvider, configuration.RepositoriesRoot)
	if prepareError != nil {
		return prepareError
	}

	output, cloneError := operations.Clone(commandContext(command), repositoriesRoot, location, repositoryName)
	if cloneError != nil {
		return cloneError
	}

	resolveLogger(builder.LoggerProvider).Info(
		cloneCompletedMessageConstant,
		zap.String(logFieldCloneLocationConstant, location),
		zap.String(logFieldRepositoriesRootConstant, repositoriesRoot),
	)
	return writeOutput(command.OutOrStdout(), output)
}

func (builder *CloneCommandBuilder) resolveConfiguration() CloneConfiguration {
	if builder.ConfigurationProvider == nil {
		return DefaultCloneConfiguration()
	}
	return builder.ConfigurationProvider().sanitize()
}
