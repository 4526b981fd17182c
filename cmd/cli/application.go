package cli

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"strings"
	"syscall"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	repos "github.com/temirov/gitsense/cmd/cli/repos"
	"github.com/temirov/gitsense/internal/execshell"
	"github.com/temirov/gitsense/internal/gitcommand"
	"github.com/temirov/gitsense/internal/gitrepo"
	"github.com/temirov/gitsense/internal/ui"
	"github.com/temirov/gitsense/internal/utils"
	flagutils "github.com/temirov/gitsense/internal/utils/flags"
	pathutils "github.com/temirov/gitsense/internal/utils/path"
)

const (
	applicationNameConstant                 = "gitsense"
	applicationShortDescriptionConstant     = "Query and drive git repositories through the system shell"
	applicationLongDescriptionConstant      = "gitsense runs git and Checkstyle through the platform shell to list commits by author, check out history by date, blame files, diff commits and summarize contributors."
	configFileFlagNameConstant              = "config"
	configFileFlagUsageConstant             = "Optional path to a configuration file (YAML or JSON)."
	logLevelFlagNameConstant                = "log-level"
	logLevelFlagDescriptionConstant         = "Override the configured log level."
	logFormatFlagNameConstant               = "log-format"
	logFormatFlagDescriptionConstant        = "Override the configured log format."
	commandTimeoutFlagNameConstant          = "command-timeout"
	commandTimeoutFlagUsageConstant         = "Deadline for each external command, e.g. 30s (0 disables)."
	environmentPrefixConstant               = "GITSENSE"
	configurationNameConstant               = "config"
	configurationTypeConstant               = "yaml"
	configurationInitializedMessageConstant = "configuration initialized"
	configurationLogLevelFieldConstant      = "log_level"
	configurationLogFormatFieldConstant     = "log_format"
	configurationFileFieldConstant          = "config_file"
	configurationShellFieldConstant         = "shell"
	configurationTimeoutFieldConstant       = "command_timeout"
	configurationLoadErrorTemplateConstant  = "unable to load configuration: %w"
	loggerCreationErrorTemplateConstant     = "unable to create logger: %w"
	loggerSyncErrorTemplateConstant         = "unable to flush logger: %w"
	executorCreationErrorTemplateConstant   = "unable to create shell executor: %w"
	dateOffsetErrorTemplateConstant         = "invalid dates.boundary_offset: %w"
	rootCommandInfoMessageConstant          = "gitsense CLI executed"
	rootCommandDebugMessageConstant         = "gitsense CLI diagnostics"
	logFieldCommandNameConstant             = "command_name"
	logFieldArgumentCountConstant           = "argument_count"
	logFieldArgumentsConstant               = "arguments"
	loggerNotInitializedMessageConstant     = "logger not initialized"
	defaultConfigurationSearchPathConstant  = "."
	shellDescriptionSeparatorConstant       = " "
	executorConfiguredMessageConstant       = "shell executor configured"
)

// Application wires the Cobra root command, configuration loader, and structured logger.
type Application struct {
	rootCommand           *cobra.Command
	configurationLoader   *utils.ConfigurationLoader
	loggerFactory         *utils.LoggerFactory
	locationResolver      *pathutils.LocationResolver
	logger                *zap.Logger
	consoleLogger         *zap.Logger
	configuration         ApplicationConfiguration
	configurationMetadata utils.LoadedConfiguration
	configurationFilePath string
	logLevelFlagValue     string
	logFormatFlagValue    string
	operatingSystemName   string
	commandRunner         execshell.CommandRunner
}

// NewApplication assembles a fully wired CLI application instance.
func NewApplication() *Application {
	configurationLoader := utils.NewConfigurationLoader(
		configurationNameConstant,
		configurationTypeConstant,
		environmentPrefixConstant,
		[]string{defaultConfigurationSearchPathConstant},
	)
	configurationLoader.SetEmbeddedConfiguration(EmbeddedDefaultConfiguration())

	application := &Application{
		configurationLoader: configurationLoader,
		loggerFactory:       utils.NewLoggerFactory(),
		locationResolver:    pathutils.NewLocationResolver(),
		logger:              zap.NewNop(),
		consoleLogger:       zap.NewNop(),
		operatingSystemName: runtime.GOOS,
		commandRunner:       execshell.NewOSCommandRunner(),
	}

	cobraCommand := &cobra.Command{
		Use:           applicationNameConstant,
		Short:         applicationShortDescriptionConstant,
		Long:          applicationLongDescriptionConstant,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(command *cobra.Command, arguments []string) error {
			return application.initializeConfiguration(command)
		},
		RunE: func(command *cobra.Command, arguments []string) error {
			return application.runRootCommand(command, arguments)
		},
	}

	logLevelChoices := []string{string(utils.LogLevelDebug), string(utils.LogLevelInfo), string(utils.LogLevelWarn), string(utils.LogLevelError)}
	logFormatChoices := []string{string(utils.LogFormatStructured), string(utils.LogFormatConsole)}

	cobraCommand.SetContext(context.Background())
	persistentFlags := cobraCommand.PersistentFlags()
	persistentFlags.StringVar(&application.configurationFilePath, configFileFlagNameConstant, "", configFileFlagUsageConstant)
	persistentFlags.Var(flagutils.NewChoiceValue(&application.logLevelFlagValue, logLevelChoices), logLevelFlagNameConstant, flagutils.FormatChoiceUsage(string(utils.LogLevelInfo), logLevelChoices, logLevelFlagDescriptionConstant))
	persistentFlags.Var(flagutils.NewChoiceValue(&application.logFormatFlagValue, logFormatChoices), logFormatFlagNameConstant, flagutils.FormatChoiceUsage(string(utils.LogFormatStructured), logFormatChoices, logFormatFlagDescriptionConstant))
	persistentFlags.Duration(commandTimeoutFlagNameConstant, 0, commandTimeoutFlagUsageConstant)
	configurationLoader.BindFlag(shellCommandTimeoutConfigKeyConstant, persistentFlags.Lookup(commandTimeoutFlagNameConstant))

	repositoryCommandsBuilder := repos.CommandSetBuilder{
		LoggerProvider: func() *zap.Logger {
			return application.logger
		},
		OperationsProvider: application.repositoryOperations,
		CloneConfigurationProvider: func() repos.CloneConfiguration {
			return application.configuration.Clone
		},
	}
	repositoryCommands, repositoryCommandsError := repositoryCommandsBuilder.Build()
	if repositoryCommandsError == nil {
		cobraCommand.AddCommand(repositoryCommands...)
	}

	application.rootCommand = cobraCommand

	return application
}

// Execute runs the configured Cobra command hierarchy and ensures logger flushing.
func (application *Application) Execute() error {
	executionError := application.rootCommand.Execute()
	if syncError := application.flushLogger(); syncError != nil {
		return fmt.Errorf(loggerSyncErrorTemplateConstant, syncError)
	}
	return executionError
}

// Execute builds a fresh application instance and executes the root command hierarchy.
func Execute() error {
	return NewApplication().Execute()
}

func (application *Application) initializeConfiguration(command *cobra.Command) error {
	loadedConfiguration, loadError := application.configurationLoader.LoadConfiguration(application.configurationFilePath, defaultConfigurationValues(), &application.configuration)
	if loadError != nil {
		return fmt.Errorf(configurationLoadErrorTemplateConstant, loadError)
	}

	application.configurationMetadata = loadedConfiguration

	if application.persistentFlagChanged(command, logLevelFlagNameConstant) {
		application.configuration.Common.LogLevel = application.logLevelFlagValue
	}

	if application.persistentFlagChanged(command, logFormatFlagNameConstant) {
		application.configuration.Common.LogFormat = application.logFormatFlagValue
	}

	loggerOutputs, loggerCreationError := application.loggerFactory.CreateLoggerOutputs(
		utils.LogLevel(application.configuration.Common.LogLevel),
		utils.LogFormat(application.configuration.Common.LogFormat),
	)
	if loggerCreationError != nil {
		return fmt.Errorf(loggerCreationErrorTemplateConstant, loggerCreationError)
	}

	application.logger = loggerOutputs.DiagnosticLogger
	application.consoleLogger = loggerOutputs.ConsoleLogger

	application.logger.Info(
		configurationInitializedMessageConstant,
		zap.String(configurationLogLevelFieldConstant, application.configuration.Common.LogLevel),
		zap.String(configurationLogFormatFieldConstant, application.configuration.Common.LogFormat),
		zap.String(configurationFileFieldConstant, application.configurationMetadata.ConfigFileUsed),
		zap.Duration(configurationTimeoutFieldConstant, application.configuration.Shell.CommandTimeout),
	)

	return nil
}

// repositoryOperations builds the executor, command builder and repository manager from the loaded configuration.
func (application *Application) repositoryOperations() (repos.RepositoryOperations, error) {
	shellConfiguration, shellError := application.configuration.Shell.ShellConfiguration(application.operatingSystemName)
	if shellError != nil {
		return nil, shellError
	}

	executor, executorError := execshell.NewShellExecutor(application.logger, application.commandRunner, shellConfiguration)
	if executorError != nil {
		return nil, fmt.Errorf(executorCreationErrorTemplateConstant, executorError)
	}
	executor = executor.WithCommandTimeout(application.configuration.Shell.CommandTimeout)
	if application.humanReadableLoggingEnabled() {
		executor = executor.WithObserver(application.commandEventObserver(shellConfiguration))
	}

	dateFormatter, dateFormatterError := gitcommand.NewDateBoundaryFormatter(application.configuration.Dates.BoundaryOffset)
	if dateFormatterError != nil {
		return nil, fmt.Errorf(dateOffsetErrorTemplateConstant, dateFormatterError)
	}

	commandBuilder := gitcommand.NewCommandBuilder(
		gitcommand.WithDateBoundaryFormatter(dateFormatter),
		gitcommand.WithQuoter(gitcommand.QuoterForShell(shellConfiguration.IsWindowsInterpreter())),
		gitcommand.WithStaticAnalysisTool(
			application.locationResolver.ExpandHome(strings.TrimSpace(application.configuration.Checkstyle.JarPath)),
			application.locationResolver.ExpandHome(strings.TrimSpace(application.configuration.Checkstyle.ConfigurationPath)),
		),
	)

	application.logger.Debug(
		executorConfiguredMessageConstant,
		zap.String(configurationShellFieldConstant, shellConfiguration.Interpreter+shellDescriptionSeparatorConstant+shellConfiguration.CommandFlag),
	)

	return gitrepo.NewRepositoryManager(executor, commandBuilder)
}

func (application *Application) commandEventObserver(shellConfiguration execshell.ShellConfiguration) execshell.CommandEventObserver {
	eventLogger := ui.NewConsoleCommandEventLogger(application.consoleLogger, shellConfiguration)
	if color.NoColor {
		return eventLogger
	}
	return eventLogger.WithStyles(ui.ColorStyles())
}

func (application *Application) humanReadableLoggingEnabled() bool {
	logFormatValue := strings.TrimSpace(application.configuration.Common.LogFormat)
	return strings.EqualFold(logFormatValue, string(utils.LogFormatConsole))
}

func (application *Application) runRootCommand(command *cobra.Command, arguments []string) error {
	if application.logger == nil {
		return errors.New(loggerNotInitializedMessageConstant)
	}

	application.logger.Info(
		rootCommandInfoMessageConstant,
		zap.String(logFieldCommandNameConstant, command.Name()),
		zap.Int(logFieldArgumentCountConstant, len(arguments)),
	)

	application.logger.Debug(
		rootCommandDebugMessageConstant,
		zap.Strings(logFieldArgumentsConstant, arguments),
	)

	return command.Help()
}

func (application *Application) flushLogger() error {
	for _, logger := range []*zap.Logger{application.logger, application.consoleLogger} {
		if syncError := application.syncLoggerInstance(logger); syncError != nil {
			return syncError
		}
	}
	return nil
}

func (application *Application) syncLoggerInstance(logger *zap.Logger) error {
	if logger == nil {
		return nil
	}

	syncError := logger.Sync()
	switch {
	case syncError == nil:
		return nil
	case errors.Is(syncError, syscall.ENOTSUP):
		return nil
	case errors.Is(syncError, syscall.EINVAL):
		return nil
	default:
		return syncError
	}
}

func (application *Application) persistentFlagChanged(command *cobra.Command, flagName string) bool {
	if command == nil {
		return false
	}

	flagSetsToInspect := []*pflag.FlagSet{
		command.PersistentFlags(),
		command.InheritedFlags(),
	}

	rootCommand := command.Root()
	if rootCommand != nil {
		flagSetsToInspect = append(flagSetsToInspect, rootCommand.PersistentFlags())
	}

	for _, flagSet := range flagSetsToInspect {
		if flagSet == nil {
			continue
		}

		if flagSet.Changed(flagName) {
			return true
		}
	}

	return false
}
