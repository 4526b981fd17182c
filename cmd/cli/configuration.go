package cli

import (
	"fmt"
	"strings"
	"time"

	repos "github.com/temirov/gitsense/cmd/cli/repos"
	"github.com/temirov/gitsense/internal/execshell"
	"github.com/temirov/gitsense/internal/gitcommand"
	"github.com/temirov/gitsense/internal/utils"
)

const (
	commonConfigurationKeyConstant           = "common"
	commonLogLevelConfigKeyConstant          = commonConfigurationKeyConstant + ".log_level"
	commonLogFormatConfigKeyConstant         = commonConfigurationKeyConstant + ".log_format"
	shellConfigurationKeyConstant            = "shell"
	shellInterpreterConfigKeyConstant        = shellConfigurationKeyConstant + ".interpreter"
	shellCommandFlagConfigKeyConstant        = shellConfigurationKeyConstant + ".command_flag"
	shellCommandTimeoutConfigKeyConstant     = shellConfigurationKeyConstant + ".command_timeout"
	datesConfigurationKeyConstant            = "dates"
	datesBoundaryOffsetConfigKeyConstant     = datesConfigurationKeyConstant + ".boundary_offset"
	cloneConfigurationKeyConstant            = "clone"
	checkstyleConfigurationKeyConstant       = "checkstyle"
	checkstyleJarPathConfigKeyConstant       = checkstyleConfigurationKeyConstant + ".jar_path"
	checkstyleRuleSetConfigKeyConstant       = checkstyleConfigurationKeyConstant + ".configuration_path"
	shellHalfConfiguredErrorTemplateConstant = "shell.interpreter and shell.command_flag must be set together (interpreter %q, flag %q)"
)

// ApplicationConfiguration describes the persisted configuration for the CLI entrypoint.
type ApplicationConfiguration struct {
	Common     ApplicationCommonConfiguration     `mapstructure:"common"`
	Shell      ApplicationShellConfiguration      `mapstructure:"shell"`
	Dates      ApplicationDatesConfiguration      `mapstructure:"dates"`
	Clone      repos.CloneConfiguration           `mapstructure:"clone"`
	Checkstyle ApplicationCheckstyleConfiguration `mapstructure:"checkstyle"`
}

// ApplicationCommonConfiguration stores logging configuration shared across commands.
type ApplicationCommonConfiguration struct {
	LogLevel  string `mapstructure:"log_level"`
	LogFormat string `mapstructure:"log_format"`
}

// ApplicationShellConfiguration selects the interpreter for command strings.
// Blank values fall back to the host default; a zero timeout disables the deadline.
type ApplicationShellConfiguration struct {
	Interpreter    string        `mapstructure:"interpreter"`
	CommandFlag    string        `mapstructure:"command_flag"`
	CommandTimeout time.Duration `mapstructure:"command_timeout"`
}

// ApplicationDatesConfiguration anchors calendar-day bounds to a UTC offset.
type ApplicationDatesConfiguration struct {
	BoundaryOffset string `mapstructure:"boundary_offset"`
}

// ApplicationCheckstyleConfiguration locates the Checkstyle jar and rule set.
type ApplicationCheckstyleConfiguration struct {
	JarPath           string `mapstructure:"jar_path"`
	ConfigurationPath string `mapstructure:"configuration_path"`
}

func defaultConfigurationValues() map[string]any {
	defaultValues := map[string]any{
		commonLogLevelConfigKeyConstant:      string(utils.LogLevelInfo),
		commonLogFormatConfigKeyConstant:     string(utils.LogFormatStructured),
		shellInterpreterConfigKeyConstant:    "",
		shellCommandFlagConfigKeyConstant:    "",
		shellCommandTimeoutConfigKeyConstant: time.Duration(0),
		datesBoundaryOffsetConfigKeyConstant: gitcommand.DefaultBoundaryOffset,
		checkstyleJarPathConfigKeyConstant:   gitcommand.DefaultStaticAnalysisJarPath,
		checkstyleRuleSetConfigKeyConstant:   gitcommand.DefaultStaticAnalysisConfigurationPath,
	}
	for configurationKey, configurationValue := range repos.DefaultCloneConfigurationValues(cloneConfigurationKeyConstant) {
		defaultValues[configurationKey] = configurationValue
	}
	return defaultValues
}

// ShellConfiguration resolves the configured interpreter, defaulting to the one detected for operatingSystemName.
func (configuration ApplicationShellConfiguration) ShellConfiguration(operatingSystemName string) (execshell.ShellConfiguration, error) {
	interpreter := strings.TrimSpace(configuration.Interpreter)
	commandFlag := strings.TrimSpace(configuration.CommandFlag)
	if len(interpreter) == 0 && len(commandFlag) == 0 {
		return execshell.DetectShellConfiguration(operatingSystemName), nil
	}
	if len(interpreter) == 0 || len(commandFlag) == 0 {
		return execshell.ShellConfiguration{}, fmt.Errorf(shellHalfConfiguredErrorTemplateConstant, interpreter, commandFlag)
	}
	return execshell.ShellConfiguration{Interpreter: interpreter, CommandFlag: commandFlag}, nil
}
