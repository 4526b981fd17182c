package execshell

import (
	"fmt"
	"strings"
)

type messageStage int

const (
	messageStageStart messageStage = iota
	messageStageSuccess
	messageStageFailure
	messageStageExecutionFailure
)

const (
	genericStartTemplateConstant            = "Running %s"
	genericSuccessTemplateConstant          = "Completed %s"
	genericFailureTemplateConstant          = "%s failed with exit code %d%s"
	genericExecutionFailureTemplateConstant = "%s failed: %s"
	commandLabelTemplateConstant            = "%s%s"
	workingDirectorySuffixTemplateConstant  = " (in %s)"
	commandArgumentsJoinSeparatorConstant   = " "
	standardErrorSuffixTemplateConstant     = ": %s"
	unknownFailureMessageConstant           = "unknown error"
	emptyStringConstant                     = ""
	defaultWorkingDirectoryLabelConstant    = "current directory"
	fallbackUnknownValueLabelConstant       = "unknown"
	flagPrefixConstant                      = "-"
	quoteCharactersConstant                 = "\"'"
	shellScriptArgumentCountConstant        = 2
)

const (
	gitLogSubcommandNameConstant      = "log"
	gitShortlogSubcommandNameConstant = "shortlog"
	gitCheckoutSubcommandNameConstant = "checkout"
	gitBlameSubcommandNameConstant    = "blame"
	gitDiffSubcommandNameConstant     = "diff"
	gitRevListSubcommandNameConstant  = "rev-list"
	gitBranchSubcommandNameConstant   = "branch"
	gitCloneSubcommandNameConstant    = "clone"
)

// Templates receive the subject, the working directory, and then either the exit
// code with a standard error suffix or the failure text.
const (
	gitLogStartTemplateConstant                 = "Reading commit log in %[2]s"
	gitLogSuccessTemplateConstant               = "Read commit log in %[2]s"
	gitLogFailureTemplateConstant               = "Failed to read commit log in %[2]s (exit code %[3]d%[4]s)"
	gitLogExecutionFailureTemplateConstant      = "Unable to read commit log in %[2]s: %[3]s"
	gitShortlogStartTemplateConstant            = "Summarizing commit authors in %[2]s"
	gitShortlogSuccessTemplateConstant          = "Summarized commit authors in %[2]s"
	gitShortlogFailureTemplateConstant          = "Failed to summarize commit authors in %[2]s (exit code %[3]d%[4]s)"
	gitShortlogExecutionFailureTemplateConstant = "Unable to summarize commit authors in %[2]s: %[3]s"
	gitCheckoutStartTemplateConstant            = "Checking out %[1]s in %[2]s"
	gitCheckoutSuccessTemplateConstant          = "Checked out %[1]s in %[2]s"
	gitCheckoutFailureTemplateConstant          = "Failed to check out %[1]s in %[2]s (exit code %[3]d%[4]s)"
	gitCheckoutExecutionFailureTemplateConstant = "Unable to check out %[1]s in %[2]s: %[3]s"
	gitBlameStartTemplateConstant               = "Blaming %[1]s in %[2]s"
	gitBlameSuccessTemplateConstant             = "Blamed %[1]s in %[2]s"
	gitBlameFailureTemplateConstant             = "Failed to blame %[1]s in %[2]s (exit code %[3]d%[4]s)"
	gitBlameExecutionFailureTemplateConstant    = "Unable to blame %[1]s in %[2]s: %[3]s"
	gitDiffStartTemplateConstant                = "Diffing working tree against %[1]s in %[2]s"
	gitDiffSuccessTemplateConstant              = "Diffed working tree against %[1]s in %[2]s"
	gitDiffFailureTemplateConstant              = "Failed to diff working tree against %[1]s in %[2]s (exit code %[3]d%[4]s)"
	gitDiffExecutionFailureTemplateConstant     = "Unable to diff working tree against %[1]s in %[2]s: %[3]s"
	gitRevListStartTemplateConstant             = "Resolving latest revision of %[1]s in %[2]s"
	gitRevListSuccessTemplateConstant           = "Resolved latest revision of %[1]s in %[2]s"
	gitRevListFailureTemplateConstant           = "Failed to resolve latest revision of %[1]s in %[2]s (exit code %[3]d%[4]s)"
	gitRevListExecutionFailureTemplateConstant  = "Unable to resolve latest revision of %[1]s in %[2]s: %[3]s"
	gitBranchStartTemplateConstant              = "Listing branches in %[2]s"
	gitBranchSuccessTemplateConstant            = "Listed branches in %[2]s"
	gitBranchFailureTemplateConstant            = "Failed to list branches in %[2]s (exit code %[3]d%[4]s)"
	gitBranchExecutionFailureTemplateConstant   = "Unable to list branches in %[2]s: %[3]s"
	gitCloneStartTemplateConstant               = "Cloning %[1]s into %[2]s"
	gitCloneSuccessTemplateConstant             = "Cloned %[1]s into %[2]s"
	gitCloneFailureTemplateConstant             = "Failed to clone %[1]s into %[2]s (exit code %[3]d%[4]s)"
	gitCloneExecutionFailureTemplateConstant    = "Unable to clone %[1]s into %[2]s: %[3]s"
	analysisStartTemplateConstant               = "Running static analysis on %[1]s"
	analysisSuccessTemplateConstant             = "Completed static analysis on %[1]s"
	analysisFailureTemplateConstant             = "Static analysis on %[1]s failed (exit code %[3]d%[4]s)"
	analysisExecutionFailureTemplateConstant    = "Unable to run static analysis on %[1]s: %[3]s"
)

type stageTemplates struct {
	start            string
	success          string
	failure          string
	executionFailure string
}

type subjectPosition int

const (
	subjectNone subjectPosition = iota
	subjectFirstOperand
	subjectLastOperand
)

type gitOperationDescription struct {
	templates stageTemplates
	subject   subjectPosition
}

var gitOperationDescriptions = map[string]gitOperationDescription{
	gitLogSubcommandNameConstant: {
		templates: stageTemplates{gitLogStartTemplateConstant, gitLogSuccessTemplateConstant, gitLogFailureTemplateConstant, gitLogExecutionFailureTemplateConstant},
	},
	gitShortlogSubcommandNameConstant: {
		templates: stageTemplates{gitShortlogStartTemplateConstant, gitShortlogSuccessTemplateConstant, gitShortlogFailureTemplateConstant, gitShortlogExecutionFailureTemplateConstant},
	},
	gitCheckoutSubcommandNameConstant: {
		templates: stageTemplates{gitCheckoutStartTemplateConstant, gitCheckoutSuccessTemplateConstant, gitCheckoutFailureTemplateConstant, gitCheckoutExecutionFailureTemplateConstant},
		subject:   subjectFirstOperand,
	},
	gitBlameSubcommandNameConstant: {
		templates: stageTemplates{gitBlameStartTemplateConstant, gitBlameSuccessTemplateConstant, gitBlameFailureTemplateConstant, gitBlameExecutionFailureTemplateConstant},
		subject:   subjectFirstOperand,
	},
	gitDiffSubcommandNameConstant: {
		templates: stageTemplates{gitDiffStartTemplateConstant, gitDiffSuccessTemplateConstant, gitDiffFailureTemplateConstant, gitDiffExecutionFailureTemplateConstant},
		subject:   subjectFirstOperand,
	},
	gitRevListSubcommandNameConstant: {
		templates: stageTemplates{gitRevListStartTemplateConstant, gitRevListSuccessTemplateConstant, gitRevListFailureTemplateConstant, gitRevListExecutionFailureTemplateConstant},
		subject:   subjectLastOperand,
	},
	gitBranchSubcommandNameConstant: {
		templates: stageTemplates{gitBranchStartTemplateConstant, gitBranchSuccessTemplateConstant, gitBranchFailureTemplateConstant, gitBranchExecutionFailureTemplateConstant},
	},
	gitCloneSubcommandNameConstant: {
		templates: stageTemplates{gitCloneStartTemplateConstant, gitCloneSuccessTemplateConstant, gitCloneFailureTemplateConstant, gitCloneExecutionFailureTemplateConstant},
		subject:   subjectFirstOperand,
	},
}

var analysisDescription = gitOperationDescription{
	templates: stageTemplates{analysisStartTemplateConstant, analysisSuccessTemplateConstant, analysisFailureTemplateConstant, analysisExecutionFailureTemplateConstant},
	subject:   subjectLastOperand,
}

// invocation is the executable and arguments a command actually runs, with
// interpreter wrapping removed.
type invocation struct {
	name      CommandName
	arguments []string
}

// CommandMessageFormatter builds human-readable messages for command lifecycle events.
// Scripts run through Shell are described by the tool they invoke.
type CommandMessageFormatter struct {
	Shell ShellConfiguration
}

// BuildStartedMessage formats the message describing a command about to run.
func (formatter CommandMessageFormatter) BuildStartedMessage(command ShellCommand) string {
	return formatter.buildMessage(command, ExecutionResult{}, nil, messageStageStart)
}

// BuildSuccessMessage formats the message describing a completed command with a zero exit code.
func (formatter CommandMessageFormatter) BuildSuccessMessage(command ShellCommand) string {
	return formatter.buildMessage(command, ExecutionResult{}, nil, messageStageSuccess)
}

// BuildFailureMessage formats the message describing a command that returned a non-zero exit code.
func (formatter CommandMessageFormatter) BuildFailureMessage(command ShellCommand, result ExecutionResult) string {
	return formatter.buildMessage(command, result, nil, messageStageFailure)
}

// BuildExecutionFailureMessage formats the message describing an unexpected execution failure.
func (formatter CommandMessageFormatter) BuildExecutionFailureMessage(command ShellCommand, failure error) string {
	return formatter.buildMessage(command, ExecutionResult{}, failure, messageStageExecutionFailure)
}

func (formatter CommandMessageFormatter) buildMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	resolvedInvocation := formatter.resolveInvocation(command)
	switch resolvedInvocation.name {
	case CommandGit:
		return formatter.describeGitMessage(command, resolvedInvocation, result, failure, stage)
	case CommandJava:
		return formatter.describe(analysisDescription, resolvedInvocation.arguments, command, result, failure, stage)
	default:
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
}

func (formatter CommandMessageFormatter) describeGitMessage(command ShellCommand, resolvedInvocation invocation, result ExecutionResult, failure error, stage messageStage) string {
	if len(resolvedInvocation.arguments) == 0 {
		return formatter.buildGenericMessage(command, result, failure, stage)
	}

	// A log piped into shortlog is reported as the summary it produces.
	if containsArgument(resolvedInvocation.arguments, gitShortlogSubcommandNameConstant) {
		return formatter.describe(gitOperationDescriptions[gitShortlogSubcommandNameConstant], nil, command, result, failure, stage)
	}

	subcommand := strings.TrimSpace(resolvedInvocation.arguments[0])
	description, known := gitOperationDescriptions[subcommand]
	if !known {
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
	return formatter.describe(description, resolvedInvocation.arguments[1:], command, result, failure, stage)
}

func (formatter CommandMessageFormatter) describe(description gitOperationDescription, operands []string, command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	subject := formatter.extractSubject(operands, description.subject)
	workingDirectory := formatter.describeWorkingDirectory(command)

	switch stage {
	case messageStageStart:
		return fmt.Sprintf(description.templates.start, subject, workingDirectory)
	case messageStageSuccess:
		return fmt.Sprintf(description.templates.success, subject, workingDirectory)
	case messageStageFailure:
		return fmt.Sprintf(description.templates.failure, subject, workingDirectory, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	case messageStageExecutionFailure:
		return fmt.Sprintf(description.templates.executionFailure, subject, workingDirectory, formatter.describeFailure(failure))
	default:
		return emptyStringConstant
	}
}

func (formatter CommandMessageFormatter) resolveInvocation(command ShellCommand) invocation {
	arguments := command.Details.Arguments
	isShellScript := len(strings.TrimSpace(formatter.Shell.Interpreter)) > 0 &&
		strings.EqualFold(string(command.Name), formatter.Shell.Interpreter) &&
		len(arguments) == shellScriptArgumentCountConstant &&
		arguments[0] == formatter.Shell.CommandFlag
	if !isShellScript {
		return invocation{name: command.Name, arguments: arguments}
	}

	scriptTokens := strings.Fields(arguments[1])
	if len(scriptTokens) == 0 {
		return invocation{name: command.Name, arguments: arguments}
	}
	unquotedTokens := make([]string, 0, len(scriptTokens))
	for _, scriptToken := range scriptTokens {
		unquotedTokens = append(unquotedTokens, strings.Trim(scriptToken, quoteCharactersConstant))
	}
	return invocation{name: CommandName(unquotedTokens[0]), arguments: unquotedTokens[1:]}
}

func (formatter CommandMessageFormatter) extractSubject(operands []string, position subjectPosition) string {
	var candidates []string
	for _, operand := range operands {
		trimmedOperand := strings.TrimSpace(operand)
		if len(trimmedOperand) == 0 || strings.HasPrefix(trimmedOperand, flagPrefixConstant) {
			continue
		}
		candidates = append(candidates, trimmedOperand)
	}

	switch {
	case position == subjectNone:
		return emptyStringConstant
	case len(candidates) == 0:
		return fallbackUnknownValueLabelConstant
	case position == subjectLastOperand:
		return candidates[len(candidates)-1]
	default:
		return candidates[0]
	}
}

func (formatter CommandMessageFormatter) buildGenericMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	commandLabel := formatter.formatCommandLabel(command)
	switch stage {
	case messageStageStart:
		return fmt.Sprintf(genericStartTemplateConstant, commandLabel)
	case messageStageSuccess:
		return fmt.Sprintf(genericSuccessTemplateConstant, commandLabel)
	case messageStageFailure:
		return fmt.Sprintf(genericFailureTemplateConstant, commandLabel, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	case messageStageExecutionFailure:
		return fmt.Sprintf(genericExecutionFailureTemplateConstant, commandLabel, formatter.describeFailure(failure))
	default:
		return emptyStringConstant
	}
}

func (formatter CommandMessageFormatter) formatCommandLabel(command ShellCommand) string {
	commandLabel := string(command.Name)
	if len(command.Details.Arguments) > 0 {
		commandLabel = fmt.Sprintf("%s %s", commandLabel, strings.Join(command.Details.Arguments, commandArgumentsJoinSeparatorConstant))
	}
	return fmt.Sprintf(commandLabelTemplateConstant, commandLabel, formatter.formatWorkingDirectorySuffix(command))
}

func (formatter CommandMessageFormatter) formatWorkingDirectorySuffix(command ShellCommand) string {
	trimmedWorkingDirectory := strings.TrimSpace(command.Details.WorkingDirectory)
	if len(trimmedWorkingDirectory) == 0 {
		return emptyStringConstant
	}
	return fmt.Sprintf(workingDirectorySuffixTemplateConstant, trimmedWorkingDirectory)
}

func (formatter CommandMessageFormatter) formatStandardErrorSuffix(standardError string) string {
	trimmedStandardError := strings.TrimSpace(standardError)
	if len(trimmedStandardError) == 0 {
		return emptyStringConstant
	}
	return fmt.Sprintf(standardErrorSuffixTemplateConstant, trimmedStandardError)
}

func (formatter CommandMessageFormatter) describeWorkingDirectory(command ShellCommand) string {
	trimmedWorkingDirectory := strings.TrimSpace(command.Details.WorkingDirectory)
	if len(trimmedWorkingDirectory) == 0 {
		return defaultWorkingDirectoryLabelConstant
	}
	return trimmedWorkingDirectory
}

func (formatter CommandMessageFormatter) describeFailure(failure error) string {
	if failure == nil {
		return unknownFailureMessageConstant
	}
	return failure.Error()
}

func containsArgument(arguments []string, value string) bool {
	for _, argument := range arguments {
		if strings.TrimSpace(argument) == value {
			return true
		}
	}
	return false
}
