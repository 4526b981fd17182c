package repos_test

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	repos "github.com/temirov/gitsense/cmd/cli/repos"
	"github.com/temirov/gitsense/internal/gitcommand"
	"github.com/temirov/gitsense/internal/gitrepo"
)

const (
	commandsTestHashConstant      = "0123456789abcdef0123456789abcdef01234567"
	commandsTestBlameOutput       = "0123456789abcdef0123456789abcdef01234567 1 1 1\nauthor Jane\n"
	commandsTestQueryFileTemplate = `repository_root: %s
since_date: 2018-05-01
until_date: 2018-06-30
formats: [java]
authors:
  - git_id: Jane Doe
    aliases: [jdoe]
    ignore_globs: ["vendor/*"]
  - git_id: Bob
`
	commandsTestBranchQueryTemplate = `repository_root: %s
branch: release
until_date: 2018-06-30
`
	commandsTestUndatedQueryTemplate = `repository_root: %s
branch: release
`
)

func TestSingleRepositoryCommands(testInstance *testing.T) {
	repositoryRoot := testInstance.TempDir()

	testCases := []struct {
		name              string
		builder           func(repos.OperationsProvider) interface{ Build() (*cobra.Command, error) }
		arguments         []string
		stub              stubRepositoryOperations
		expectedOutput    string
		expectedOperation recordedOperation
	}{
		{
			name: "checkout_by_hash",
			builder: func(provider repos.OperationsProvider) interface{ Build() (*cobra.Command, error) } {
				return &repos.CheckoutCommandBuilder{OperationsProvider: provider}
			},
			arguments:         []string{commandsTestHashConstant, "--root", repositoryRoot},
			expectedOperation: recordedOperation{name: "checkout", repositoryRoot: repositoryRoot, argument: commandsTestHashConstant},
		},
		{
			name: "checkout_to_date",
			builder: func(provider repos.OperationsProvider) interface{ Build() (*cobra.Command, error) } {
				return &repos.CheckoutDateCommandBuilder{OperationsProvider: provider}
			},
			arguments:         []string{"--root", repositoryRoot, "--date", "2018-05-20", "--branch", "main"},
			expectedOperation: recordedOperation{name: "checkout-date", repositoryRoot: repositoryRoot, branch: "main", untilDate: calendarDay(2018, 5, 20)},
		},
		{
			name: "revision_prints_hash",
			builder: func(provider repos.OperationsProvider) interface{ Build() (*cobra.Command, error) } {
				return &repos.RevisionCommandBuilder{OperationsProvider: provider}
			},
			arguments:         []string{"--root", repositoryRoot, "--date", "2018-05-20"},
			stub:              stubRepositoryOperations{commitHash: commandsTestHashConstant},
			expectedOutput:    commandsTestHashConstant + "\n",
			expectedOperation: recordedOperation{name: "revision", repositoryRoot: repositoryRoot, branch: "master", sinceDate: calendarDay(2018, 5, 20)},
		},
		{
			name: "branch_prints_name",
			builder: func(provider repos.OperationsProvider) interface{ Build() (*cobra.Command, error) } {
				return &repos.BranchCommandBuilder{OperationsProvider: provider}
			},
			arguments:         []string{"--root", repositoryRoot},
			stub:              stubRepositoryOperations{branchName: "feature/x"},
			expectedOutput:    "feature/x\n",
			expectedOperation: recordedOperation{name: "branch", repositoryRoot: repositoryRoot},
		},
		{
			name: "blame_prints_filtered_output",
			builder: func(provider repos.OperationsProvider) interface{ Build() (*cobra.Command, error) } {
				return &repos.BlameCommandBuilder{OperationsProvider: provider}
			},
			arguments:         []string{"src/Main.java", "--root", repositoryRoot},
			stub:              stubRepositoryOperations{output: commandsTestBlameOutput},
			expectedOutput:    commandsTestBlameOutput,
			expectedOperation: recordedOperation{name: "blame", repositoryRoot: repositoryRoot, argument: "src/Main.java"},
		},
		{
			name: "diff_prints_output",
			builder: func(provider repos.OperationsProvider) interface{ Build() (*cobra.Command, error) } {
				return &repos.DiffCommandBuilder{OperationsProvider: provider}
			},
			arguments:         []string{commandsTestHashConstant, "--root", repositoryRoot},
			stub:              stubRepositoryOperations{output: "@@ -1 +1 @@"},
			expectedOutput:    "@@ -1 +1 @@\n",
			expectedOperation: recordedOperation{name: "diff", repositoryRoot: repositoryRoot, argument: commandsTestHashConstant},
		},
		{
			name: "shortlog_with_range",
			builder: func(provider repos.OperationsProvider) interface{ Build() (*cobra.Command, error) } {
				return &repos.ShortlogCommandBuilder{OperationsProvider: provider}
			},
			arguments:         []string{"--root", repositoryRoot, "--since", "2018-05-01", "--until", "2018-05-31"},
			stub:              stubRepositoryOperations{output: "     2\teugenepeh\n"},
			expectedOutput:    "     2\teugenepeh\n",
			expectedOperation: recordedOperation{name: "shortlog", repositoryRoot: repositoryRoot, sinceDate: calendarDay(2018, 5, 1), untilDate: calendarDay(2018, 5, 31)},
		},
		{
			name: "checkstyle_argument_directory",
			builder: func(provider repos.OperationsProvider) interface{ Build() (*cobra.Command, error) } {
				return &repos.CheckstyleCommandBuilder{OperationsProvider: provider}
			},
			arguments:         []string{repositoryRoot},
			stub:              stubRepositoryOperations{output: "<checkstyle/>"},
			expectedOutput:    "<checkstyle/>\n",
			expectedOperation: recordedOperation{name: "checkstyle", repositoryRoot: repositoryRoot},
		},
	}

	for _, testCase := range testCases {
		testCase := testCase
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			stub := testCase.stub
			command, buildError := testCase.builder(operationsProviderFor(&stub)).Build()
			require.NoError(testInstance, buildError)

			output, executionError := executeCommand(command, testCase.arguments)
			require.NoError(testInstance, executionError)
			require.Equal(testInstance, testCase.expectedOutput, output)
			require.Equal(testInstance, []recordedOperation{testCase.expectedOperation}, stub.operations)
		})
	}
}

func TestLogCommandFromFlags(testInstance *testing.T) {
	repositoryRoot := testInstance.TempDir()
	stub := &stubRepositoryOperations{logOutputs: []string{"abc|Jane|Mon May 7|init"}}
	builder := repos.LogCommandBuilder{OperationsProvider: operationsProviderFor(stub)}
	command, buildError := builder.Build()
	require.NoError(testInstance, buildError)

	output, executionError := executeCommand(command, []string{
		"--root", repositoryRoot,
		"--author", "Jane Doe",
		"--alias", "jdoe,j.doe",
		"--format", "java",
		"--format", "kt",
		"--ignore", "vendor/*",
		"--until", "2018-06-30",
	})
	require.NoError(testInstance, executionError)
	require.Equal(testInstance, "abc|Jane|Mon May 7|init\n", output)
	require.Len(testInstance, stub.operations, 1)
	require.Equal(testInstance, repositoryRoot, stub.operations[0].repositoryRoot)
	require.Equal(testInstance, gitcommand.LogQuery{
		UntilDate: calendarDay(2018, 6, 30),
		Author: gitcommand.AuthorIdentity{
			GitID:       "Jane Doe",
			Aliases:     []string{"jdoe", "j.doe"},
			IgnoreGlobs: []string{"vendor/*"},
		},
		Formats: []string{"java", "kt"},
	}, stub.operations[0].query)
}

func TestLogCommandFromQueryFile(testInstance *testing.T) {
	repositoryRoot := testInstance.TempDir()
	queryFilePath := filepath.Join(testInstance.TempDir(), "query.yaml")
	require.NoError(testInstance, os.WriteFile(queryFilePath, []byte(fmt.Sprintf(commandsTestQueryFileTemplate, repositoryRoot)), 0o600))

	observedCore, observedLogs := observer.New(zapcore.InfoLevel)
	stub := &stubRepositoryOperations{logOutputs: []string{"first\n", "", "unused"}}
	builder := repos.LogCommandBuilder{
		LoggerProvider:     func() *zap.Logger { return zap.New(observedCore) },
		OperationsProvider: operationsProviderFor(stub),
	}
	command, buildError := builder.Build()
	require.NoError(testInstance, buildError)

	output, executionError := executeCommand(command, []string{"--query", queryFilePath, "--author", "ignored"})
	require.NoError(testInstance, executionError)
	require.Equal(testInstance, "first\n", output)

	require.Len(testInstance, stub.operations, 2)
	require.Equal(testInstance, "Jane Doe", stub.operations[0].query.Author.GitID)
	require.Equal(testInstance, []string{"vendor/*"}, stub.operations[0].query.Author.IgnoreGlobs)
	require.Equal(testInstance, calendarDay(2018, 5, 1), stub.operations[0].query.SinceDate)
	require.Equal(testInstance, "Bob", stub.operations[1].query.Author.GitID)
	require.Equal(testInstance, []string{"java"}, stub.operations[1].query.Formats)
	require.Equal(testInstance, repositoryRoot, stub.operations[1].repositoryRoot)

	require.Equal(testInstance, 1, observedLogs.FilterMessage("repository configuration loaded").Len())
}

func TestBranchDateCommandsFromQueryFile(testInstance *testing.T) {
	queryRoot := testInstance.TempDir()
	flagRoot := testInstance.TempDir()
	queryFilePath := filepath.Join(testInstance.TempDir(), "query.yaml")
	require.NoError(testInstance, os.WriteFile(queryFilePath, []byte(fmt.Sprintf(commandsTestBranchQueryTemplate, queryRoot)), 0o600))

	testCases := []struct {
		name              string
		builder           func(repos.OperationsProvider) interface{ Build() (*cobra.Command, error) }
		arguments         []string
		stub              stubRepositoryOperations
		expectedOperation recordedOperation
	}{
		{
			name: "checkout_date_takes_branch_and_date_from_file",
			builder: func(provider repos.OperationsProvider) interface{ Build() (*cobra.Command, error) } {
				return &repos.CheckoutDateCommandBuilder{OperationsProvider: provider}
			},
			arguments:         []string{"--query", queryFilePath},
			expectedOperation: recordedOperation{name: "checkout-date", repositoryRoot: queryRoot, branch: "release", untilDate: calendarDay(2018, 6, 30)},
		},
		{
			name: "checkout_date_flags_override_file",
			builder: func(provider repos.OperationsProvider) interface{ Build() (*cobra.Command, error) } {
				return &repos.CheckoutDateCommandBuilder{OperationsProvider: provider}
			},
			arguments:         []string{"--query", queryFilePath, "--root", flagRoot, "--branch", "main", "--date", "2018-05-20"},
			expectedOperation: recordedOperation{name: "checkout-date", repositoryRoot: flagRoot, branch: "main", untilDate: calendarDay(2018, 5, 20)},
		},
		{
			name: "revision_takes_branch_and_date_from_file",
			builder: func(provider repos.OperationsProvider) interface{ Build() (*cobra.Command, error) } {
				return &repos.RevisionCommandBuilder{OperationsProvider: provider}
			},
			arguments:         []string{"--query", queryFilePath},
			stub:              stubRepositoryOperations{commitHash: commandsTestHashConstant},
			expectedOperation: recordedOperation{name: "revision", repositoryRoot: queryRoot, branch: "release", sinceDate: calendarDay(2018, 6, 30)},
		},
	}

	for _, testCase := range testCases {
		testCase := testCase
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			stub := testCase.stub
			command, buildError := testCase.builder(operationsProviderFor(&stub)).Build()
			require.NoError(testInstance, buildError)

			_, executionError := executeCommand(command, testCase.arguments)
			require.NoError(testInstance, executionError)
			require.Equal(testInstance, []recordedOperation{testCase.expectedOperation}, stub.operations)
		})
	}

	testInstance.Run("date_required_when_file_has_none", func(testInstance *testing.T) {
		undatedQueryFilePath := filepath.Join(testInstance.TempDir(), "undated.yaml")
		require.NoError(testInstance, os.WriteFile(undatedQueryFilePath, []byte(fmt.Sprintf(commandsTestUndatedQueryTemplate, queryRoot)), 0o600))

		stub := &stubRepositoryOperations{}
		command, buildError := (&repos.RevisionCommandBuilder{OperationsProvider: operationsProviderFor(stub)}).Build()
		require.NoError(testInstance, buildError)

		_, executionError := executeCommand(command, []string{"--query", undatedQueryFilePath})
		require.Error(testInstance, executionError)
		require.Empty(testInstance, stub.operations)
	})
}

func TestCloneCommandConfigurationPrecedence(testInstance *testing.T) {
	configuredRoot := testInstance.TempDir()
	flagRoot := testInstance.TempDir()

	testCases := []struct {
		name          string
		configuration repos.CloneConfiguration
		arguments     []string
		expectedRoot  string
		expectedName  string
	}{
		{
			name:          "configuration_root",
			configuration: repos.CloneConfiguration{RepositoriesRoot: configuredRoot},
			arguments:     []string{"https://github.com/temirov/gitsense.git"},
			expectedRoot:  configuredRoot,
		},
		{
			name:          "flag_overrides_configuration",
			configuration: repos.CloneConfiguration{RepositoriesRoot: configuredRoot},
			arguments:     []string{"https://github.com/temirov/gitsense.git", "sense", "--repositories-root", flagRoot},
			expectedRoot:  flagRoot,
			expectedName:  "sense",
		},
	}

	for _, testCase := range testCases {
		testCase := testCase
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			stub := &stubRepositoryOperations{}
			builder := repos.CloneCommandBuilder{
				OperationsProvider:    operationsProviderFor(stub),
				ConfigurationProvider: func() repos.CloneConfiguration { return testCase.configuration },
			}
			command, buildError := builder.Build()
			require.NoError(testInstance, buildError)

			_, executionError := executeCommand(command, testCase.arguments)
			require.NoError(testInstance, executionError)
			require.Equal(testInstance, []recordedOperation{{
				name:           "clone",
				repositoryRoot: testCase.expectedRoot,
				argument:       "https://github.com/temirov/gitsense.git",
				branch:         testCase.expectedName,
			}}, stub.operations)
		})
	}
}

func TestCommandFailures(testInstance *testing.T) {
	repositoryRoot := testInstance.TempDir()

	testInstance.Run("revision_without_commit", func(testInstance *testing.T) {
		stub := &stubRepositoryOperations{}
		command, buildError := (&repos.RevisionCommandBuilder{OperationsProvider: operationsProviderFor(stub)}).Build()
		require.NoError(testInstance, buildError)

		_, executionError := executeCommand(command, []string{"--root", repositoryRoot, "--date", "2000-01-01"})
		require.ErrorIs(testInstance, executionError, gitrepo.ErrCommitNotFound)
	})

	testInstance.Run("date_required", func(testInstance *testing.T) {
		stub := &stubRepositoryOperations{}
		command, buildError := (&repos.CheckoutDateCommandBuilder{OperationsProvider: operationsProviderFor(stub)}).Build()
		require.NoError(testInstance, buildError)

		_, executionError := executeCommand(command, []string{"--root", repositoryRoot})
		require.Error(testInstance, executionError)
		require.Empty(testInstance, stub.operations)
	})

	testInstance.Run("operation_error_propagates", func(testInstance *testing.T) {
		operationFailure := errors.New("git exploded")
		stub := &stubRepositoryOperations{failure: operationFailure}
		command, buildError := (&repos.BranchCommandBuilder{OperationsProvider: operationsProviderFor(stub)}).Build()
		require.NoError(testInstance, buildError)

		_, executionError := executeCommand(command, []string{"--root", repositoryRoot})
		require.ErrorIs(testInstance, executionError, operationFailure)
	})

	testInstance.Run("missing_operations", func(testInstance *testing.T) {
		command, buildError := (&repos.DiffCommandBuilder{}).Build()
		require.NoError(testInstance, buildError)

		_, executionError := executeCommand(command, []string{commandsTestHashConstant})
		require.ErrorIs(testInstance, executionError, repos.ErrOperationsNotConfigured)
	})
}

func TestCommandSetBuilder(testInstance *testing.T) {
	builder := repos.CommandSetBuilder{}
	commands, buildError := builder.Build()
	require.NoError(testInstance, buildError)

	commandNames := make([]string, 0, len(commands))
	for _, command := range commands {
		commandNames = append(commandNames, command.Name())
	}
	require.Equal(testInstance, []string{"log", "shortlog", "checkout", "checkout-date", "revision", "branch", "blame", "diff", "clone", "checkstyle"}, commandNames)
}
