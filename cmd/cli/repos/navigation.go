package repos

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/gitsense/internal/gitrepo"
	"github.com/temirov/gitsense/internal/query"
	flagutils "github.com/temirov/gitsense/internal/utils/flags"
)

const (
	checkoutUseConstant               = "checkout <hash>"
	checkoutShortDescription          = "Check out a commit by hash"
	checkoutDateUseConstant           = "checkout-date"
	checkoutDateShortDescription      = "Check out the last commit of a branch made on or before a day"
	checkoutDateLongDescription       = "checkout-date resolves the newest commit of --branch made no later than the end of --date and checks it out. With --query the repository root, branch and until_date come from the repository configuration unless the matching flags are set."
	revisionUseConstant               = "revision"
	revisionShortDescription          = "Print the last commit of a branch made before a day"
	revisionLongDescription           = "revision prints the hash of the newest commit of --branch made before --date starts. With --query the repository root, branch and until_date come from the repository configuration unless the matching flags are set."
	branchUseConstant                 = "branch"
	branchShortDescription            = "Print the checked-out branch"
	dateFlagNameConstant              = "date"
	checkoutDateFlagUsageConstant     = "Day (YYYY-MM-DD) whose end bounds the checkout"
	revisionDateFlagUsageConstant     = "Day (YYYY-MM-DD) whose start bounds the lookup"
	commitNotFoundErrorTemplate       = "%w on %s before %s"
	revisionDateLayoutConstant        = "2006-01-02"
	dateFlagRequiredErrorTemplate     = "--%s is required"
	checkoutHashArgumentIndexConstant = 0
	branchDateQueryFlagUsageConstant  = "YAML repository configuration supplying the root, branch and date not given as flags"
)

// CheckoutCommandBuilder assembles the checkout command.
type CheckoutCommandBuilder struct {
	LoggerProvider     LoggerProvider
	OperationsProvider OperationsProvider
}

// Build constructs the checkout command.
func (builder *CheckoutCommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   checkoutUseConstant,
		Short: checkoutShortDescription,
		Args:  cobra.ExactArgs(1),
	}

	repositoryFlags := flagutils.BindRepositoryFlags(command, flagutils.RepositoryFlagValues{Root: flagutils.DefaultRootValue}, flagutils.DefaultRepositoryFlagDefinitions(false))

	command.RunE = func(command *cobra.Command, arguments []string) error {
		operations, repositoryRoot, prepareError := prepareRepositoryOperation(command, builder.LoggerProvider, builder.OperationsProvider, repositoryFlags.Root)
		if prepareError != nil {
			return prepareError
		}
		return operations.Checkout(commandContext(command), repositoryRoot, arguments[checkoutHashArgumentIndexConstant])
	}

	return command, nil
}

// CheckoutDateCommandBuilder assembles the checkout-date command.
type CheckoutDateCommandBuilder struct {
	LoggerProvider     LoggerProvider
	OperationsProvider OperationsProvider
}

// Build constructs the checkout-date command.
func (builder *CheckoutDateCommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   checkoutDateUseConstant,
		Short: checkoutDateShortDescription,
		Long:  checkoutDateLongDescription,
		Args:  cobra.NoArgs,
	}

	options := bindBranchDateOptions(command, checkoutDateFlagUsageConstant)

	command.RunE = func(command *cobra.Command, arguments []string) error {
		target, resolveError := options.resolve(command, resolveLogger(builder.LoggerProvider))
		if resolveError != nil {
			return resolveError
		}
		operations, repositoryRoot, prepareError := prepareRepositoryOperation(command, builder.LoggerProvider, builder.OperationsProvider, target.rawRoot)
		if prepareError != nil {
			return prepareError
		}
		return operations.CheckoutToDate(commandContext(command), repositoryRoot, target.branch, target.date)
	}

	return command, nil
}

// RevisionCommandBuilder assembles the revision command.
type RevisionCommandBuilder struct {
	LoggerProvider     LoggerProvider
	OperationsProvider OperationsProvider
}

// Build constructs the revision command.
func (builder *RevisionCommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   revisionUseConstant,
		Short: revisionShortDescription,
		Long:  revisionLongDescription,
		Args:  cobra.NoArgs,
	}

	options := bindBranchDateOptions(command, revisionDateFlagUsageConstant)

	command.RunE = func(command *cobra.Command, arguments []string) error {
		target, resolveError := options.resolve(command, resolveLogger(builder.LoggerProvider))
		if resolveError != nil {
			return resolveError
		}
		operations, repositoryRoot, prepareError := prepareRepositoryOperation(command, builder.LoggerProvider, builder.OperationsProvider, target.rawRoot)
		if prepareError != nil {
			return prepareError
		}
		commitHash, lookupError := operations.CommitHashBeforeDate(commandContext(command), repositoryRoot, target.branch, target.date)
		if lookupError != nil {
			return lookupError
		}
		if len(commitHash) == 0 {
			return fmt.Errorf(commitNotFoundErrorTemplate, gitrepo.ErrCommitNotFound, target.branch, target.date.Format(revisionDateLayoutConstant))
		}
		return writeOutput(command.OutOrStdout(), commitHash)
	}

	return command, nil
}

type branchDateOptions struct {
	repository    *flagutils.RepositoryFlagValues
	date          **time.Time
	queryFilePath string
}

type branchDateTarget struct {
	rawRoot string
	branch  string
	date    *time.Time
}

func bindBranchDateOptions(command *cobra.Command, dateUsage string) *branchDateOptions {
	options := &branchDateOptions{
		repository: flagutils.BindRepositoryFlags(command, flagutils.RepositoryFlagValues{Root: flagutils.DefaultRootValue, Branch: flagutils.DefaultBranchValue}, flagutils.DefaultRepositoryFlagDefinitions(true)),
		date:       flagutils.BindDateFlag(command, dateFlagNameConstant, dateUsage),
	}
	command.Flags().StringVar(&options.queryFilePath, logQueryFlagName, "", branchDateQueryFlagUsageConstant)
	return options
}

// resolve layers explicitly set flags over the repository configuration named by --query.
func (options *branchDateOptions) resolve(command *cobra.Command, logger *zap.Logger) (branchDateTarget, error) {
	target := branchDateTarget{
		rawRoot: options.repository.Root,
		branch:  options.repository.Branch,
		date:    *options.date,
	}

	if len(strings.TrimSpace(options.queryFilePath)) > 0 {
		repositoryConfiguration, loadError := query.LoadRepositoryConfiguration(options.queryFilePath)
		if loadError != nil {
			return branchDateTarget{}, loadError
		}
		flagSet := command.Flags()
		if !flagSet.Changed(flagutils.DefaultRootFlagName) {
			target.rawRoot = repositoryConfiguration.RepositoryRoot
		}
		if !flagSet.Changed(flagutils.BranchFlagName) {
			target.branch = repositoryConfiguration.BranchOrDefault(target.branch)
		}
		if target.date == nil {
			target.date = repositoryConfiguration.UntilTime()
		}
		logger.Info(queryLoadedMessageConstant, zap.String(logFieldQueryFileConstant, options.queryFilePath))
	}

	if target.date == nil {
		return branchDateTarget{}, fmt.Errorf(dateFlagRequiredErrorTemplate, dateFlagNameConstant)
	}
	return target, nil
}

// BranchCommandBuilder assembles the branch command.
type BranchCommandBuilder struct {
	LoggerProvider     LoggerProvider
	OperationsProvider OperationsProvider
}

// Build constructs the branch command.
func (builder *BranchCommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   branchUseConstant,
		Short: branchShortDescription,
		Args:  cobra.NoArgs,
	}

	repositoryFlags := flagutils.BindRepositoryFlags(command, flagutils.RepositoryFlagValues{Root: flagutils.DefaultRootValue}, flagutils.DefaultRepositoryFlagDefinitions(false))

	command.RunE = func(command *cobra.Command, arguments []string) error {
		operations, repositoryRoot, prepareError := prepareRepositoryOperation(command, builder.LoggerProvider, builder.OperationsProvider, repositoryFlags.Root)
		if prepareError != nil {
			return prepareError
		}
		branchName, branchError := operations.CurrentBranch(commandContext(command), repositoryRoot)
		if branchError != nil {
			return branchError
		}
		return writeOutput(command.OutOrStdout(), branchName)
	}

	return command, nil
}
