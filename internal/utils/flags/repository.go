package flags

import "github.com/spf13/cobra"

const (
	// DefaultRootFlagName exposes the shared repository root flag name.
	DefaultRootFlagName = "root"
	// DefaultRootFlagUsage describes the shared repository root flag purpose.
	DefaultRootFlagUsage = "Repository checkout to operate on"
	// DefaultRootValue is the repository root used when the flag is omitted.
	DefaultRootValue = "."
	// BranchFlagName exposes the shared branch flag name.
	BranchFlagName = "branch"
	// BranchFlagUsage describes the shared branch flag purpose.
	BranchFlagUsage = "Branch whose history is searched"
	// DefaultBranchValue is the branch searched when the flag is omitted.
	DefaultBranchValue = "master"
)

// RepositoryFlagDefinition captures configuration for a repository context flag.
type RepositoryFlagDefinition struct {
	Name    string
	Usage   string
	Enabled bool
}

// RepositoryFlagDefinitions groups the root and branch flag definitions.
type RepositoryFlagDefinitions struct {
	Root   RepositoryFlagDefinition
	Branch RepositoryFlagDefinition
}

// RepositoryFlagValues stores repository context flag values.
type RepositoryFlagValues struct {
	Root   string
	Branch string
}

// DefaultRepositoryFlagDefinitions enables the root flag and, when withBranch is set, the branch flag.
func DefaultRepositoryFlagDefinitions(withBranch bool) RepositoryFlagDefinitions {
	return RepositoryFlagDefinitions{
		Root:   RepositoryFlagDefinition{Name: DefaultRootFlagName, Usage: DefaultRootFlagUsage, Enabled: true},
		Branch: RepositoryFlagDefinition{Name: BranchFlagName, Usage: BranchFlagUsage, Enabled: withBranch},
	}
}

// BindRepositoryFlags attaches repository context flags to the provided command.
func BindRepositoryFlags(command *cobra.Command, defaults RepositoryFlagValues, definitions RepositoryFlagDefinitions) *RepositoryFlagValues {
	values := defaults
	if command == nil {
		return &values
	}

	flagSet := command.Flags()
	if definitions.Root.Enabled && len(definitions.Root.Name) > 0 && flagSet.Lookup(definitions.Root.Name) == nil {
		flagSet.StringVar(&values.Root, definitions.Root.Name, defaults.Root, definitions.Root.Usage)
	}
	if definitions.Branch.Enabled && len(definitions.Branch.Name) > 0 && flagSet.Lookup(definitions.Branch.Name) == nil {
		flagSet.StringVar(&values.Branch, definitions.Branch.Name, defaults.Branch, definitions.Branch.Usage)
	}

	return &values
}
