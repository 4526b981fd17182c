package repos

import "github.com/spf13/cobra"

type commandBuilder interface {
	Build() (*cobra.Command, error)
}

// CommandSetBuilder assembles every repository command with shared collaborators.
type CommandSetBuilder struct {
	LoggerProvider             LoggerProvider
	OperationsProvider         OperationsProvider
	CloneConfigurationProvider func() CloneConfiguration
}

// Build constructs the repository commands in display order.
func (builder *CommandSetBuilder) Build() ([]*cobra.Command, error) {
	builders := []commandBuilder{
		&LogCommandBuilder{LoggerProvider: builder.LoggerProvider, OperationsProvider: builder.OperationsProvider},
		&ShortlogCommandBuilder{LoggerProvider: builder.LoggerProvider, OperationsProvider: builder.OperationsProvider},
		&CheckoutCommandBuilder{LoggerProvider: builder.LoggerProvider, OperationsProvider: builder.OperationsProvider},
		&CheckoutDateCommandBuilder{LoggerProvider: builder.LoggerProvider, OperationsProvider: builder.OperationsProvider},
		&RevisionCommandBuilder{LoggerProvider: builder.LoggerProvider, OperationsProvider: builder.OperationsProvider},
		&BranchCommandBuilder{LoggerProvider: builder.LoggerProvider, OperationsProvider: builder.OperationsProvider},
		&BlameCommandBuilder{LoggerProvider: builder.LoggerProvider, OperationsProvider: builder.OperationsProvider},
		&DiffCommandBuilder{LoggerProvider: builder.LoggerProvider, OperationsProvider: builder.OperationsProvider},
		&CloneCommandBuilder{LoggerProvider: builder.LoggerProvider, OperationsProvider: builder.OperationsProvider, ConfigurationProvider: builder.CloneConfigurationProvider},
		&CheckstyleCommandBuilder{LoggerProvider: builder.LoggerProvider, OperationsProvider: builder.OperationsProvider},
	}

	commands := make([]*cobra.Command, 0, len(builders))
	for _, candidate := range builders {
		command, buildError := candidate.Build()
		if buildError != nil {
			return nil, buildError
		}
		commands = append(commands, command)
	}
	return commands, nil
}
