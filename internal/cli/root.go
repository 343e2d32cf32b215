// Package cli is the studio command tree.
package cli

import (
	"github.com/spf13/cobra"
)

// NewRootCmd builds the studio command and its subcommands.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "studio",
		Short:         "Plus Ultra Fitness studio site and tools",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(
		newServeCmd(),
		newRosterCmd(),
		newWorkoutCmd(),
		newProgressCmd(),
		newRegisterCmd(),
	)
	return root
}

// Execute runs the command tree against os.Args.
func Execute() error {
	return NewRootCmd().Execute()
}
