package cli

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"plusultra/internal/domain/roster"
)

func newRosterCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "roster",
		Short: "Show today's coaches",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			color.New(color.FgGreen, color.Bold).Fprintln(out, roster.Header)
			for _, c := range roster.Team {
				fmt.Fprintf(out, "• %s — %s\n", color.New(color.FgMagenta, color.Bold).Sprint(c.Name), c.Specialty)
			}
			return nil
		},
	}
}
