package cli

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"plusultra/internal/domain/progress"
)

// barWidth is the number of cells in the terminal progress bar.
const barWidth = 20

func newProgressCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "progress <completed>",
		Short: fmt.Sprintf("Show weekly progress toward %d sessions", progress.Goal),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			res := progress.Update(args[0])
			if !res.Valid {
				color.New(color.FgRed).Fprintln(out, res.Message)
				return fmt.Errorf("invalid completed sessions %q", args[0])
			}

			filled := res.Percent * barWidth / 100
			bar := strings.Repeat("█", filled) + strings.Repeat("░", barWidth-filled)
			fmt.Fprintf(out, "%s %s/%d\n", color.New(color.FgCyan).Sprint(bar), res.Display(), progress.Goal)
			tierColor(res).Fprintln(out, res.Message)
			return nil
		},
	}
}

func tierColor(res progress.Result) *color.Color {
	switch res.Value {
	case 0:
		return color.New(color.FgYellow)
	case progress.Goal:
		return color.New(color.FgGreen, color.Bold)
	default:
		return color.New(color.FgGreen)
	}
}
