package cli

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"plusultra/internal/domain/workout"
)

func newWorkoutCmd() *cobra.Command {
	var (
		times int
		limit int
	)
	cmd := &cobra.Command{
		Use:   "workout",
		Short: "Generate random workout plans",
		Long:  "Generate random workout plans. Attempts past the free limit print the locked plan.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if times < 1 {
				return fmt.Errorf("--times must be at least 1")
			}
			gen := workout.NewGenerator(limit, nil)
			out := cmd.OutOrStdout()
			for i := 1; i <= times; i++ {
				printPlan(out, i, gen.Generate())
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&times, "times", "n", 1, "Number of generation attempts")
	cmd.Flags().IntVar(&limit, "limit", workout.DefaultFreeGenerations, "Free generations before locking")
	return cmd
}

func printPlan(out io.Writer, attempt int, res workout.Result) {
	header := color.New(color.FgGreen, color.Bold)
	if res.Locked {
		header = color.New(color.FgRed, color.Bold)
	}
	header.Fprintf(out, "Workout %d\n", attempt)
	printField(out, "Focus", res.Plan.Focus)
	printField(out, "Warm-up", res.Plan.Warmup)
	printField(out, "Main", res.Plan.Main)
	printField(out, "Finisher", res.Plan.Finisher)
	if res.NowLocked {
		color.New(color.FgYellow).Fprintln(out, workout.UnlockLabel)
	}
}

func printField(out io.Writer, label, value string) {
	fmt.Fprintf(out, "  %s: %s\n", color.New(color.FgCyan).Sprint(label), value)
}
