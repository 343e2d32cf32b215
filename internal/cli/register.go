package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"plusultra/internal/domain/registration"
)

// errInvalidRegistration is returned after the field errors have been printed.
var errInvalidRegistration = errors.New("registration is invalid")

func newRegisterCmd() *cobra.Command {
	var fs registration.Fields
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Validate a membership registration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			res := registration.Validate(fs, time.Now())
			if res.Valid {
				color.New(color.FgGreen, color.Bold).Fprintln(out, res.Message())
				return nil
			}

			color.New(color.FgRed, color.Bold).Fprintln(out, res.Message())
			for _, f := range registration.AllFields {
				if msg, ok := res.Errors[f]; ok {
					fmt.Fprintf(out, "  %s: %s\n", color.New(color.FgYellow).Sprint(string(f)), msg)
				}
			}
			return errInvalidRegistration
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&fs.FullName, "full-name", "", "Full name")
	flags.StringVar(&fs.Email, "email", "", "Email address")
	flags.StringVar(&fs.Phone, "phone", "", "Phone number, e.g. 347-123-4567")
	flags.StringVar(&fs.Age, "age", "", "Age (13-90)")
	flags.StringVar(&fs.MembershipType, "membership", "", "Membership type: basic, plus, elite, student, family")
	flags.StringVar(&fs.StartDate, "start-date", time.Now().Format(registration.DateLayout), "Start date (YYYY-MM-DD)")
	flags.StringVar(&fs.EmergencyContact, "emergency-contact", "", "Emergency contact")
	flags.StringVar(&fs.Experience, "experience", "", "Experience level: beginner, intermediate, advanced")
	flags.StringVar(&fs.Goals, "goals", "", "Fitness goals")
	return cmd
}
