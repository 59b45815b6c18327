package main

import (
	"fmt"

	"github.com/policlinic/clinic-backend-go/internal/domain/payroll"
	"github.com/policlinic/clinic-backend-go/internal/domain/period"
	"github.com/spf13/cobra"
)

func suggestCmd() *cobra.Command {
	var (
		staffID string
		from    string
		to      string
		accept  bool
	)

	cmd := &cobra.Command{
		Use:   "suggest",
		Short: "Suggest the payroll still owed to a staff member",
		Long: `Compute the salary still owed to an administrator or assistant over a period:
pay earned for the period minus the salary payments already made in it.

With --accept the suggestion is recorded as a salary payment.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			rng, err := period.Parse(from, to)
			if err != nil {
				return err
			}

			services, closeDB, err := openServices(ctx)
			if err != nil {
				return err
			}
			defer closeDB()

			if accept {
				result, err := services.Payroll.AcceptSuggestion(ctx, payroll.AcceptSuggestionRequest{
					StaffID: staffID,
					From:    from,
					To:      to,
				})
				if err != nil {
					return err
				}
				printSuggestion(result.Suggestion)
				fmt.Println(successStyle.Render(fmt.Sprintf("Recorded payment %s of %s on %s",
					result.Payment.ID, result.Payment.Amount.StringFixed(2), result.Payment.PaymentDate)))
				return nil
			}

			suggestion, err := services.Payroll.SuggestPayroll(ctx, staffID, rng.From, rng.To)
			if err != nil {
				return err
			}
			printSuggestion(payroll.NewSuggestionResponse(suggestion))
			return nil
		},
	}

	cmd.Flags().StringVar(&staffID, "staff", "", "Staff member ID (required)")
	cmd.Flags().StringVar(&from, "from", "", "Period start, YYYY-MM-DD (required)")
	cmd.Flags().StringVar(&to, "to", "", "Period end, YYYY-MM-DD (required)")
	cmd.Flags().BoolVar(&accept, "accept", false, "Record the suggestion as a salary payment")
	_ = cmd.MarkFlagRequired("staff")
	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("to")

	return cmd
}

func printSuggestion(s payroll.SuggestionResponse) {
	fmt.Printf("%s %s (%s)\n", headerStyle.Render("Staff:"), s.StaffID, s.Role)
	fmt.Printf("%s %s .. %s\n", headerStyle.Render("Period:"), s.From, s.To)
	fmt.Printf("  Earned:        %s\n", s.Earned.StringFixed(2))
	fmt.Printf("  Already paid:  %s\n", s.AlreadyPaid.StringFixed(2))
	fmt.Printf("  %s %s\n", headerStyle.Render("Suggested:    "), s.Amount.StringFixed(2))
}
