package main

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/policlinic/clinic-backend-go/internal/domain/staff"
	"github.com/policlinic/clinic-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

func staffCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "staff",
		Short: "Manage staff members",
	}

	cmd.AddCommand(addStaffCmd())

	return cmd
}

func addStaffCmd() *cobra.Command {
	var (
		firstName string
		lastName  string
		email     string
		role      string
		rate      string
		salary    string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a staff member",
		Long: `Add a doctor, administrator or assistant.

Doctors take --commission-rate, defaulting to DOCTOR_COMMISSION_RATE. Administrators take their
monthly base salary and assistants their hourly rate through --salary.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			commissionRate := cfg.Payroll.DefaultCommissionRate
			if rate != "" {
				parsed, err := decimal.NewFromString(rate)
				if err != nil {
					return fmt.Errorf("invalid --commission-rate: %w", err)
				}
				commissionRate = parsed
			}
			baseSalary := decimal.Zero
			if salary != "" {
				parsed, err := decimal.NewFromString(salary)
				if err != nil {
					return fmt.Errorf("invalid --salary: %w", err)
				}
				baseSalary = parsed
			}

			r, err := staff.RoleFromColumns(role, baseSalary, commissionRate)
			if err != nil {
				return err
			}
			contact, err := optionalEmail(email)
			if err != nil {
				return err
			}

			services, closeDB, err := openServices(ctx)
			if err != nil {
				return err
			}
			defer closeDB()

			member, err := services.Staff.Create(ctx, staff.Member{
				ID:        uuid.NewString(),
				FirstName: firstName,
				LastName:  lastName,
				Email:     contact,
				Role:      r,
				IsActive:  true,
			})
			if err != nil {
				return fmt.Errorf("failed to create staff member: %w", err)
			}

			fmt.Println(successStyle.Render(fmt.Sprintf("Added %s %s (%s)", member.Role.Name(), member.FullName(), member.ID)))
			return nil
		},
	}

	cmd.Flags().StringVar(&firstName, "first-name", "", "First name (required)")
	cmd.Flags().StringVar(&lastName, "last-name", "", "Last name (required)")
	cmd.Flags().StringVar(&email, "email", "", "Contact email")
	cmd.Flags().StringVar(&role, "role", "", "doctor, administrator or assistant (required)")
	cmd.Flags().StringVar(&rate, "commission-rate", "", "Doctor commission rate between 0 and 1")
	cmd.Flags().StringVar(&salary, "salary", "", "Administrator base salary or assistant hourly rate")
	_ = cmd.MarkFlagRequired("first-name")
	_ = cmd.MarkFlagRequired("last-name")
	_ = cmd.MarkFlagRequired("role")

	return cmd
}

func optionalEmail(s string) (*string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	if !validator.IsValidEmail(s) {
		return nil, fmt.Errorf("invalid --email %q", s)
	}
	return &s, nil
}
