package main

import (
	"errors"
	"fmt"

	"github.com/policlinic/clinic-backend-go/internal/domain/report"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

func leaseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lease",
		Short: "Show or set the monthly lease cost shown on the clinic dashboard",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			services, closeDB, err := openServices(ctx)
			if err != nil {
				return err
			}
			defer closeDB()

			if len(args) == 0 {
				value, err := services.Settings.Get(ctx, report.SettingMonthlyLeaseCost)
				if errors.Is(err, report.ErrSettingNotFound) {
					fmt.Println(mutedStyle.Render("Monthly lease not set, counted as 0"))
					return nil
				}
				if err != nil {
					return fmt.Errorf("failed to get lease cost: %w", err)
				}
				fmt.Printf("%s %s\n", headerStyle.Render("Monthly lease:"), value)
				return nil
			}

			amount, err := decimal.NewFromString(args[0])
			if err != nil || amount.IsNegative() {
				return fmt.Errorf("lease cost must be a non-negative amount, got %q", args[0])
			}
			if err := services.Settings.Set(ctx, report.SettingMonthlyLeaseCost, amount.StringFixed(2)); err != nil {
				return fmt.Errorf("failed to set lease cost: %w", err)
			}

			fmt.Println(successStyle.Render("Monthly lease set to " + amount.StringFixed(2)))
			return nil
		},
	}

	return cmd
}
