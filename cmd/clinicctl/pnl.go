package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/policlinic/clinic-backend-go/internal/domain/period"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

func pnlCmd() *cobra.Command {
	var from, to string

	cmd := &cobra.Command{
		Use:   "pnl",
		Short: "Print the daily profit and loss series",
		Long:  `Print one row per day in the period with income, outcome and their difference, followed by totals.`,
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

			days, err := services.Report.DailyPnL(ctx, rng.From, rng.To)
			if err != nil {
				return fmt.Errorf("failed to compute daily pnl: %w", err)
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', tabwriter.AlignRight)
			defer w.Flush()

			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t\n",
				headerStyle.Render("Day"),
				headerStyle.Render("Income"),
				headerStyle.Render("Outcome"),
				headerStyle.Render("PnL"))
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t\n",
				strings.Repeat("-", 10),
				strings.Repeat("-", 12),
				strings.Repeat("-", 12),
				strings.Repeat("-", 12))

			totalIncome, totalOutcome := decimal.Zero, decimal.Zero
			for _, d := range days {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t\n", d.Day, d.TotalIncome.StringFixed(2), d.TotalOutcome.StringFixed(2), renderPnL(d.PnL))
				totalIncome = totalIncome.Add(d.TotalIncome)
				totalOutcome = totalOutcome.Add(d.TotalOutcome)
			}

			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t\n",
				headerStyle.Render("Total"),
				totalIncome.StringFixed(2),
				totalOutcome.StringFixed(2),
				renderPnL(totalIncome.Sub(totalOutcome)))
			return nil
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "Period start, YYYY-MM-DD (required)")
	cmd.Flags().StringVar(&to, "to", "", "Period end, YYYY-MM-DD (required)")
	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("to")

	return cmd
}

func renderPnL(d decimal.Decimal) string {
	switch {
	case d.IsNegative():
		return lossStyle.Render(d.StringFixed(2))
	case d.IsZero():
		return mutedStyle.Render(d.StringFixed(2))
	default:
		return d.StringFixed(2)
	}
}
