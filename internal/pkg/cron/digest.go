package cron

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/policlinic/clinic-backend-go/internal/domain/payroll"
	"github.com/policlinic/clinic-backend-go/internal/domain/period"
	"github.com/policlinic/clinic-backend-go/internal/domain/report"
	"github.com/policlinic/clinic-backend-go/internal/domain/staff"
	"github.com/shopspring/decimal"
)

// DigestJobs log the outstanding payroll and the previous day's result so operators
// can follow the clinic from the service logs.
type DigestJobs struct {
	staffRepo      staff.StaffRepository
	payrollService payroll.PayrollService
	reportService  report.ReportService
	logger         *slog.Logger
	now            func() time.Time
}

func NewDigestJobs(
	staffRepo staff.StaffRepository,
	payrollService payroll.PayrollService,
	reportService report.ReportService,
	logger *slog.Logger,
	now func() time.Time,
) *DigestJobs {
	if now == nil {
		now = time.Now
	}
	return &DigestJobs{
		staffRepo:      staffRepo,
		payrollService: payrollService,
		reportService:  reportService,
		logger:         logger,
		now:            now,
	}
}

func (j *DigestJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("outstanding_payroll_digest", 24*time.Hour, j.OutstandingPayroll)
	scheduler.AddJob("daily_pnl_digest", 24*time.Hour, j.PreviousDayPnL)
}

// OutstandingPayroll logs what is still owed month to date to each active non-doctor.
func (j *DigestJobs) OutstandingPayroll(ctx context.Context) error {
	_, err := j.outstandingPayroll(ctx)
	return err
}

func (j *DigestJobs) outstandingPayroll(ctx context.Context) (decimal.Decimal, error) {
	members, err := j.staffRepo.List(ctx, staff.ListFilter{})
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to list staff: %w", err)
	}

	r := period.MonthToDate(j.now())
	total := decimal.Zero
	owed := 0
	for _, m := range members {
		if m.IsDoctor() {
			continue
		}

		suggestion, err := j.payrollService.SuggestPayroll(ctx, m.ID, r.From, r.To)
		if err != nil {
			if errors.Is(err, payroll.ErrNotApplicable) || errors.Is(err, staff.ErrUnknownStaff) {
				continue
			}
			return decimal.Zero, fmt.Errorf("failed to suggest payroll for %s: %w", m.ID, err)
		}
		if !suggestion.Amount.IsPositive() {
			continue
		}

		owed++
		total = total.Add(suggestion.Amount)
		j.logger.InfoContext(ctx, "payroll outstanding",
			slog.String("staff_id", m.ID),
			slog.String("role", string(suggestion.Role)),
			slog.String("amount", suggestion.Amount.StringFixed(2)),
		)
	}

	j.logger.InfoContext(ctx, "outstanding payroll digest",
		slog.String("period", r.String()),
		slog.Int("staff_owed", owed),
		slog.String("total", total.StringFixed(2)),
	)
	return total, nil
}

// PreviousDayPnL logs yesterday's income, outcome and result.
func (j *DigestJobs) PreviousDayPnL(ctx context.Context) error {
	yesterday := period.Day(j.now()).AddDate(0, 0, -1)

	days, err := j.reportService.DailyPnL(ctx, yesterday, yesterday)
	if err != nil {
		return fmt.Errorf("failed to compute daily pnl: %w", err)
	}
	if len(days) != 1 {
		return fmt.Errorf("expected one pnl row for %s, got %d", period.DayKey(yesterday), len(days))
	}

	d := days[0]
	j.logger.InfoContext(ctx, "daily pnl digest",
		slog.String("day", d.Day),
		slog.String("income", d.TotalIncome.StringFixed(2)),
		slog.String("outcome", d.TotalOutcome.StringFixed(2)),
		slog.String("pnl", d.PnL.StringFixed(2)),
	)
	return nil
}
