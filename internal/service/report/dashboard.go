package report

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/policlinic/clinic-backend-go/internal/domain/payroll"
	"github.com/policlinic/clinic-backend-go/internal/domain/period"
	"github.com/policlinic/clinic-backend-go/internal/domain/report"
	"github.com/policlinic/clinic-backend-go/internal/domain/salary"
	"github.com/policlinic/clinic-backend-go/internal/domain/staff"
	"github.com/policlinic/clinic-backend-go/internal/domain/timesheet"
	timesheetsvc "github.com/policlinic/clinic-backend-go/internal/service/timesheet"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// ClinicDashboard computes its sections in parallel and fails as a whole if any fails.
func (s *ReportServiceImpl) ClinicDashboard(ctx context.Context, from, to *time.Time) (report.ClinicDashboard, error) {
	today := period.Day(s.now())
	start, end := period.MonthToDate(today).From, today
	if from != nil {
		start = *from
	}
	if to != nil {
		end = *to
	}
	r, err := period.New(start, end)
	if err != nil {
		return report.ClinicDashboard{}, err
	}

	var (
		leaseCost     decimal.Decimal
		avgPayment    decimal.Decimal
		avgSalary     map[staff.RoleName]decimal.Decimal
		avgCommission decimal.Decimal
		daily         []report.DailyPnL
	)

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		leaseCost, err = s.leaseCost(gCtx)
		return err
	})

	g.Go(func() error {
		var err error
		avgPayment, err = s.averagePaymentPerPatient(gCtx, r)
		return err
	})

	g.Go(func() error {
		var err error
		avgSalary, err = s.averageSalaryByRole(gCtx, r)
		return err
	})

	g.Go(func() error {
		var err error
		avgCommission, err = s.averageDoctorCommission(gCtx, r)
		return err
	})

	g.Go(func() error {
		var err error
		daily, err = s.dailyPnL(gCtx, r)
		return err
	})

	if err := g.Wait(); err != nil {
		return report.ClinicDashboard{}, err
	}

	totalIncome, totalOutcome := decimal.Zero, decimal.Zero
	for _, d := range daily {
		totalIncome = totalIncome.Add(d.TotalIncome)
		totalOutcome = totalOutcome.Add(d.TotalOutcome)
	}

	return report.ClinicDashboard{
		From:                 period.DayKey(r.From),
		To:                   period.DayKey(r.To),
		LeaseCost:            leaseCost,
		AvgPaymentPerPatient: avgPayment,
		AvgSalaryByRole:      avgSalary,
		AvgDoctorCommission:  avgCommission,
		TotalIncome:          totalIncome,
		TotalOutcome:         totalOutcome,
		PnL:                  totalIncome.Sub(totalOutcome),
		DailyPnL:             daily,
	}, nil
}

// StaffSelfDashboard is the composite view a non-doctor sees of their own pay.
func (s *ReportServiceImpl) StaffSelfDashboard(ctx context.Context, staffID string, from, to time.Time) (report.StaffDashboard, error) {
	r, err := period.New(from, to)
	if err != nil {
		return report.StaffDashboard{}, err
	}

	member, err := s.staffRepo.GetByID(ctx, staffID)
	if err != nil {
		if errors.Is(err, staff.ErrStaffNotFound) {
			return report.StaffDashboard{}, staff.ErrUnknownStaff
		}
		return report.StaffDashboard{}, fmt.Errorf("failed to get staff member: %w", err)
	}
	if member.IsDoctor() {
		return report.StaffDashboard{}, payroll.ErrNotApplicable
	}

	days, err := s.timesheetService.ComputeHours(ctx, member.ID, r.From, r.To)
	if err != nil {
		return report.StaffDashboard{}, err
	}
	totals := s.calculator.Totals(days)

	totalPay, err := s.payrollService.PeriodPay(ctx, member, r)
	if err != nil {
		return report.StaffDashboard{}, err
	}

	suggestion, err := s.payrollService.SuggestPayroll(ctx, member.ID, r.From, r.To)
	if err != nil {
		return report.StaffDashboard{}, err
	}

	payments, err := s.salaryRepo.List(ctx, salary.ListFilter{StaffID: &member.ID, From: &r.From, To: &r.To})
	if err != nil {
		return report.StaffDashboard{}, fmt.Errorf("failed to list salary payments: %w", err)
	}
	totalPaid := decimal.Zero
	paymentResponses := make([]payroll.PaymentResponse, 0, len(payments))
	for _, p := range payments {
		totalPaid = totalPaid.Add(p.Amount)
		paymentResponses = append(paymentResponses, payroll.NewPaymentResponse(p))
	}

	baseRate := timesheetsvc.HourlyRate(member.Role)

	return report.StaffDashboard{
		Staff:         staff.NewStaffResponse(member),
		From:          period.DayKey(r.From),
		To:            period.DayKey(r.To),
		Days:          timesheet.NewDailyHoursResponse(days),
		TotalHours:    totals.Hours,
		RegularHours:  totals.RegularHours,
		OvertimeHours: totals.OvertimeHours,
		BaseRate:      baseRate,
		OvertimeRate:  s.calculator.OvertimeRate(baseRate),
		TotalPay:      totalPay.Round(2),
		Suggestion:    payroll.NewSuggestionResponse(suggestion),
		Payments:      paymentResponses,
		TotalPaid:     totalPaid,
	}, nil
}
