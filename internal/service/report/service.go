package report

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/policlinic/clinic-backend-go/internal/domain/expense"
	"github.com/policlinic/clinic-backend-go/internal/domain/income"
	"github.com/policlinic/clinic-backend-go/internal/domain/payroll"
	"github.com/policlinic/clinic-backend-go/internal/domain/period"
	"github.com/policlinic/clinic-backend-go/internal/domain/report"
	"github.com/policlinic/clinic-backend-go/internal/domain/salary"
	"github.com/policlinic/clinic-backend-go/internal/domain/staff"
	"github.com/policlinic/clinic-backend-go/internal/domain/timesheet"
	commissionService "github.com/policlinic/clinic-backend-go/internal/service/commission"
	timesheetsvc "github.com/policlinic/clinic-backend-go/internal/service/timesheet"
	"github.com/shopspring/decimal"
)

type ReportServiceImpl struct {
	staffRepo        staff.StaffRepository
	incomeRepo       income.IncomeRepository
	expenseRepo      expense.ExpenseRepository
	salaryRepo       salary.SalaryRepository
	settingsRepo     report.SettingsRepository
	timesheetService timesheet.TimesheetService
	payrollService   payroll.PayrollService
	calculator       timesheetsvc.Calculator
	now              func() time.Time
}

func NewReportService(
	staffRepo staff.StaffRepository,
	incomeRepo income.IncomeRepository,
	expenseRepo expense.ExpenseRepository,
	salaryRepo salary.SalaryRepository,
	settingsRepo report.SettingsRepository,
	timesheetService timesheet.TimesheetService,
	payrollService payroll.PayrollService,
	calculator timesheetsvc.Calculator,
	now func() time.Time,
) report.ReportService {
	if now == nil {
		now = time.Now
	}
	return &ReportServiceImpl{
		staffRepo:        staffRepo,
		incomeRepo:       incomeRepo,
		expenseRepo:      expenseRepo,
		salaryRepo:       salaryRepo,
		settingsRepo:     settingsRepo,
		timesheetService: timesheetService,
		payrollService:   payrollService,
		calculator:       calculator,
		now:              now,
	}
}

// ========== PROFIT AND LOSS ==========

func (s *ReportServiceImpl) DailyPnL(ctx context.Context, from, to time.Time) ([]report.DailyPnL, error) {
	r, err := period.New(from, to)
	if err != nil {
		return nil, err
	}
	return s.dailyPnL(ctx, r)
}

func (s *ReportServiceImpl) dailyPnL(ctx context.Context, r period.Range) ([]report.DailyPnL, error) {
	records, err := s.incomeRepo.List(ctx, income.ListFilter{From: &r.From, To: &r.To})
	if err != nil {
		return nil, fmt.Errorf("failed to list income records: %w", err)
	}
	expenses, err := s.expenseRepo.List(ctx, r, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	payments, err := s.salaryRepo.List(ctx, salary.ListFilter{From: &r.From, To: &r.To})
	if err != nil {
		return nil, fmt.Errorf("failed to list salary payments: %w", err)
	}

	incomeByDay := make(map[string]decimal.Decimal)
	for _, rec := range records {
		k := period.DayKey(rec.ServiceDate)
		incomeByDay[k] = incomeByDay[k].Add(rec.Amount)
	}
	outcomeByDay := make(map[string]decimal.Decimal)
	for _, e := range expenses {
		k := period.DayKey(e.ExpenseDate)
		outcomeByDay[k] = outcomeByDay[k].Add(e.Amount)
	}
	for _, p := range payments {
		k := period.DayKey(p.PaymentDate)
		outcomeByDay[k] = outcomeByDay[k].Add(p.Amount)
	}

	days := make([]report.DailyPnL, 0, r.Days())
	r.EachDay(func(day time.Time) {
		k := period.DayKey(day)
		in := incomeByDay[k].Round(2)
		out := outcomeByDay[k].Round(2)
		days = append(days, report.DailyPnL{
			Day:          k,
			TotalIncome:  in,
			TotalOutcome: out,
			PnL:          in.Sub(out),
		})
	})
	return days, nil
}

// ========== AVERAGES ==========

func (s *ReportServiceImpl) AveragePaymentPerPatient(ctx context.Context, from, to time.Time) (decimal.Decimal, error) {
	r, err := period.New(from, to)
	if err != nil {
		return decimal.Zero, err
	}
	return s.averagePaymentPerPatient(ctx, r)
}

func (s *ReportServiceImpl) averagePaymentPerPatient(ctx context.Context, r period.Range) (decimal.Decimal, error) {
	records, err := s.incomeRepo.List(ctx, income.ListFilter{From: &r.From, To: &r.To})
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to list income records: %w", err)
	}

	total := decimal.Zero
	patients := make(map[string]struct{})
	for _, rec := range records {
		total = total.Add(rec.Amount)
		patients[rec.PatientID] = struct{}{}
	}
	if len(patients) == 0 {
		return decimal.Zero, nil
	}
	return total.Div(decimal.NewFromInt(int64(len(patients)))).Round(2), nil
}

func (s *ReportServiceImpl) AverageSalaryByRole(ctx context.Context, from, to time.Time) (map[staff.RoleName]decimal.Decimal, error) {
	r, err := period.New(from, to)
	if err != nil {
		return nil, err
	}
	return s.averageSalaryByRole(ctx, r)
}

func (s *ReportServiceImpl) averageSalaryByRole(ctx context.Context, r period.Range) (map[staff.RoleName]decimal.Decimal, error) {
	members, err := s.staffRepo.List(ctx, staff.ListFilter{})
	if err != nil {
		return nil, fmt.Errorf("failed to list staff: %w", err)
	}

	sums := make(map[staff.RoleName]decimal.Decimal)
	counts := make(map[staff.RoleName]int64)
	for _, m := range members {
		if m.IsDoctor() {
			continue
		}
		pay, err := s.payrollService.PeriodPay(ctx, m, r)
		if err != nil {
			return nil, err
		}
		role := m.Role.Name()
		sums[role] = sums[role].Add(pay)
		counts[role]++
	}

	avg := make(map[staff.RoleName]decimal.Decimal, len(sums))
	for role, sum := range sums {
		avg[role] = sum.Div(decimal.NewFromInt(counts[role])).Round(2)
	}
	return avg, nil
}

// averageDoctorCommission is the mean commission earned in r by each active doctor.
func (s *ReportServiceImpl) averageDoctorCommission(ctx context.Context, r period.Range) (decimal.Decimal, error) {
	role := staff.RoleDoctor
	doctors, err := s.staffRepo.List(ctx, staff.ListFilter{Role: &role})
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to list doctors: %w", err)
	}
	if len(doctors) == 0 {
		return decimal.Zero, nil
	}

	records, err := s.incomeRepo.List(ctx, income.ListFilter{From: &r.From, To: &r.To})
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to list income records: %w", err)
	}
	incomeByDoctor := make(map[string]decimal.Decimal)
	for _, rec := range records {
		incomeByDoctor[rec.DoctorID] = incomeByDoctor[rec.DoctorID].Add(rec.Amount)
	}

	total := decimal.Zero
	for _, d := range doctors {
		doctor, ok := d.AsDoctor()
		if !ok {
			continue
		}
		total = total.Add(commissionService.Commission(incomeByDoctor[d.ID], doctor.CommissionRate))
	}
	return total.Div(decimal.NewFromInt(int64(len(doctors)))).Round(2), nil
}

// ========== SUMMARIES ==========

func (s *ReportServiceImpl) IncomeSummary(ctx context.Context, from, to time.Time) (report.IncomeSummary, error) {
	r, err := period.New(from, to)
	if err != nil {
		return report.IncomeSummary{}, err
	}

	records, err := s.incomeRepo.List(ctx, income.ListFilter{From: &r.From, To: &r.To})
	if err != nil {
		return report.IncomeSummary{}, fmt.Errorf("failed to list income records: %w", err)
	}

	summary := report.IncomeSummary{
		From:        period.DayKey(r.From),
		To:          period.DayKey(r.To),
		TotalIncome: decimal.Zero,
		VisitCount:  len(records),
		ByMethod: map[string]decimal.Decimal{
			string(income.PaymentMethodCash): decimal.Zero,
			string(income.PaymentMethodCard): decimal.Zero,
		},
	}

	type dayTotal struct {
		income decimal.Decimal
		visits int
	}
	byDay := make(map[string]dayTotal)
	for _, rec := range records {
		summary.TotalIncome = summary.TotalIncome.Add(rec.Amount)
		summary.ByMethod[string(rec.PaymentMethod)] = summary.ByMethod[string(rec.PaymentMethod)].Add(rec.Amount)

		k := period.DayKey(rec.ServiceDate)
		d := byDay[k]
		d.income = d.income.Add(rec.Amount)
		d.visits++
		byDay[k] = d
	}

	summary.Daily = make([]report.DailyIncome, 0, r.Days())
	r.EachDay(func(day time.Time) {
		k := period.DayKey(day)
		summary.Daily = append(summary.Daily, report.DailyIncome{
			Day:    k,
			Income: byDay[k].income.Round(2),
			Visits: byDay[k].visits,
		})
	})
	return summary, nil
}

func (s *ReportServiceImpl) MonthlyOutcome(ctx context.Context, from, to time.Time) ([]report.MonthlyOutcome, error) {
	r, err := period.New(from, to)
	if err != nil {
		return nil, err
	}

	expenses, err := s.expenseRepo.List(ctx, r, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	payments, err := s.salaryRepo.List(ctx, salary.ListFilter{From: &r.From, To: &r.To})
	if err != nil {
		return nil, fmt.Errorf("failed to list salary payments: %w", err)
	}

	expensesByMonth := make(map[string]decimal.Decimal)
	for _, e := range expenses {
		k := period.MonthKey(e.ExpenseDate)
		expensesByMonth[k] = expensesByMonth[k].Add(e.Amount)
	}
	salariesByMonth := make(map[string]decimal.Decimal)
	for _, p := range payments {
		k := period.MonthKey(p.PaymentDate)
		salariesByMonth[k] = salariesByMonth[k].Add(p.Amount)
	}

	months := r.Months()
	out := make([]report.MonthlyOutcome, 0, len(months))
	for _, k := range months {
		exp := expensesByMonth[k].Round(2)
		sal := salariesByMonth[k].Round(2)
		out = append(out, report.MonthlyOutcome{Month: k, Expenses: exp, Salaries: sal, Total: exp.Add(sal)})
	}
	return out, nil
}

// leaseCost reads the monthly lease setting. An unset lease counts as zero.
func (s *ReportServiceImpl) leaseCost(ctx context.Context) (decimal.Decimal, error) {
	raw, err := s.settingsRepo.Get(ctx, report.SettingMonthlyLeaseCost)
	if err != nil {
		if errors.Is(err, report.ErrSettingNotFound) {
			return decimal.Zero, nil
		}
		return decimal.Zero, fmt.Errorf("failed to get lease cost: %w", err)
	}
	cost, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid %s setting %q: %w", report.SettingMonthlyLeaseCost, raw, err)
	}
	return cost.Round(2), nil
}
