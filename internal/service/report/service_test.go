package report

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/policlinic/clinic-backend-go/internal/domain/expense"
	"github.com/policlinic/clinic-backend-go/internal/domain/income"
	"github.com/policlinic/clinic-backend-go/internal/domain/payroll"
	"github.com/policlinic/clinic-backend-go/internal/domain/period"
	"github.com/policlinic/clinic-backend-go/internal/domain/report"
	"github.com/policlinic/clinic-backend-go/internal/domain/salary"
	"github.com/policlinic/clinic-backend-go/internal/domain/staff"
	"github.com/policlinic/clinic-backend-go/internal/domain/timesheet"
	"github.com/policlinic/clinic-backend-go/internal/repository/memory"
	payrollService "github.com/policlinic/clinic-backend-go/internal/service/payroll"
	timesheetsvc "github.com/policlinic/clinic-backend-go/internal/service/timesheet"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2024, 6, 15, 10, 0, 0, 0, time.UTC)

func assertDecimal(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.Truef(t, decimal.RequireFromString(want).Equal(got), "want %s, got %s", want, got.String())
}

func date(s string) time.Time {
	d, err := time.Parse(time.DateOnly, s)
	if err != nil {
		panic(err)
	}
	return d
}

type reportFixture struct {
	service      report.ReportService
	staffRepo    staff.StaffRepository
	incomeRepo   income.IncomeRepository
	patientRepo  income.PatientRepository
	expenseRepo  expense.ExpenseRepository
	salaryRepo   salary.SalaryRepository
	settingsRepo report.SettingsRepository
	timesheets   timesheet.TimesheetService
}

func newReportFixture(t *testing.T) *reportFixture {
	t.Helper()
	logger := slog.New(slog.DiscardHandler)
	now := func() time.Time { return fixedNow }
	store := memory.NewStore()
	f := &reportFixture{
		staffRepo:    memory.NewStaffRepository(store),
		incomeRepo:   memory.NewIncomeRepository(store),
		patientRepo:  memory.NewPatientRepository(store),
		expenseRepo:  memory.NewExpenseRepository(store),
		salaryRepo:   memory.NewSalaryRepository(store),
		settingsRepo: memory.NewSettingsRepository(store),
	}
	calculator := timesheetsvc.DefaultCalculator()
	f.timesheets = timesheetsvc.NewTimesheetService(memory.NewTimesheetRepository(store), f.staffRepo, calculator, logger)
	payrollSvc := payrollService.NewPayrollService(store, f.staffRepo, f.salaryRepo, f.timesheets, logger, now)
	f.service = NewReportService(f.staffRepo, f.incomeRepo, f.expenseRepo, f.salaryRepo, f.settingsRepo, f.timesheets, payrollSvc, calculator, now)
	return f
}

// seedJune loads a small clinic month: two doctors, two administrators and one assistant.
func (f *reportFixture) seedJune(t *testing.T) {
	t.Helper()
	ctx := context.Background()

	for _, m := range []staff.Member{
		{ID: "doc-1", FirstName: "Ana", LastName: "Kovac", Role: staff.Doctor{CommissionRate: decimal.RequireFromString("0.30")}, IsActive: true},
		{ID: "doc-2", FirstName: "Ivo", LastName: "Peric", Role: staff.Doctor{CommissionRate: decimal.RequireFromString("0.10")}, IsActive: true},
		{ID: "admin-1", FirstName: "Iva", LastName: "Babic", Role: staff.Administrator{BaseSalary: decimal.NewFromInt(3000)}, IsActive: true},
		{ID: "admin-2", FirstName: "Luka", LastName: "Maric", Role: staff.Administrator{BaseSalary: decimal.NewFromInt(4000)}, IsActive: true},
		{ID: "admin-old", FirstName: "Old", LastName: "Timer", Role: staff.Administrator{BaseSalary: decimal.NewFromInt(9000)}, IsActive: false},
		{ID: "as-1", FirstName: "Mia", LastName: "Juric", Role: staff.Assistant{HourlyRate: decimal.NewFromInt(100)}, IsActive: true},
	} {
		_, err := f.staffRepo.Create(ctx, m)
		require.NoError(t, err)
	}

	for _, p := range []income.Patient{{ID: "p-1", LastName: "Horvat"}, {ID: "p-2", LastName: "Novak"}} {
		_, err := f.patientRepo.Create(ctx, p)
		require.NoError(t, err)
	}
	for i, rec := range []income.Record{
		{DoctorID: "doc-1", PatientID: "p-1", Amount: decimal.NewFromInt(1000), PaymentMethod: income.PaymentMethodCash, ServiceDate: date("2024-06-03")},
		{DoctorID: "doc-1", PatientID: "p-2", Amount: decimal.NewFromInt(500), PaymentMethod: income.PaymentMethodCash, ServiceDate: date("2024-06-05")},
		{DoctorID: "doc-2", PatientID: "p-1", Amount: decimal.NewFromInt(300), PaymentMethod: income.PaymentMethodCard, ServiceDate: date("2024-06-05")},
	} {
		rec.ID = "income-" + string(rune('a'+i))
		_, err := f.incomeRepo.Create(ctx, rec)
		require.NoError(t, err)
	}

	_, err := f.expenseRepo.CreateCategory(ctx, expense.Category{ID: "cat-1", Name: "Supplies"})
	require.NoError(t, err)
	_, err = f.expenseRepo.Create(ctx, expense.Record{ID: "exp-1", CategoryID: "cat-1", Amount: decimal.NewFromInt(200), ExpenseDate: date("2024-06-05")})
	require.NoError(t, err)

	_, err = f.salaryRepo.Create(ctx, salary.Payment{ID: "pay-1", StaffID: "admin-1", Amount: decimal.NewFromInt(1000), PaymentDate: date("2024-06-10"), Kind: salary.KindSalary})
	require.NoError(t, err)

	_, err = f.timesheets.Create(ctx, timesheet.CreateEntryRequest{StaffID: "as-1", WorkDate: "2024-06-03", StartTime: "08:00", EndTime: "18:00"})
	require.NoError(t, err)
}

func TestReportService_DailyPnL_DenseSeries(t *testing.T) {
	f := newReportFixture(t)
	f.seedJune(t)

	// Act
	days, err := f.service.DailyPnL(context.Background(), date("2024-06-01"), date("2024-06-10"))

	// Assert
	require.NoError(t, err)
	require.Len(t, days, 10)
	assert.Equal(t, "2024-06-01", days[0].Day)
	assert.Equal(t, "2024-06-10", days[9].Day)

	assertDecimal(t, "0", days[1].TotalIncome)
	assertDecimal(t, "0", days[1].PnL)
	assertDecimal(t, "1000", days[2].TotalIncome)
	assertDecimal(t, "800", days[4].TotalIncome)
	assertDecimal(t, "200", days[4].TotalOutcome)
	assertDecimal(t, "600", days[4].PnL)
	assertDecimal(t, "-1000", days[9].PnL)

	for _, d := range days {
		assert.True(t, d.PnL.Equal(d.TotalIncome.Sub(d.TotalOutcome)))
	}
}

func TestReportService_DailyPnL_LengthMatchesRange(t *testing.T) {
	f := newReportFixture(t)

	tests := []struct {
		from string
		to   string
		want int
	}{
		{"2024-06-01", "2024-06-01", 1},
		{"2024-02-01", "2024-03-01", 30},
		{"2023-02-01", "2023-03-01", 29},
		{"2023-12-25", "2024-01-05", 12},
		{"2024-01-01", "2024-12-31", 366},
	}
	for _, tt := range tests {
		t.Run(tt.from+".."+tt.to, func(t *testing.T) {
			days, err := f.service.DailyPnL(context.Background(), date(tt.from), date(tt.to))
			require.NoError(t, err)
			assert.Len(t, days, tt.want)
		})
	}
}

func TestReportService_DailyPnL_InvertedRange(t *testing.T) {
	f := newReportFixture(t)

	_, err := f.service.DailyPnL(context.Background(), date("2024-06-10"), date("2024-06-01"))

	assert.ErrorIs(t, err, period.ErrInvalidRange)
}

func TestReportService_AveragePaymentPerPatient(t *testing.T) {
	ctx := context.Background()
	f := newReportFixture(t)
	f.seedJune(t)

	avg, err := f.service.AveragePaymentPerPatient(ctx, date("2024-06-01"), date("2024-06-30"))
	require.NoError(t, err)
	assertDecimal(t, "900", avg)

	empty, err := f.service.AveragePaymentPerPatient(ctx, date("2024-07-01"), date("2024-07-31"))
	require.NoError(t, err)
	assertDecimal(t, "0", empty)
}

func TestReportService_AverageSalaryByRole(t *testing.T) {
	f := newReportFixture(t)
	f.seedJune(t)

	avg, err := f.service.AverageSalaryByRole(context.Background(), date("2024-06-01"), date("2024-06-30"))

	require.NoError(t, err)
	require.Len(t, avg, 2)
	assertDecimal(t, "3500", avg[staff.RoleAdministrator])
	assertDecimal(t, "1100", avg[staff.RoleAssistant])
	_, hasDoctor := avg[staff.RoleDoctor]
	assert.False(t, hasDoctor)
}

func TestReportService_AverageSalaryByRole_NoStaff(t *testing.T) {
	f := newReportFixture(t)

	avg, err := f.service.AverageSalaryByRole(context.Background(), date("2024-06-01"), date("2024-06-30"))

	require.NoError(t, err)
	assert.Empty(t, avg)
}

func TestReportService_ClinicDashboard_DefaultsToMonthToDate(t *testing.T) {
	ctx := context.Background()
	f := newReportFixture(t)
	f.seedJune(t)
	require.NoError(t, f.settingsRepo.Set(ctx, report.SettingMonthlyLeaseCost, "1500"))

	// Act
	dashboard, err := f.service.ClinicDashboard(ctx, nil, nil)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "2024-06-01", dashboard.From)
	assert.Equal(t, "2024-06-15", dashboard.To)
	assert.Len(t, dashboard.DailyPnL, 15)
	assertDecimal(t, "1500", dashboard.LeaseCost)
	assertDecimal(t, "900", dashboard.AvgPaymentPerPatient)
	assertDecimal(t, "240", dashboard.AvgDoctorCommission)
	assertDecimal(t, "3500", dashboard.AvgSalaryByRole[staff.RoleAdministrator])
	assertDecimal(t, "1800", dashboard.TotalIncome)
	assertDecimal(t, "1200", dashboard.TotalOutcome)
	assertDecimal(t, "600", dashboard.PnL)
}

func TestReportService_ClinicDashboard_EmptyClinic(t *testing.T) {
	from := date("2024-01-01")
	to := date("2024-01-31")
	f := newReportFixture(t)

	dashboard, err := f.service.ClinicDashboard(context.Background(), &from, &to)

	require.NoError(t, err)
	assertDecimal(t, "0", dashboard.LeaseCost)
	assertDecimal(t, "0", dashboard.AvgPaymentPerPatient)
	assertDecimal(t, "0", dashboard.AvgDoctorCommission)
	assert.Empty(t, dashboard.AvgSalaryByRole)
	assert.Len(t, dashboard.DailyPnL, 31)
}

func TestReportService_ClinicDashboard_BadLeaseSetting(t *testing.T) {
	ctx := context.Background()
	f := newReportFixture(t)
	require.NoError(t, f.settingsRepo.Set(ctx, report.SettingMonthlyLeaseCost, "a lot"))

	_, err := f.service.ClinicDashboard(ctx, nil, nil)

	assert.Error(t, err)
}

func TestReportService_StaffSelfDashboard(t *testing.T) {
	ctx := context.Background()
	f := newReportFixture(t)
	f.seedJune(t)
	_, err := f.salaryRepo.Create(ctx, salary.Payment{ID: "pay-as", StaffID: "as-1", Amount: decimal.NewFromInt(100), PaymentDate: date("2024-06-20"), Kind: salary.KindSalary})
	require.NoError(t, err)

	// Act
	dashboard, err := f.service.StaffSelfDashboard(ctx, "as-1", date("2024-06-01"), date("2024-06-30"))

	// Assert
	require.NoError(t, err)
	assert.Equal(t, staff.RoleAssistant, dashboard.Staff.Role)
	require.Len(t, dashboard.Days, 1)
	assertDecimal(t, "10", dashboard.TotalHours)
	assertDecimal(t, "8", dashboard.RegularHours)
	assertDecimal(t, "2", dashboard.OvertimeHours)
	assertDecimal(t, "100", dashboard.BaseRate)
	assertDecimal(t, "150", dashboard.OvertimeRate)
	assertDecimal(t, "1100", dashboard.TotalPay)
	assertDecimal(t, "1000", dashboard.Suggestion.Amount)
	assertDecimal(t, "100", dashboard.TotalPaid)
	require.Len(t, dashboard.Payments, 1)
}

func TestReportService_StaffSelfDashboard_Administrator(t *testing.T) {
	f := newReportFixture(t)
	f.seedJune(t)

	dashboard, err := f.service.StaffSelfDashboard(context.Background(), "admin-1", date("2024-06-01"), date("2024-06-30"))

	require.NoError(t, err)
	assert.Empty(t, dashboard.Days)
	assertDecimal(t, "3000", dashboard.TotalPay)
	assertDecimal(t, "2000", dashboard.Suggestion.Amount)
	assertDecimal(t, "0", dashboard.BaseRate)
}

func TestReportService_StaffSelfDashboard_Rejections(t *testing.T) {
	f := newReportFixture(t)
	f.seedJune(t)

	tests := []struct {
		name    string
		staffID string
		wantErr error
	}{
		{"doctor", "doc-1", payroll.ErrNotApplicable},
		{"missing", "nobody", staff.ErrUnknownStaff},
		{"inactive", "admin-old", staff.ErrUnknownStaff},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.service.StaffSelfDashboard(context.Background(), tt.staffID, date("2024-06-01"), date("2024-06-30"))
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestReportService_IncomeSummary(t *testing.T) {
	f := newReportFixture(t)
	f.seedJune(t)

	summary, err := f.service.IncomeSummary(context.Background(), date("2024-06-01"), date("2024-06-05"))

	require.NoError(t, err)
	assertDecimal(t, "1800", summary.TotalIncome)
	assert.Equal(t, 3, summary.VisitCount)
	assertDecimal(t, "1500", summary.ByMethod["cash"])
	assertDecimal(t, "300", summary.ByMethod["card"])
	require.Len(t, summary.Daily, 5)
	assert.Equal(t, 2, summary.Daily[4].Visits)
	assertDecimal(t, "0", summary.Daily[0].Income)
}

func TestReportService_MonthlyOutcome(t *testing.T) {
	f := newReportFixture(t)
	f.seedJune(t)

	months, err := f.service.MonthlyOutcome(context.Background(), date("2024-05-15"), date("2024-07-01"))

	require.NoError(t, err)
	require.Len(t, months, 3)
	assert.Equal(t, "2024-05", months[0].Month)
	assertDecimal(t, "0", months[0].Total)
	assertDecimal(t, "200", months[1].Expenses)
	assertDecimal(t, "1000", months[1].Salaries)
	assertDecimal(t, "1200", months[1].Total)
}
