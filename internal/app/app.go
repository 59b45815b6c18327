// Package app wires repositories and services for the binaries under cmd/.
package app

import (
	"log/slog"
	"time"

	"github.com/policlinic/clinic-backend-go/internal/config"
	"github.com/policlinic/clinic-backend-go/internal/domain/commission"
	"github.com/policlinic/clinic-backend-go/internal/domain/expense"
	"github.com/policlinic/clinic-backend-go/internal/domain/income"
	"github.com/policlinic/clinic-backend-go/internal/domain/payroll"
	"github.com/policlinic/clinic-backend-go/internal/domain/report"
	"github.com/policlinic/clinic-backend-go/internal/domain/staff"
	"github.com/policlinic/clinic-backend-go/internal/domain/timesheet"
	"github.com/policlinic/clinic-backend-go/internal/pkg/database"
	"github.com/policlinic/clinic-backend-go/internal/repository/postgresql"
	commissionService "github.com/policlinic/clinic-backend-go/internal/service/commission"
	expenseService "github.com/policlinic/clinic-backend-go/internal/service/expense"
	incomeService "github.com/policlinic/clinic-backend-go/internal/service/income"
	payrollService "github.com/policlinic/clinic-backend-go/internal/service/payroll"
	reportService "github.com/policlinic/clinic-backend-go/internal/service/report"
	timesheetService "github.com/policlinic/clinic-backend-go/internal/service/timesheet"
)

type Services struct {
	Staff      staff.StaffRepository
	Settings   report.SettingsRepository
	Timesheet  timesheet.TimesheetService
	Commission commission.CommissionService
	Income     income.IncomeService
	Expense    expense.ExpenseService
	Payroll    payroll.PayrollService
	Report     report.ReportService
}

// NewServices builds every service on top of the PostgreSQL repositories.
func NewServices(db *database.DB, cfg config.PayrollConfig, logger *slog.Logger, now func() time.Time) *Services {
	tx := postgresql.NewTransactor(db)
	staffRepo := postgresql.NewStaffRepository(db)
	incomeRepo := postgresql.NewIncomeRepository(db)
	patientRepo := postgresql.NewPatientRepository(db)
	expenseRepo := postgresql.NewExpenseRepository(db)
	salaryRepo := postgresql.NewSalaryRepository(db)
	settingsRepo := postgresql.NewSettingsRepository(db)
	timesheetRepo := postgresql.NewTimesheetRepository(db)

	calculator := timesheetService.NewCalculator(cfg.RegularHoursPerDay, cfg.OvertimeMultiplier)
	timesheetSvc := timesheetService.NewTimesheetService(timesheetRepo, staffRepo, calculator, logger)
	payrollSvc := payrollService.NewPayrollService(tx, staffRepo, salaryRepo, timesheetSvc, logger, now)

	return &Services{
		Staff:      staffRepo,
		Settings:   settingsRepo,
		Timesheet:  timesheetSvc,
		Commission: commissionService.NewCommissionService(staffRepo, incomeRepo, now),
		Income:     incomeService.NewIncomeService(tx, incomeRepo, patientRepo, staffRepo, salaryRepo, logger),
		Expense:    expenseService.NewExpenseService(expenseRepo),
		Payroll:    payrollSvc,
		Report: reportService.NewReportService(
			staffRepo,
			incomeRepo,
			expenseRepo,
			salaryRepo,
			settingsRepo,
			timesheetSvc,
			payrollSvc,
			calculator,
			now,
		),
	}
}
