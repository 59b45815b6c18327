package report

import (
	"github.com/policlinic/clinic-backend-go/internal/domain/payroll"
	"github.com/policlinic/clinic-backend-go/internal/domain/staff"
	"github.com/policlinic/clinic-backend-go/internal/domain/timesheet"
	"github.com/shopspring/decimal"
)

// DailyPnL is one day of the profit and loss series.
type DailyPnL struct {
	Day          string          `json:"day"`
	TotalIncome  decimal.Decimal `json:"total_income"`
	TotalOutcome decimal.Decimal `json:"total_outcome"`
	PnL          decimal.Decimal `json:"pnl"`
}

type ClinicDashboard struct {
	From                 string                             `json:"from"`
	To                   string                             `json:"to"`
	LeaseCost            decimal.Decimal                    `json:"lease_cost"`
	AvgPaymentPerPatient decimal.Decimal                    `json:"avg_payment_per_patient"`
	AvgSalaryByRole      map[staff.RoleName]decimal.Decimal `json:"avg_salary_by_role"`
	AvgDoctorCommission  decimal.Decimal                    `json:"avg_doctor_commission"`
	TotalIncome          decimal.Decimal                    `json:"total_income"`
	TotalOutcome         decimal.Decimal                    `json:"total_outcome"`
	PnL                  decimal.Decimal                    `json:"pnl"`
	DailyPnL             []DailyPnL                         `json:"daily_pnl"`
}

type StaffDashboard struct {
	Staff         staff.StaffResponse            `json:"staff"`
	From          string                         `json:"from"`
	To            string                         `json:"to"`
	Days          []timesheet.DailyHoursResponse `json:"days"`
	TotalHours    decimal.Decimal                `json:"total_hours"`
	RegularHours  decimal.Decimal                `json:"regular_hours"`
	OvertimeHours decimal.Decimal                `json:"overtime_hours"`
	BaseRate      decimal.Decimal                `json:"base_rate"`
	OvertimeRate  decimal.Decimal                `json:"overtime_rate"`
	TotalPay      decimal.Decimal                `json:"total_pay"`
	Suggestion    payroll.SuggestionResponse     `json:"suggestion"`
	Payments      []payroll.PaymentResponse      `json:"payments"`
	TotalPaid     decimal.Decimal                `json:"total_paid"`
}

type IncomeSummary struct {
	From        string                     `json:"from"`
	To          string                     `json:"to"`
	TotalIncome decimal.Decimal            `json:"total_income"`
	VisitCount  int                        `json:"visit_count"`
	ByMethod    map[string]decimal.Decimal `json:"by_method"`
	Daily       []DailyIncome              `json:"daily"`
}

type DailyIncome struct {
	Day    string          `json:"day"`
	Income decimal.Decimal `json:"income"`
	Visits int             `json:"visits"`
}

type MonthlyOutcome struct {
	Month    string          `json:"month"`
	Expenses decimal.Decimal `json:"expenses"`
	Salaries decimal.Decimal `json:"salaries"`
	Total    decimal.Decimal `json:"total"`
}

type RangeRequest struct {
	From string
	To   string
}
