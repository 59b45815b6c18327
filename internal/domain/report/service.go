package report

import (
	"context"
	"time"

	"github.com/policlinic/clinic-backend-go/internal/domain/staff"
	"github.com/shopspring/decimal"
)

// ReportService builds read-only views recomputed from stored events on every call.
type ReportService interface {
	// DailyPnL returns one row per day in [from, to], including days without activity.
	DailyPnL(ctx context.Context, from, to time.Time) ([]DailyPnL, error)

	AveragePaymentPerPatient(ctx context.Context, from, to time.Time) (decimal.Decimal, error)

	// AverageSalaryByRole averages active non-doctor period pay by role. Empty roles are omitted.
	AverageSalaryByRole(ctx context.Context, from, to time.Time) (map[staff.RoleName]decimal.Decimal, error)

	// ClinicDashboard defaults to the current month up to today when from or to is nil.
	ClinicDashboard(ctx context.Context, from, to *time.Time) (ClinicDashboard, error)

	StaffSelfDashboard(ctx context.Context, staffID string, from, to time.Time) (StaffDashboard, error)

	IncomeSummary(ctx context.Context, from, to time.Time) (IncomeSummary, error)
	MonthlyOutcome(ctx context.Context, from, to time.Time) ([]MonthlyOutcome, error)
}
