package commission

import (
	"context"
	"time"
)

type CommissionService interface {
	// DoctorStats totals a doctor's attributed income and commission over [from, to].
	DoctorStats(ctx context.Context, doctorID string, from, to time.Time) (DoctorStats, error)

	// LifetimeStats is DoctorStats from the epoch to today.
	LifetimeStats(ctx context.Context, doctorID string) (DoctorStats, error)

	// DoctorsByPatientSurname compares the doctors who treated patients whose last name
	// contains the query.
	DoctorsByPatientSurname(ctx context.Context, query PatientSurnameQuery) ([]DoctorComparison, error)

	DoctorOverview(ctx context.Context, doctorID string) (DoctorOverview, error)
	DoctorMonthly(ctx context.Context, doctorID string, from, to time.Time) ([]Bucket, error)
}
