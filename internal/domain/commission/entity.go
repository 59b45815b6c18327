package commission

import (
	"github.com/policlinic/clinic-backend-go/internal/domain/period"
	"github.com/shopspring/decimal"
)

type DoctorStats struct {
	DoctorID                string
	Period                  period.Range
	TotalIncome             decimal.Decimal
	TotalCommission         decimal.Decimal
	VisitCount              int
	PatientCount            int
	AvgCommissionPerPatient decimal.Decimal
}

type PatientBreakdown struct {
	PatientID  string
	FirstName  *string
	LastName   string
	Income     decimal.Decimal
	Commission decimal.Decimal
	Visits     int
}

// Bucket is one period of a trend series, keyed YYYY-MM for months and YYYY for years.
type Bucket struct {
	Key        string
	Income     decimal.Decimal
	Commission decimal.Decimal
	Visits     int
}

type DoctorComparison struct {
	DoctorID       string
	FirstName      string
	LastName       string
	IsActive       bool
	CommissionRate decimal.Decimal
	Stats          DoctorStats
	Monthly        []Bucket
	Yearly         []Bucket
	Patients       []PatientBreakdown
}

type DoctorOverview struct {
	DoctorID string
	Lifetime DoctorStats
	Today    DoctorStats
}
