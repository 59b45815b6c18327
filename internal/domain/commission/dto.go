package commission

import (
	"time"

	"github.com/shopspring/decimal"
)

type DoctorStatsResponse struct {
	DoctorID                string          `json:"doctor_id"`
	From                    string          `json:"from"`
	To                      string          `json:"to"`
	TotalIncome             decimal.Decimal `json:"total_income"`
	TotalCommission         decimal.Decimal `json:"total_commission"`
	VisitCount              int             `json:"visit_count"`
	PatientCount            int             `json:"patient_count"`
	AvgCommissionPerPatient decimal.Decimal `json:"avg_commission_per_patient"`
}

func NewDoctorStatsResponse(s DoctorStats) DoctorStatsResponse {
	return DoctorStatsResponse{
		DoctorID:                s.DoctorID,
		From:                    s.Period.From.Format(time.DateOnly),
		To:                      s.Period.To.Format(time.DateOnly),
		TotalIncome:             s.TotalIncome,
		TotalCommission:         s.TotalCommission,
		VisitCount:              s.VisitCount,
		PatientCount:            s.PatientCount,
		AvgCommissionPerPatient: s.AvgCommissionPerPatient,
	}
}

type BucketResponse struct {
	Period     string          `json:"period"`
	Income     decimal.Decimal `json:"income"`
	Commission decimal.Decimal `json:"commission"`
	Visits     int             `json:"visits"`
}

func NewBucketResponses(buckets []Bucket) []BucketResponse {
	out := make([]BucketResponse, 0, len(buckets))
	for _, b := range buckets {
		out = append(out, BucketResponse{Period: b.Key, Income: b.Income, Commission: b.Commission, Visits: b.Visits})
	}
	return out
}

type PatientResponse struct {
	PatientID  string          `json:"patient_id"`
	FirstName  *string         `json:"first_name,omitempty"`
	LastName   string          `json:"last_name"`
	Income     decimal.Decimal `json:"income"`
	Commission decimal.Decimal `json:"commission"`
	Visits     int             `json:"visits"`
}

type DoctorComparisonResponse struct {
	DoctorID       string              `json:"doctor_id"`
	FirstName      string              `json:"first_name"`
	LastName       string              `json:"last_name"`
	IsActive       bool                `json:"is_active"`
	CommissionRate decimal.Decimal     `json:"commission_rate"`
	Totals         DoctorStatsResponse `json:"totals"`
	Monthly        []BucketResponse    `json:"monthly"`
	Yearly         []BucketResponse    `json:"yearly"`
	Patients       []PatientResponse   `json:"patients"`
}

func NewDoctorComparisonResponse(c DoctorComparison) DoctorComparisonResponse {
	patients := make([]PatientResponse, 0, len(c.Patients))
	for _, p := range c.Patients {
		patients = append(patients, PatientResponse{
			PatientID:  p.PatientID,
			FirstName:  p.FirstName,
			LastName:   p.LastName,
			Income:     p.Income,
			Commission: p.Commission,
			Visits:     p.Visits,
		})
	}
	return DoctorComparisonResponse{
		DoctorID:       c.DoctorID,
		FirstName:      c.FirstName,
		LastName:       c.LastName,
		IsActive:       c.IsActive,
		CommissionRate: c.CommissionRate,
		Totals:         NewDoctorStatsResponse(c.Stats),
		Monthly:        NewBucketResponses(c.Monthly),
		Yearly:         NewBucketResponses(c.Yearly),
		Patients:       patients,
	}
}

type DoctorOverviewResponse struct {
	DoctorID string              `json:"doctor_id"`
	Lifetime DoctorStatsResponse `json:"lifetime"`
	Today    DoctorStatsResponse `json:"today"`
}

type PatientSurnameQuery struct {
	PatientLastName string
	From            *time.Time
	To              *time.Time
}
