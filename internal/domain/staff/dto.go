package staff

import (
	"time"

	"github.com/shopspring/decimal"
)

type StaffResponse struct {
	ID                  string           `json:"id"`
	FirstName           string           `json:"first_name"`
	LastName            string           `json:"last_name"`
	Email               *string          `json:"email,omitempty"`
	Role                RoleName         `json:"role"`
	IsActive            bool             `json:"is_active"`
	CommissionRate      *decimal.Decimal `json:"commission_rate,omitempty"`
	BaseSalary          *decimal.Decimal `json:"base_salary,omitempty"`
	HourlyRate          *decimal.Decimal `json:"hourly_rate,omitempty"`
	EmploymentStartDate string           `json:"employment_start_date"`
}

func NewStaffResponse(m Member) StaffResponse {
	resp := StaffResponse{
		ID:                  m.ID,
		FirstName:           m.FirstName,
		LastName:            m.LastName,
		Email:               m.Email,
		IsActive:            m.IsActive,
		EmploymentStartDate: m.EmploymentStartDate.Format(time.DateOnly),
	}
	switch r := m.Role.(type) {
	case Doctor:
		resp.Role = RoleDoctor
		resp.CommissionRate = &r.CommissionRate
	case Administrator:
		resp.Role = RoleAdministrator
		resp.BaseSalary = &r.BaseSalary
	case Assistant:
		resp.Role = RoleAssistant
		resp.HourlyRate = &r.HourlyRate
	}
	return resp
}
