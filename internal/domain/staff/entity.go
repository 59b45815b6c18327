package staff

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

type RoleName string

const (
	RoleDoctor        RoleName = "doctor"
	RoleAdministrator RoleName = "administrator"
	RoleAssistant     RoleName = "assistant"
)

// Role is the closed set of staff roles. Only the types in this package implement it,
// and each carries the rate field that applies to it.
type Role interface {
	Name() RoleName
	isRole()
}

type Doctor struct {
	CommissionRate decimal.Decimal
}

type Administrator struct {
	BaseSalary decimal.Decimal
}

type Assistant struct {
	HourlyRate decimal.Decimal
}

func (Doctor) Name() RoleName        { return RoleDoctor }
func (Administrator) Name() RoleName { return RoleAdministrator }
func (Assistant) Name() RoleName     { return RoleAssistant }

func (Doctor) isRole()        {}
func (Administrator) isRole() {}
func (Assistant) isRole()     {}

type Member struct {
	ID                  string
	FirstName           string
	LastName            string
	Email               *string
	Role                Role
	IsActive            bool
	EmploymentStartDate time.Time
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

func (m Member) FullName() string {
	return m.FirstName + " " + m.LastName
}

// AsDoctor returns the doctor role when m is a doctor.
func (m Member) AsDoctor() (Doctor, bool) {
	d, ok := m.Role.(Doctor)
	return d, ok
}

func (m Member) IsDoctor() bool {
	_, ok := m.Role.(Doctor)
	return ok
}

// RoleFromColumns rebuilds a Role from its stored columns. Assistants keep their hourly
// rate in the base_salary column.
func RoleFromColumns(name string, baseSalary, commissionRate decimal.Decimal) (Role, error) {
	switch RoleName(name) {
	case RoleDoctor:
		if commissionRate.IsNegative() || commissionRate.GreaterThan(decimal.NewFromInt(1)) {
			return nil, ErrInvalidCommissionRate
		}
		return Doctor{CommissionRate: commissionRate}, nil
	case RoleAdministrator:
		if baseSalary.IsNegative() {
			return nil, ErrNegativeRate
		}
		return Administrator{BaseSalary: baseSalary}, nil
	case RoleAssistant:
		if baseSalary.IsNegative() {
			return nil, ErrNegativeRate
		}
		return Assistant{HourlyRate: baseSalary}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidRole, name)
	}
}

// RoleColumns is the inverse of RoleFromColumns.
func RoleColumns(role Role) (name string, baseSalary, commissionRate decimal.Decimal) {
	switch r := role.(type) {
	case Doctor:
		return string(RoleDoctor), decimal.Zero, r.CommissionRate
	case Administrator:
		return string(RoleAdministrator), r.BaseSalary, decimal.Zero
	case Assistant:
		return string(RoleAssistant), r.HourlyRate, decimal.Zero
	}
	return "", decimal.Zero, decimal.Zero
}
