package payroll

import (
	"github.com/policlinic/clinic-backend-go/internal/domain/period"
	"github.com/policlinic/clinic-backend-go/internal/domain/staff"
	"github.com/shopspring/decimal"
)

// Suggestion is a computed, never stored, payment proposal for one staff member and period.
type Suggestion struct {
	StaffID     string
	Role        staff.RoleName
	Period      period.Range
	Earned      decimal.Decimal
	AlreadyPaid decimal.Decimal
	Amount      decimal.Decimal
}

// Withdrawal is the outcome of checking a manual payment against the salary cycle.
type Withdrawal struct {
	Cycle       period.Range
	Requested   decimal.Decimal
	Earned      decimal.Decimal
	AlreadyPaid decimal.Decimal
	Available   decimal.Decimal
}
