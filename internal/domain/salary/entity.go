package salary

import (
	"time"

	"github.com/shopspring/decimal"
)

type Kind string

const (
	KindSalary     Kind = "salary"
	KindCommission Kind = "commission"
)

// Payment is money actually disbursed to a staff member. Commission payments are
// created and removed together with the income record they derive from.
type Payment struct {
	ID          string
	StaffID     string
	Amount      decimal.Decimal
	PaymentDate time.Time
	Kind        Kind
	IncomeID    *string
	Note        *string
	CreatedAt   time.Time
}

type WithdrawalStatus string

const (
	WithdrawalOK                  WithdrawalStatus = "ok"
	WithdrawalNoEarnings          WithdrawalStatus = "no_earnings"
	WithdrawalAlreadyWithdrawn    WithdrawalStatus = "salary_already_withdrawn"
	WithdrawalInsufficientBalance WithdrawalStatus = "insufficient_balance"
)

// WithdrawalAudit records every manual payment attempt, accepted or not.
type WithdrawalAudit struct {
	ID              string
	StaffID         string
	RequestedAmount decimal.Decimal
	Earned          decimal.Decimal
	AlreadyPaid     decimal.Decimal
	Available       decimal.Decimal
	Status          WithdrawalStatus
	PeriodStart     time.Time
	PeriodEnd       time.Time
	PaymentID       *string
	CreatedAt       time.Time
}
