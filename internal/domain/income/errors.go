package income

import "errors"

var (
	ErrIncomeNotFound       = errors.New("income record not found")
	ErrPatientNotFound      = errors.New("patient not found")
	ErrInvalidAmount        = errors.New("amount must be greater than zero")
	ErrInvalidPaymentMethod = errors.New("payment method must be cash or card")
)
