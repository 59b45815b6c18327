package salary

import "errors"

var (
	ErrPaymentNotFound = errors.New("salary payment not found")
	ErrInvalidAmount   = errors.New("amount must be greater than zero")
	ErrLinkedToIncome  = errors.New("commission payments are removed by deleting their income record")
)
