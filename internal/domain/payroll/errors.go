package payroll

import "errors"

var (
	ErrNotApplicable          = errors.New("operation not applicable to this staff role")
	ErrNothingToPay           = errors.New("nothing left to pay for this period")
	ErrNoEarnings             = errors.New("no earnings in the current salary cycle")
	ErrSalaryAlreadyWithdrawn = errors.New("salary for the current cycle already withdrawn")
	ErrInsufficientBalance    = errors.New("requested amount exceeds the remaining balance")
)
