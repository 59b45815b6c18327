package staff

import "errors"

var (
	ErrStaffNotFound         = errors.New("staff member not found")
	ErrUnknownStaff          = errors.New("unknown staff member")
	ErrInvalidDoctor         = errors.New("referenced staff member is not an active doctor")
	ErrInvalidRole           = errors.New("invalid staff role")
	ErrInvalidCommissionRate = errors.New("commission rate must be between 0 and 1")
	ErrNegativeRate          = errors.New("rates cannot be negative")
)
