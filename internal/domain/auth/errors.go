package auth

import "errors"

var (
	ErrInvalidToken      = errors.New("invalid or expired token")
	ErrStaffClaimMissing = errors.New("token carries no staff id")
	ErrRoleNotAllowed    = errors.New("role is not allowed to access this resource")
)
