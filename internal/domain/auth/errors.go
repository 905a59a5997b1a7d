package auth

import "errors"

var (
	ErrInvalidEmployeeCode = errors.New("invalid employee code")
	ErrInvalidCredentials  = errors.New("invalid admin credentials")
	ErrInvalidToken        = errors.New("invalid or expired token")
	ErrTooManyAttempts     = errors.New("too many login attempts")
	ErrAdminRequired       = errors.New("admin access required")
	ErrEmployeeRequired    = errors.New("employee session required")
)
