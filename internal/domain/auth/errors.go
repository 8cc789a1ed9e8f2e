package auth

import "errors"

var (
	ErrInvalidCredentials     = errors.New("invalid password")
	ErrInvalidToken           = errors.New("invalid or expired token")
	ErrAdminDisabled          = errors.New("admin access is not configured")
	ErrAdminPrivilegeRequired = errors.New("admin privilege required")
)
