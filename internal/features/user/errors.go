package user

import "errors"

var (
	ErrUserNotFound         = errors.New("user not found")
	ErrEmailTaken           = errors.New("email already registered")
	ErrInvalidEmail         = errors.New("invalid email format")
	ErrInvalidUsername      = errors.New("username must be 2-50 characters")
	ErrInvalidPassword      = errors.New("password must be 8-72 bytes")
	ErrInvalidRole          = errors.New("invalid role")
	ErrUnknownPermission    = errors.New("unknown permission")
	ErrCannotDeactivateSelf = errors.New("admins cannot deactivate their own account")
)
