package accesscode

import "errors"

var (
	ErrCodeNotFound     = errors.New("access code not found")
	ErrCodeUsed         = errors.New("access code already used")
	ErrCodeExpired      = errors.New("access code expired")
	ErrInvalidValidDays = errors.New("validDays must be between 1 and 365")
	ErrCodeExhausted    = errors.New("could not generate a unique access code")
)
