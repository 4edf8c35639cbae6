package domain

import "errors"

var (
	ErrNotFound           = errors.New("not found")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")
	ErrInvalidCredentials = errors.New("invalid login credentials")
	ErrDuplicateAccount   = errors.New("user already registered")
	ErrInvalidRole        = errors.New("invalid role")
	ErrSessionRevoked     = errors.New("session revoked")
)
