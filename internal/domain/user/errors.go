package user

import "errors"

var (
	ErrInvalidRole             = errors.New("invalid role")
	ErrManagerAccessRequired   = errors.New("manager access required")
	ErrInsufficientPermissions = errors.New("insufficient permissions")
)
