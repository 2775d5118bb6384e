package domain

import "errors"

var (
	ErrAuthenticationRequired = errors.New("authentication required")
	ErrInvalidToken           = errors.New("invalid token")
	ErrAccessDenied           = errors.New("access denied")
	ErrNotFound               = errors.New("not found")
	ErrUsernameTaken          = errors.New("username may already be taken")
	ErrUserBanned             = errors.New("user is banned")
	ErrTokenRevoked           = errors.New("token is revoked")
)
