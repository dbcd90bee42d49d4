package client

import "errors"

var (
	ErrUnavailable  = errors.New("server unavailable")
	ErrUnauthorized = errors.New("unauthorized")
	// ErrSessionExpired means the refresh token is gone too; the user has
	// to log in again.
	ErrSessionExpired = errors.New("session expired, please log in again")
)
