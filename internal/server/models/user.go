// Package models defines server-only records: accounts and their refresh
// tokens. Journaling types live in internal/models.
package models

import "time"

// User is an account. PasswordHash is a bcrypt hash.
type User struct {
	ID           string
	Login        string
	PasswordHash []byte
	CreatedAt    time.Time
}

// RefreshToken is an opaque token that trades for a new access token until
// Expires. Tokens are single use.
type RefreshToken struct {
	ID        string
	UserID    string
	Token     string
	Expires   time.Time
	CreatedAt time.Time
}

// Expired reports whether the token can no longer be used at now.
func (t *RefreshToken) Expired(now time.Time) bool {
	return !now.Before(t.Expires)
}
