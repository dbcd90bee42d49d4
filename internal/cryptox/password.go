// Package cryptox wraps the password hashing and random token primitives
// used by the authentication flow.
package cryptox

import (
	"crypto/rand"
	"encoding/hex"
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// ErrMismatchedPassword is returned by CheckPassword for a wrong password.
var ErrMismatchedPassword = errors.New("password does not match")

// hashCost is a variable so tests can lower it.
var hashCost = bcrypt.DefaultCost

// HashPassword returns the bcrypt hash of password.
func HashPassword(password []byte) ([]byte, error) {
	return bcrypt.GenerateFromPassword(password, hashCost)
}

// CheckPassword compares a bcrypt hash with a candidate password.
func CheckPassword(hash, candidate []byte) error {
	err := bcrypt.CompareHashAndPassword(hash, candidate)
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return ErrMismatchedPassword
	}
	return err
}

// RandomToken returns size random bytes hex-encoded (2*size characters).
func RandomToken(size int) (string, error) {
	b := make([]byte, size)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// Wipe zeroes b in place. It is safe to call with nil.
func Wipe(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
