package interfaces

import (
	"errors"
	"time"
)

var ErrInvalidToken = errors.New("invalid or expired token")

// ITokenService issues and verifies administrator session tokens.
type ITokenService interface {
	Issue(adminID string) (token string, expiresAt time.Time, err error)
	Parse(token string) (adminID string, err error)
}

// IPasswordHasher abstracts the password hashing algorithm.
type IPasswordHasher interface {
	Hash(password string) (string, error)
	Check(password, hash string) bool
}
