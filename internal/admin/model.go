package admin

import (
	"errors"
	"time"
)

// ErrNotFound indicates no administrator exists for the given id or email.
var ErrNotFound = errors.New("administrator not found")

// ErrInvalidCredentials is returned for both unknown emails and wrong
// passwords so responses never reveal which accounts exist.
var ErrInvalidCredentials = errors.New("invalid credentials")

// Admin is an administrator account. The password hash is never serialized.
type Admin struct {
	ID           string     `json:"id"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"`
	CreatedAt    time.Time  `json:"created_at"`
	LastLogin    *time.Time `json:"last_login"`
}
