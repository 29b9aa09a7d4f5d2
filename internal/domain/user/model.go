package user

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrInvalidEmail    = errors.New("invalid email address")
	ErrInvalidUsername = errors.New("invalid username")
	ErrDuplicateEmail  = errors.New("email already registered")
)

// Principal is the authenticated caller attached to request context.
type Principal struct {
	UserID string
	Email  string
}

// Profile is a registered fantasy manager.
type Profile struct {
	ID          string
	Email       string
	Username    string
	DisplayName string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (p Profile) Validate() error {
	if !strings.Contains(p.Email, "@") {
		return ErrInvalidEmail
	}
	if len(p.Username) < 3 {
		return ErrInvalidUsername
	}
	return nil
}
