package admin

import (
	"errors"
	"time"

	"github.com/nekogravitycat/courtmaster-backend/internal/pkg/apperror"
)

var (
	ErrNotFound           = apperror.NotFound("admin not found")
	ErrInvalidCredentials = apperror.New(apperror.KindUnauthorized, "invalid username or password")
	ErrUsernameTaken      = apperror.Conflict("username already taken")
	ErrUsernameRequired   = apperror.Validation("username is required")
	ErrPasswordTooShort   = apperror.Validation("password is too short")

	errSeedIncomplete = errors.New("admin seed requires both username and password")
)

// MinPasswordLength applies to seeded passwords.
const MinPasswordLength = 8

// Admin is an operator account allowed to manage courts and bookings.
type Admin struct {
	ID           string
	Username     string
	PasswordHash string
	CreatedAt    time.Time
}
