package domain

import (
	"errors"
	"time"
)

const (
	RoleUser      = "user"
	RoleModerator = "moderator"
	RoleAdmin     = "admin"
)

var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrAccessDenied = errors.New("access denied")
var ErrForbidden = errors.New("forbidden")
var ErrUserNotFound = errors.New("user not found")
var ErrUserExists = errors.New("user already exists")
var ErrInvalidRole = errors.New("invalid role")
var ErrTooManyAttempts = errors.New("too many login attempts")
var ErrInternal = errors.New("internal error")

// ValidRole reports whether role is one of the known role names.
func ValidRole(role string) bool {
	switch role {
	case RoleUser, RoleModerator, RoleAdmin:
		return true
	}
	return false
}

// User models an authenticated actor in the system.
//
// RefreshTokenHash is the single piece of mutable session state: nil means
// logged out; a non-nil value is the one-way digest of the one refresh token
// currently entrusted to a client. It is set on login, swapped on every
// successful refresh and cleared on logout.
type User struct {
	ID               string     `json:"id"`
	Name             string     `json:"name"`
	Email            string     `json:"email"`
	PasswordHash     string     `json:"-"`
	Roles            []string   `json:"roles"`
	IsActive         bool       `json:"is_active"`
	LastLogin        *time.Time `json:"last_login,omitempty"`
	RefreshTokenHash *string    `json:"-"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

// Authorize decides whether a caller holding callerRoles may access a route
// declaring requiredRoles. Any-of semantics: one shared role suffices.
//
// A route that declares no roles is denied outright: routes must opt in to
// every role they accept, there is no implicit authenticated-only tier.
func Authorize(requiredRoles, callerRoles []string) error {
	if len(requiredRoles) == 0 {
		return ErrForbidden
	}
	if len(callerRoles) == 0 {
		return ErrForbidden
	}
	for _, required := range requiredRoles {
		for _, held := range callerRoles {
			if required == held {
				return nil
			}
		}
	}
	return ErrForbidden
}
