package ports

import (
	"context"

	"github.com/mercato/sales-api/internal/auth"
)

// AuthService owns the session lifecycle: credential verification, token
// pair issuance, refresh-token rotation and revocation.
type AuthService interface {
	// Login verifies email+password and issues a fresh token pair. The
	// refresh token's hash becomes the user's current session state.
	Login(ctx context.Context, email, password string) (auth.Pair, error)
	// Refresh exchanges a still-valid refresh token for a new pair,
	// rotating the stored hash. At most one refresh succeeds per
	// presented token.
	Refresh(ctx context.Context, userID, refreshToken string) (auth.Pair, error)
	// Logout clears the stored refresh hash. Idempotent.
	Logout(ctx context.Context, userID string) error
}

// LoginRateLimiter throttles repeated failed logins per account.
type LoginRateLimiter interface {
	// Allow returns domain.ErrTooManyAttempts when the account is locked out.
	Allow(ctx context.Context, email string) error
	RecordFailure(ctx context.Context, email string) error
	Reset(ctx context.Context, email string) error
}
