package service

import (
	"context"
	"errors"
	"fmt"
	"hash/fnv"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/mercato/sales-api/internal/auth"
	"github.com/mercato/sales-api/internal/core/domain"
	"github.com/mercato/sales-api/internal/core/ports"
)

const rotationShards = 64

// dummyDigest is compared against when login targets an unknown email so
// that the miss costs roughly one bcrypt verification either way.
const dummyDigest = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// AuthService verifies credentials and manages per-user session state: it
// issues token pairs on login, rotates the stored refresh hash on refresh
// and clears it on logout.
type AuthService struct {
	users   ports.UserRepository
	codec   *auth.Codec
	limiter ports.LoginRateLimiter
	logger  zerolog.Logger

	// rotation serializes refresh-hash rotation per user. The storage-level
	// compare-and-swap already guarantees at most one winner; the striped
	// lock keeps the loser's failure deterministic instead of racing the
	// read-verify window.
	rotation [rotationShards]sync.Mutex
}

func NewAuthService(users ports.UserRepository, codec *auth.Codec, limiter ports.LoginRateLimiter, logger zerolog.Logger) *AuthService {
	return &AuthService{
		users:   users,
		codec:   codec,
		limiter: limiter,
		logger:  logger,
	}
}

// Login verifies the email/password pair and, on success, issues a token
// pair and persists the refresh token's hash. An unknown email and a wrong
// password are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, email, password string) (auth.Pair, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return auth.Pair{}, domain.ErrInvalidCredentials
	}

	if s.limiter != nil {
		if err := s.limiter.Allow(ctx, email); err != nil {
			if errors.Is(err, domain.ErrTooManyAttempts) {
				return auth.Pair{}, err
			}
			// A broken limiter must not lock every account out.
			s.logger.Warn().Err(err).Msg("login limiter unavailable")
		}
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			auth.VerifyPassword(password, dummyDigest)
			return auth.Pair{}, s.failedLogin(ctx, email)
		}
		return auth.Pair{}, fmt.Errorf("%w: find user: %w", domain.ErrInternal, err)
	}

	if !user.IsActive || !auth.VerifyPassword(password, user.PasswordHash) {
		return auth.Pair{}, s.failedLogin(ctx, email)
	}

	pair, err := s.codec.SignPair(user)
	if err != nil {
		return auth.Pair{}, fmt.Errorf("%w: sign token pair: %w", domain.ErrInternal, err)
	}

	now := time.Now().UTC()
	if err := s.users.SetRefreshHash(ctx, user.ID, auth.HashToken(pair.RefreshToken), now); err != nil {
		return auth.Pair{}, fmt.Errorf("%w: store refresh hash: %w", domain.ErrInternal, err)
	}

	if s.limiter != nil {
		if err := s.limiter.Reset(ctx, email); err != nil {
			s.logger.Warn().Err(err).Msg("login limiter reset failed")
		}
	}

	s.logger.Info().Str("user_id", user.ID).Msg("user logged in")
	return pair, nil
}

func (s *AuthService) failedLogin(ctx context.Context, email string) error {
	if s.limiter != nil {
		if err := s.limiter.RecordFailure(ctx, email); err != nil {
			s.logger.Warn().Err(err).Msg("login limiter record failed")
		}
	}
	return domain.ErrInvalidCredentials
}

// Refresh exchanges a valid refresh token for a fresh pair and rotates the
// stored hash. The presented token becomes permanently unusable the moment
// rotation succeeds; two concurrent calls with the same token yield exactly
// one success.
func (s *AuthService) Refresh(ctx context.Context, userID, refreshToken string) (auth.Pair, error) {
	claims, err := s.codec.Verify(refreshToken)
	if err != nil {
		return auth.Pair{}, err
	}
	if claims.Subject != userID {
		return auth.Pair{}, domain.ErrAccessDenied
	}

	lock := s.rotationLock(userID)
	lock.Lock()
	defer lock.Unlock()

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return auth.Pair{}, domain.ErrAccessDenied
		}
		return auth.Pair{}, fmt.Errorf("%w: find user: %w", domain.ErrInternal, err)
	}

	if user.RefreshTokenHash == nil || !auth.VerifyToken(refreshToken, *user.RefreshTokenHash) {
		return auth.Pair{}, domain.ErrAccessDenied
	}

	pair, err := s.codec.SignPair(user)
	if err != nil {
		return auth.Pair{}, fmt.Errorf("%w: sign token pair: %w", domain.ErrInternal, err)
	}

	// Swap is conditioned on the pre-rotation hash: if another request
	// rotated (or a logout cleared) the session since the read above, the
	// storage layer reports ErrAccessDenied and this pair is discarded.
	err = s.users.SwapRefreshHash(ctx, userID, auth.HashToken(refreshToken), auth.HashToken(pair.RefreshToken))
	if err != nil {
		if errors.Is(err, domain.ErrAccessDenied) {
			return auth.Pair{}, domain.ErrAccessDenied
		}
		return auth.Pair{}, fmt.Errorf("%w: rotate refresh hash: %w", domain.ErrInternal, err)
	}

	s.logger.Info().Str("user_id", userID).Msg("refresh token rotated")
	return pair, nil
}

// Logout clears the stored refresh hash. Logging out an already logged-out
// user is a no-op success.
func (s *AuthService) Logout(ctx context.Context, userID string) error {
	if err := s.users.ClearRefreshHash(ctx, userID); err != nil {
		return fmt.Errorf("%w: clear refresh hash: %w", domain.ErrInternal, err)
	}
	s.logger.Info().Str("user_id", userID).Msg("user logged out")
	return nil
}

// rotationLock maps a user id deterministically to one of the striped
// rotation mutexes.
func (s *AuthService) rotationLock(userID string) *sync.Mutex {
	h := fnv.New32a()
	_, _ = h.Write([]byte(userID))
	return &s.rotation[h.Sum32()%rotationShards]
}
