// Package auth holds the credential primitives of the API: password and
// refresh-token hashing, and the signed-token codec.
package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/mercato/sales-api/internal/core/domain"
)

// TokenKind selects which expiry configuration a token is signed with.
type TokenKind string

const (
	TokenAccess  TokenKind = "access"
	TokenRefresh TokenKind = "refresh"
)

const (
	defaultAccessTTL  = time.Hour
	defaultRefreshTTL = 7 * 24 * time.Hour
)

var ErrTokenExpired = errors.New("token expired")
var ErrTokenInvalid = errors.New("token invalid")

// Claims is the identity payload embedded in every signed token.
type Claims struct {
	Email string   `json:"email"`
	Roles []string `json:"roles"`
	jwt.RegisteredClaims
}

// Pair is an access/refresh token couple issued together.
type Pair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// Config carries the codec's secret and the two expiry windows. It is passed
// explicitly at construction; there is no ambient process-wide token state.
type Config struct {
	Secret     string
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

// Codec signs and verifies compact HS256 tokens.
type Codec struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

func NewCodec(cfg Config) *Codec {
	if cfg.AccessTTL <= 0 {
		cfg.AccessTTL = defaultAccessTTL
	}
	if cfg.RefreshTTL <= 0 {
		cfg.RefreshTTL = defaultRefreshTTL
	}
	return &Codec{
		secret:     []byte(cfg.Secret),
		accessTTL:  cfg.AccessTTL,
		refreshTTL: cfg.RefreshTTL,
	}
}

// Sign issues a token of the given kind for user. Each token carries a fresh
// jti so that two tokens signed within the same second are still distinct.
func (c *Codec) Sign(user *domain.User, kind TokenKind) (string, error) {
	ttl := c.accessTTL
	if kind == TokenRefresh {
		ttl = c.refreshTTL
	}

	now := time.Now().UTC()
	claims := Claims{
		Email: user.Email,
		Roles: user.Roles,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
}

// SignPair issues an access/refresh pair. The two signings are independent
// CPU-bound operations and run concurrently.
func (c *Codec) SignPair(user *domain.User) (Pair, error) {
	type signed struct {
		token string
		err   error
	}
	refreshCh := make(chan signed, 1)

	go func() {
		token, err := c.Sign(user, TokenRefresh)
		refreshCh <- signed{token: token, err: err}
	}()

	access, err := c.Sign(user, TokenAccess)
	refresh := <-refreshCh

	if err != nil {
		return Pair{}, err
	}
	if refresh.err != nil {
		return Pair{}, refresh.err
	}
	return Pair{AccessToken: access, RefreshToken: refresh.token}, nil
}

// Verify checks signature integrity and expiry, returning the claims on
// success. The signing method is pinned to HS256: a structurally valid token
// signed with another algorithm (or another secret) is rejected.
func (c *Codec) Verify(token string) (*Claims, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return c.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}
	if !parsed.Valid {
		return nil, ErrTokenInvalid
	}
	return claims, nil
}
