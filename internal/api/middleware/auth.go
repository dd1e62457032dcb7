package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/mercato/sales-api/internal/api/metrics"
	"github.com/mercato/sales-api/internal/auth"
)

// Context keys set by the auth middlewares.
const (
	CtxUserID       = "user_id"
	CtxEmail        = "email"
	CtxRoles        = "roles"
	CtxRefreshToken = "refresh_token"
)

// Cookie names used for token transport.
const (
	AccessCookie  = "Authentication"
	RefreshCookie = "Refresh"
)

// TokenExtractor pulls a raw credential out of a request. Extractors are
// composed at startup; the first one that finds a token wins.
type TokenExtractor interface {
	Extract(c echo.Context) (string, bool)
}

// BearerExtractor reads the Authorization header ("Bearer <token>").
type BearerExtractor struct{}

func (BearerExtractor) Extract(c echo.Context) (string, bool) {
	header := c.Request().Header.Get("Authorization")
	if header == "" {
		return "", false
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

// CookieExtractor reads a named cookie.
type CookieExtractor struct {
	Name string
}

func (e CookieExtractor) Extract(c echo.Context) (string, bool) {
	cookie, err := c.Cookie(e.Name)
	if err != nil || cookie.Value == "" {
		return "", false
	}
	return cookie.Value, true
}

func extractToken(c echo.Context, extractors []TokenExtractor) (string, bool) {
	for _, ex := range extractors {
		if token, ok := ex.Extract(c); ok {
			return token, true
		}
	}
	return "", false
}

// Auth verifies the access token and injects the caller's identity claims
// into the request context. When no extractors are given, the bearer header
// and the Authentication cookie are tried in that order.
func Auth(codec *auth.Codec, extractors ...TokenExtractor) echo.MiddlewareFunc {
	if len(extractors) == 0 {
		extractors = []TokenExtractor{BearerExtractor{}, CookieExtractor{Name: AccessCookie}}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, ok := extractToken(c, extractors)
			if !ok {
				metrics.TokenVerificationsTotal.WithLabelValues("missing").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "missing credentials")
			}

			claims, err := codec.Verify(token)
			if err != nil {
				if errors.Is(err, auth.ErrTokenExpired) {
					metrics.TokenVerificationsTotal.WithLabelValues("expired").Inc()
					return echo.NewHTTPError(http.StatusUnauthorized, "token expired")
				}
				metrics.TokenVerificationsTotal.WithLabelValues("invalid").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}
			metrics.TokenVerificationsTotal.WithLabelValues("ok").Inc()

			c.Set(CtxUserID, claims.Subject)
			c.Set(CtxEmail, claims.Email)
			c.Set(CtxRoles, claims.Roles)

			return next(c)
		}
	}
}

// RefreshAuth verifies the refresh credential and stashes the raw token for
// the handler: rotation needs the token itself, not just its claims. When no
// extractors are given, the Refresh cookie and the bearer header are tried
// in that order.
func RefreshAuth(codec *auth.Codec, extractors ...TokenExtractor) echo.MiddlewareFunc {
	if len(extractors) == 0 {
		extractors = []TokenExtractor{CookieExtractor{Name: RefreshCookie}, BearerExtractor{}}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, ok := extractToken(c, extractors)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing refresh credential")
			}

			claims, err := codec.Verify(token)
			if err != nil {
				if errors.Is(err, auth.ErrTokenExpired) {
					return echo.NewHTTPError(http.StatusUnauthorized, "refresh token expired")
				}
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid refresh token")
			}

			c.Set(CtxUserID, claims.Subject)
			c.Set(CtxRefreshToken, token)

			return next(c)
		}
	}
}
