package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/mercato/sales-api/internal/api/metrics"
	apimw "github.com/mercato/sales-api/internal/api/middleware"
	"github.com/mercato/sales-api/internal/auth"
	"github.com/mercato/sales-api/internal/core/domain"
	"github.com/mercato/sales-api/internal/core/ports"
)

// CookieConfig controls how tokens are delivered as cookies.
type CookieConfig struct {
	// Secure marks cookies as HTTPS-only; disabled in local development.
	Secure     bool
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

type AuthHandler struct {
	authService ports.AuthService
	cookies     CookieConfig
}

func NewAuthHandler(authService ports.AuthService, cookies CookieConfig) *AuthHandler {
	return &AuthHandler{authService: authService, cookies: cookies}
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type tokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// Login authenticates a user and returns an access/refresh token pair.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  tokenResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      429   {object}  map[string]string
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	pair, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrTooManyAttempts) {
			metrics.LoginsTotal.WithLabelValues("rate_limited").Inc()
		} else if errors.Is(err, domain.ErrInvalidCredentials) {
			metrics.LoginsTotal.WithLabelValues("invalid_credentials").Inc()
		} else {
			metrics.LoginsTotal.WithLabelValues("error").Inc()
		}
		return err
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	h.setCookies(c, pair)
	return c.JSON(http.StatusOK, tokenResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	})
}

// Logout clears the caller's session state.
//
// @Summary      Logout
// @Tags         auth
// @Produce      json
// @Success      200  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	if err := h.authService.Logout(c.Request().Context(), userID); err != nil {
		return err
	}

	h.clearCookies(c)
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// Refresh exchanges a valid refresh token for a new token pair, rotating
// the stored session.
//
// @Summary      Refresh tokens
// @Tags         auth
// @Produce      json
// @Success      200  {object}  tokenResponse
// @Failure      401  {object}  map[string]string
// @Router       /auth/refresh [post]
func (h *AuthHandler) Refresh(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}
	refreshToken, err := ctxRefreshToken(c)
	if err != nil {
		return err
	}

	pair, err := h.authService.Refresh(c.Request().Context(), userID, refreshToken)
	if err != nil {
		if errors.Is(err, domain.ErrAccessDenied) {
			metrics.RefreshRotationsTotal.WithLabelValues("denied").Inc()
		} else {
			metrics.RefreshRotationsTotal.WithLabelValues("error").Inc()
		}
		return err
	}

	metrics.RefreshRotationsTotal.WithLabelValues("success").Inc()
	h.setCookies(c, pair)
	return c.JSON(http.StatusOK, tokenResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	})
}

// setCookies delivers both tokens as HttpOnly cookies. The refresh cookie is
// scoped to the refresh endpoint so it never travels with ordinary requests.
func (h *AuthHandler) setCookies(c echo.Context, pair auth.Pair) {
	c.SetCookie(&http.Cookie{
		Name:     apimw.AccessCookie,
		Value:    pair.AccessToken,
		Path:     "/",
		MaxAge:   int(h.cookies.AccessTTL.Seconds()),
		HttpOnly: true,
		Secure:   h.cookies.Secure,
		SameSite: http.SameSiteStrictMode,
	})
	c.SetCookie(&http.Cookie{
		Name:     apimw.RefreshCookie,
		Value:    pair.RefreshToken,
		Path:     "/auth/refresh",
		MaxAge:   int(h.cookies.RefreshTTL.Seconds()),
		HttpOnly: true,
		Secure:   h.cookies.Secure,
		SameSite: http.SameSiteStrictMode,
	})
}

func (h *AuthHandler) clearCookies(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     apimw.AccessCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.cookies.Secure,
		SameSite: http.SameSiteStrictMode,
	})
	c.SetCookie(&http.Cookie{
		Name:     apimw.RefreshCookie,
		Value:    "",
		Path:     "/auth/refresh",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.cookies.Secure,
		SameSite: http.SameSiteStrictMode,
	})
}
