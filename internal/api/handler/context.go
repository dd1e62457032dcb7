package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	apimw "github.com/mercato/sales-api/internal/api/middleware"
)

// ctxUserID extracts the authenticated subject injected by the Auth (or
// RefreshAuth) middleware. An empty value means the middleware did not run;
// fail fast with 401 rather than act on a missing identity.
func ctxUserID(c echo.Context) (string, error) {
	userID, _ := c.Get(apimw.CtxUserID).(string)
	if userID == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return userID, nil
}

// ctxRefreshToken extracts the raw refresh token stashed by RefreshAuth.
func ctxRefreshToken(c echo.Context) (string, error) {
	token, _ := c.Get(apimw.CtxRefreshToken).(string)
	if token == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "missing refresh credential")
	}
	return token, nil
}
