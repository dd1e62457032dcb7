package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mercato/sales-api/internal/api/metrics"
	"github.com/mercato/sales-api/internal/core/domain"
)

// RequireRoles enforces role-based access control on a route. The role set
// is declared statically at route registration; the check itself is
// domain.Authorize (any-of semantics).
//
// Fail-closed: a route registered with no roles rejects every caller. The
// response never reveals which roles would have been accepted.
func RequireRoles(roles ...string) echo.MiddlewareFunc {
	required := append([]string(nil), roles...)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			caller, _ := c.Get(CtxRoles).([]string)
			if err := domain.Authorize(required, caller); err != nil {
				metrics.AuthorizationDeniedTotal.WithLabelValues(denialReason(required, caller)).Inc()
				return echo.NewHTTPError(http.StatusForbidden, "forbidden")
			}
			return next(c)
		}
	}
}

func denialReason(required, caller []string) string {
	switch {
	case len(required) == 0:
		return "no_roles_declared"
	case len(caller) == 0:
		return "no_caller_roles"
	default:
		return "role_mismatch"
	}
}
