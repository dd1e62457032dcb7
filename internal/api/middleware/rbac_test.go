package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/mercato/sales-api/internal/core/domain"
)

func invokeRBAC(t *testing.T, required []string, callerRoles []string) error {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if callerRoles != nil {
		c.Set(CtxRoles, callerRoles)
	}

	handler := RequireRoles(required...)(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	return handler(c)
}

func TestRequireRoles(t *testing.T) {
	cases := []struct {
		name      string
		required  []string
		caller    []string
		wantAllow bool
	}{
		{"exact match", []string{domain.RoleAdmin}, []string{domain.RoleAdmin}, true},
		{"any-of match", []string{domain.RoleAdmin, domain.RoleModerator}, []string{domain.RoleModerator}, true},
		{"caller has extra roles", []string{domain.RoleAdmin}, []string{domain.RoleUser, domain.RoleAdmin}, true},
		{"role mismatch", []string{domain.RoleAdmin}, []string{domain.RoleUser}, false},
		{"no caller roles in context", []string{domain.RoleAdmin}, nil, false},
		{"empty caller roles", []string{domain.RoleAdmin}, []string{}, false},
		{"no roles declared rejects everyone", nil, []string{domain.RoleAdmin}, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := invokeRBAC(t, tc.required, tc.caller)
			if tc.wantAllow {
				if err != nil {
					t.Fatalf("expected pass-through, got %v", err)
				}
				return
			}
			he, ok := err.(*echo.HTTPError)
			if !ok || he.Code != http.StatusForbidden {
				t.Fatalf("expected 403, got %v", err)
			}
			if he.Message != "forbidden" {
				t.Fatalf("response must not leak accepted roles, got %v", he.Message)
			}
		})
	}
}
