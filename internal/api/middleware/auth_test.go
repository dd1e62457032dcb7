package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/mercato/sales-api/internal/auth"
	"github.com/mercato/sales-api/internal/core/domain"
)

func newCodec(t *testing.T) *auth.Codec {
	t.Helper()
	return auth.NewCodec(auth.Config{Secret: "test-secret"})
}

func signToken(t *testing.T, codec *auth.Codec, kind auth.TokenKind) string {
	t.Helper()
	token, err := codec.Sign(&domain.User{
		ID:    "user_1",
		Email: "a@x.com",
		Roles: []string{domain.RoleAdmin},
	}, kind)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	return token
}

// invoke runs req through the middleware in front of a handler that echoes
// the identity placed in the request context.
func invoke(mw echo.MiddlewareFunc, req *http.Request) (*httptest.ResponseRecorder, echo.Context, error) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := mw(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	return rec, c, handler(c)
}

func httpStatus(t *testing.T, err error) int {
	t.Helper()
	he, ok := err.(*echo.HTTPError)
	if !ok {
		t.Fatalf("expected *echo.HTTPError, got %T: %v", err, err)
	}
	return he.Code
}

func TestAuth_BearerToken(t *testing.T) {
	codec := newCodec(t)
	token := signToken(t, codec, auth.TokenAccess)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	_, c, err := invoke(Auth(codec), req)
	if err != nil {
		t.Fatalf("expected pass-through, got %v", err)
	}
	if got := c.Get(CtxUserID); got != "user_1" {
		t.Fatalf("user id = %v, want user_1", got)
	}
	if got := c.Get(CtxEmail); got != "a@x.com" {
		t.Fatalf("email = %v, want a@x.com", got)
	}
	roles, _ := c.Get(CtxRoles).([]string)
	if len(roles) != 1 || roles[0] != domain.RoleAdmin {
		t.Fatalf("roles = %v, want [admin]", roles)
	}
}

func TestAuth_CookieFallback(t *testing.T) {
	codec := newCodec(t)
	token := signToken(t, codec, auth.TokenAccess)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: AccessCookie, Value: token})

	_, c, err := invoke(Auth(codec), req)
	if err != nil {
		t.Fatalf("expected pass-through, got %v", err)
	}
	if got := c.Get(CtxUserID); got != "user_1" {
		t.Fatalf("user id = %v, want user_1", got)
	}
}

func TestAuth_MissingCredentials(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	_, _, err := invoke(Auth(newCodec(t)), req)
	if httpStatus(t, err) != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}

func TestAuth_MalformedAuthorizationHeader(t *testing.T) {
	cases := []string{"Bearer", "Bearer ", "Basic abc", "bearer-token"}
	for _, header := range cases {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", header)

		_, _, err := invoke(Auth(newCodec(t)), req)
		if httpStatus(t, err) != http.StatusUnauthorized {
			t.Fatalf("header %q: expected 401, got %v", header, err)
		}
	}
}

func TestAuth_ExpiredToken(t *testing.T) {
	expired := auth.NewCodec(auth.Config{Secret: "test-secret", AccessTTL: time.Millisecond})
	token := signToken(t, expired, auth.TokenAccess)
	time.Sleep(50 * time.Millisecond)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	_, _, err := invoke(Auth(newCodec(t)), req)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
	if he.Message != "token expired" {
		t.Fatalf("message = %v, want token expired", he.Message)
	}
}

func TestAuth_ForeignSecret(t *testing.T) {
	other := auth.NewCodec(auth.Config{Secret: "another-secret"})
	token := signToken(t, other, auth.TokenAccess)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	_, _, err := invoke(Auth(newCodec(t)), req)
	if httpStatus(t, err) != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}

func TestRefreshAuth_CookiePreferred(t *testing.T) {
	codec := newCodec(t)
	token := signToken(t, codec, auth.TokenRefresh)

	req := httptest.NewRequest(http.MethodPost, "/auth/refresh", nil)
	req.AddCookie(&http.Cookie{Name: RefreshCookie, Value: token})

	_, c, err := invoke(RefreshAuth(codec), req)
	if err != nil {
		t.Fatalf("expected pass-through, got %v", err)
	}
	if got := c.Get(CtxUserID); got != "user_1" {
		t.Fatalf("user id = %v, want user_1", got)
	}
	if got := c.Get(CtxRefreshToken); got != token {
		t.Fatalf("raw refresh token not stashed in context")
	}
}

func TestRefreshAuth_BearerFallback(t *testing.T) {
	codec := newCodec(t)
	token := signToken(t, codec, auth.TokenRefresh)

	req := httptest.NewRequest(http.MethodPost, "/auth/refresh", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	_, c, err := invoke(RefreshAuth(codec), req)
	if err != nil {
		t.Fatalf("expected pass-through, got %v", err)
	}
	if got := c.Get(CtxRefreshToken); got != token {
		t.Fatalf("raw refresh token not stashed in context")
	}
}

func TestRefreshAuth_Missing(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/auth/refresh", nil)

	_, _, err := invoke(RefreshAuth(newCodec(t)), req)
	if httpStatus(t, err) != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}
