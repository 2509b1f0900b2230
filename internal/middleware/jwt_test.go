package middleware

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/yadu32/brickworks-pro-suite/internal/utils"
)

const testSecret = "middleware-test-secret"

func signToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := tok.SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return s
}

func protectedEcho(onAuth func(string)) *echo.Echo {
	e := echo.New()
	g := e.Group("/api")
	g.Use(JWTAuth(testSecret, onAuth))
	g.GET("/ping", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{
			"user_id": c.Get("user_id"),
			"role":    c.Get("role"),
		})
	})
	return e
}

func TestJWTAuthAcceptsValidToken(t *testing.T) {
	token := signToken(t, jwt.MapClaims{
		"sub":  "user-1",
		"role": utils.RoleUser,
		"exp":  time.Now().Add(time.Hour).Unix(),
	})

	req := httptest.NewRequest(http.MethodGet, "/api/ping", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	rec := httptest.NewRecorder()
	protectedEcho(nil).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body %s", rec.Code, rec.Body.String())
	}
}

func TestJWTAuthRejections(t *testing.T) {
	expired := signToken(t, jwt.MapClaims{
		"sub": "user-1",
		"exp": time.Now().Add(-time.Hour).Unix(),
	})
	noSubject := signToken(t, jwt.MapClaims{
		"exp": time.Now().Add(time.Hour).Unix(),
	})

	cases := []struct {
		name string
		auth string
	}{
		{"missing header", ""},
		{"not bearer", "Basic abc123"},
		{"garbage token", "Bearer not-a-jwt"},
		{"expired token", "Bearer " + expired},
		{"missing subject", "Bearer " + noSubject},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/ping", nil)
			if tc.auth != "" {
				req.Header.Set(echo.HeaderAuthorization, tc.auth)
			}
			rec := httptest.NewRecorder()
			protectedEcho(nil).ServeHTTP(rec, req)

			if rec.Code != http.StatusUnauthorized {
				t.Fatalf("status = %d, want 401", rec.Code)
			}
			if got := rec.Header().Get(echo.HeaderWWWAuthenticate); got != "Bearer" {
				t.Fatalf("WWW-Authenticate = %q, want Bearer", got)
			}
		})
	}
}

func TestJWTAuthTouchesRegularUsersOnly(t *testing.T) {
	var mu sync.Mutex
	touched := []string{}
	done := make(chan struct{}, 2)
	onAuth := func(id string) {
		mu.Lock()
		touched = append(touched, id)
		mu.Unlock()
		done <- struct{}{}
	}
	e := protectedEcho(onAuth)

	userToken := signToken(t, jwt.MapClaims{
		"sub": "user-1", "role": utils.RoleUser, "exp": time.Now().Add(time.Hour).Unix(),
	})
	adminToken := signToken(t, jwt.MapClaims{
		"sub": "admin", "role": utils.RoleAdmin, "exp": time.Now().Add(time.Hour).Unix(),
	})

	for _, token := range []string{userToken, adminToken} {
		req := httptest.NewRequest(http.MethodGet, "/api/ping", nil)
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}
	}

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("onAuth never fired for the regular user")
	}

	mu.Lock()
	defer mu.Unlock()
	if len(touched) != 1 || touched[0] != "user-1" {
		t.Fatalf("touched = %v, want [user-1]", touched)
	}
}

func TestOptionalJWTAuth(t *testing.T) {
	e := echo.New()
	e.Use(OptionalJWTAuth(testSecret))
	e.GET("/open", func(c echo.Context) error {
		uid, _ := c.Get("user_id").(string)
		return c.String(http.StatusOK, uid)
	})

	// No token: request passes with no identity.
	req := httptest.NewRequest(http.MethodGet, "/open", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK || rec.Body.String() != "" {
		t.Fatalf("anonymous: status %d body %q", rec.Code, rec.Body.String())
	}

	// Valid token: identity resolved.
	token := signToken(t, jwt.MapClaims{
		"sub": "user-9", "exp": time.Now().Add(time.Hour).Unix(),
	})
	req = httptest.NewRequest(http.MethodGet, "/open", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if rec.Body.String() != "user-9" {
		t.Fatalf("identified: body %q, want user-9", rec.Body.String())
	}

	// Garbage token: still passes, anonymously.
	req = httptest.NewRequest(http.MethodGet, "/open", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer junk")
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK || rec.Body.String() != "" {
		t.Fatalf("garbage: status %d body %q", rec.Code, rec.Body.String())
	}
}

func TestRequireRole(t *testing.T) {
	e := echo.New()
	g := e.Group("/admin")
	g.Use(JWTAuth(testSecret, nil))
	g.Use(RequireRole(utils.RoleAdmin))
	g.GET("/report", func(c echo.Context) error { return c.String(http.StatusOK, "ok") })

	adminToken := signToken(t, jwt.MapClaims{
		"sub": "admin", "role": utils.RoleAdmin, "exp": time.Now().Add(time.Hour).Unix(),
	})
	userToken := signToken(t, jwt.MapClaims{
		"sub": "user-1", "role": utils.RoleUser, "exp": time.Now().Add(time.Hour).Unix(),
	})

	req := httptest.NewRequest(http.MethodGet, "/admin/report", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+adminToken)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("admin token: status %d, want 200", rec.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/admin/report", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+userToken)
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("user token: status %d, want 403", rec.Code)
	}
}
