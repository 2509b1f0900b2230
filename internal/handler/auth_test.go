package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/yadu32/brickworks-pro-suite/internal/config"
	"github.com/yadu32/brickworks-pro-suite/internal/model"
	"github.com/yadu32/brickworks-pro-suite/internal/repository"
)

// fakeUserStore keeps users in a map keyed by email.
type fakeUserStore struct {
	byEmail map[string]*model.User
	nextID  int
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{byEmail: map[string]*model.User{}}
}

func (s *fakeUserStore) Create(_ context.Context, email, hash string) (*model.User, error) {
	if _, dup := s.byEmail[email]; dup {
		return nil, repository.ErrEmailExists
	}
	s.nextID++
	u := &model.User{
		ID:           "user-" + strconv.Itoa(s.nextID),
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}
	s.byEmail[email] = u
	return u, nil
}

func (s *fakeUserStore) GetByEmail(_ context.Context, email string) (*model.User, error) {
	if u, ok := s.byEmail[email]; ok {
		return u, nil
	}
	return nil, repository.ErrNotFound
}

func (s *fakeUserStore) GetByID(_ context.Context, id string) (*model.User, error) {
	for _, u := range s.byEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func testConfig() config.Config {
	return config.Config{
		JWTSecret:    "handler-test-secret",
		AccessTTLMin: 15,
		BcryptCost:   4,
		AdminPIN:     "246810",
	}
}

func postJSON(e *echo.Echo, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func authEcho(h *AuthHandler) *echo.Echo {
	e := echo.New()
	e.POST("/api/auth/register", h.Register)
	e.POST("/api/auth/login", h.Login)
	return e
}

func TestRegister(t *testing.T) {
	h := NewAuthHandler(testConfig(), newFakeUserStore())
	e := authEcho(h)

	rec := postJSON(e, "/api/auth/register", `{"email":"owner@example.com","password":"bricks123"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201; body %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
		User        struct {
			Email string `json:"email"`
		} `json:"user"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if resp.AccessToken == "" {
		t.Fatal("no access token in response")
	}
	if resp.TokenType != "bearer" {
		t.Fatalf("token_type = %q, want bearer", resp.TokenType)
	}
	if resp.User.Email != "owner@example.com" {
		t.Fatalf("user.email = %q", resp.User.Email)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	h := NewAuthHandler(testConfig(), newFakeUserStore())
	e := authEcho(h)

	if rec := postJSON(e, "/api/auth/register", `{"email":"a@b.c","password":"x1"}`); rec.Code != http.StatusCreated {
		t.Fatalf("first register: %d", rec.Code)
	}
	rec := postJSON(e, "/api/auth/register", `{"email":"a@b.c","password":"other"}`)
	if rec.Code != http.StatusConflict {
		t.Fatalf("duplicate register status = %d, want 409", rec.Code)
	}
}

func TestRegisterValidation(t *testing.T) {
	h := NewAuthHandler(testConfig(), newFakeUserStore())
	e := authEcho(h)

	for _, body := range []string{
		`{"email":"","password":"x"}`,
		`{"email":"a@b.c","password":""}`,
		`{"email":"   ","password":"x"}`,
	} {
		if rec := postJSON(e, "/api/auth/register", body); rec.Code != http.StatusUnprocessableEntity {
			t.Fatalf("body %s: status = %d, want 422", body, rec.Code)
		}
	}
}

func TestLogin(t *testing.T) {
	store := newFakeUserStore()
	h := NewAuthHandler(testConfig(), store)
	e := authEcho(h)

	if rec := postJSON(e, "/api/auth/register", `{"email":"a@b.c","password":"right-horse"}`); rec.Code != http.StatusCreated {
		t.Fatalf("register: %d", rec.Code)
	}

	rec := postJSON(e, "/api/auth/login", `{"email":"a@b.c","password":"right-horse"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("login status = %d, want 200; body %s", rec.Code, rec.Body.String())
	}

	// Wrong password and unknown email must be indistinguishable.
	wrongPass := postJSON(e, "/api/auth/login", `{"email":"a@b.c","password":"nope"}`)
	unknown := postJSON(e, "/api/auth/login", `{"email":"ghost@b.c","password":"nope"}`)
	if wrongPass.Code != http.StatusUnauthorized || unknown.Code != http.StatusUnauthorized {
		t.Fatalf("statuses = %d/%d, want 401/401", wrongPass.Code, unknown.Code)
	}
	if wrongPass.Body.String() != unknown.Body.String() {
		t.Fatalf("401 bodies differ: %s vs %s", wrongPass.Body.String(), unknown.Body.String())
	}
}

func TestLoginEmailIsCaseSensitive(t *testing.T) {
	h := NewAuthHandler(testConfig(), newFakeUserStore())
	e := authEcho(h)

	if rec := postJSON(e, "/api/auth/register", `{"email":"Owner@Example.com","password":"pw12345"}`); rec.Code != http.StatusCreated {
		t.Fatalf("register: %d", rec.Code)
	}
	if rec := postJSON(e, "/api/auth/login", `{"email":"owner@example.com","password":"pw12345"}`); rec.Code != http.StatusUnauthorized {
		t.Fatalf("case-folded email status = %d, want 401", rec.Code)
	}
}

func TestMe(t *testing.T) {
	store := newFakeUserStore()
	u, _ := store.Create(context.Background(), "me@b.c", "hash")
	h := NewAuthHandler(testConfig(), store)

	e := echo.New()
	e.GET("/api/auth/me", func(c echo.Context) error {
		c.Set("user_id", u.ID)
		return h.Me(c)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var got userPart
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Email != "me@b.c" {
		t.Fatalf("email = %q", got.Email)
	}
}

// Compile-time check that the real repo satisfies the handler's store
// interface.
var _ UserStore = (*repository.UserRepo)(nil)
