package handler

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/yadu32/brickworks-pro-suite/internal/repository"
)

func TestValidDate(t *testing.T) {
	cases := []struct {
		in   string
		want bool
	}{
		{"2026-01-31", true},
		{"2026-1-31", false},
		{"31-01-2026", false},
		{"2026-02-30", false},
		{"", false},
		{"yesterday", false},
	}
	for _, tc := range cases {
		if got := validDate(tc.in); got != tc.want {
			t.Fatalf("validDate(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestOwnershipErrorMapping(t *testing.T) {
	cases := []struct {
		name string
		err  error
		code int
	}{
		// Unknown and foreign factory ids are indistinguishable to the caller.
		{"unknown factory", repository.ErrNotFound, http.StatusForbidden},
		{"foreign factory", repository.ErrForbidden, http.StatusForbidden},
		{"other failure", errors.New("connection refused"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := echo.New()
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			if err := ownershipError(c, tc.err); err != nil {
				t.Fatalf("handler err: %v", err)
			}
			if rec.Code != tc.code {
				t.Fatalf("status = %d, want %d", rec.Code, tc.code)
			}
		})
	}
}

func TestRecordErrorMapping(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := recordError(c, repository.ErrNotFound, "sale"); err != nil {
		t.Fatalf("handler err: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	if body := rec.Body.String(); body == "" || body[0] != '{' {
		t.Fatalf("body = %q, want JSON error", body)
	}
}
