package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/jaidev3/notebook-llm/internal/core/domain"
	"github.com/jaidev3/notebook-llm/internal/core/service"
)

type stubResolver struct {
	accounts map[string]*domain.Account
}

func (r *stubResolver) FindByUsername(_ context.Context, username string) (*domain.Account, error) {
	if a, ok := r.accounts[username]; ok {
		return a, nil
	}
	return nil, domain.ErrAccountNotFound
}

func testAuthSetup(t *testing.T, accounts map[string]*domain.Account) (*echo.Echo, echo.MiddlewareFunc, *service.JWTTokenService) {
	t.Helper()
	e := echo.New()
	tokens := service.NewTokenService("secret", time.Hour)
	mw := Auth(tokens, &stubResolver{accounts: accounts})
	return e, mw, tokens
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	account := &domain.Account{ID: "1", Username: "alice", Role: domain.RoleAdmin, Active: true}
	e, mw, tokens := testAuthSetup(t, map[string]*domain.Account{"alice": account})

	token, _, err := tokens.Issue("alice", domain.RoleAdmin)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	handler := mw(func(c echo.Context) error {
		called = true
		got, _ := c.Get(AccountKey).(*domain.Account)
		if got == nil || got.Username != "alice" {
			t.Fatalf("account not set in context: %+v", got)
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatal("next not called")
	}
}

func TestAuthMiddleware_MissingHeader(t *testing.T) {
	e, mw, _ := testAuthSetup(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := mw(func(c echo.Context) error {
		t.Fatal("should not reach next")
		return nil
	})

	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAuthMiddleware_InvalidHeaderFormat(t *testing.T) {
	e, mw, _ := testAuthSetup(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Token abc")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := mw(func(c echo.Context) error {
		t.Fatal("should not reach next")
		return nil
	})

	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAuthMiddleware_InvalidToken(t *testing.T) {
	e, mw, _ := testAuthSetup(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := mw(func(c echo.Context) error {
		t.Fatal("should not reach next")
		return nil
	})

	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAuthMiddleware_DeletedAccount(t *testing.T) {
	// Valid signature, but the subject's account no longer exists.
	e, mw, tokens := testAuthSetup(t, map[string]*domain.Account{})

	token, _, err := tokens.Issue("ghost", domain.RoleUser)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := mw(func(c echo.Context) error {
		t.Fatal("should not reach next")
		return nil
	})

	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

type failingResolver struct {
	err error
}

func (r *failingResolver) FindByUsername(context.Context, string) (*domain.Account, error) {
	return nil, r.err
}

func TestAuthMiddleware_StoreFailure(t *testing.T) {
	// A store outage behind a well-signed token must not masquerade as an
	// authentication failure.
	e := echo.New()
	tokens := service.NewTokenService("secret", time.Hour)
	storeErr := errors.New("find user: context deadline exceeded")
	mw := Auth(tokens, &failingResolver{err: storeErr})

	token, _, err := tokens.Issue("alice", domain.RoleUser)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := mw(func(c echo.Context) error {
		t.Fatal("should not reach next")
		return nil
	})

	err = handler(c)
	if err == nil {
		t.Fatal("expected error from failing store")
	}
	if !errors.Is(err, storeErr) {
		t.Fatalf("expected store error to be surfaced, got %v", err)
	}
	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) && httpErr.Code == http.StatusUnauthorized {
		t.Fatalf("store failure reported as 401: %v", err)
	}
}

func TestAuthMiddleware_InactiveAccount(t *testing.T) {
	account := &domain.Account{ID: "1", Username: "bob", Role: domain.RoleUser, Active: false}
	e, mw, tokens := testAuthSetup(t, map[string]*domain.Account{"bob": account})

	token, _, err := tokens.Issue("bob", domain.RoleUser)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := mw(func(c echo.Context) error {
		t.Fatal("should not reach next")
		return nil
	})

	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
}
