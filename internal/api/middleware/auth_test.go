package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/gestock/supplier-registry/internal/core/domain"
	"github.com/gestock/supplier-registry/internal/core/service"
)

type stubUserRepo struct {
	users map[string]*domain.User
}

func (s *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	s.users[user.Username] = user
	return user, nil
}

func (s *stubUserRepo) FindByUsernameOrEmail(_ context.Context, identifier string) (*domain.User, error) {
	for _, u := range s.users {
		if u.Username == identifier || u.Email == identifier {
			return u, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (s *stubUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	u, ok := s.users[username]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return u, nil
}

func (s *stubUserRepo) ExistsByUsername(_ context.Context, username string) (bool, error) {
	_, ok := s.users[username]
	return ok, nil
}

func (s *stubUserRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	for _, u := range s.users {
		if u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

type stubRevoker struct {
	revoked map[string]bool
}

func (s *stubRevoker) Revoke(_ context.Context, token string, _ time.Duration) error {
	s.revoked[token] = true
	return nil
}

func (s *stubRevoker) IsRevoked(_ context.Context, token string) (bool, error) {
	return s.revoked[token], nil
}

func okHandler(c echo.Context) error {
	return c.String(http.StatusOK, "ok")
}

func runAuth(t *testing.T, mw echo.MiddlewareFunc, header string) (*httptest.ResponseRecorder, echo.Context) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/suppliers", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := mw(okHandler)(c)
	if err != nil {
		e.HTTPErrorHandler(err, c)
	}
	return rec, c
}

func TestAuthValidToken(t *testing.T) {
	tokens := service.NewTokenService("test-secret", time.Hour)
	repo := &stubUserRepo{users: map[string]*domain.User{
		"amira": {Username: "amira", Email: "amira@gestock.tn", Role: domain.RoleAdmin},
	}}
	mw := Auth(tokens, repo, nil)

	token, err := tokens.Issue("amira")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	rec, c := runAuth(t, mw, "Bearer "+token)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d (body %s)", rec.Code, http.StatusOK, rec.Body.String())
	}
	if got, _ := c.Get(ContextKeySubject).(string); got != "amira" {
		t.Fatalf("subject = %q, want %q", got, "amira")
	}
	if got, _ := c.Get(ContextKeyRole).(string); got != domain.RoleAdmin {
		t.Fatalf("role = %q, want %q", got, domain.RoleAdmin)
	}
	if got, _ := c.Get(ContextKeyToken).(string); got != token {
		t.Fatalf("token not attached to context")
	}
}

func TestAuthMissingHeader(t *testing.T) {
	tokens := service.NewTokenService("test-secret", time.Hour)
	repo := &stubUserRepo{users: map[string]*domain.User{}}
	mw := Auth(tokens, repo, nil)

	rec, _ := runAuth(t, mw, "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
}

func TestAuthBadScheme(t *testing.T) {
	tokens := service.NewTokenService("test-secret", time.Hour)
	repo := &stubUserRepo{users: map[string]*domain.User{}}
	mw := Auth(tokens, repo, nil)

	rec, _ := runAuth(t, mw, "Basic dXNlcjpwYXNz")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
}

func TestAuthMalformedToken(t *testing.T) {
	tokens := service.NewTokenService("test-secret", time.Hour)
	repo := &stubUserRepo{users: map[string]*domain.User{}}
	mw := Auth(tokens, repo, nil)

	rec, _ := runAuth(t, mw, "Bearer not.a.token")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
}

func TestAuthExpiredToken(t *testing.T) {
	tokens := service.NewTokenService("test-secret", time.Nanosecond)
	repo := &stubUserRepo{users: map[string]*domain.User{
		"amira": {Username: "amira", Role: domain.RoleUser},
	}}
	mw := Auth(tokens, repo, nil)

	token, err := tokens.Issue("amira")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	time.Sleep(time.Millisecond)

	rec, _ := runAuth(t, mw, "Bearer "+token)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
	if body := rec.Body.String(); !strings.Contains(body, "expired") {
		t.Fatalf("body %q should name the expiry", body)
	}
}

func TestAuthRevokedToken(t *testing.T) {
	tokens := service.NewTokenService("test-secret", time.Hour)
	repo := &stubUserRepo{users: map[string]*domain.User{
		"amira": {Username: "amira", Role: domain.RoleUser},
	}}
	revoker := &stubRevoker{revoked: map[string]bool{}}
	mw := Auth(tokens, repo, revoker)

	token, err := tokens.Issue("amira")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if err := revoker.Revoke(context.Background(), token, time.Hour); err != nil {
		t.Fatalf("revoke: %v", err)
	}

	rec, _ := runAuth(t, mw, "Bearer "+token)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
}

func TestAuthUnknownPrincipal(t *testing.T) {
	tokens := service.NewTokenService("test-secret", time.Hour)
	repo := &stubUserRepo{users: map[string]*domain.User{}}
	mw := Auth(tokens, repo, nil)

	token, err := tokens.Issue("ghost")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	rec, _ := runAuth(t, mw, "Bearer "+token)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
}

func TestAuthWrongKeyToken(t *testing.T) {
	tokens := service.NewTokenService("test-secret", time.Hour)
	other := service.NewTokenService("other-secret", time.Hour)
	repo := &stubUserRepo{users: map[string]*domain.User{
		"amira": {Username: "amira", Role: domain.RoleUser},
	}}
	mw := Auth(tokens, repo, nil)

	token, err := other.Issue("amira")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	rec, _ := runAuth(t, mw, "Bearer "+token)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
}
