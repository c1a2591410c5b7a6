package ports

import (
	"context"
	"time"

	"github.com/gestock/supplier-registry/internal/core/domain"
)

type AuthService interface {
	Signup(ctx context.Context, username, email, password string) (*domain.User, error)
	// Login authenticates by username or email and returns a signed token.
	Login(ctx context.Context, usernameOrEmail, password string) (string, *domain.User, error)
	// Logout revokes the token until its natural expiry.
	Logout(ctx context.Context, token string) error
	CurrentUser(ctx context.Context, username string) (*domain.User, error)
	UsernameAvailable(ctx context.Context, username string) (bool, error)
	EmailAvailable(ctx context.Context, email string) (bool, error)
}

// TokenRevoker is the denylist consulted after signature and expiry checks.
// The stateless validate path stays untouched; revocation only narrows it.
type TokenRevoker interface {
	Revoke(ctx context.Context, token string, remaining time.Duration) error
	IsRevoked(ctx context.Context, token string) (bool, error)
}

// TokenService issues and validates signed, expiring tokens bound to a
// principal username. Implementations must be pure functions of
// (token, current time, static key) and safe for concurrent use.
type TokenService interface {
	Issue(subject string) (string, error)
	// Validate re-verifies the signature and expiry on every call. It fails
	// with domain.ErrTokenMalformed on signature or structure problems and
	// domain.ErrTokenExpired when the signature verifies but the token is
	// past its expiry.
	Validate(token string) (string, error)
	// SubjectOf extracts the subject without asserting validity; use it only
	// after Validate has already succeeded for the same token.
	SubjectOf(token string) (string, error)
	// ExpiresAt extracts the expiry claim through the same parse path.
	ExpiresAt(token string) (time.Time, error)
}
