package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/gestock/supplier-registry/internal/core/domain"
)

const defaultTokenTTL = 24 * time.Hour

// TokenService issues and validates HS256-signed JWTs. The signing key is
// fixed at construction and never rotated for the process lifetime, so every
// method is a pure function of (token, now) and safe to call concurrently.
type TokenService struct {
	key []byte
	ttl time.Duration
	// now is swappable for tests.
	now func() time.Time
}

func NewTokenService(secret string, ttl time.Duration) *TokenService {
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}
	return &TokenService{key: []byte(secret), ttl: ttl, now: time.Now}
}

// Issue returns a signed token carrying the subject, issued-at and expiry.
// Two tokens issued for the same subject at different instants are
// independent and both valid; there is no single-session enforcement.
func (s *TokenService) Issue(subject string) (string, error) {
	now := s.now().UTC()
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.key)
}

// Validate re-verifies the signature and expiry and returns the subject.
// Signature or structure failures map to domain.ErrTokenMalformed; a token
// whose signature verifies but whose expiry has passed maps to
// domain.ErrTokenExpired so callers can prompt re-login instead of rejecting
// outright.
func (s *TokenService) Validate(token string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, s.keyFunc,
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(func() time.Time { return s.now() }),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", domain.ErrTokenExpired
		}
		return "", domain.ErrTokenMalformed
	}
	if !parsed.Valid || claims.Subject == "" {
		return "", domain.ErrTokenMalformed
	}
	return claims.Subject, nil
}

// SubjectOf extracts the subject through the same parse path without
// re-asserting validity. Only call it for tokens Validate has accepted.
func (s *TokenService) SubjectOf(token string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return "", domain.ErrTokenMalformed
	}
	if claims.Subject == "" {
		return "", domain.ErrTokenMalformed
	}
	return claims.Subject, nil
}

// ExpiresAt extracts the expiry claim without re-asserting validity.
func (s *TokenService) ExpiresAt(token string) (time.Time, error) {
	claims := &jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}, domain.ErrTokenMalformed
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, domain.ErrTokenMalformed
	}
	return claims.ExpiresAt.Time, nil
}

func (s *TokenService) keyFunc(t *jwt.Token) (interface{}, error) {
	if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
		return nil, jwt.ErrTokenSignatureInvalid
	}
	return s.key, nil
}
