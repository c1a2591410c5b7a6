package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/gestock/supplier-registry/internal/core/domain"
	"github.com/gestock/supplier-registry/internal/core/ports"
)

// Context keys for the per-request session. The subject is attached here
// once validation succeeds and discarded with the request; nothing is shared
// across requests.
const (
	ContextKeySubject = "auth_subject"
	ContextKeyRole    = "auth_role"
	ContextKeyToken   = "auth_token"
)

// Auth validates the Bearer token, consults the revocation list, resolves
// the principal and attaches subject and role to the request context.
// revoker may be nil when revocation is disabled.
func Auth(tokens ports.TokenService, users ports.AuthRepository, revoker ports.TokenRevoker) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}
			token := parts[1]

			subject, err := tokens.Validate(token)
			if err != nil {
				if errors.Is(err, domain.ErrTokenExpired) {
					return echo.NewHTTPError(http.StatusUnauthorized, "token expired")
				}
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			if revoker != nil {
				revoked, err := revoker.IsRevoked(c.Request().Context(), token)
				if err != nil {
					return err
				}
				if revoked {
					return echo.NewHTTPError(http.StatusUnauthorized, "token revoked")
				}
			}

			user, err := users.FindByUsername(c.Request().Context(), subject)
			if err != nil {
				if errors.Is(err, domain.ErrUserNotFound) {
					return echo.NewHTTPError(http.StatusUnauthorized, "unknown principal")
				}
				return err
			}

			c.Set(ContextKeySubject, subject)
			c.Set(ContextKeyRole, user.Role)
			c.Set(ContextKeyToken, token)

			return next(c)
		}
	}
}
