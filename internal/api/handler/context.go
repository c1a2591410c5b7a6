package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/gestock/supplier-registry/internal/api/middleware"
	"github.com/gestock/supplier-registry/internal/core/domain"
)

// currentSubject returns the authenticated username attached by the Auth
// middleware. An empty subject means the middleware never ran for this route,
// which surfaces as domain.ErrNoActiveSession rather than a panic.
func currentSubject(c echo.Context) (string, error) {
	subject, _ := c.Get(middleware.ContextKeySubject).(string)
	if subject == "" {
		return "", domain.ErrNoActiveSession
	}
	return subject, nil
}

// currentToken returns the raw bearer token for the request, needed by
// logout to revoke exactly the token that authenticated the call.
func currentToken(c echo.Context) (string, error) {
	token, _ := c.Get(middleware.ContextKeyToken).(string)
	if token == "" {
		return "", domain.ErrNoActiveSession
	}
	return token, nil
}
