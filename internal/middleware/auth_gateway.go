package middleware

import (
	"net/http"
	"strings"

	"github.com/adrisdev/fotogram/backend/internal/models"
	"github.com/adrisdev/fotogram/backend/internal/services"
	"github.com/labstack/echo/v4"
)

const principalKey = "principal"

// AuthGateway verifies the bearer token of an inbound request and resolves
// the calling principal for downstream handlers. Any failure, including a
// token whose principal no longer exists, is a 401.
func AuthGateway(tokens *services.TokenService, identity *services.IdentityService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing Authorization header")
			}

			// Expecting "Bearer <token>"
			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid Authorization header format")
			}

			userID, err := tokens.Verify(parts[1])
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
			}

			user, err := identity.ValidateUser(c.Request().Context(), userID)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "unknown principal")
			}

			c.Set(principalKey, user)
			return next(c)
		}
	}
}

// PrincipalFromContext returns the authenticated user set by AuthGateway, or
// nil when the request was not authenticated.
func PrincipalFromContext(c echo.Context) *models.User {
	user, _ := c.Get(principalKey).(*models.User)
	return user
}
