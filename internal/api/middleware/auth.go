package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/salary-api/internal/api/metrics"
	"github.com/99minutos/salary-api/internal/core/domain"
	"github.com/99minutos/salary-api/internal/core/ports"
)

const principalKey = "principal"

// OwnerAuth resolves the bearer token through guard and requires the
// principal to be the user named by the ownerParam path parameter. An empty
// ownerParam only requires a valid token.
func OwnerAuth(guard ports.OwnerGuard, ownerParam string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, err := bearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
			if err != nil {
				metrics.AuthorizationDecisionsTotal.WithLabelValues("unauthenticated").Inc()
				return err
			}

			var requested string
			if ownerParam != "" {
				requested = c.Param(ownerParam)
			}

			principal, err := guard.AuthorizeOwner(c.Request().Context(), token, requested)
			if err != nil {
				metrics.AuthorizationDecisionsTotal.WithLabelValues(decision(err)).Inc()
				return err
			}

			metrics.AuthorizationDecisionsTotal.WithLabelValues("allowed").Inc()
			c.Set(principalKey, principal)
			return next(c)
		}
	}
}

// Principal returns the user stored by OwnerAuth, or nil.
func Principal(c echo.Context) *domain.User {
	u, _ := c.Get(principalKey).(*domain.User)
	return u
}

func bearerToken(header string) (string, error) {
	if header == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "not authenticated")
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || strings.TrimSpace(parts[1]) == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
	}
	return strings.TrimSpace(parts[1]), nil
}

func decision(err error) string {
	switch {
	case errors.Is(err, domain.ErrForbidden):
		return "forbidden"
	case domain.IsUnauthenticated(err):
		return "unauthenticated"
	default:
		return "error"
	}
}
