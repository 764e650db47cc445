package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/salary-api/internal/api/middleware"
	"github.com/99minutos/salary-api/internal/core/domain"
)

// ctxPrincipal returns the user resolved by the owner middleware. Its absence
// means the route was wired without the middleware; fail closed with 401.
func ctxPrincipal(c echo.Context) (*domain.User, error) {
	principal := middleware.Principal(c)
	if principal == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication")
	}
	return principal, nil
}
