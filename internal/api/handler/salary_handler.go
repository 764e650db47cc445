package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/salary-api/internal/core/ports"
)

// SalaryHandler serves the owner-only salary resource.
type SalaryHandler struct {
	service ports.SalaryService
}

func NewSalaryHandler(service ports.SalaryService) *SalaryHandler {
	return &SalaryHandler{service: service}
}

// Get handles GET /users/:username/salary. The owner middleware has already
// checked that the bearer token belongs to :username.
//
// @Summary      Get the caller's salary
// @Tags         salary
// @Produce      json
// @Security     BearerAuth
// @Param        username  path      string  true  "Owner username"
// @Success      200       {object}  salaryResponse
// @Failure      401       {object}  errorResponse
// @Failure      403       {object}  errorResponse
// @Failure      404       {object}  errorResponse
// @Router       /users/{username}/salary [get]
func (h *SalaryHandler) Get(c echo.Context) error {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	salary, err := h.service.GetSalary(c.Request().Context(), principal)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, salaryResponse{
		Amount:      salary.Amount,
		Currency:    salary.Currency,
		NextRaiseAt: salary.NextRaiseAt.UTC(),
	})
}
