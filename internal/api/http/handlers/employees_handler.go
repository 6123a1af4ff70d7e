package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/guest-service/internal/api/dto"
	"github.com/spec-kit/guest-service/internal/service"
)

// EmployeesHandler exposes the employee directory.
type EmployeesHandler struct {
	auth *service.AuthService
}

// NewEmployeesHandler constructs handler.
func NewEmployeesHandler(authService *service.AuthService) *EmployeesHandler {
	return &EmployeesHandler{auth: authService}
}

// List handles GET /api/employees.
func (h *EmployeesHandler) List(c *fiber.Ctx) error {
	employees, err := h.auth.ListEmployees(c.Context())
	if err != nil {
		return err
	}
	items := make([]dto.UserResponse, 0, len(employees))
	for i := range employees {
		items = append(items, dto.NewUserResponse(&employees[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}
