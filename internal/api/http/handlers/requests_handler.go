package handlers

import (
	"context"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/guest-service/internal/api/dto"
	"github.com/spec-kit/guest-service/internal/auth"
	"github.com/spec-kit/guest-service/internal/domain"
	"github.com/spec-kit/guest-service/internal/service"
	apperrors "github.com/spec-kit/guest-service/pkg/util"
)

// RequestsHandler manages service-request endpoints.
type RequestsHandler struct {
	service *service.RequestService
}

// NewRequestsHandler constructs handler.
func NewRequestsHandler(requestService *service.RequestService) *RequestsHandler {
	return &RequestsHandler{service: requestService}
}

// Create handles POST /api/requests. The caller becomes the owning guest.
func (h *RequestsHandler) Create(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.CreateRequestRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.EmployeeID == "" {
		return apperrors.NewValidationError("employee_id required", nil)
	}

	request, err := h.service.Create(c.Context(), principal, service.RequestCreateInput{
		EmployeeID:  req.EmployeeID,
		Type:        domain.RequestType(req.Type),
		Description: req.Description,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": fiber.Map{"request_id": request.ID}})
}

// List handles GET /api/requests, scoped to the caller's role.
func (h *RequestsHandler) List(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	requests, err := h.service.ListForUser(c.Context(), principal)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewRequestResponses(requests)})
}

// ListByGuest handles POST /api/requests/by-guest.
func (h *RequestsHandler) ListByGuest(c *fiber.Ctx) error {
	return h.lookup(c, h.service.ListByGuestID)
}

// ListByEmployee handles POST /api/requests/by-employee.
func (h *RequestsHandler) ListByEmployee(c *fiber.Ctx) error {
	return h.lookup(c, h.service.ListByEmployeeID)
}

// Update handles PATCH /api/requests/:id.
func (h *RequestsHandler) Update(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.UpdateRequestRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	patch := service.RequestPatch{Notes: req.Notes}
	if req.Status != nil {
		status := domain.RequestStatus(*req.Status)
		patch.Status = &status
	}

	request, err := h.service.Update(c.Context(), principal, c.Params("id"), patch)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewRequestResponse(request)})
}

type lookupFn func(ctx context.Context, caller *domain.User, userID string) ([]domain.Request, error)

func (h *RequestsHandler) lookup(c *fiber.Ctx, fn lookupFn) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.LookupRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.UserID == "" {
		return apperrors.NewValidationError("user_id required", nil)
	}

	requests, err := fn(c.Context(), principal, req.UserID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewRequestResponses(requests)})
}
