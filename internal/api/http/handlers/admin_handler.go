package handlers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/blood-donation-service/internal/api/dto"
	"github.com/spec-kit/blood-donation-service/internal/auth"
	"github.com/spec-kit/blood-donation-service/internal/service"
	apperrors "github.com/spec-kit/blood-donation-service/pkg/util"
)

// AdminHandler exposes the admin dashboard endpoints.
type AdminHandler struct {
	service *service.AdminService
}

// NewAdminHandler constructs handler.
func NewAdminHandler(adminService *service.AdminService) *AdminHandler {
	return &AdminHandler{service: adminService}
}

// ListUsers handles GET /api/admin/users.
func (h *AdminHandler) ListUsers(c *fiber.Ctx) error {
	users, err := h.service.ListUsers(c.Context())
	if err != nil {
		return err
	}
	items := make([]dto.AdminUserRow, 0, len(users))
	for i := range users {
		items = append(items, dto.NewAdminUserRow(&users[i]))
	}
	return c.JSON(items)
}

// ListDonors handles GET /api/admin/donors.
func (h *AdminHandler) ListDonors(c *fiber.Ctx) error {
	donors, err := h.service.ListDonors(c.Context())
	if err != nil {
		return err
	}
	items := make([]dto.DonorResponse, 0, len(donors))
	for i := range donors {
		items = append(items, dto.NewDonorResponse(&donors[i]))
	}
	return c.JSON(items)
}

// ListRequests handles GET /api/admin/requests.
func (h *AdminHandler) ListRequests(c *fiber.Ctx) error {
	requests, err := h.service.ListRequests(c.Context())
	if err != nil {
		return err
	}
	items := make([]dto.AdminRequestRow, 0, len(requests))
	for i := range requests {
		items = append(items, dto.NewAdminRequestRow(&requests[i]))
	}
	return c.JSON(items)
}

// ListDonations handles GET /api/admin/donations.
func (h *AdminHandler) ListDonations(c *fiber.Ctx) error {
	donations, err := h.service.ListDonations(c.Context())
	if err != nil {
		return err
	}
	items := make([]dto.DonationResponse, 0, len(donations))
	for i := range donations {
		items = append(items, dto.NewDonationResponse(&donations[i]))
	}
	return c.JSON(items)
}

// Stats handles GET /api/admin/stats.
func (h *AdminHandler) Stats(c *fiber.Ctx) error {
	stats, err := h.service.Stats(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(stats)
}

// Analytics handles GET /api/admin/analytics.
func (h *AdminHandler) Analytics(c *fiber.Ctx) error {
	analytics, err := h.service.Analytics(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(analytics)
}

// UserAction handles POST /api/admin/users/:id/:action.
func (h *AdminHandler) UserAction(c *fiber.Ctx) error {
	id := c.Params("id")
	action := service.UserAction(c.Params("action"))
	if err := h.service.UserAction(c.Context(), id, action); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": fmt.Sprintf("%s applied to user %s", action, id)})
}

// DonorAction handles POST /api/admin/donors/:id/:action.
func (h *AdminHandler) DonorAction(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	id := c.Params("id")
	action := service.DonorAction(c.Params("action"))
	if err := h.service.DonorAction(c.Context(), id, action, principal.User.ID); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": fmt.Sprintf("%s applied to donor %s", action, id)})
}

// RequestAction handles POST /api/admin/requests/:id/:action.
func (h *AdminHandler) RequestAction(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	id := c.Params("id")
	action := service.RequestAction(c.Params("action"))
	if err := h.service.RequestAction(c.Context(), id, action, principal.User.ID); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": fmt.Sprintf("%s applied to request %s", action, id)})
}

// DonationAction handles POST /api/admin/donations/:id/:action.
func (h *AdminHandler) DonationAction(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	id := c.Params("id")
	action := service.DonationAction(c.Params("action"))
	if err := h.service.DonationAction(c.Context(), id, action, principal.User.ID); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": fmt.Sprintf("%s applied to donation %s", action, id)})
}

// Promote handles POST /api/admin/promote.
func (h *AdminHandler) Promote(c *fiber.Ctx) error {
	var req dto.PromoteRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	user, err := h.service.Promote(c.Context(), req.Email)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": fmt.Sprintf("User %s promoted to admin.", user.Email)})
}
