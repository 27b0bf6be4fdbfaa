package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/blood-donation-service/internal/api/dto"
	"github.com/spec-kit/blood-donation-service/internal/auth"
	"github.com/spec-kit/blood-donation-service/internal/repository"
	"github.com/spec-kit/blood-donation-service/internal/service"
	apperrors "github.com/spec-kit/blood-donation-service/pkg/util"
)

// DonorsHandler manages donor registry endpoints.
type DonorsHandler struct {
	service *service.DonorService
}

// NewDonorsHandler constructs handler.
func NewDonorsHandler(donorService *service.DonorService) *DonorsHandler {
	return &DonorsHandler{service: donorService}
}

// List handles GET /api/donors. Public; supports blood_type, location and
// is_available filters.
func (h *DonorsHandler) List(c *fiber.Ctx) error {
	filter := repository.DonorFilter{
		BloodType:   stringPtrOrNil(c.Query("blood_type")),
		Location:    stringPtrOrNil(c.Query("location")),
		IsAvailable: parseBoolQuery(c.Query("is_available")),
	}
	donors, err := h.service.List(c.Context(), filter)
	if err != nil {
		return err
	}
	items := make([]dto.DonorResponse, 0, len(donors))
	for i := range donors {
		items = append(items, dto.NewDonorResponse(&donors[i]))
	}
	return c.JSON(items)
}

// Create handles POST /api/donors.
func (h *DonorsHandler) Create(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.CreateDonorRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	input := service.DonorRegisterInput{
		BloodType:   req.BloodType,
		Location:    req.Location,
		PhoneNumber: req.PhoneNumber,
		IsAvailable: req.IsAvailable,
	}
	if req.LastDonationDate != nil {
		date, ok := parseDate(*req.LastDonationDate)
		if !ok {
			return apperrors.NewValidationError("invalid last_donation_date", nil)
		}
		input.LastDonationDate = &date
	}

	donor, err := h.service.Register(c.Context(), principal.User.ID, input)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(dto.NewDonorResponse(donor))
}

// Get handles GET /api/donors/:id.
func (h *DonorsHandler) Get(c *fiber.Ctx) error {
	donor, err := h.service.Get(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(dto.NewDonorResponse(donor))
}

// Update handles PUT /api/donors/:id.
func (h *DonorsHandler) Update(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.UpdateDonorRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	input := service.DonorUpdateInput{
		BloodType:   req.BloodType,
		Location:    req.Location,
		PhoneNumber: req.PhoneNumber,
		IsAvailable: req.IsAvailable,
	}
	if req.LastDonationDate != nil {
		date, ok := parseDate(*req.LastDonationDate)
		if !ok {
			return apperrors.NewValidationError("invalid last_donation_date", nil)
		}
		input.LastDonationDate = &date
	}

	donor, err := h.service.Update(c.Context(), c.Params("id"), principal.User.ID, input)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewDonorResponse(donor))
}

// SetAvailability handles PATCH /api/donors/:id/availability.
func (h *DonorsHandler) SetAvailability(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.SetAvailabilityRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.IsAvailable == nil {
		return apperrors.NewValidationError("is_available required", nil)
	}

	donor, err := h.service.SetAvailability(c.Context(), c.Params("id"),
		principal.User.ID, principal.IsAdmin(), *req.IsAvailable)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewDonorResponse(donor))
}
