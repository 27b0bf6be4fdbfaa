package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/blood-donation-service/internal/api/dto"
	"github.com/spec-kit/blood-donation-service/internal/auth"
	"github.com/spec-kit/blood-donation-service/internal/service"
	apperrors "github.com/spec-kit/blood-donation-service/pkg/util"
)

// DonationsHandler manages donation scheduling endpoints.
type DonationsHandler struct {
	service *service.DonationService
}

// NewDonationsHandler constructs handler.
func NewDonationsHandler(donationService *service.DonationService) *DonationsHandler {
	return &DonationsHandler{service: donationService}
}

// Create handles POST /api/donations.
func (h *DonationsHandler) Create(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.CreateDonationRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	input := service.DonationScheduleInput{
		RequestID: req.RequestID,
		Notes:     req.Notes,
	}
	if req.DonationDate != "" {
		date, ok := parseDate(req.DonationDate)
		if !ok {
			return apperrors.NewValidationError("invalid donation_date", nil)
		}
		input.DonationDate = date
	}

	donation, err := h.service.Schedule(c.Context(), principal.User.ID, input)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(dto.NewDonationResponse(donation))
}

// List handles GET /api/donations, returning the caller's own donations.
func (h *DonationsHandler) List(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	donations, err := h.service.ListOwn(c.Context(), principal.User.ID)
	if err != nil {
		return err
	}
	items := make([]dto.DonationResponse, 0, len(donations))
	for i := range donations {
		items = append(items, dto.NewDonationResponse(&donations[i]))
	}
	return c.JSON(items)
}
