package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/blood-donation-service/internal/api/dto"
	"github.com/spec-kit/blood-donation-service/internal/auth"
	"github.com/spec-kit/blood-donation-service/internal/domain"
	"github.com/spec-kit/blood-donation-service/internal/repository"
	"github.com/spec-kit/blood-donation-service/internal/service"
	apperrors "github.com/spec-kit/blood-donation-service/pkg/util"
)

// RequestsHandler manages blood request endpoints.
type RequestsHandler struct {
	service *service.RequestService
}

// NewRequestsHandler constructs handler.
func NewRequestsHandler(requestService *service.RequestService) *RequestsHandler {
	return &RequestsHandler{service: requestService}
}

// List handles GET /api/blood-requests. Public; supports blood_type, urgency
// and status filters.
func (h *RequestsHandler) List(c *fiber.Ctx) error {
	filter := repository.RequestFilter{
		BloodType: stringPtrOrNil(c.Query("blood_type")),
	}
	if urgency := c.Query("urgency"); urgency != "" {
		u := domain.RequestUrgency(urgency)
		filter.Urgency = &u
	}
	if status := c.Query("status"); status != "" {
		s := domain.RequestStatus(status)
		filter.Status = &s
	}

	requests, err := h.service.List(c.Context(), filter)
	if err != nil {
		return err
	}
	items := make([]dto.BloodRequestResponse, 0, len(requests))
	for i := range requests {
		items = append(items, dto.NewBloodRequestResponse(&requests[i]))
	}
	return c.JSON(items)
}

// Create handles POST /api/blood-requests.
func (h *RequestsHandler) Create(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.CreateBloodRequestRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	input := service.RequestCreateInput{
		PatientName:   req.PatientName,
		BloodType:     req.BloodType,
		Quantity:      req.Quantity,
		HospitalName:  req.HospitalName,
		ContactNumber: req.ContactNumber,
		Urgency:       req.Urgency,
		Description:   req.Description,
	}
	if req.RequiredDate != "" {
		date, ok := parseDate(req.RequiredDate)
		if !ok {
			return apperrors.NewValidationError("invalid required_date", nil)
		}
		input.RequiredDate = date
	}

	request, err := h.service.Create(c.Context(), principal.User.ID, input)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(dto.NewBloodRequestResponse(request))
}

// Get handles GET /api/blood-requests/:id.
func (h *RequestsHandler) Get(c *fiber.Ctx) error {
	request, err := h.service.Get(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(dto.NewBloodRequestResponse(request))
}

// Update handles PUT /api/blood-requests/:id.
func (h *RequestsHandler) Update(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.UpdateBloodRequestRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	input := service.RequestUpdateInput{
		PatientName:   req.PatientName,
		BloodType:     req.BloodType,
		Quantity:      req.Quantity,
		HospitalName:  req.HospitalName,
		ContactNumber: req.ContactNumber,
		Urgency:       req.Urgency,
		Description:   req.Description,
	}
	if req.RequiredDate != nil {
		date, ok := parseDate(*req.RequiredDate)
		if !ok {
			return apperrors.NewValidationError("invalid required_date", nil)
		}
		input.RequiredDate = &date
	}

	request, err := h.service.Update(c.Context(), c.Params("id"), principal.User.ID, input)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewBloodRequestResponse(request))
}

// Delete handles DELETE /api/blood-requests/:id.
func (h *RequestsHandler) Delete(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	if err := h.service.Delete(c.Context(), c.Params("id"), principal.User.ID, principal.IsAdmin()); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Blood request deleted successfully"})
}
