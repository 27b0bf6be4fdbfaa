package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/blood-donation-service/internal/api/dto"
	"github.com/spec-kit/blood-donation-service/internal/auth"
	"github.com/spec-kit/blood-donation-service/internal/service"
	apperrors "github.com/spec-kit/blood-donation-service/pkg/util"
)

// NotificationsHandler serves the caller's notification feed.
type NotificationsHandler struct {
	service *service.NotificationService
}

// NewNotificationsHandler constructs handler.
func NewNotificationsHandler(notificationService *service.NotificationService) *NotificationsHandler {
	return &NotificationsHandler{service: notificationService}
}

// List handles GET /api/notifications.
func (h *NotificationsHandler) List(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	notifications, err := h.service.ListForUser(c.Context(), principal.User.ID)
	if err != nil {
		return err
	}
	items := make([]dto.NotificationResponse, 0, len(notifications))
	for i := range notifications {
		items = append(items, dto.NewNotificationResponse(&notifications[i]))
	}
	return c.JSON(items)
}

// MarkRead handles POST /api/notifications/:id/read.
func (h *NotificationsHandler) MarkRead(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	if err := h.service.MarkRead(c.Context(), c.Params("id"), principal.User.ID); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Notification marked as read"})
}
