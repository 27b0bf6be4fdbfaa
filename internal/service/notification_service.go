package service

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/blood-donation-service/internal/domain"
	"github.com/spec-kit/blood-donation-service/internal/events"
	"github.com/spec-kit/blood-donation-service/internal/repository"
	apperrors "github.com/spec-kit/blood-donation-service/pkg/util"
)

// NotificationService persists per-user notifications for domain events and
// serves the notification feed.
type NotificationService struct {
	notifications repository.NotificationRepository
	dispatcher    events.Dispatcher
	logger        *zap.Logger
}

// NewNotificationService creates the service.
func NewNotificationService(notifications repository.NotificationRepository, dispatcher events.Dispatcher, logger *zap.Logger) *NotificationService {
	return &NotificationService{notifications: notifications, dispatcher: dispatcher, logger: logger}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventRequestCreated, n.handleRequestCreated)
	n.dispatcher.Subscribe(events.EventRequestStatusChanged, n.handleRequestStatusChanged)
	n.dispatcher.Subscribe(events.EventDonationScheduled, n.handleDonationEvent("Donation scheduled", "Your donation has been scheduled."))
	n.dispatcher.Subscribe(events.EventDonationCompleted, n.handleDonationEvent("Donation completed", "Thank you, your donation is recorded as completed."))
	n.dispatcher.Subscribe(events.EventDonationCancelled, n.handleDonationEvent("Donation cancelled", "Your scheduled donation was cancelled."))
}

// ListForUser returns the caller's notifications, newest first.
func (n *NotificationService) ListForUser(ctx context.Context, userID string) ([]domain.Notification, error) {
	list, err := n.notifications.ListByUser(ctx, userID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return list, nil
}

// MarkRead flags one of the caller's notifications as read.
func (n *NotificationService) MarkRead(ctx context.Context, id, userID string) error {
	err := n.notifications.MarkRead(ctx, id, userID)
	if err == pgx.ErrNoRows {
		return apperrors.NewNotFound("notification", nil)
	}
	return apperrors.MapError(err)
}

func (n *NotificationService) handleRequestCreated(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.RequestCreatedPayload)
	if !ok {
		return nil
	}
	n.store(ctx, &domain.Notification{
		UserID:  payload.RequesterID,
		Title:   "Blood request submitted",
		Message: fmt.Sprintf("Your request for %s blood for %s is pending review.", payload.BloodType, payload.PatientName),
		Type:    domain.NotificationTypeRequest,
	})
	return nil
}

func (n *NotificationService) handleRequestStatusChanged(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.RequestStatusChangedPayload)
	if !ok {
		return nil
	}
	n.store(ctx, &domain.Notification{
		UserID:  payload.RequesterID,
		Title:   fmt.Sprintf("Blood request %s", payload.NewStatus),
		Message: fmt.Sprintf("Your blood request status changed from %s to %s.", payload.OldStatus, payload.NewStatus),
		Type:    domain.NotificationTypeRequest,
	})
	return nil
}

func (n *NotificationService) handleDonationEvent(title, message string) events.EventHandler {
	return func(ctx context.Context, event events.Event) error {
		payload, ok := event.Payload.(events.DonationPayload)
		if !ok || payload.DonorUserID == "" {
			return nil
		}
		n.store(ctx, &domain.Notification{
			UserID:  payload.DonorUserID,
			Title:   title,
			Message: message,
			Type:    domain.NotificationTypeDonation,
		})
		return nil
	}
}

func (n *NotificationService) store(ctx context.Context, notification *domain.Notification) {
	if err := n.notifications.Create(ctx, notification); err != nil {
		n.logger.Warn("failed to store notification",
			zap.String("user_id", notification.UserID),
			zap.Error(err))
	}
}
