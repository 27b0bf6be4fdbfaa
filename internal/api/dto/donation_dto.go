package dto

import (
	"time"

	"github.com/spec-kit/blood-donation-service/internal/domain"
)

// CreateDonationRequest payload for scheduling a donation.
type CreateDonationRequest struct {
	RequestID    string  `json:"request_id"`
	DonationDate string  `json:"donation_date"`
	Notes        *string `json:"notes"`
}

// DonationResponse is the wire representation of a donation.
type DonationResponse struct {
	ID           string                `json:"id"`
	DonorID      string                `json:"donor_id"`
	RequestID    string                `json:"request_id"`
	DonationDate time.Time             `json:"donation_date"`
	Status       domain.DonationStatus `json:"status"`
	Notes        *string               `json:"notes"`
	CreatedAt    time.Time             `json:"created_at"`
}

// NewDonationResponse maps a domain donation.
func NewDonationResponse(donation *domain.Donation) DonationResponse {
	return DonationResponse{
		ID:           donation.ID,
		DonorID:      donation.DonorID,
		RequestID:    donation.RequestID,
		DonationDate: donation.DonationDate,
		Status:       donation.Status,
		Notes:        donation.Notes,
		CreatedAt:    donation.CreatedAt,
	}
}

// NotificationResponse is the wire representation of a notification.
type NotificationResponse struct {
	ID        string                  `json:"id"`
	Title     string                  `json:"title"`
	Message   string                  `json:"message"`
	Type      domain.NotificationType `json:"type"`
	IsRead    bool                    `json:"is_read"`
	CreatedAt time.Time               `json:"created_at"`
}

// NewNotificationResponse maps a domain notification.
func NewNotificationResponse(n *domain.Notification) NotificationResponse {
	return NotificationResponse{
		ID:        n.ID,
		Title:     n.Title,
		Message:   n.Message,
		Type:      n.Type,
		IsRead:    n.IsRead,
		CreatedAt: n.CreatedAt,
	}
}
