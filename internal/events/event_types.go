package events

import (
	"time"

	"github.com/spec-kit/blood-donation-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventRequestCreated       EventType = "request_created"
	EventRequestStatusChanged EventType = "request_status_changed"
	EventDonationScheduled    EventType = "donation_scheduled"
	EventDonationCompleted    EventType = "donation_completed"
	EventDonationCancelled    EventType = "donation_cancelled"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	ActorID   string      `json:"actor_id"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// RequestCreatedPayload payload.
type RequestCreatedPayload struct {
	RequestID   string                `json:"request_id"`
	RequesterID string                `json:"requester_id"`
	BloodType   string                `json:"blood_type"`
	Urgency     domain.RequestUrgency `json:"urgency"`
	PatientName string                `json:"patient_name"`
}

// RequestStatusChangedPayload payload.
type RequestStatusChangedPayload struct {
	RequestID   string               `json:"request_id"`
	RequesterID string               `json:"requester_id"`
	OldStatus   domain.RequestStatus `json:"old_status"`
	NewStatus   domain.RequestStatus `json:"new_status"`
}

// DonationPayload payload for donation lifecycle events.
type DonationPayload struct {
	DonationID  string `json:"donation_id"`
	DonorID     string `json:"donor_id"`
	DonorUserID string `json:"donor_user_id"`
	RequestID   string `json:"request_id"`
}
