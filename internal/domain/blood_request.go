package domain

import "time"

// RequestStatus enumerates lifecycle states for blood requests.
type RequestStatus string

const (
	RequestStatusPending   RequestStatus = "pending"
	RequestStatusApproved  RequestStatus = "approved"
	RequestStatusFulfilled RequestStatus = "fulfilled"
	RequestStatusRejected  RequestStatus = "rejected"
)

// RequestUrgency enumerates urgency levels.
type RequestUrgency string

const (
	UrgencyNormal    RequestUrgency = "normal"
	UrgencyUrgent    RequestUrgency = "urgent"
	UrgencyEmergency RequestUrgency = "emergency"
)

// ValidUrgency reports whether u is a known urgency level.
func ValidUrgency(u RequestUrgency) bool {
	switch u {
	case UrgencyNormal, UrgencyUrgent, UrgencyEmergency:
		return true
	}
	return false
}

// BloodRequest is the aggregate for blood demand.
// ApprovedBy/ApprovedAt are set together when status becomes approved
// and are never written by any other transition.
type BloodRequest struct {
	ID            string
	UserID        string
	PatientName   string
	BloodType     string
	Quantity      int
	HospitalName  string
	ContactNumber string
	RequiredDate  time.Time
	Urgency       RequestUrgency
	Status        RequestStatus
	Description   *string
	ApprovedBy    *string
	ApprovedAt    *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time

	// Requester info populated by listing joins.
	RequesterName  string
	RequesterEmail string
}
