package dto

import (
	"time"

	"github.com/spec-kit/blood-donation-service/internal/domain"
)

// CreateBloodRequestRequest payload for new blood requests.
type CreateBloodRequestRequest struct {
	PatientName   string                `json:"patient_name"`
	BloodType     string                `json:"blood_type"`
	Quantity      int                   `json:"quantity"`
	HospitalName  string                `json:"hospital_name"`
	ContactNumber string                `json:"contact_number"`
	RequiredDate  string                `json:"required_date"`
	Urgency       domain.RequestUrgency `json:"urgency"`
	Description   *string               `json:"description"`
}

// UpdateBloodRequestRequest carries partial request changes.
type UpdateBloodRequestRequest struct {
	PatientName   *string                `json:"patient_name"`
	BloodType     *string                `json:"blood_type"`
	Quantity      *int                   `json:"quantity"`
	HospitalName  *string                `json:"hospital_name"`
	ContactNumber *string                `json:"contact_number"`
	RequiredDate  *string                `json:"required_date"`
	Urgency       *domain.RequestUrgency `json:"urgency"`
	Description   *string                `json:"description"`
}

// RequesterInfo is the embedded requester summary on request responses.
type RequesterInfo struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// BloodRequestResponse is the wire representation of a blood request.
type BloodRequestResponse struct {
	ID            string                `json:"id"`
	UserID        string                `json:"user_id"`
	PatientName   string                `json:"patient_name"`
	BloodType     string                `json:"blood_type"`
	Quantity      int                   `json:"quantity"`
	HospitalName  string                `json:"hospital_name"`
	ContactNumber string                `json:"contact_number"`
	RequiredDate  time.Time             `json:"required_date"`
	Urgency       domain.RequestUrgency `json:"urgency"`
	Status        domain.RequestStatus  `json:"status"`
	Description   *string               `json:"description"`
	ApprovedBy    *string               `json:"approved_by"`
	ApprovedAt    *time.Time            `json:"approved_at"`
	CreatedAt     time.Time             `json:"created_at"`
	UpdatedAt     time.Time             `json:"updated_at"`
	Requester     RequesterInfo         `json:"requester"`
}

// NewBloodRequestResponse maps a domain blood request.
func NewBloodRequestResponse(request *domain.BloodRequest) BloodRequestResponse {
	return BloodRequestResponse{
		ID:            request.ID,
		UserID:        request.UserID,
		PatientName:   request.PatientName,
		BloodType:     request.BloodType,
		Quantity:      request.Quantity,
		HospitalName:  request.HospitalName,
		ContactNumber: request.ContactNumber,
		RequiredDate:  request.RequiredDate,
		Urgency:       request.Urgency,
		Status:        request.Status,
		Description:   request.Description,
		ApprovedBy:    request.ApprovedBy,
		ApprovedAt:    request.ApprovedAt,
		CreatedAt:     request.CreatedAt,
		UpdatedAt:     request.UpdatedAt,
		Requester:     RequesterInfo{Name: request.RequesterName, Email: request.RequesterEmail},
	}
}
