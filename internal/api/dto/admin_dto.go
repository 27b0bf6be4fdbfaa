package dto

import (
	"time"

	"github.com/spec-kit/blood-donation-service/internal/domain"
)

// PromoteRequest payload for admin promotion.
type PromoteRequest struct {
	Email string `json:"email"`
}

// AdminUserRow is the admin listing shape for accounts.
type AdminUserRow struct {
	ID        string            `json:"id"`
	Name      string            `json:"name"`
	Email     string            `json:"email"`
	Role      domain.UserRole   `json:"role"`
	Status    domain.UserStatus `json:"status"`
	CreatedAt time.Time         `json:"created_at"`
}

// NewAdminUserRow maps a domain user for the admin listing.
func NewAdminUserRow(user *domain.User) AdminUserRow {
	return AdminUserRow{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		Role:      user.Role,
		Status:    user.Status,
		CreatedAt: user.CreatedAt,
	}
}

// AdminRequestRow is the admin listing shape for blood requests, using the
// camelCase keys the dashboard consumes.
type AdminRequestRow struct {
	ID            string                `json:"id"`
	PatientName   string                `json:"patientName"`
	BloodType     string                `json:"bloodType"`
	Quantity      int                   `json:"quantity"`
	HospitalName  string                `json:"hospitalName"`
	ContactNumber string                `json:"contactNumber"`
	RequiredDate  time.Time             `json:"requiredDate"`
	Urgency       domain.RequestUrgency `json:"urgency"`
	Status        domain.RequestStatus  `json:"status"`
	Description   *string               `json:"description"`
	Requester     RequesterInfo         `json:"requester"`
	CreatedAt     time.Time             `json:"createdAt"`
	UpdatedAt     time.Time             `json:"updatedAt"`
}

// NewAdminRequestRow maps a domain blood request for the admin listing.
func NewAdminRequestRow(request *domain.BloodRequest) AdminRequestRow {
	return AdminRequestRow{
		ID:            request.ID,
		PatientName:   request.PatientName,
		BloodType:     request.BloodType,
		Quantity:      request.Quantity,
		HospitalName:  request.HospitalName,
		ContactNumber: request.ContactNumber,
		RequiredDate:  request.RequiredDate,
		Urgency:       request.Urgency,
		Status:        request.Status,
		Description:   request.Description,
		Requester:     RequesterInfo{Name: request.RequesterName, Email: request.RequesterEmail},
		CreatedAt:     request.CreatedAt,
		UpdatedAt:     request.UpdatedAt,
	}
}
