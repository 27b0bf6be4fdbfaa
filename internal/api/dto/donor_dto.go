package dto

import (
	"time"

	"github.com/spec-kit/blood-donation-service/internal/domain"
)

// CreateDonorRequest payload for donor registration.
type CreateDonorRequest struct {
	BloodType        string  `json:"blood_type"`
	Location         string  `json:"location"`
	PhoneNumber      string  `json:"phone_number"`
	LastDonationDate *string `json:"last_donation_date"`
	IsAvailable      *bool   `json:"is_available"`
}

// UpdateDonorRequest carries partial donor changes.
type UpdateDonorRequest struct {
	BloodType        *string `json:"blood_type"`
	Location         *string `json:"location"`
	PhoneNumber      *string `json:"phone_number"`
	LastDonationDate *string `json:"last_donation_date"`
	IsAvailable      *bool   `json:"is_available"`
}

// SetAvailabilityRequest toggles a donor's availability.
type SetAvailabilityRequest struct {
	IsAvailable *bool `json:"is_available"`
}

// DonorUser is the embedded owner summary on donor responses.
type DonorUser struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// DonorResponse is the wire representation of a donor.
type DonorResponse struct {
	ID               string     `json:"id"`
	UserID           string     `json:"user_id"`
	BloodType        string     `json:"blood_type"`
	Location         string     `json:"location"`
	PhoneNumber      string     `json:"phone_number"`
	LastDonationDate *time.Time `json:"last_donation_date"`
	IsAvailable      bool       `json:"is_available"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
	User             DonorUser  `json:"user"`
}

// NewDonorResponse maps a domain donor.
func NewDonorResponse(donor *domain.Donor) DonorResponse {
	return DonorResponse{
		ID:               donor.ID,
		UserID:           donor.UserID,
		BloodType:        donor.BloodType,
		Location:         donor.Location,
		PhoneNumber:      donor.PhoneNumber,
		LastDonationDate: donor.LastDonationDate,
		IsAvailable:      donor.IsAvailable,
		CreatedAt:        donor.CreatedAt,
		UpdatedAt:        donor.UpdatedAt,
		User:             DonorUser{Name: donor.UserName, Email: donor.UserEmail},
	}
}
