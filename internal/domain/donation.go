package domain

import "time"

// DonationStatus enumerates lifecycle states for scheduled donations.
type DonationStatus string

const (
	DonationStatusScheduled DonationStatus = "scheduled"
	DonationStatusCompleted DonationStatus = "completed"
	DonationStatusCancelled DonationStatus = "cancelled"
)

// Donation links a donor to a blood request it helps fulfill.
type Donation struct {
	ID           string
	DonorID      string
	RequestID    string
	DonationDate time.Time
	Status       DonationStatus
	Notes        *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
