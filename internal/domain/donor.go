package domain

import "time"

// Donor is a user's donor profile. At most one exists per user.
type Donor struct {
	ID               string
	UserID           string
	BloodType        string
	Location         string
	PhoneNumber      string
	LastDonationDate *time.Time
	IsAvailable      bool
	CreatedAt        time.Time
	UpdatedAt        time.Time

	// Populated on listing joins, not stored on the donors table.
	UserName  string
	UserEmail string
}
