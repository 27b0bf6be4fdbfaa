package service

import (
	"context"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/blood-donation-service/internal/domain"
	"github.com/spec-kit/blood-donation-service/internal/repository"
	apperrors "github.com/spec-kit/blood-donation-service/pkg/util"
)

// DonorService coordinates donor registry workflows.
type DonorService struct {
	donors repository.DonorRepository
}

// NewDonorService constructs the service.
func NewDonorService(donors repository.DonorRepository) *DonorService {
	return &DonorService{donors: donors}
}

// DonorRegisterInput describes donor profile creation payload.
type DonorRegisterInput struct {
	BloodType        string
	Location         string
	PhoneNumber      string
	LastDonationDate *time.Time
	IsAvailable      *bool
}

// DonorUpdateInput carries partial update fields; nil means keep previous.
type DonorUpdateInput struct {
	BloodType        *string
	Location         *string
	PhoneNumber      *string
	LastDonationDate *time.Time
	IsAvailable      *bool
}

// Register creates a donor profile, enforcing one profile per user.
func (s *DonorService) Register(ctx context.Context, userID string, input DonorRegisterInput) (*domain.Donor, error) {
	if strings.TrimSpace(input.BloodType) == "" || strings.TrimSpace(input.Location) == "" ||
		strings.TrimSpace(input.PhoneNumber) == "" {
		return nil, apperrors.NewValidationError("blood_type, location, phone_number required", nil)
	}

	if _, err := s.donors.GetByUserID(ctx, userID); err == nil {
		return nil, apperrors.NewConflict("user already has a donor profile", nil)
	} else if err != pgx.ErrNoRows {
		return nil, apperrors.MapError(err)
	}

	available := true
	if input.IsAvailable != nil {
		available = *input.IsAvailable
	}

	donor := &domain.Donor{
		UserID:           userID,
		BloodType:        input.BloodType,
		Location:         input.Location,
		PhoneNumber:      input.PhoneNumber,
		LastDonationDate: input.LastDonationDate,
		IsAvailable:      available,
	}
	if err := s.donors.Create(ctx, donor); err != nil {
		return nil, apperrors.MapError(err)
	}
	// Re-fetch to populate the user join columns.
	return s.Get(ctx, donor.ID)
}

// Get fetches a donor by id.
func (s *DonorService) Get(ctx context.Context, id string) (*domain.Donor, error) {
	donor, err := s.donors.GetByID(ctx, id)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("donor", nil)
		}
		return nil, apperrors.MapError(err)
	}
	return donor, nil
}

// List returns donors matching the filter, newest first.
func (s *DonorService) List(ctx context.Context, filter repository.DonorFilter) ([]domain.Donor, error) {
	donors, err := s.donors.ListWithFilter(ctx, filter)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return donors, nil
}

// Update applies partial changes to the caller's own donor profile.
func (s *DonorService) Update(ctx context.Context, donorID, userID string, input DonorUpdateInput) (*domain.Donor, error) {
	donor, err := s.Get(ctx, donorID)
	if err != nil {
		return nil, err
	}
	if donor.UserID != userID {
		return nil, apperrors.NewNotFound("donor", nil)
	}

	if input.BloodType != nil && *input.BloodType != "" {
		donor.BloodType = *input.BloodType
	}
	if input.Location != nil && *input.Location != "" {
		donor.Location = *input.Location
	}
	if input.PhoneNumber != nil && *input.PhoneNumber != "" {
		donor.PhoneNumber = *input.PhoneNumber
	}
	if input.LastDonationDate != nil {
		donor.LastDonationDate = input.LastDonationDate
	}
	if input.IsAvailable != nil {
		donor.IsAvailable = *input.IsAvailable
	}

	if err := s.donors.Update(ctx, donor); err != nil {
		return nil, apperrors.MapError(err)
	}
	return donor, nil
}

// SetAvailability toggles availability; allowed for the owner or an admin.
// No other field is touched.
func (s *DonorService) SetAvailability(ctx context.Context, donorID, actorUserID string, actorIsAdmin, available bool) (*domain.Donor, error) {
	donor, err := s.Get(ctx, donorID)
	if err != nil {
		return nil, err
	}
	if donor.UserID != actorUserID && !actorIsAdmin {
		return nil, apperrors.NewForbidden("not allowed to change this donor")
	}
	if err := s.donors.SetAvailability(ctx, donorID, available); err != nil {
		return nil, apperrors.MapError(err)
	}
	donor.IsAvailable = available
	return donor, nil
}

// Delete removes a donor profile; allowed for the owner or an admin.
func (s *DonorService) Delete(ctx context.Context, donorID, actorUserID string, actorIsAdmin bool) error {
	donor, err := s.Get(ctx, donorID)
	if err != nil {
		return err
	}
	if donor.UserID != actorUserID && !actorIsAdmin {
		return apperrors.NewForbidden("not allowed to delete this donor")
	}
	return apperrors.MapError(s.donors.Delete(ctx, donorID))
}
