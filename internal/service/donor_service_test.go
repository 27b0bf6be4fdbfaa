package service

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/blood-donation-service/internal/domain"
	"github.com/spec-kit/blood-donation-service/internal/repository"
	apperrors "github.com/spec-kit/blood-donation-service/pkg/util"
)

func TestRegisterDonorDefaultsAvailable(t *testing.T) {
	var created *domain.Donor
	donors := &mockDonorRepo{
		CreateFunc: func(ctx context.Context, donor *domain.Donor) error {
			donor.ID = "donor-1"
			created = donor
			return nil
		},
		GetByIDFunc: func(ctx context.Context, id string) (*domain.Donor, error) {
			copy := *created
			return &copy, nil
		},
	}
	svc := NewDonorService(donors)

	donor, err := svc.Register(context.Background(), "user-1", DonorRegisterInput{
		BloodType:   "A-",
		Location:    "Lyon",
		PhoneNumber: "0600000000",
	})
	require.NoError(t, err)
	assert.True(t, donor.IsAvailable)
	assert.Equal(t, "user-1", donor.UserID)
}

func TestRegisterDonorRequiresFields(t *testing.T) {
	svc := NewDonorService(&mockDonorRepo{})

	_, err := svc.Register(context.Background(), "user-1", DonorRegisterInput{BloodType: "A-"})
	require.Error(t, err)
	assert.Equal(t, 400, apperrors.ToDomainError(err).HTTPStatus)
}

func TestRegisterDonorRejectsSecondProfile(t *testing.T) {
	donors := &mockDonorRepo{
		GetByUserIDFunc: func(ctx context.Context, userID string) (*domain.Donor, error) {
			return &domain.Donor{ID: "donor-1", UserID: userID}, nil
		},
	}
	svc := NewDonorService(donors)

	_, err := svc.Register(context.Background(), "user-1", DonorRegisterInput{
		BloodType:   "A-",
		Location:    "Lyon",
		PhoneNumber: "0600000000",
	})
	require.Error(t, err)
	assert.Equal(t, 409, apperrors.ToDomainError(err).HTTPStatus)
}

func TestUpdateDonorPartialFields(t *testing.T) {
	donors := &mockDonorRepo{
		GetByIDFunc: func(ctx context.Context, id string) (*domain.Donor, error) {
			return &domain.Donor{
				ID:          id,
				UserID:      "user-1",
				BloodType:   "A-",
				Location:    "Lyon",
				PhoneNumber: "0600000000",
				IsAvailable: true,
			}, nil
		},
	}
	svc := NewDonorService(donors)

	location := "Paris"
	donor, err := svc.Update(context.Background(), "donor-1", "user-1", DonorUpdateInput{Location: &location})
	require.NoError(t, err)
	assert.Equal(t, "Paris", donor.Location)
	assert.Equal(t, "A-", donor.BloodType)
	assert.Equal(t, "0600000000", donor.PhoneNumber)
}

func TestUpdateDonorForeignProfileHidden(t *testing.T) {
	donors := &mockDonorRepo{
		GetByIDFunc: func(ctx context.Context, id string) (*domain.Donor, error) {
			return &domain.Donor{ID: id, UserID: "user-1"}, nil
		},
	}
	svc := NewDonorService(donors)

	location := "Paris"
	_, err := svc.Update(context.Background(), "donor-1", "user-2", DonorUpdateInput{Location: &location})
	require.Error(t, err)
	assert.Equal(t, 404, apperrors.ToDomainError(err).HTTPStatus)
}

func TestSetAvailabilityOwnerOrAdmin(t *testing.T) {
	var toggled []bool
	donors := &mockDonorRepo{
		GetByIDFunc: func(ctx context.Context, id string) (*domain.Donor, error) {
			return &domain.Donor{ID: id, UserID: "user-1", IsAvailable: true}, nil
		},
		SetAvailabilityFunc: func(ctx context.Context, id string, available bool) error {
			toggled = append(toggled, available)
			return nil
		},
	}
	svc := NewDonorService(donors)

	donor, err := svc.SetAvailability(context.Background(), "donor-1", "user-1", false, false)
	require.NoError(t, err)
	assert.False(t, donor.IsAvailable)

	_, err = svc.SetAvailability(context.Background(), "donor-1", "user-2", false, true)
	require.Error(t, err)
	assert.Equal(t, 403, apperrors.ToDomainError(err).HTTPStatus)

	_, err = svc.SetAvailability(context.Background(), "donor-1", "user-2", true, true)
	require.NoError(t, err)

	assert.Equal(t, []bool{false, true}, toggled)
}

func TestListDonorsPassesFilter(t *testing.T) {
	var got repository.DonorFilter
	donors := &mockDonorRepo{
		ListWithFilterFunc: func(ctx context.Context, filter repository.DonorFilter) ([]domain.Donor, error) {
			got = filter
			return []domain.Donor{{ID: "donor-1"}}, nil
		},
	}
	svc := NewDonorService(donors)

	bloodType := "O+"
	available := true
	list, err := svc.List(context.Background(), repository.DonorFilter{BloodType: &bloodType, IsAvailable: &available})
	require.NoError(t, err)
	assert.Len(t, list, 1)
	require.NotNil(t, got.BloodType)
	assert.Equal(t, "O+", *got.BloodType)
	require.NotNil(t, got.IsAvailable)
	assert.True(t, *got.IsAvailable)
}

func TestDeleteDonorForbiddenForOthers(t *testing.T) {
	donors := &mockDonorRepo{
		GetByIDFunc: func(ctx context.Context, id string) (*domain.Donor, error) {
			if id != "donor-1" {
				return nil, pgx.ErrNoRows
			}
			return &domain.Donor{ID: id, UserID: "user-1", LastDonationDate: ptrTime(time.Now())}, nil
		},
	}
	svc := NewDonorService(donors)

	err := svc.Delete(context.Background(), "donor-1", "user-2", false)
	require.Error(t, err)
	assert.Equal(t, 403, apperrors.ToDomainError(err).HTTPStatus)

	require.NoError(t, svc.Delete(context.Background(), "donor-1", "user-2", true))
}

func ptrTime(t time.Time) *time.Time { return &t }
