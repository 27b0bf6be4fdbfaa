package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/blood-donation-service/internal/domain"
	"github.com/spec-kit/blood-donation-service/internal/events"
	"github.com/spec-kit/blood-donation-service/internal/repository"
	apperrors "github.com/spec-kit/blood-donation-service/pkg/util"
)

// DonationService coordinates donation scheduling against approved requests.
type DonationService struct {
	donations  repository.DonationRepository
	donors     repository.DonorRepository
	requests   repository.BloodRequestRepository
	dispatcher events.Dispatcher
}

// NewDonationService constructs the service.
func NewDonationService(donations repository.DonationRepository, donors repository.DonorRepository,
	requests repository.BloodRequestRepository, dispatcher events.Dispatcher) *DonationService {
	return &DonationService{donations: donations, donors: donors, requests: requests, dispatcher: dispatcher}
}

// DonationScheduleInput describes donation creation payload.
type DonationScheduleInput struct {
	RequestID    string
	DonationDate time.Time
	Notes        *string
}

// Schedule creates a scheduled donation by the caller's donor profile against
// an approved request.
func (s *DonationService) Schedule(ctx context.Context, userID string, input DonationScheduleInput) (*domain.Donation, error) {
	if input.RequestID == "" || input.DonationDate.IsZero() {
		return nil, apperrors.NewValidationError("request_id and donation_date required", nil)
	}

	donor, err := s.donors.GetByUserID(ctx, userID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewValidationError("donor profile required to schedule a donation", nil)
		}
		return nil, apperrors.MapError(err)
	}

	request, err := s.requests.GetByID(ctx, input.RequestID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("blood request", nil)
		}
		return nil, apperrors.MapError(err)
	}
	if request.Status != domain.RequestStatusApproved {
		return nil, apperrors.NewConflict("request is not approved", map[string]any{"status": request.Status})
	}

	donation := &domain.Donation{
		DonorID:      donor.ID,
		RequestID:    request.ID,
		DonationDate: input.DonationDate,
		Status:       domain.DonationStatusScheduled,
		Notes:        input.Notes,
	}
	if err := s.donations.Create(ctx, donation); err != nil {
		return nil, apperrors.MapError(err)
	}

	s.publish(ctx, events.Event{
		Type:    events.EventDonationScheduled,
		ActorID: userID,
		Payload: events.DonationPayload{
			DonationID:  donation.ID,
			DonorID:     donor.ID,
			DonorUserID: donor.UserID,
			RequestID:   request.ID,
		},
	})
	return donation, nil
}

// ListOwn returns donations made through the caller's donor profile.
// Users without a donor profile have no donations.
func (s *DonationService) ListOwn(ctx context.Context, userID string) ([]domain.Donation, error) {
	donor, err := s.donors.GetByUserID(ctx, userID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return []domain.Donation{}, nil
		}
		return nil, apperrors.MapError(err)
	}
	donations, err := s.donations.ListByDonor(ctx, donor.ID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return donations, nil
}

// ListAll returns every donation, newest first.
func (s *DonationService) ListAll(ctx context.Context) ([]domain.Donation, error) {
	donations, err := s.donations.List(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return donations, nil
}

// Complete moves scheduled -> completed and stamps the donor's last donation
// date with the donation date.
func (s *DonationService) Complete(ctx context.Context, id, adminID string) (*domain.Donation, error) {
	donation, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.donations.Transition(ctx, id, domain.DonationStatusScheduled, domain.DonationStatusCompleted); err != nil {
		if err == repository.ErrStatusConflict {
			return nil, apperrors.NewConflict("donation is not scheduled", map[string]any{"status": donation.Status})
		}
		return nil, apperrors.MapError(err)
	}
	if err := s.donors.SetLastDonationDate(ctx, donation.DonorID, donation.DonationDate); err != nil && err != pgx.ErrNoRows {
		return nil, apperrors.MapError(err)
	}
	donation.Status = domain.DonationStatusCompleted

	s.publishLifecycle(ctx, events.EventDonationCompleted, adminID, donation)
	return donation, nil
}

// Cancel moves scheduled -> cancelled.
func (s *DonationService) Cancel(ctx context.Context, id, adminID string) (*domain.Donation, error) {
	donation, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.donations.Transition(ctx, id, domain.DonationStatusScheduled, domain.DonationStatusCancelled); err != nil {
		if err == repository.ErrStatusConflict {
			return nil, apperrors.NewConflict("donation is not scheduled", map[string]any{"status": donation.Status})
		}
		return nil, apperrors.MapError(err)
	}
	donation.Status = domain.DonationStatusCancelled

	s.publishLifecycle(ctx, events.EventDonationCancelled, adminID, donation)
	return donation, nil
}

func (s *DonationService) get(ctx context.Context, id string) (*domain.Donation, error) {
	donation, err := s.donations.GetByID(ctx, id)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("donation", nil)
		}
		return nil, apperrors.MapError(err)
	}
	return donation, nil
}

func (s *DonationService) publishLifecycle(ctx context.Context, eventType events.EventType, actorID string, donation *domain.Donation) {
	donor, err := s.donors.GetByID(ctx, donation.DonorID)
	donorUserID := ""
	if err == nil {
		donorUserID = donor.UserID
	}
	s.publish(ctx, events.Event{
		Type:    eventType,
		ActorID: actorID,
		Payload: events.DonationPayload{
			DonationID:  donation.ID,
			DonorID:     donation.DonorID,
			DonorUserID: donorUserID,
			RequestID:   donation.RequestID,
		},
	})
}

func (s *DonationService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}
