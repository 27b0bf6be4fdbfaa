package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/blood-donation-service/internal/domain"
	"github.com/spec-kit/blood-donation-service/internal/events"
	"github.com/spec-kit/blood-donation-service/internal/repository"
	apperrors "github.com/spec-kit/blood-donation-service/pkg/util"
)

// RequestService coordinates the blood request lifecycle:
// pending -> approved or rejected, approved -> fulfilled.
type RequestService struct {
	requests   repository.BloodRequestRepository
	dispatcher events.Dispatcher
}

// NewRequestService constructs the service.
func NewRequestService(requests repository.BloodRequestRepository, dispatcher events.Dispatcher) *RequestService {
	return &RequestService{requests: requests, dispatcher: dispatcher}
}

// RequestCreateInput describes blood request creation payload.
type RequestCreateInput struct {
	PatientName   string
	BloodType     string
	Quantity      int
	HospitalName  string
	ContactNumber string
	RequiredDate  time.Time
	Urgency       domain.RequestUrgency
	Description   *string
}

// RequestUpdateInput carries partial update fields; nil means keep previous.
type RequestUpdateInput struct {
	PatientName   *string
	BloodType     *string
	Quantity      *int
	HospitalName  *string
	ContactNumber *string
	RequiredDate  *time.Time
	Urgency       *domain.RequestUrgency
	Description   *string
}

// Create inserts a new request with status pending. Quantity defaults to 1,
// urgency to normal.
func (s *RequestService) Create(ctx context.Context, requesterID string, input RequestCreateInput) (*domain.BloodRequest, error) {
	missing := map[string]any{}
	if strings.TrimSpace(input.PatientName) == "" {
		missing["patient_name"] = "required"
	}
	if strings.TrimSpace(input.BloodType) == "" {
		missing["blood_type"] = "required"
	}
	if strings.TrimSpace(input.HospitalName) == "" {
		missing["hospital_name"] = "required"
	}
	if strings.TrimSpace(input.ContactNumber) == "" {
		missing["contact_number"] = "required"
	}
	if input.RequiredDate.IsZero() {
		missing["required_date"] = "required"
	}
	if len(missing) > 0 {
		return nil, apperrors.NewValidationError("missing required fields", missing)
	}

	quantity := input.Quantity
	if quantity == 0 {
		quantity = 1
	}
	if quantity < 1 {
		return nil, apperrors.NewValidationError("quantity must be at least 1", nil)
	}

	urgency := input.Urgency
	if urgency == "" {
		urgency = domain.UrgencyNormal
	}
	if !domain.ValidUrgency(urgency) {
		return nil, apperrors.NewValidationError("unknown urgency", map[string]any{"urgency": urgency})
	}

	request := &domain.BloodRequest{
		UserID:        requesterID,
		PatientName:   strings.TrimSpace(input.PatientName),
		BloodType:     input.BloodType,
		Quantity:      quantity,
		HospitalName:  strings.TrimSpace(input.HospitalName),
		ContactNumber: strings.TrimSpace(input.ContactNumber),
		RequiredDate:  input.RequiredDate,
		Urgency:       urgency,
		Status:        domain.RequestStatusPending,
		Description:   input.Description,
	}
	if err := s.requests.Create(ctx, request); err != nil {
		return nil, apperrors.MapError(err)
	}

	s.publish(ctx, events.Event{
		Type:    events.EventRequestCreated,
		ActorID: requesterID,
		Payload: events.RequestCreatedPayload{
			RequestID:   request.ID,
			RequesterID: requesterID,
			BloodType:   request.BloodType,
			Urgency:     request.Urgency,
			PatientName: request.PatientName,
		},
	})
	return s.Get(ctx, request.ID)
}

// Get fetches a request by id.
func (s *RequestService) Get(ctx context.Context, id string) (*domain.BloodRequest, error) {
	request, err := s.requests.GetByID(ctx, id)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("blood request", nil)
		}
		return nil, apperrors.MapError(err)
	}
	return request, nil
}

// List returns requests matching the filter, newest first.
func (s *RequestService) List(ctx context.Context, filter repository.RequestFilter) ([]domain.BloodRequest, error) {
	requests, err := s.requests.ListWithFilter(ctx, filter)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return requests, nil
}

// Update applies partial changes; only the original requester may modify.
func (s *RequestService) Update(ctx context.Context, id, requesterID string, input RequestUpdateInput) (*domain.BloodRequest, error) {
	request, err := s.requests.GetOwned(ctx, id, requesterID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("blood request", nil)
		}
		return nil, apperrors.MapError(err)
	}

	if input.PatientName != nil && *input.PatientName != "" {
		request.PatientName = *input.PatientName
	}
	if input.BloodType != nil && *input.BloodType != "" {
		request.BloodType = *input.BloodType
	}
	if input.Quantity != nil {
		if *input.Quantity < 1 {
			return nil, apperrors.NewValidationError("quantity must be at least 1", nil)
		}
		request.Quantity = *input.Quantity
	}
	if input.HospitalName != nil && *input.HospitalName != "" {
		request.HospitalName = *input.HospitalName
	}
	if input.ContactNumber != nil && *input.ContactNumber != "" {
		request.ContactNumber = *input.ContactNumber
	}
	if input.RequiredDate != nil {
		request.RequiredDate = *input.RequiredDate
	}
	if input.Urgency != nil {
		if !domain.ValidUrgency(*input.Urgency) {
			return nil, apperrors.NewValidationError("unknown urgency", map[string]any{"urgency": *input.Urgency})
		}
		request.Urgency = *input.Urgency
	}
	if input.Description != nil {
		request.Description = input.Description
	}

	if err := s.requests.Update(ctx, request); err != nil {
		return nil, apperrors.MapError(err)
	}
	return request, nil
}

// Delete removes a request; allowed for the requester or an admin.
func (s *RequestService) Delete(ctx context.Context, id, actorUserID string, actorIsAdmin bool) error {
	if actorIsAdmin {
		err := s.requests.Delete(ctx, id)
		if err == pgx.ErrNoRows {
			return apperrors.NewNotFound("blood request", nil)
		}
		return apperrors.MapError(err)
	}
	err := s.requests.DeleteOwned(ctx, id, actorUserID)
	if err == pgx.ErrNoRows {
		return apperrors.NewNotFound("blood request", nil)
	}
	return apperrors.MapError(err)
}

// Approve moves pending -> approved, recording who approved and when. The
// transition is conditional on the current status so concurrent admins
// cannot both approve.
func (s *RequestService) Approve(ctx context.Context, id, adminID string) (*domain.BloodRequest, error) {
	return s.transition(ctx, id, adminID, domain.RequestStatusApproved, func(ctx context.Context) error {
		return s.requests.Approve(ctx, id, adminID)
	})
}

// Reject moves pending -> rejected. ApprovedBy/ApprovedAt stay unset.
func (s *RequestService) Reject(ctx context.Context, id, adminID string) (*domain.BloodRequest, error) {
	return s.transition(ctx, id, adminID, domain.RequestStatusRejected, func(ctx context.Context) error {
		return s.requests.Transition(ctx, id, domain.RequestStatusPending, domain.RequestStatusRejected)
	})
}

// Fulfill moves approved -> fulfilled.
func (s *RequestService) Fulfill(ctx context.Context, id, adminID string) (*domain.BloodRequest, error) {
	return s.transition(ctx, id, adminID, domain.RequestStatusFulfilled, func(ctx context.Context) error {
		return s.requests.Transition(ctx, id, domain.RequestStatusApproved, domain.RequestStatusFulfilled)
	})
}

func (s *RequestService) transition(ctx context.Context, id, adminID string, target domain.RequestStatus, apply func(context.Context) error) (*domain.BloodRequest, error) {
	request, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	oldStatus := request.Status

	if err := apply(ctx); err != nil {
		if err == repository.ErrStatusConflict {
			return nil, apperrors.NewConflict("request is not in a state allowing this transition",
				map[string]any{"status": request.Status})
		}
		return nil, apperrors.MapError(err)
	}

	updated, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	s.publish(ctx, events.Event{
		Type:    events.EventRequestStatusChanged,
		ActorID: adminID,
		Payload: events.RequestStatusChangedPayload{
			RequestID:   updated.ID,
			RequesterID: updated.UserID,
			OldStatus:   oldStatus,
			NewStatus:   target,
		},
	})
	return updated, nil
}

func (s *RequestService) publish(ctx context.Context, event events.Event) {
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
