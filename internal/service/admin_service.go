package service

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/blood-donation-service/internal/cache"
	"github.com/spec-kit/blood-donation-service/internal/domain"
	"github.com/spec-kit/blood-donation-service/internal/repository"
	apperrors "github.com/spec-kit/blood-donation-service/pkg/util"
)

// UserAction enumerates admin actions on accounts.
type UserAction string

const (
	UserActionActivate UserAction = "activate"
	UserActionSuspend  UserAction = "suspend"
	UserActionDelete   UserAction = "delete"
)

// DonorAction enumerates admin actions on donors.
type DonorAction string

const (
	DonorActionActivate   DonorAction = "activate"
	DonorActionDeactivate DonorAction = "deactivate"
	DonorActionDelete     DonorAction = "delete"
)

// RequestAction enumerates admin actions on blood requests.
type RequestAction string

const (
	RequestActionApprove RequestAction = "approve"
	RequestActionReject  RequestAction = "reject"
	RequestActionFulfill RequestAction = "fulfill"
	RequestActionDelete  RequestAction = "delete"
)

// DonationAction enumerates admin actions on donations.
type DonationAction string

const (
	DonationActionComplete DonationAction = "complete"
	DonationActionCancel   DonationAction = "cancel"
)

// AdminService backs the admin dashboard: listings, stats, analytics and the
// per-resource action dispatch.
type AdminService struct {
	users       repository.UserRepository
	donors      repository.DonorRepository
	stats       repository.StatsRepository
	requestSvc  *RequestService
	donorSvc    *DonorService
	donationSvc *DonationService
	statsCache  *cache.StatsCache
}

// AdminDependencies bundles the admin service's collaborators.
type AdminDependencies struct {
	UserRepo    repository.UserRepository
	DonorRepo   repository.DonorRepository
	StatsRepo   repository.StatsRepository
	RequestSvc  *RequestService
	DonorSvc    *DonorService
	DonationSvc *DonationService
	StatsCache  *cache.StatsCache
}

// NewAdminService constructs the service.
func NewAdminService(deps AdminDependencies) *AdminService {
	return &AdminService{
		users:       deps.UserRepo,
		donors:      deps.DonorRepo,
		stats:       deps.StatsRepo,
		requestSvc:  deps.RequestSvc,
		donorSvc:    deps.DonorSvc,
		donationSvc: deps.DonationSvc,
		statsCache:  deps.StatsCache,
	}
}

// ListUsers returns all accounts, newest first.
func (s *AdminService) ListUsers(ctx context.Context) ([]domain.User, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return users, nil
}

// ListDonors returns all donors, newest first.
func (s *AdminService) ListDonors(ctx context.Context) ([]domain.Donor, error) {
	return s.donorSvc.List(ctx, repository.DonorFilter{})
}

// ListRequests returns all blood requests, newest first.
func (s *AdminService) ListRequests(ctx context.Context) ([]domain.BloodRequest, error) {
	return s.requestSvc.List(ctx, repository.RequestFilter{})
}

// ListDonations returns all donations, newest first.
func (s *AdminService) ListDonations(ctx context.Context) ([]domain.Donation, error) {
	return s.donationSvc.ListAll(ctx)
}

// Stats returns dashboard counters, served from the Redis cache when fresh.
func (s *AdminService) Stats(ctx context.Context) (*repository.DashboardStats, error) {
	if cached := s.statsCache.Get(ctx); cached != nil {
		return cached, nil
	}
	stats, err := s.stats.Dashboard(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	s.statsCache.Set(ctx, stats)
	return stats, nil
}

// Analytics returns chart aggregates over the last six months of requests.
func (s *AdminService) Analytics(ctx context.Context) (*repository.Analytics, error) {
	since := time.Now().AddDate(0, -6, 0)
	analytics, err := s.stats.Analytics(ctx, since)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return analytics, nil
}

// UserAction applies an admin action to an account. Unknown actions fail
// before any lookup.
func (s *AdminService) UserAction(ctx context.Context, id string, action UserAction) error {
	switch action {
	case UserActionActivate, UserActionSuspend, UserActionDelete:
	default:
		return apperrors.NewValidationError("invalid action", map[string]any{"action": action})
	}

	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if err == pgx.ErrNoRows {
			return apperrors.NewNotFound("user", nil)
		}
		return apperrors.MapError(err)
	}

	switch action {
	case UserActionActivate:
		user.Status = domain.UserStatusActive
		return apperrors.MapError(s.users.Update(ctx, user))
	case UserActionSuspend:
		user.Status = domain.UserStatusSuspended
		return apperrors.MapError(s.users.Update(ctx, user))
	default:
		return apperrors.MapError(s.users.Delete(ctx, id))
	}
}

// DonorAction applies an admin action to a donor profile.
func (s *AdminService) DonorAction(ctx context.Context, id string, action DonorAction, adminID string) error {
	switch action {
	case DonorActionDelete:
		return s.donorSvc.Delete(ctx, id, adminID, true)
	case DonorActionActivate, DonorActionDeactivate:
	default:
		return apperrors.NewValidationError("invalid action", map[string]any{"action": action})
	}

	if _, err := s.donorSvc.Get(ctx, id); err != nil {
		return err
	}
	return apperrors.MapError(s.donors.SetAvailability(ctx, id, action == DonorActionActivate))
}

// RequestAction applies an admin action to a blood request.
func (s *AdminService) RequestAction(ctx context.Context, id string, action RequestAction, adminID string) error {
	switch action {
	case RequestActionApprove:
		_, err := s.requestSvc.Approve(ctx, id, adminID)
		return err
	case RequestActionReject:
		_, err := s.requestSvc.Reject(ctx, id, adminID)
		return err
	case RequestActionFulfill:
		_, err := s.requestSvc.Fulfill(ctx, id, adminID)
		return err
	case RequestActionDelete:
		return s.requestSvc.Delete(ctx, id, adminID, true)
	default:
		return apperrors.NewValidationError("invalid action", map[string]any{"action": action})
	}
}

// DonationAction applies an admin action to a donation.
func (s *AdminService) DonationAction(ctx context.Context, id string, action DonationAction, adminID string) error {
	switch action {
	case DonationActionComplete:
		_, err := s.donationSvc.Complete(ctx, id, adminID)
		return err
	case DonationActionCancel:
		_, err := s.donationSvc.Cancel(ctx, id, adminID)
		return err
	default:
		return apperrors.NewValidationError("invalid action", map[string]any{"action": action})
	}
}

// Promote elevates the account with the given email to admin.
func (s *AdminService) Promote(ctx context.Context, email string) (*domain.User, error) {
	if email == "" {
		return nil, apperrors.NewValidationError("email is required", nil)
	}
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("user", nil)
		}
		return nil, apperrors.MapError(err)
	}
	if user.Role == domain.RoleAdmin {
		return nil, apperrors.NewValidationError("user is already an admin", nil)
	}
	user.Role = domain.RoleAdmin
	if err := s.users.Update(ctx, user); err != nil {
		return nil, apperrors.MapError(err)
	}
	return user, nil
}
