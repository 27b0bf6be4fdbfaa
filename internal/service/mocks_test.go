package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/blood-donation-service/internal/domain"
	"github.com/spec-kit/blood-donation-service/internal/events"
	"github.com/spec-kit/blood-donation-service/internal/repository"
)

var _ repository.UserRepository = (*mockUserRepo)(nil)

type mockUserRepo struct {
	CreateFunc     func(ctx context.Context, user *domain.User) error
	UpdateFunc     func(ctx context.Context, user *domain.User) error
	GetByIDFunc    func(ctx context.Context, id string) (*domain.User, error)
	GetByEmailFunc func(ctx context.Context, email string) (*domain.User, error)
	ListFunc       func(ctx context.Context) ([]domain.User, error)
	DeleteFunc     func(ctx context.Context, id string) error
}

func (m *mockUserRepo) Create(ctx context.Context, user *domain.User) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, user)
	}
	user.ID = "user-1"
	return nil
}

func (m *mockUserRepo) Update(ctx context.Context, user *domain.User) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, user)
	}
	return nil
}

func (m *mockUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, pgx.ErrNoRows
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if m.GetByEmailFunc != nil {
		return m.GetByEmailFunc(ctx, email)
	}
	return nil, pgx.ErrNoRows
}

func (m *mockUserRepo) List(ctx context.Context) ([]domain.User, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	return nil, nil
}

func (m *mockUserRepo) Delete(ctx context.Context, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

var _ repository.DonorRepository = (*mockDonorRepo)(nil)

type mockDonorRepo struct {
	CreateFunc              func(ctx context.Context, donor *domain.Donor) error
	UpdateFunc              func(ctx context.Context, donor *domain.Donor) error
	GetByIDFunc             func(ctx context.Context, id string) (*domain.Donor, error)
	GetByUserIDFunc         func(ctx context.Context, userID string) (*domain.Donor, error)
	ListWithFilterFunc      func(ctx context.Context, filter repository.DonorFilter) ([]domain.Donor, error)
	SetAvailabilityFunc     func(ctx context.Context, id string, available bool) error
	SetLastDonationDateFunc func(ctx context.Context, id string, date time.Time) error
	DeleteFunc              func(ctx context.Context, id string) error
}

func (m *mockDonorRepo) Create(ctx context.Context, donor *domain.Donor) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, donor)
	}
	donor.ID = "donor-1"
	return nil
}

func (m *mockDonorRepo) Update(ctx context.Context, donor *domain.Donor) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, donor)
	}
	return nil
}

func (m *mockDonorRepo) GetByID(ctx context.Context, id string) (*domain.Donor, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, pgx.ErrNoRows
}

func (m *mockDonorRepo) GetByUserID(ctx context.Context, userID string) (*domain.Donor, error) {
	if m.GetByUserIDFunc != nil {
		return m.GetByUserIDFunc(ctx, userID)
	}
	return nil, pgx.ErrNoRows
}

func (m *mockDonorRepo) ListWithFilter(ctx context.Context, filter repository.DonorFilter) ([]domain.Donor, error) {
	if m.ListWithFilterFunc != nil {
		return m.ListWithFilterFunc(ctx, filter)
	}
	return nil, nil
}

func (m *mockDonorRepo) SetAvailability(ctx context.Context, id string, available bool) error {
	if m.SetAvailabilityFunc != nil {
		return m.SetAvailabilityFunc(ctx, id, available)
	}
	return nil
}

func (m *mockDonorRepo) SetLastDonationDate(ctx context.Context, id string, date time.Time) error {
	if m.SetLastDonationDateFunc != nil {
		return m.SetLastDonationDateFunc(ctx, id, date)
	}
	return nil
}

func (m *mockDonorRepo) Delete(ctx context.Context, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

var _ repository.BloodRequestRepository = (*mockRequestRepo)(nil)

type mockRequestRepo struct {
	CreateFunc         func(ctx context.Context, request *domain.BloodRequest) error
	UpdateFunc         func(ctx context.Context, request *domain.BloodRequest) error
	GetByIDFunc        func(ctx context.Context, id string) (*domain.BloodRequest, error)
	GetOwnedFunc       func(ctx context.Context, id, userID string) (*domain.BloodRequest, error)
	ListWithFilterFunc func(ctx context.Context, filter repository.RequestFilter) ([]domain.BloodRequest, error)
	ApproveFunc        func(ctx context.Context, id, adminID string) error
	TransitionFunc     func(ctx context.Context, id string, from, to domain.RequestStatus) error
	DeleteFunc         func(ctx context.Context, id string) error
	DeleteOwnedFunc    func(ctx context.Context, id, userID string) error
}

func (m *mockRequestRepo) Create(ctx context.Context, request *domain.BloodRequest) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, request)
	}
	request.ID = "request-1"
	return nil
}

func (m *mockRequestRepo) Update(ctx context.Context, request *domain.BloodRequest) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, request)
	}
	return nil
}

func (m *mockRequestRepo) GetByID(ctx context.Context, id string) (*domain.BloodRequest, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, pgx.ErrNoRows
}

func (m *mockRequestRepo) GetOwned(ctx context.Context, id, userID string) (*domain.BloodRequest, error) {
	if m.GetOwnedFunc != nil {
		return m.GetOwnedFunc(ctx, id, userID)
	}
	return nil, pgx.ErrNoRows
}

func (m *mockRequestRepo) ListWithFilter(ctx context.Context, filter repository.RequestFilter) ([]domain.BloodRequest, error) {
	if m.ListWithFilterFunc != nil {
		return m.ListWithFilterFunc(ctx, filter)
	}
	return nil, nil
}

func (m *mockRequestRepo) Approve(ctx context.Context, id, adminID string) error {
	if m.ApproveFunc != nil {
		return m.ApproveFunc(ctx, id, adminID)
	}
	return nil
}

func (m *mockRequestRepo) Transition(ctx context.Context, id string, from, to domain.RequestStatus) error {
	if m.TransitionFunc != nil {
		return m.TransitionFunc(ctx, id, from, to)
	}
	return nil
}

func (m *mockRequestRepo) Delete(ctx context.Context, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

func (m *mockRequestRepo) DeleteOwned(ctx context.Context, id, userID string) error {
	if m.DeleteOwnedFunc != nil {
		return m.DeleteOwnedFunc(ctx, id, userID)
	}
	return nil
}

var _ repository.DonationRepository = (*mockDonationRepo)(nil)

type mockDonationRepo struct {
	CreateFunc      func(ctx context.Context, donation *domain.Donation) error
	GetByIDFunc     func(ctx context.Context, id string) (*domain.Donation, error)
	ListByDonorFunc func(ctx context.Context, donorID string) ([]domain.Donation, error)
	ListFunc        func(ctx context.Context) ([]domain.Donation, error)
	TransitionFunc  func(ctx context.Context, id string, from, to domain.DonationStatus) error
}

func (m *mockDonationRepo) Create(ctx context.Context, donation *domain.Donation) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, donation)
	}
	donation.ID = "donation-1"
	return nil
}

func (m *mockDonationRepo) GetByID(ctx context.Context, id string) (*domain.Donation, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, pgx.ErrNoRows
}

func (m *mockDonationRepo) ListByDonor(ctx context.Context, donorID string) ([]domain.Donation, error) {
	if m.ListByDonorFunc != nil {
		return m.ListByDonorFunc(ctx, donorID)
	}
	return nil, nil
}

func (m *mockDonationRepo) List(ctx context.Context) ([]domain.Donation, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	return nil, nil
}

func (m *mockDonationRepo) Transition(ctx context.Context, id string, from, to domain.DonationStatus) error {
	if m.TransitionFunc != nil {
		return m.TransitionFunc(ctx, id, from, to)
	}
	return nil
}

var _ repository.NotificationRepository = (*mockNotificationRepo)(nil)

// mockNotificationRepo records created notifications in memory.
type mockNotificationRepo struct {
	mu      sync.Mutex
	created []domain.Notification

	CreateFunc     func(ctx context.Context, notification *domain.Notification) error
	ListByUserFunc func(ctx context.Context, userID string) ([]domain.Notification, error)
	MarkReadFunc   func(ctx context.Context, id, userID string) error
}

func (m *mockNotificationRepo) Create(ctx context.Context, notification *domain.Notification) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, notification)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.created = append(m.created, *notification)
	return nil
}

func (m *mockNotificationRepo) ListByUser(ctx context.Context, userID string) ([]domain.Notification, error) {
	if m.ListByUserFunc != nil {
		return m.ListByUserFunc(ctx, userID)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.Notification, 0, len(m.created))
	for _, n := range m.created {
		if n.UserID == userID {
			out = append(out, n)
		}
	}
	return out, nil
}

func (m *mockNotificationRepo) MarkRead(ctx context.Context, id, userID string) error {
	if m.MarkReadFunc != nil {
		return m.MarkReadFunc(ctx, id, userID)
	}
	return pgx.ErrNoRows
}

var _ repository.StatsRepository = (*mockStatsRepo)(nil)

type mockStatsRepo struct {
	DashboardFunc func(ctx context.Context) (*repository.DashboardStats, error)
	AnalyticsFunc func(ctx context.Context, since time.Time) (*repository.Analytics, error)
}

func (m *mockStatsRepo) Dashboard(ctx context.Context) (*repository.DashboardStats, error) {
	if m.DashboardFunc != nil {
		return m.DashboardFunc(ctx)
	}
	return nil, errors.New("DashboardFunc not implemented in mock")
}

func (m *mockStatsRepo) Analytics(ctx context.Context, since time.Time) (*repository.Analytics, error) {
	if m.AnalyticsFunc != nil {
		return m.AnalyticsFunc(ctx, since)
	}
	return nil, errors.New("AnalyticsFunc not implemented in mock")
}

var _ events.Dispatcher = (*captureDispatcher)(nil)

// captureDispatcher records published events without invoking handlers.
type captureDispatcher struct {
	mu     sync.Mutex
	events []events.Event
}

func (d *captureDispatcher) Publish(ctx context.Context, event events.Event) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.events = append(d.events, event)
	return nil
}

func (d *captureDispatcher) Subscribe(eventType events.EventType, handler events.EventHandler) {}

func (d *captureDispatcher) published() []events.Event {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]events.Event{}, d.events...)
}
