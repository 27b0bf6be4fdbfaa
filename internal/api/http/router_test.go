package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/blood-donation-service/internal/api/http/handlers"
	"github.com/spec-kit/blood-donation-service/internal/auth"
	"github.com/spec-kit/blood-donation-service/internal/cache"
	"github.com/spec-kit/blood-donation-service/internal/config"
	"github.com/spec-kit/blood-donation-service/internal/domain"
	"github.com/spec-kit/blood-donation-service/internal/events"
	"github.com/spec-kit/blood-donation-service/internal/observability"
	"github.com/spec-kit/blood-donation-service/internal/repository"
	"github.com/spec-kit/blood-donation-service/internal/service"
)

// memUserRepo is an in-memory UserRepository for end-to-end route tests.
type memUserRepo struct {
	mu    sync.Mutex
	seq   int
	users map[string]*domain.User
}

var _ repository.UserRepository = (*memUserRepo)(nil)

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: map[string]*domain.User{}}
}

func (r *memUserRepo) Create(ctx context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	user.ID = fmt.Sprintf("user-%d", r.seq)
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	copy := *user
	r.users[user.ID] = &copy
	return nil
}

func (r *memUserRepo) Update(ctx context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.ID]; !ok {
		return pgx.ErrNoRows
	}
	copy := *user
	r.users[user.ID] = &copy
	return nil
}

func (r *memUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if user, ok := r.users[id]; ok {
		copy := *user
		return &copy, nil
	}
	return nil, pgx.ErrNoRows
}

func (r *memUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.Email == email {
			copy := *user
			return &copy, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *memUserRepo) List(ctx context.Context) ([]domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.User, 0, len(r.users))
	for _, user := range r.users {
		out = append(out, *user)
	}
	return out, nil
}

func (r *memUserRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.users, id)
	return nil
}

// emptyDonorRepo serves an empty registry.
type emptyDonorRepo struct{}

var _ repository.DonorRepository = emptyDonorRepo{}

func (emptyDonorRepo) Create(ctx context.Context, donor *domain.Donor) error { return nil }
func (emptyDonorRepo) Update(ctx context.Context, donor *domain.Donor) error { return pgx.ErrNoRows }
func (emptyDonorRepo) GetByID(ctx context.Context, id string) (*domain.Donor, error) {
	return nil, pgx.ErrNoRows
}
func (emptyDonorRepo) GetByUserID(ctx context.Context, userID string) (*domain.Donor, error) {
	return nil, pgx.ErrNoRows
}
func (emptyDonorRepo) ListWithFilter(ctx context.Context, filter repository.DonorFilter) ([]domain.Donor, error) {
	return []domain.Donor{}, nil
}
func (emptyDonorRepo) SetAvailability(ctx context.Context, id string, available bool) error {
	return pgx.ErrNoRows
}
func (emptyDonorRepo) SetLastDonationDate(ctx context.Context, id string, date time.Time) error {
	return pgx.ErrNoRows
}
func (emptyDonorRepo) Delete(ctx context.Context, id string) error { return pgx.ErrNoRows }

// emptyRequestRepo serves no blood requests.
type emptyRequestRepo struct{}

var _ repository.BloodRequestRepository = emptyRequestRepo{}

func (emptyRequestRepo) Create(ctx context.Context, request *domain.BloodRequest) error { return nil }
func (emptyRequestRepo) Update(ctx context.Context, request *domain.BloodRequest) error {
	return pgx.ErrNoRows
}
func (emptyRequestRepo) GetByID(ctx context.Context, id string) (*domain.BloodRequest, error) {
	return nil, pgx.ErrNoRows
}
func (emptyRequestRepo) GetOwned(ctx context.Context, id, userID string) (*domain.BloodRequest, error) {
	return nil, pgx.ErrNoRows
}
func (emptyRequestRepo) ListWithFilter(ctx context.Context, filter repository.RequestFilter) ([]domain.BloodRequest, error) {
	return []domain.BloodRequest{}, nil
}
func (emptyRequestRepo) Approve(ctx context.Context, id, adminID string) error { return pgx.ErrNoRows }
func (emptyRequestRepo) Transition(ctx context.Context, id string, from, to domain.RequestStatus) error {
	return pgx.ErrNoRows
}
func (emptyRequestRepo) Delete(ctx context.Context, id string) error { return pgx.ErrNoRows }
func (emptyRequestRepo) DeleteOwned(ctx context.Context, id, userID string) error {
	return pgx.ErrNoRows
}

// emptyDonationRepo serves no donations.
type emptyDonationRepo struct{}

var _ repository.DonationRepository = emptyDonationRepo{}

func (emptyDonationRepo) Create(ctx context.Context, donation *domain.Donation) error { return nil }
func (emptyDonationRepo) GetByID(ctx context.Context, id string) (*domain.Donation, error) {
	return nil, pgx.ErrNoRows
}
func (emptyDonationRepo) ListByDonor(ctx context.Context, donorID string) ([]domain.Donation, error) {
	return []domain.Donation{}, nil
}
func (emptyDonationRepo) List(ctx context.Context) ([]domain.Donation, error) {
	return []domain.Donation{}, nil
}
func (emptyDonationRepo) Transition(ctx context.Context, id string, from, to domain.DonationStatus) error {
	return pgx.ErrNoRows
}

// emptyNotificationRepo serves no notifications.
type emptyNotificationRepo struct{}

var _ repository.NotificationRepository = emptyNotificationRepo{}

func (emptyNotificationRepo) Create(ctx context.Context, notification *domain.Notification) error {
	return nil
}
func (emptyNotificationRepo) ListByUser(ctx context.Context, userID string) ([]domain.Notification, error) {
	return []domain.Notification{}, nil
}
func (emptyNotificationRepo) MarkRead(ctx context.Context, id, userID string) error {
	return pgx.ErrNoRows
}

// emptyStatsRepo serves zeroed counters.
type emptyStatsRepo struct{}

var _ repository.StatsRepository = emptyStatsRepo{}

func (emptyStatsRepo) Dashboard(ctx context.Context) (*repository.DashboardStats, error) {
	return &repository.DashboardStats{}, nil
}
func (emptyStatsRepo) Analytics(ctx context.Context, since time.Time) (*repository.Analytics, error) {
	return &repository.Analytics{}, nil
}

func newTestApp(t *testing.T) (*fiber.App, *service.AuthService, *memUserRepo) {
	t.Helper()

	cfg := config.Config{Auth: config.AuthConfig{
		JWTSecret:             "route-test-secret",
		AccessTokenTTLMinutes: 60,
		BcryptCost:            4,
	}}

	users := newMemUserRepo()
	dispatcher := events.NewInMemoryDispatcher()

	authService := service.NewAuthService(cfg, users)
	donorService := service.NewDonorService(emptyDonorRepo{})
	requestService := service.NewRequestService(emptyRequestRepo{}, dispatcher)
	donationService := service.NewDonationService(emptyDonationRepo{}, emptyDonorRepo{}, emptyRequestRepo{}, dispatcher)
	notificationService := service.NewNotificationService(emptyNotificationRepo{}, dispatcher, zap.NewNop())
	adminService := service.NewAdminService(service.AdminDependencies{
		UserRepo:    users,
		DonorRepo:   emptyDonorRepo{},
		StatsRepo:   emptyStatsRepo{},
		RequestSvc:  requestService,
		DonorSvc:    donorService,
		DonationSvc: donationService,
		StatsCache:  cache.NewStatsCache(nil, nil),
	})

	app := fiber.New()
	RegisterMiddlewares(app, zap.NewNop(), observability.NewMetrics(), 5*time.Second)
	RegisterRoutes(app, RouteConfig{
		Health:         handlers.NewHealthHandler("test", "dev", nil, nil),
		Auth:           handlers.NewAuthHandler(authService),
		Profile:        handlers.NewProfileHandler(authService),
		Donors:         handlers.NewDonorsHandler(donorService),
		Requests:       handlers.NewRequestsHandler(requestService),
		Donations:      handlers.NewDonationsHandler(donationService),
		Notifications:  handlers.NewNotificationsHandler(notificationService),
		Admin:          handlers.NewAdminHandler(adminService),
		AuthMiddleware: auth.NewMiddleware(authService.TokenManager(), users),
	})
	return app, authService, users
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, body any) (*http.Response, map[string]any) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	var decoded map[string]any
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 && raw[0] == '{' {
		require.NoError(t, json.Unmarshal(raw, &decoded))
	}
	return resp, decoded
}

func TestRegisterAndLoginFlow(t *testing.T) {
	app, _, _ := newTestApp(t)

	resp, body := doJSON(t, app, http.MethodPost, "/api/auth/register", "", map[string]string{
		"name":     "Jane",
		"email":    "jane@example.com",
		"password": "secret123",
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "User registered successfully", body["message"])

	resp, body = doJSON(t, app, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    "jane@example.com",
		"password": "secret123",
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, body["token"])
	assert.Equal(t, "user", body["role"])
}

func TestRegisterDuplicateEmailReturnsFlatError(t *testing.T) {
	app, _, _ := newTestApp(t)

	payload := map[string]string{"name": "Jane", "email": "jane@example.com", "password": "secret123"}
	resp, _ := doJSON(t, app, http.MethodPost, "/api/auth/register", "", payload)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, body := doJSON(t, app, http.MethodPost, "/api/auth/register", "", payload)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "user already exists", body["error"])
}

func TestLoginBadCredentials(t *testing.T) {
	app, _, _ := newTestApp(t)

	resp, body := doJSON(t, app, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    "nobody@example.com",
		"password": "whatever",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "invalid credentials", body["error"])
}

func TestPublicListingsNeedNoToken(t *testing.T) {
	app, _, _ := newTestApp(t)

	resp, _ := doJSON(t, app, http.MethodGet, "/api/donors", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = doJSON(t, app, http.MethodGet, "/api/blood-requests", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	app, _, _ := newTestApp(t)

	resp, body := doJSON(t, app, http.MethodGet, "/api/profile", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "missing authorization header", body["error"])

	resp, _ = doJSON(t, app, http.MethodPost, "/api/blood-requests", "", map[string]string{})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAdminRoutesForbiddenForRegularUsers(t *testing.T) {
	app, authService, users := newTestApp(t)

	user, err := authService.Register(context.Background(), "Jane", "jane@example.com", "secret123")
	require.NoError(t, err)
	userToken, _, err := authService.TokenManager().GenerateToken(user.ID, user.Role)
	require.NoError(t, err)

	resp, body := doJSON(t, app, http.MethodGet, "/api/admin/stats", userToken, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "admin privileges required", body["error"])

	admin, err := authService.Register(context.Background(), "Root", "root@example.com", "secret123")
	require.NoError(t, err)
	admin.Role = domain.RoleAdmin
	require.NoError(t, users.Update(context.Background(), admin))
	adminToken, _, err := authService.TokenManager().GenerateToken(admin.ID, domain.RoleAdmin)
	require.NoError(t, err)

	resp, _ = doJSON(t, app, http.MethodGet, "/api/admin/stats", adminToken, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestProfileRoundTrip(t *testing.T) {
	app, authService, _ := newTestApp(t)

	user, err := authService.Register(context.Background(), "Jane", "jane@example.com", "secret123")
	require.NoError(t, err)
	token, _, err := authService.TokenManager().GenerateToken(user.ID, user.Role)
	require.NoError(t, err)

	resp, body := doJSON(t, app, http.MethodGet, "/api/profile", token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "jane@example.com", body["email"])
	assert.NotContains(t, body, "password_hash")

	resp, body = doJSON(t, app, http.MethodPut, "/api/profile", token, map[string]string{"name": "Jane D"})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Profile updated successfully", body["message"])

	resp, body = doJSON(t, app, http.MethodGet, "/api/profile", token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Jane D", body["name"])
}

func TestUnknownRequestReturnsNotFoundBody(t *testing.T) {
	app, authService, _ := newTestApp(t)

	user, err := authService.Register(context.Background(), "Jane", "jane@example.com", "secret123")
	require.NoError(t, err)
	token, _, err := authService.TokenManager().GenerateToken(user.ID, user.Role)
	require.NoError(t, err)

	resp, body := doJSON(t, app, http.MethodGet, "/api/blood-requests/missing-id", "", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "blood request not found", body["error"])

	resp, _ = doJSON(t, app, http.MethodDelete, "/api/blood-requests/missing-id", token, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
