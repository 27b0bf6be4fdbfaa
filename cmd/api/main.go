package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/blood-donation-service/internal/api/http"
	"github.com/spec-kit/blood-donation-service/internal/api/http/handlers"
	"github.com/spec-kit/blood-donation-service/internal/auth"
	"github.com/spec-kit/blood-donation-service/internal/cache"
	"github.com/spec-kit/blood-donation-service/internal/config"
	"github.com/spec-kit/blood-donation-service/internal/events"
	"github.com/spec-kit/blood-donation-service/internal/observability"
	"github.com/spec-kit/blood-donation-service/internal/persistence"
	"github.com/spec-kit/blood-donation-service/internal/repository"
	"github.com/spec-kit/blood-donation-service/internal/service"
	"github.com/spec-kit/blood-donation-service/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	pool := pg.PoolHandle()
	userRepo := repository.NewUserRepository(pool)
	donorRepo := repository.NewDonorRepository(pool)
	requestRepo := repository.NewBloodRequestRepository(pool)
	donationRepo := repository.NewDonationRepository(pool)
	notificationRepo := repository.NewNotificationRepository(pool)
	statsRepo := repository.NewStatsRepository(pool)

	dispatcher := events.NewInMemoryDispatcher()

	authService := service.NewAuthService(*cfg, userRepo)
	donorService := service.NewDonorService(donorRepo)
	requestService := service.NewRequestService(requestRepo, dispatcher)
	donationService := service.NewDonationService(donationRepo, donorRepo, requestRepo, dispatcher)
	notificationService := service.NewNotificationService(notificationRepo, dispatcher, logger)
	statsCache := cache.NewStatsCache(redis.Client, logger)
	adminService := service.NewAdminService(service.AdminDependencies{
		UserRepo:    userRepo,
		DonorRepo:   donorRepo,
		StatsRepo:   statsRepo,
		RequestSvc:  requestService,
		DonorSvc:    donorService,
		DonationSvc: donationService,
		StatsCache:  statsCache,
	})

	worker.StartNotificationWorker(notificationService)

	authMiddleware := auth.NewMiddleware(authService.TokenManager(), userRepo)

	metrics := observability.NewMetrics()

	app := fiber.New(fiber.Config{AppName: cfg.App.Name})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Auth:           handlers.NewAuthHandler(authService),
		Profile:        handlers.NewProfileHandler(authService),
		Donors:         handlers.NewDonorsHandler(donorService),
		Requests:       handlers.NewRequestsHandler(requestService),
		Donations:      handlers.NewDonationsHandler(donationService),
		Notifications:  handlers.NewNotificationsHandler(notificationService),
		Admin:          handlers.NewAdminHandler(adminService),
		AuthMiddleware: authMiddleware,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	logger.Info("server started", zap.String("addr", cfg.App.Addr()))

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
