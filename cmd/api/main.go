package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/andreeesz17/inmobiliaria-service/internal/api/http"
	"github.com/andreeesz17/inmobiliaria-service/internal/api/http/handlers"
	"github.com/andreeesz17/inmobiliaria-service/internal/auth"
	"github.com/andreeesz17/inmobiliaria-service/internal/config"
	"github.com/andreeesz17/inmobiliaria-service/internal/events"
	"github.com/andreeesz17/inmobiliaria-service/internal/notify"
	"github.com/andreeesz17/inmobiliaria-service/internal/observability"
	"github.com/andreeesz17/inmobiliaria-service/internal/persistence"
	"github.com/andreeesz17/inmobiliaria-service/internal/repository"
	"github.com/andreeesz17/inmobiliaria-service/internal/service"
	"github.com/andreeesz17/inmobiliaria-service/internal/session"
	"github.com/andreeesz17/inmobiliaria-service/internal/worker"
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

	rdb := persistence.NewRedis(cfg.Redis, logger)
	defer rdb.Close()

	pool := pg.PoolHandle()
	userRepo := repository.NewUserRepository(pool)
	propertyRepo := repository.NewPropertyRepository(pool)
	requestRepo := repository.NewRequestRepository(pool)
	historyRepo := repository.NewRequestHistoryRepository(pool)
	appointmentRepo := repository.NewAppointmentRepository(pool)

	sessionStore := session.NewRedisStore(rdb.Client, cfg.Session.SlotKey)
	sessions := session.NewManager(sessionStore, logger)

	dispatcher := events.NewInMemoryDispatcher()
	hub := notify.NewHub(0)

	authService := service.NewAuthService(*cfg, userRepo, sessions, logger)
	requestService := service.NewRequestService(service.RequestDependencies{
		RequestRepo: requestRepo,
		HistoryRepo: historyRepo,
		Dispatcher:  dispatcher,
		Sink:        hub,
	}, logger)
	propertyService := service.NewPropertyService(propertyRepo)
	appointmentService := service.NewAppointmentService(appointmentRepo, propertyRepo)
	userService := service.NewUserService(userRepo)
	notificationService := service.NewNotificationService(dispatcher, logger, cfg.Notification)

	stopNotifications := worker.StartNotificationWorker(notificationService, hub, logger)
	defer stopNotifications()

	sweeper, err := worker.StartSessionSweeper(sessions, cfg.Session.SweepIntervalMin, logger)
	if err != nil {
		logger.Fatal("failed to start session sweeper", zap.Error(err))
	}
	defer sweeper.Stop()

	authMiddleware := auth.NewMiddleware(authService.TokenManager(), sessions)

	metrics := observability.NewMetrics()
	app := fiber.New(fiber.Config{AppName: cfg.App.Name})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, rdb),
		Auth:           handlers.NewAuthHandler(authService),
		Home:           handlers.NewHomeHandler(),
		Properties:     handlers.NewPropertiesHandler(propertyService),
		Appointments:   handlers.NewAppointmentsHandler(appointmentService),
		Requests:       handlers.NewRequestsHandler(requestService),
		Users:          handlers.NewUsersHandler(userService),
		AuthMiddleware: authMiddleware,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
