package main

import (
	"context"
	"log"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/fieldops-service/internal/alerting"
	httptransport "github.com/spec-kit/fieldops-service/internal/api/http"
	"github.com/spec-kit/fieldops-service/internal/api/http/handlers"
	"github.com/spec-kit/fieldops-service/internal/config"
	"github.com/spec-kit/fieldops-service/internal/domain"
	"github.com/spec-kit/fieldops-service/internal/events"
	"github.com/spec-kit/fieldops-service/internal/observability"
	"github.com/spec-kit/fieldops-service/internal/persistence"
	"github.com/spec-kit/fieldops-service/internal/repository"
	"github.com/spec-kit/fieldops-service/internal/seed"
	"github.com/spec-kit/fieldops-service/internal/service"
	"github.com/spec-kit/fieldops-service/internal/store"
	"github.com/spec-kit/fieldops-service/internal/worker"
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

	if cfg.Postgres.RunMigrations && pg.PoolHandle() != nil {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	defaultSLA := domain.SLAConfig{
		AcceptMinutes:    cfg.Alerting.DefaultAcceptMinutes,
		OnsiteMinutes:    cfg.Alerting.DefaultOnsiteMinutes,
		CompletedMinutes: cfg.Alerting.DefaultCompletedMinutes,
	}

	jobSnapshot := persistence.NewRedisJobSnapshot(redis, cfg.Store.JobsKey, defaultSLA, logger)
	jobStore := store.NewJobStore(jobSnapshot, logger)
	rnd := rand.New(rand.NewSource(cfg.Store.SeedRandom))
	jobStore.Load(ctx, func() []domain.Job {
		return seed.Jobs(cfg.Store.SeedJobs, rnd, time.Now(), defaultSLA)
	})

	engineers := store.NewEngineerDirectory(seed.Engineers())
	customers := store.NewCustomerDirectory(seed.Customers())

	resolutionSnapshot := persistence.NewRedisResolutionSnapshot(redis, cfg.Store.ResolutionsKey, logger)
	resolutions := alerting.NewResolutionStore(resolutionSnapshot, logger)
	resolutions.Load(ctx)

	dispatcher := events.NewInMemoryDispatcher(logger)
	metrics := observability.NewMetrics()

	var manualRepo repository.ManualAlertRepository
	if pool := pg.PoolHandle(); pool != nil {
		manualRepo = repository.NewManualAlertRepository(pool)
	} else {
		manualRepo = repository.NewMemoryManualAlertRepository()
	}

	jobService := service.NewJobService(service.JobDependencies{
		Jobs:       jobStore,
		Engineers:  engineers,
		Customers:  customers,
		Dispatcher: dispatcher,
		Clock:      time.Now,
		DefaultSLA: defaultSLA,
		Random:     rnd,
	})
	alertService := service.NewAlertService(service.AlertDependencies{
		Jobs:        jobStore,
		Resolutions: resolutions,
		ManualRepo:  manualRepo,
		Dispatcher:  dispatcher,
		Clock:       time.Now,
		Metrics:     metrics,
		Logger:      logger,
	})
	alertService.RegisterHandlers()
	alertService.Reevaluate(ctx)
	siteService := service.NewSiteService(jobStore)

	notificationService := service.NewNotificationService(dispatcher, logger, cfg.Notification)
	worker.StartNotificationWorker(notificationService)

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	healthHandler := handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis)
	jobsHandler := handlers.NewJobsHandler(jobService)
	alertsHandler := handlers.NewAlertsHandler(alertService, engineers, jobStore)
	sitesHandler := handlers.NewSitesHandler(siteService)
	directoryHandler := handlers.NewDirectoryHandler(engineers, customers)

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:    healthHandler,
		Jobs:      jobsHandler,
		Alerts:    alertsHandler,
		Sites:     sitesHandler,
		Directory: directoryHandler,
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
