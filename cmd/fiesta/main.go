package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"

	"github.com/fiesta-events/fiesta-events/internal/app"
	"github.com/fiesta-events/fiesta-events/internal/clients"
	"github.com/fiesta-events/fiesta-events/internal/dashboard"
	"github.com/fiesta-events/fiesta-events/internal/events"
	"github.com/fiesta-events/fiesta-events/internal/partners"
	"github.com/fiesta-events/fiesta-events/internal/platform/cache"
	"github.com/fiesta-events/fiesta-events/internal/platform/db"
	"github.com/fiesta-events/fiesta-events/internal/supplies"
	"github.com/fiesta-events/fiesta-events/internal/venues"
	"github.com/fiesta-events/fiesta-events/jobs"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping runtime startup")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	dbpool, err := db.New(ctx, cfg.PGDSN)
	if err != nil {
		logger.Error("connect postgres", slog.Any("error", err))
		os.Exit(1)
	}
	defer dbpool.Close()

	redisClient, err := cache.New(ctx, cfg.RedisAddr)
	if err != nil {
		logger.Error("connect redis", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()

	redisOpts := asynq.RedisClientOpt{Addr: cfg.RedisAddr}
	jobClient := jobs.NewClient(redisOpts, cfg.ReminderLead)
	defer func() {
		if err := jobClient.Close(); err != nil {
			logger.Warn("job client close", slog.Any("error", err))
		}
	}()

	clientRepo := clients.NewRepository(dbpool)
	clientService := clients.NewService(clientRepo)
	clientHandler := clients.NewHandler(logger, clientService)

	partnerRepo := partners.NewRepository(dbpool)
	partnerService := partners.NewService(partnerRepo)
	partnerHandler := partners.NewHandler(logger, partnerService)

	supplyRepo := supplies.NewRepository(dbpool)
	supplyService := supplies.NewService(supplyRepo)
	supplyHandler := supplies.NewHandler(logger, supplyService)

	venueRepo := venues.NewRepository(dbpool)
	venueService := venues.NewService(venueRepo)
	venueHandler := venues.NewHandler(logger, venueService)

	dashboardRepo := dashboard.NewRepository(dbpool)
	dashboardCache := dashboard.NewCache(redisClient, cfg.DashboardCacheTTL)
	dashboardService := dashboard.NewService(dashboardRepo, dashboardCache)
	dashboardHandler := dashboard.NewHandler(logger, dashboardService)

	eventRepo := events.NewRepository(dbpool)
	eventService := events.NewService(logger, eventRepo, clientRepo, venueRepo, jobClient, dashboardService)
	eventHandler := events.NewHandler(logger, eventService)

	jobHandler := jobs.NewHandler(asynq.NewInspector(redisOpts), logger)

	router := app.NewRouter(app.RouterParams{
		Logger:           logger,
		Config:           cfg,
		ClientsHandler:   clientHandler,
		PartnersHandler:  partnerHandler,
		SuppliesHandler:  supplyHandler,
		VenuesHandler:    venueHandler,
		EventsHandler:    eventHandler,
		DashboardHandler: dashboardHandler,
		JobHandler:       jobHandler,
	})

	srv := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", slog.String("addr", cfg.AppAddr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("server shutdown", slog.Any("error", err))
		}
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", slog.Any("error", err))
			os.Exit(1)
		}
	}
	logger.Info("server stopped")
}
