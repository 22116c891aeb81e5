package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Dosada05/sporter/config"
	"github.com/Dosada05/sporter/db"
	"github.com/Dosada05/sporter/handlers"
	"github.com/Dosada05/sporter/live"
	"github.com/Dosada05/sporter/metrics"
	"github.com/Dosada05/sporter/repositories"
	api "github.com/Dosada05/sporter/routes"
	"github.com/Dosada05/sporter/services"
	"github.com/Dosada05/sporter/storage"
	"github.com/go-chi/chi/v5"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

func main() {
	// Настройка логгера
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	// Загрузка конфигурации
	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("configuration loaded", slog.Int("port", cfg.ServerPort))

	// Подключение к базе данных
	dbConn, err := db.Connect(cfg.DatabaseURL, 5*time.Second)
	if err != nil {
		logger.Error("failed to connect to database", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := dbConn.Close(); err != nil {
			logger.Error("failed to close database connection", slog.Any("error", err))
		} else {
			logger.Info("database connection closed")
		}
	}()
	logger.Info("database connection established")

	migrateCtx, cancelMigrate := context.WithTimeout(context.Background(), 30*time.Second)
	err = db.Migrate(migrateCtx, dbConn)
	cancelMigrate()
	if err != nil {
		logger.Error("failed to apply database schema", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("database schema applied")

	// Инициализация загрузчика файлов (Cloudflare R2)
	r2Config := storage.CloudflareR2UploaderConfig{
		AccountID:       cfg.R2AccountID,
		AccessKeyID:     cfg.R2AccessKeyID,
		SecretAccessKey: cfg.R2SecretAccessKey,
		BucketName:      cfg.R2BucketName,
		PublicBaseURL:   cfg.R2PublicBaseURL,
	}
	uploader := storage.NewDisabledUploader()
	if r2Config.Enabled() {
		uploader, err = storage.NewCloudflareR2Uploader(context.Background(), r2Config)
		if err != nil {
			logger.Error("failed to initialize Cloudflare R2 uploader", slog.Any("error", err))
			os.Exit(1)
		}
		logger.Info("Cloudflare R2 uploader initialized", slog.String("bucket", cfg.R2BucketName))
	} else {
		logger.Warn("Cloudflare R2 is not configured, standings snapshots and logos are disabled")
	}

	// Метрики
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	recorder := metrics.NewPrometheus(registry)

	// Инициализация WebSocket Hub
	wsHub := live.NewHub(logger)
	go wsHub.Run()
	defer wsHub.Stop()
	logger.Info("WebSocket Hub started")

	// Инициализация репозиториев
	transactor := repositories.NewTransactor(dbConn, logger)
	userRepo := repositories.NewPostgresUserRepository(dbConn)
	sportRepo := repositories.NewPostgresSportRepository(dbConn)
	teamRepo := repositories.NewPostgresTeamRepository(dbConn)
	matchRepo := repositories.NewPostgresMatchRepository(dbConn)
	standingRepo := repositories.NewPostgresStandingRepository(dbConn)
	ticketTypeRepo := repositories.NewPostgresTicketTypeRepository(dbConn)
	orderRepo := repositories.NewPostgresOrderRepository(dbConn)
	logger.Info("Repositories initialized")

	// Инициализация сервисов
	accessService := services.NewAccessService(userRepo, sportRepo)
	matchService := services.NewMatchService(
		transactor,
		matchRepo,
		teamRepo,
		sportRepo,
		standingRepo,
		accessService,
		wsHub,
		recorder,
		logger,
	)
	standingService := services.NewStandingService(
		transactor,
		standingRepo,
		sportRepo,
		teamRepo,
		matchRepo,
		accessService,
		uploader,
		logger,
	)
	purchaseService := services.NewPurchaseService(transactor, ticketTypeRepo, orderRepo, recorder, logger)
	dashboardService := services.NewDashboardService(accessService, matchRepo, ticketTypeRepo, teamRepo, standingRepo)
	sportService := services.NewSportService(sportRepo, uploader, logger)
	teamService := services.NewTeamService(teamRepo, sportRepo, accessService, uploader, logger)
	logger.Info("Services initialized")

	// Инициализация обработчиков HTTP
	matchHandler := handlers.NewMatchHandler(matchService)
	standingHandler := handlers.NewStandingHandler(standingService)
	orderHandler := handlers.NewOrderHandler(purchaseService)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)
	sportHandler := handlers.NewSportHandler(sportService)
	teamHandler := handlers.NewTeamHandler(teamService)
	webSocketHandler := handlers.NewWebSocketHandler(wsHub, cfg.CORSAllowedOrigins)
	healthHandler := handlers.NewHealthHandler(dbConn)
	logger.Info("HTTP handlers initialized")

	// Настройка маршрутизатора
	router := chi.NewRouter()
	api.SetupRoutes(
		router,
		api.Options{
			JWTSecret:      cfg.JWTSecretKey,
			AllowedOrigins: cfg.CORSAllowedOrigins,
			Metrics:        registry,
		},
		matchHandler,
		standingHandler,
		orderHandler,
		dashboardHandler,
		sportHandler,
		teamHandler,
		webSocketHandler,
		healthHandler,
	)
	logger.Info("Routes configured")

	// Настройка и запуск HTTP-сервера
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("starting server", slog.String("address", server.Addr))
		serverErrors <- server.ListenAndServe()
	}()

	// Ожидание сигнала завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", slog.Any("error", err))
			os.Exit(1)
		}
		logger.Info("server stopped gracefully")
	case sig := <-quit:
		logger.Info("shutdown signal received", slog.String("signal", sig.String()))
		shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancelShutdown()

		logger.Info("shutting down server", slog.Duration("timeout", 15*time.Second))
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("graceful shutdown failed", slog.Any("error", err))
			if closeErr := server.Close(); closeErr != nil {
				logger.Error("failed to force close server", slog.Any("error", closeErr))
			}
			os.Exit(1)
		}
		logger.Info("server shutdown complete")
	}
	logger.Info("application exited")
}
