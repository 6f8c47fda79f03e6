package app

import (
	"context"
	"fmt"
	"time"

	"landmarket_backend/database"
	"landmarket_backend/internal/config"
	"landmarket_backend/internal/email"
	"landmarket_backend/internal/handlers"
	"landmarket_backend/internal/imageprocessor"
	"landmarket_backend/internal/logger"
	"landmarket_backend/internal/middleware"
	"landmarket_backend/internal/repositories"
	"landmarket_backend/internal/routes"
	"landmarket_backend/internal/services"
	"landmarket_backend/internal/storage"
	"landmarket_backend/internal/validator"
	"landmarket_backend/internal/workers"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func Run() {
	config.LoadConfig()
	cfg := config.AppConfig
	logger.Init(cfg.Server.Env)
	logger.Info("Logger initialized", "env", cfg.Server.Env)

	logger.Info("Connecting to database...")
	gormDB, err := gorm.Open(postgres.Open(cfg.Database.DSN), &gorm.Config{})
	if err != nil {
		logger.Fatal("Failed to connect to GORM", "error", err)
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		logger.Fatal("Failed to get *sql.DB from GORM", "error", err)
	}
	if err = sqlDB.Ping(); err != nil {
		logger.Fatal("Database unavailable", "error", err)
	}
	logger.Info("Database connected")

	if err := database.AutoMigrate(gormDB); err != nil {
		logger.Fatal("Migration failed", "error", err)
	}

	cleanup := workers.NewCleanupWorker(gormDB, services.VerificationWindow)
	cleanup.Start(context.Background())

	ginRouter := SetupRouter(cfg, gormDB)

	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info("Server starting", "address", address)
	if err := ginRouter.Run(address); err != nil {
		logger.Fatal("Server startup error", "error", err)
	}
}

func SetupRouter(cfg *config.Config, gormDB *gorm.DB) *gin.Engine {
	fileStorage, err := storage.NewLocalStorage(storage.Config{
		BasePath: cfg.Storage.BasePath,
		BaseURL:  cfg.Storage.BaseURL,
	})
	if err != nil {
		logger.Fatal("Failed to initialize storage", "error", err)
	}

	emailProvider := initializeEmailProvider(cfg)

	sessionRepo := repositories.NewSessionRepository()
	serviceContainer := initializeServices(cfg, emailProvider, fileStorage, sessionRepo)
	appHandlers := initializeHandlers(serviceContainer)

	ginRouter := initializeGinRouter(gormDB)
	routes.RegisterRoutes(ginRouter, appHandlers, cfg.Auth.Secret, sessionRepo)

	return ginRouter
}

// initializeEmailProvider поднимает SMTP. Без настроенного SMTP (локальная
// разработка, CI) письма уходят в лог.
func initializeEmailProvider(cfg *config.Config) email.Provider {
	if cfg.Email.SMTPHost == "" {
		logger.Warn("SMTP is not configured, emails will be logged instead of sent")
		return email.NewLogProvider()
	}

	provider, err := email.NewSMTPProvider(email.SMTPConfig{
		Host:      cfg.Email.SMTPHost,
		Port:      cfg.Email.SMTPPort,
		Username:  cfg.Email.SMTPUsername,
		Password:  cfg.Email.SMTPPassword,
		FromEmail: cfg.Email.FromEmail,
		FromName:  cfg.Email.FromName,
	})
	if err != nil {
		logger.Fatal("Failed to initialize email provider", "error", err)
	}
	return provider
}

func initializeServices(
	cfg *config.Config,
	emailProvider email.Provider,
	fileStorage storage.Storage,
	sessionRepo repositories.SessionRepository,
) *services.ServiceContainer {
	accountRepo := repositories.NewAccountRepository()
	profileRepo := repositories.NewProfileRepository()
	ratingRepo := repositories.NewRatingRepository()

	sessionTTL := time.Duration(cfg.Auth.SessionTTL) * time.Hour

	authService := services.NewAuthService(accountRepo, sessionRepo, emailProvider, cfg.Auth.Secret, sessionTTL)
	profileService := services.NewProfileService(profileRepo, ratingRepo, fileStorage, imageprocessor.NewProcessor(85))
	ratingService := services.NewRatingService(ratingRepo, accountRepo)

	return &services.ServiceContainer{
		AuthService:    authService,
		ProfileService: profileService,
		RatingService:  ratingService,
		EmailService:   emailProvider,
	}
}

func initializeHandlers(container *services.ServiceContainer) *handlers.AppHandlers {
	customValidator := validator.New()

	return handlers.NewAppHandlers(
		handlers.NewAuthHandler(customValidator, container.AuthService),
		handlers.NewProfileHandler(customValidator, container.ProfileService),
		handlers.NewRatingHandler(customValidator, container.RatingService),
	)
}

func initializeGinRouter(db *gorm.DB) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.DBMiddleware(db))
	return router
}
