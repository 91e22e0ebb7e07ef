package app

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"buildlink/database"
	"buildlink/internal/config"
	"buildlink/internal/email"
	"buildlink/internal/handlers"
	"buildlink/internal/logger"
	"buildlink/internal/middleware"
	"buildlink/internal/repositories"
	"buildlink/internal/routes"
	"buildlink/internal/services"
	"buildlink/internal/validator"
)

func Run() {
	config.LoadConfig()
	cfg := config.AppConfig

	logger.Init(cfg.Server.Env)
	logger.Info("Logger initialized", "env", cfg.Server.Env)

	logger.Info("Connecting to database...")
	// TranslateError maps driver duplicate-key errors to gorm.ErrDuplicatedKey,
	// which the repositories rely on for conflict detection.
	gormDB, err := gorm.Open(postgres.Open(cfg.Database.DSN), &gorm.Config{TranslateError: true})
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		logger.Fatal("Failed to get *sql.DB from GORM", "error", err)
	}
	if err := sqlDB.Ping(); err != nil {
		logger.Fatal("Database unavailable", "error", err)
	}
	logger.Info("Database connected")

	if err := database.Migrate(gormDB); err != nil {
		logger.Fatal("Failed to run migrations", "error", err)
	}
	if err := database.SeedNationalIDs(gormDB, cfg.NationalIDs); err != nil {
		logger.Fatal("Failed to seed national id registry", "error", err)
	}

	router := SetupRouter(cfg, gormDB)

	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info("Server starting", "address", address)
	if err := router.Run(address); err != nil {
		logger.Fatal("Server startup error", "error", err)
	}
}

func SetupRouter(cfg *config.Config, gormDB *gorm.DB) *gin.Engine {
	serviceContainer := initializeServices(cfg, gormDB)
	appHandlers := initializeHandlers(serviceContainer)

	router := initializeGinRouter(cfg)
	routes.RegisterRoutes(router, appHandlers)
	return router
}

func initializeServices(cfg *config.Config, gormDB *gorm.DB) *services.ServiceContainer {
	var emailProvider email.Provider
	if cfg.Email.SMTPHost != "" && cfg.Email.SMTPUsername != "" {
		emailProvider = email.NewSMTPProvider(cfg)
	} else {
		logger.Warn("SMTP is not configured; outgoing email is logged instead of sent")
		emailProvider = &email.MockProvider{}
	}

	userRepo := repositories.NewUserRepository(gormDB)
	nationalIDRepo := repositories.NewNationalIDRepository(gormDB)
	tradeRepo := repositories.NewTradeRepository(gormDB)
	refreshTokenRepo := repositories.NewRefreshTokenRepository(gormDB)
	jobRepo := repositories.NewJobRepository(gormDB)
	applicationRepo := repositories.NewApplicationRepository(gormDB)
	portfolioRepo := repositories.NewPortfolioRepository(gormDB)
	notificationRepo := repositories.NewNotificationRepository(gormDB)
	ratingRepo := repositories.NewRatingRepository(gormDB)

	return &services.ServiceContainer{
		AuthService:         services.NewAuthService(userRepo, nationalIDRepo, tradeRepo, refreshTokenRepo, emailProvider),
		ProfileService:      services.NewProfileService(userRepo, nationalIDRepo, tradeRepo, portfolioRepo),
		JobService:          services.NewJobService(jobRepo, tradeRepo, userRepo),
		ApplicationService:  services.NewApplicationService(applicationRepo, jobRepo, userRepo, notificationRepo),
		RatingService:       services.NewRatingService(ratingRepo, jobRepo, userRepo),
		NotificationService: services.NewNotificationService(notificationRepo),
	}
}

func initializeHandlers(sc *services.ServiceContainer) *handlers.AppHandlers {
	customValidator := validator.New()
	baseHandler := handlers.NewBaseHandler(customValidator)

	return &handlers.AppHandlers{
		AuthHandler:         handlers.NewAuthHandler(baseHandler, sc.AuthService),
		ProfileHandler:      handlers.NewProfileHandler(baseHandler, sc.ProfileService),
		JobHandler:          handlers.NewJobHandler(baseHandler, sc.JobService),
		ApplicationHandler:  handlers.NewApplicationHandler(baseHandler, sc.ApplicationService, sc.RatingService),
		NotificationHandler: handlers.NewNotificationHandler(baseHandler, sc.NotificationService),
	}
}

func initializeGinRouter(cfg *config.Config) *gin.Engine {
	if cfg.Server.Env != "development" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.CORSMiddleware())
	return router
}
