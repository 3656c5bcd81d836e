package router

import (
	"github.com/hazelcrest/backstage/backend/internal/handlers"
	"github.com/hazelcrest/backstage/backend/internal/middleware"
	"github.com/hazelcrest/backstage/backend/internal/models"
	"github.com/hazelcrest/backstage/backend/internal/repositories"
	"github.com/hazelcrest/backstage/backend/internal/services"
	"github.com/hazelcrest/backstage/backend/pkg/logger"
	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"
	"gorm.io/gorm"
)

// SetupMiddleware configures global Echo middleware
func SetupMiddleware(e *echo.Echo) {
	e.Use(eMiddleware.Recover())
	e.Use(eMiddleware.CORS())
	logger.L.Info("Global middleware configured.")
}

// SetupRoutes configures all application routes and injects dependencies
func SetupRoutes(e *echo.Echo, db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.User{},
		&models.Post{},
		&models.Comment{},
		&models.ReplyLink{},
		&models.Follow{},
		&models.Like{},
		&models.Notification{},
	)
	if err != nil {
		return err
	}
	logger.L.Info("Auto-migrations completed for all models.")

	// Health check - always accessible
	e.GET("/health", handlers.HealthCheck)

	// --- Initialize Repositories ---
	userRepo := repositories.NewPostgresUserRepository(db)
	postRepo := repositories.NewPostgresPostRepository(db)
	commentRepo := repositories.NewPostgresCommentRepository(db)
	replyLinkRepo := repositories.NewPostgresReplyLinkRepository(db)
	followRepo := repositories.NewPostgresFollowRepository(db)
	likeRepo := repositories.NewPostgresLikeRepository(db)
	notificationRepo := repositories.NewPostgresNotificationRepository(db)

	// --- Initialize Services ---
	counterService := services.NewCounterService(postRepo)
	notificationService := services.NewNotificationService(notificationRepo, followRepo)
	engagementService := services.NewEngagementService(
		db, userRepo, postRepo, commentRepo, replyLinkRepo, followRepo, likeRepo,
		counterService, notificationService,
	)

	// --- Unprotected routes ---
	public := e.Group("/api/v1")
	userHandler := handlers.NewUserHandler(userRepo)
	userHandler.RegisterPublicUserRoutes(public)

	// --- Protected routes (require JWT authentication) ---
	api := e.Group("/api/v1")
	api.Use(middleware.JWTAuthMiddleware())

	userHandler.RegisterUserRoutes(api)

	postHandler := handlers.NewPostHandler(engagementService, userRepo)
	postHandler.RegisterPostRoutes(api)

	commentHandler := handlers.NewCommentHandler(engagementService, userRepo)
	commentHandler.RegisterCommentRoutes(api)

	followHandler := handlers.NewFollowHandler(engagementService, userRepo)
	followHandler.RegisterFollowRoutes(api)

	likeHandler := handlers.NewLikeHandler(engagementService, userRepo)
	likeHandler.RegisterLikeRoutes(api)

	notificationHandler := handlers.NewNotificationHandler(notificationService, userRepo)
	notificationHandler.RegisterNotificationRoutes(api)

	logger.L.Info("All routes configured.")
	return nil
}
