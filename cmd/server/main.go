package main

import (
	"github.com/hazelcrest/backstage/backend/internal/router"
	"github.com/hazelcrest/backstage/backend/pkg/config"
	"github.com/hazelcrest/backstage/backend/pkg/logger"
	"github.com/hazelcrest/backstage/backend/validators"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database connection
	db, err := config.InitDB()
	if err != nil {
		logger.L.Fatal("Failed to initialize database", zap.Error(err))
	}
	defer db.CloseDB() // Ensure database connection is closed when main exits

	// Create Echo instance
	e := echo.New()

	// Setup global middleware
	router.SetupMiddleware(e)

	// Setup routes and dependencies
	if err := router.SetupRoutes(e, db.Postgres); err != nil {
		logger.L.Fatal("Failed to setup routes", zap.Error(err))
	}

	// Validator
	e.Validator = validators.NewValidator()

	// Start server
	if err := e.Start(":" + cfg.Port); err != nil {
		logger.L.Fatal("Server stopped", zap.Error(err))
	}
}
