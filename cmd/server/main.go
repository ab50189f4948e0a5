package main

import (
	"github.com/adrisdev/fotogram/backend/internal/apperrors"
	"github.com/adrisdev/fotogram/backend/internal/router"
	"github.com/adrisdev/fotogram/backend/pkg/config"
	"github.com/adrisdev/fotogram/backend/pkg/validators"
	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

func main() {
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})

	// Load configuration
	cfg := config.Load()

	// Initialize backing store connections
	db, err := config.InitDB(cfg, log)
	if err != nil {
		log.WithError(err).Fatal("failed to initialize backing stores")
	}
	defer db.CloseDB()

	// Create Echo instance
	e := echo.New()
	e.HideBanner = true
	e.Validator = validators.NewValidator()
	e.HTTPErrorHandler = apperrors.HTTPErrorHandler(log)

	// Setup global middleware
	router.SetupMiddleware(e)

	// Setup routes and dependencies
	if err := router.SetupRoutes(e, cfg, db, log); err != nil {
		log.WithError(err).Fatal("failed to set up routes")
	}

	// Start server
	log.WithField("port", cfg.Port).Info("starting server")
	if err := e.Start(":" + cfg.Port); err != nil {
		log.WithError(err).Fatal("server stopped")
	}
}
