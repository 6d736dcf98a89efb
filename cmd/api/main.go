package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/tutorlink/tutorlink/internal/pkg/logger"
	"github.com/tutorlink/tutorlink/internal/server"
)

// @title TutorLink API
// @version 1.0
// @description API for the TutorLink tutor matching platform

// @contact.name API Support
// @contact.email support@tutorlink.io

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api/v1
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT token for authorization

func main() {
	// Load environment variables from .env if present
	if err := godotenv.Load(); err != nil {
		logger.Debug().Msg("No .env file found, relying on environment and config file")
	}

	srv, err := server.NewServer()
	if err != nil {
		logger.Error().Err(err).Msg("Failed to initialize server")
		os.Exit(1)
	}

	// Run blocks until a shutdown signal arrives
	if err := srv.Run(); err != nil {
		logger.Error().Err(err).Msg("Server execution failed or shutdown encountered errors")
		os.Exit(1)
	}

	logger.Info().Msg("Application finished gracefully.")
	os.Exit(0)
}
