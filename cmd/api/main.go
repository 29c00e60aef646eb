package main

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/idil/registrar/internal/pkg/logger"
	"github.com/idil/registrar/internal/server"
)

// @title Registrar API
// @version 1.0
// @description University administration and academic records API: program catalog, enrollment, QR attendance and course content sharing
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.email support@registrar.edu

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
	// Local overrides live in .env; absence is fine in deployed environments
	if err := godotenv.Load(); err != nil {
		logger.Debug().Msg("No .env file found, using system environment variables")
	}

	srv, err := server.NewServer()
	if err != nil {
		logger.Error().Err(err).Msg("Failed to initialize server")
		os.Exit(1)
	}

	// Blocks until a shutdown signal arrives
	if err := srv.Run(); err != nil {
		logger.Error().Err(err).Msg("Server execution failed or shutdown encountered errors")
		os.Exit(1)
	}

	logger.Info().Msg("Application finished gracefully.")
}
