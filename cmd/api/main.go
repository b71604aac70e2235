package main

import (
	"os"

	"github.com/yigit/lms/internal/pkg/logger"
	"github.com/yigit/lms/internal/server"
)

// @title LMS API
// @version 1.0
// @description Course enrollment and lesson progress API
// @BasePath /api/v1
// @schemes http https

func main() {
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
