// main.go
package main

import (
	"context"
	"log"

	"movie-reservation/cmd"
	"movie-reservation/internal/data/repository"
	"movie-reservation/internal/wire"
	"movie-reservation/pkg/database"
	"movie-reservation/pkg/utils"

	"go.uber.org/zap"
)

func main() {
	// Load config
	config, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger, err := utils.InitLogger(config.App.LogPath, config.App.Debug)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using standard log.", err)
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	logger.Info("Starting application",
		zap.String("app", config.App.Name),
		zap.String("port", config.App.Port),
		zap.String("store", config.Store.Driver),
		zap.Bool("debug", config.App.Debug),
	)

	// Catalog: a load failure means an empty catalog plus a warning,
	// never a dead process.
	catalog, err := repository.NewFileCatalog(config.Store.MoviesFile, config.Seating.Rows, config.Seating.Cols, logger)
	if err != nil {
		logger.Warn("Catalog load failed, starting with empty catalog", zap.Error(err))
	}

	// Reservation store: file driver by default, postgres on request.
	var store repository.ReservationRepository
	switch config.Store.Driver {
	case "postgres":
		db, err := database.InitDB(config.Database)
		if err != nil {
			logger.Fatal("Failed to connect to database", zap.Error(err))
		}
		defer db.Close()
		logger.Info("Database connected successfully")
		store = repository.NewPgReservationStore(db, logger)
	default:
		store, err = repository.NewFileReservationStore(config.Store.ReservationsFile, logger)
		if err != nil {
			logger.Warn("Reservation store load failed, starting empty", zap.Error(err))
		}
	}

	repos := &repository.Repository{
		Catalog:     catalog,
		Reservation: store,
		Session:     repository.NewMemorySessionRepository(logger),
	}

	// Wire all dependencies
	app := wire.Wiring(repos, config, logger)

	// Re-occupy seats held by stored non-cancelled reservations.
	if err := app.Service.Reservation.RestoreOccupancy(context.Background()); err != nil {
		logger.Warn("Failed to restore seat occupancy", zap.Error(err))
	}

	// Start server
	logger.Info("Starting HTTP server", zap.String("port", config.App.Port))

	cmd.APIServer(app.Router, config.App.Port)
}
