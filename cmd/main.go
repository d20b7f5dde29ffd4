package main

import (
	"fmt"
	"os"

	"github.com/platewire/eatery-backend/internal/db"
	"github.com/platewire/eatery-backend/internal/handlers"
	"github.com/platewire/eatery-backend/internal/logger"
	"github.com/platewire/eatery-backend/internal/repos"
	"github.com/platewire/eatery-backend/internal/server"
	"github.com/platewire/eatery-backend/internal/services"
	"github.com/platewire/eatery-backend/internal/utils"
)

func main() {
	// Logger
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	// Postgres
	postgresService, err := db.NewPostgresService(log)
	if err != nil {
		log.Error("Postgres init failed", "error", err)
		os.Exit(1)
	}
	if err = postgresService.AutoMigrateAll(); err != nil {
		log.Error("Postgres auto migration failed", "error", err)
		os.Exit(1)
	}
	thePG := postgresService.DB()

	// Repos
	log.Info("Setting up repos from main...")
	userRepo := repos.NewUserRepo(thePG, log)
	eateryRepo := repos.NewEateryRepo(thePG, log)
	reviewRepo := repos.NewReviewRepo(thePG, log)
	connectionRepo := repos.NewConnectionRepo(thePG, log)

	// Services
	log.Info("Setting up services from main...")
	statsService := services.NewStatsService(thePG, log, userRepo, eateryRepo, reviewRepo)
	userService := services.NewUserService(thePG, log, userRepo, reviewRepo, connectionRepo, statsService)
	eateryService := services.NewEateryService(thePG, log, userRepo, eateryRepo, reviewRepo, statsService)
	reviewService := services.NewReviewService(thePG, log, userRepo, eateryRepo, reviewRepo, statsService)
	connectionService := services.NewConnectionService(thePG, log, userRepo, connectionRepo)

	// Handlers
	log.Info("Setting up handlers from main...")
	userHandler := handlers.NewUserHandler(userService)
	eateryHandler := handlers.NewEateryHandler(eateryService)
	reviewHandler := handlers.NewReviewHandler(reviewService)
	connectionHandler := handlers.NewConnectionHandler(connectionService)

	// Router
	log.Info("Setting up router from main...")
	router := server.NewRouter(server.RouterConfig{
		UserHandler:       userHandler,
		EateryHandler:     eateryHandler,
		ReviewHandler:     reviewHandler,
		ConnectionHandler: connectionHandler,
	})

	port := utils.GetEnv("PORT", "8080", log)
	log.Info("Server listening", "port", port)
	if err := router.Run(":" + port); err != nil {
		log.Error("Server failed", "error", err)
		os.Exit(1)
	}
}
