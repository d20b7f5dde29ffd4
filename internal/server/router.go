package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/platewire/eatery-backend/internal/handlers"
	"github.com/platewire/eatery-backend/internal/middleware"
)

type RouterConfig struct {
	UserHandler       *handlers.UserHandler
	EateryHandler     *handlers.EateryHandler
	ReviewHandler     *handlers.ReviewHandler
	ConnectionHandler *handlers.ConnectionHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.Default()

	router.Use(middleware.RequestID())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://localhost:5174"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "X-Requested-With", middleware.RequestIDHeader},
		AllowCredentials: true,
	}))

	router.GET("/healthcheck", handlers.HealthCheck)

	api := router.Group("/api")
	{
		users := api.Group("/users")
		users.GET("/", cfg.UserHandler.List)
		users.POST("/", cfg.UserHandler.Create)
		users.GET("/:id/", cfg.UserHandler.Get)
		users.DELETE("/:id/", cfg.UserHandler.Delete)

		eateries := api.Group("/eateries")
		eateries.GET("/", cfg.EateryHandler.List)
		eateries.POST("/", cfg.EateryHandler.Create)
		eateries.GET("/:id/", cfg.EateryHandler.Get)
		eateries.DELETE("/:id/", cfg.EateryHandler.Delete)

		reviews := api.Group("/reviews")
		reviews.GET("/", cfg.ReviewHandler.List)
		reviews.POST("/", cfg.ReviewHandler.Create)
		reviews.GET("/:id/", cfg.ReviewHandler.Get)
		reviews.PUT("/:id/", cfg.ReviewHandler.Edit)
		reviews.DELETE("/:id/", cfg.ReviewHandler.Delete)

		connections := api.Group("/connections")
		connections.GET("/", cfg.ConnectionHandler.List)
		connections.POST("/", cfg.ConnectionHandler.Create)
		connections.GET("/:id/", cfg.ConnectionHandler.Get)
		connections.DELETE("/:id/", cfg.ConnectionHandler.Delete)
	}

	return router
}
