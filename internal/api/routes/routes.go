package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/princeprakhar/device-catalog/internal/api/handlers"
	"github.com/princeprakhar/device-catalog/internal/api/middleware"
	"github.com/princeprakhar/device-catalog/internal/config"
	"github.com/princeprakhar/device-catalog/internal/services"
	"github.com/princeprakhar/device-catalog/internal/store"
	"github.com/princeprakhar/device-catalog/internal/utils"
	"github.com/princeprakhar/device-catalog/pkg/logger"
)

func SetupRoutes(router *gin.Engine, cfg *config.Config, backend *store.Backend, identity services.IdentityProvider) {
	// Middleware
	router.Use(middleware.RequestLogger())
	router.Use(gin.Recovery())
	router.Use(middleware.Metrics())
	router.Use(middleware.CORSMiddleware(cfg))
	if cfg.RateLimitRPS > 0 {
		router.Use(middleware.RateLimitMiddleware(cfg, backend.Redis))
	}

	var validationService services.EmailValidator
	if cfg.AbstractEmailAPIKey != "" {
		validationService = services.NewValidationService(cfg.AbstractEmailAPIKey)
	}

	// Initialize services
	settingsService := services.NewSettingsService(backend.Store)
	userService := services.NewUserService(backend.Store, identity, validationService)
	authService := services.NewAuthService(identity, userService, validationService)
	deviceService := services.NewDeviceService(backend.Store, settingsService)
	feedbackService := services.NewFeedbackService(backend.Store)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService, userService)
	deviceHandler := handlers.NewDeviceHandler(deviceService)
	feedbackHandler := handlers.NewFeedbackHandler(feedbackService)
	settingsHandler := handlers.NewSettingsHandler(settingsService)
	adminHandler := handlers.NewAdminHandler(userService)

	requireUser := middleware.AuthMiddleware(authService)

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group(cfg.APIPrefix)

	// Health check
	api.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	api.POST("/signup", authHandler.Signup)
	api.GET("/profile", requireUser, authHandler.GetProfile)

	phones := api.Group("/phones")
	{
		phones.GET("", deviceHandler.GetPhones)
		phones.GET("/latest", deviceHandler.GetLatest)
		phones.GET("/summary", deviceHandler.GetSummary)
		phones.GET("/filters", deviceHandler.GetFilters)
		phones.POST("/search", deviceHandler.Search)
		phones.GET("/slug/:slug", deviceHandler.GetBySlug)
		phones.GET("/:id", deviceHandler.GetPhone)
		phones.POST("", requireUser, middleware.NotBanned(), deviceHandler.CreatePhone)

		phones.GET("/:id/comments", feedbackHandler.GetComments)
		phones.POST("/:id/comments", requireUser, middleware.NotBanned(), feedbackHandler.AddComment)
		phones.GET("/:id/ratings", feedbackHandler.GetRatings)
		phones.GET("/:id/ratings/me", requireUser, feedbackHandler.GetMyRating)
		phones.POST("/:id/ratings", requireUser, middleware.NotBanned(), feedbackHandler.Rate)
	}

	api.GET("/compare/:pair", deviceHandler.Compare)
	api.GET("/settings", settingsHandler.GetSettings)
	api.GET("/settings/effective", settingsHandler.GetEffective)

	// Admin routes
	admin := api.Group("/admin", requireUser, middleware.AdminOnly())
	{
		admin.GET("/settings", settingsHandler.GetSettings)
		admin.PUT("/settings", settingsHandler.UpdateSettings)

		admin.GET("/phones", deviceHandler.GetAllPhones)
		admin.GET("/phones/pending", deviceHandler.GetPendingPhones)
		admin.GET("/phones/:id", deviceHandler.GetAnyPhone)
		admin.PUT("/phones/:id", deviceHandler.UpdatePhone)
		admin.DELETE("/phones/:id", deviceHandler.DeletePhone)
		admin.POST("/phones/:id/:action", deviceHandler.ReviewPhone)
		admin.DELETE("/phones/:id/comments/:commentId", feedbackHandler.DeleteComment)

		admin.GET("/users", adminHandler.GetUsers)
		admin.PUT("/users/:id", adminHandler.UpdateUser)
		admin.POST("/users/:id/ban", adminHandler.BanUser)
	}

	router.NoRoute(func(c *gin.Context) {
		utils.SendNotFound(c, "Route not found")
	})

	logger.Info("Routes initialized successfully")
}
