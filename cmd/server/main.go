package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/princeprakhar/device-catalog/internal/api/routes"
	"github.com/princeprakhar/device-catalog/internal/config"
	"github.com/princeprakhar/device-catalog/internal/services"
	"github.com/princeprakhar/device-catalog/internal/store"
	"github.com/princeprakhar/device-catalog/pkg/logger"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	// Initialize logger
	logger.Init()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration: ", err)
	}
	if err := cfg.Validate(); err != nil {
		logger.Fatal("Invalid configuration: ", err)
	}

	// Open the record store
	backend, err := store.Open(context.Background(), cfg)
	if err != nil {
		logger.Fatal("Failed to open record store: ", err)
	}
	defer backend.Store.Close()

	// Set Gin mode
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize router
	router := gin.New()

	// Setup routes
	identity := services.NewGoTrueClient(cfg.IdentityURL, cfg.IdentityServiceKey, cfg.IdentityJWTSecret)
	routes.SetupRoutes(router, cfg, backend, identity)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		logger.Info("Shutting down server...")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			logger.Error("Server shutdown error: ", err)
		}
	}()

	logger.Info("Server starting on port " + cfg.Port)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal("Failed to start server: ", err)
	}
}
