package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/amiramtracker/backend/docs"
	"github.com/amiramtracker/backend/internal/auth"
	"github.com/amiramtracker/backend/internal/config"
	"github.com/amiramtracker/backend/internal/database"
	"github.com/amiramtracker/backend/internal/flashcards"
	"github.com/amiramtracker/backend/internal/handlers"
	"github.com/amiramtracker/backend/internal/logger"
	"github.com/amiramtracker/backend/internal/middleware"
	"github.com/amiramtracker/backend/internal/repositories"
	"github.com/amiramtracker/backend/internal/scheduler"
	"github.com/amiramtracker/backend/internal/services"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.uber.org/zap"
)

// @title Amiram Tracker API
// @version 1.0
// @description API for tracking Amiram English test scores and studying vocabulary with flashcards

// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html

// @host localhost:8080
// @BasePath /api/v1
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v\n", err)
	}

	// Initialize logger
	if err := logger.Init(cfg.Logging.Level); err != nil {
		log.Fatalf("Failed to initialize logger: %v\n", err)
	}
	defer logger.Sync()

	logger.Logger.Info("Starting Amiram Tracker API")

	// Connect to database
	db, err := database.Connect(cfg.DSN())
	if err != nil {
		logger.Logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	// Run migrations
	if err := database.Migrate(db, migrationSource()); err != nil {
		logger.Logger.Fatal("Failed to run migrations", zap.Error(err))
	}

	// Initialize JWT token generator
	tokenGenerator := auth.NewTokenGenerator(
		cfg.JWT.Secret,
		cfg.JWT.AccessTokenExpiry,
		cfg.JWT.RefreshTokenExpiry,
	)

	// Initialize repositories
	userRepo := repositories.NewUserRepository(db, logger.Logger)
	userTokenRepo := repositories.NewUserTokenRepository(db)
	scoreRepo := repositories.NewScoreRepository(db, logger.Logger)
	vocabRepo := repositories.NewVocabRepository(db, logger.Logger)

	// Per-user flashcard decks live in memory for the lifetime of the process
	deckStore := flashcards.NewStore()

	// Initialize services
	flashcardService := services.NewFlashcardService(vocabRepo, flashcards.NewSampler(nil), deckStore, logger.Logger)
	authService := services.NewAuthService(userRepo, userTokenRepo, tokenGenerator, flashcardService, logger.Logger)
	scoreService := services.NewScoreService(scoreRepo, logger.Logger)
	vocabService := services.NewVocabService(vocabRepo, flashcardService, logger.Logger)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService, cfg.JWT.AccessTokenExpiry, cfg.JWT.RefreshTokenExpiry, logger.Logger)
	scoreHandler := handlers.NewScoreHandler(scoreService, logger.Logger)
	vocabHandler := handlers.NewVocabHandler(vocabService, logger.Logger)
	flashcardHandler := handlers.NewFlashcardHandler(flashcardService, logger.Logger)
	healthHandler := handlers.NewHealthHandler(db, logger.Logger)

	// Initialize auth middleware
	authMiddleware := middleware.AuthMiddleware(tokenGenerator)

	// Start housekeeping jobs
	jobs := scheduler.New(authService, deckStore, cfg.Scheduler.CleanupInterval, cfg.Scheduler.DeckIdleTTL, logger.Logger)
	if err := jobs.Start(); err != nil {
		logger.Logger.Fatal("Failed to start scheduler", zap.Error(err))
	}
	defer jobs.Stop()

	// Setup router
	r := chi.NewRouter()

	// Apply middleware
	r.Use(middleware.RequestIDMiddleware)
	r.Use(middleware.LoggerMiddleware(logger.Logger))
	r.Use(middleware.RecoveryMiddleware(logger.Logger))
	r.Use(middleware.CORSMiddleware(cfg.CORS.AllowedOrigins))
	r.Use(httprate.LimitByIP(cfg.Server.RateLimitPerMinute, time.Minute))
	r.Use(middleware.RequestSizeLimitMiddleware(10 * 1024 * 1024)) // 10MB

	// Swagger documentation
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL(fmt.Sprintf("http://localhost:%d/swagger/doc.json", cfg.Server.Port)),
	))

	// Scope router to /api/v1
	r.Route("/api/v1", func(r chi.Router) {
		healthHandler.RegisterRoutes(r)
		authHandler.RegisterRoutes(r, authMiddleware)
		scoreHandler.RegisterRoutes(r, authMiddleware)
		vocabHandler.RegisterRoutes(r, authMiddleware)
		flashcardHandler.RegisterRoutes(r, authMiddleware)
	})

	// Start server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		logger.Logger.Info("Server starting", zap.Int("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Logger.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Logger.Info("Shutting down server...")

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Logger.Error("Server forced to shutdown", zap.Error(err))
	}

	logger.Logger.Info("Server exited")
}

// migrationSource finds the migrations folder relative to the working directory
func migrationSource() string {
	for _, dir := range []string{"migrations", "../migrations", "../../migrations"} {
		if _, err := os.Stat(dir); err == nil {
			return "file://" + dir
		}
	}
	return "file://migrations"
}
