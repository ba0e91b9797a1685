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

	"github.com/redis/go-redis/v9"

	"youapi-backend/internal/config"
	"youapi-backend/internal/database"
	"youapi-backend/internal/handlers"
	"youapi-backend/internal/middleware"
	"youapi-backend/internal/repository"
	"youapi-backend/internal/router"
	"youapi-backend/internal/services"
)

func main() {
	log.Println("🚀 Starting YouAPI Backend...")

	// ──── Step 1: Load Environment Variables ────
	cfg := config.Load()
	log.Println("✓ Environment variables loaded")

	// ──── Step 2: Initialize PostgreSQL Connection Pool ────
	pool, err := database.NewPostgresPool(context.Background(), cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("✗ PostgreSQL connection failed: %v", err)
	}
	defer pool.Close()
	log.Println("✓ PostgreSQL connected")

	// ──── Step 3: Run Database Migrations ────
	if err := database.RunMigrations(context.Background(), pool, "migrations"); err != nil {
		log.Fatalf("✗ Database migration failed: %v", err)
	}
	log.Println("✓ Database migrations applied")

	// ──── Step 4: Initialize Redis (optional transcript cache) ────
	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		redisClient, err = database.NewRedisClient(cfg.RedisURL)
		if err != nil {
			log.Fatalf("✗ Redis connection failed: %v", err)
		}
		defer redisClient.Close()
		log.Println("✓ Redis connected (transcript cache enabled)")
	} else {
		log.Println("- Redis not configured, transcript cache disabled")
	}
	transcriptCache := repository.NewTranscriptCache(redisClient)

	// ──── Initialize Repositories ────
	historyRepo := repository.NewHistoryRepo(pool)
	subscriptionRepo := repository.NewSubscriptionRepo(pool)

	// ──── Step 5: Initialize Gemini Client ────
	geminiService, err := services.NewGeminiService(cfg.GeminiAPIKey, cfg.GeminiModel)
	if err != nil {
		log.Fatalf("✗ Gemini client initialization failed: %v", err)
	}
	defer geminiService.Close()
	log.Printf("✓ Gemini client initialized (default model: %s)", cfg.GeminiModel)

	// ──── Initialize Services ────
	jwtAuth := middleware.NewJWTAuth(cfg.ClerkSecretKey)
	subGate := middleware.NewSubscriptionGate(subscriptionRepo)
	youtubeService := services.NewYouTubeService(cfg.WebshareProxyUsername, cfg.WebshareProxyPassword)

	// ──── Initialize Handlers ────
	youtubeHandler := handlers.NewYouTubeHandler(youtubeService, historyRepo, transcriptCache)
	aiHandler := handlers.NewAIHandler(youtubeService, geminiService)
	historyHandler := handlers.NewHistoryHandler(historyRepo)
	subscriptionHandler := handlers.NewSubscriptionHandler(subscriptionRepo)
	webhookHandler := handlers.NewWebhookHandler(subscriptionRepo, cfg.RevenueCatWebhookSecret)

	// ──── Step 6: Start HTTP Server ────
	r := router.New(
		jwtAuth,
		subGate,
		youtubeHandler,
		aiHandler,
		historyHandler,
		subscriptionHandler,
		webhookHandler,
		cfg.FrontendURL,
	)

	server := &http.Server{
		Addr:        fmt.Sprintf(":%s", cfg.Port),
		Handler:     r,
		ReadTimeout: 15 * time.Second,
		// Streaming endpoints hold the connection open well past a normal
		// request, so the write timeout is generous.
		WriteTimeout: 5 * time.Minute,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Println("Shutting down...")
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		server.Shutdown(ctx)
	}()

	log.Printf("✓ YouAPI Backend ready on http://localhost:%s", cfg.Port)

	if err := server.ListenAndServe(); err != http.ErrServerClosed {
		log.Fatalf("Server error: %v", err)
	}
}
