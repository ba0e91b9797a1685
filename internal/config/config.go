package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	// Server
	Port string
	Env  string

	// Persistence
	DatabaseURL string
	RedisURL    string // optional; transcript cache disabled when empty

	// Identity provider (bearer-token verification)
	ClerkSecretKey string

	// Gemini AI
	GeminiAPIKey string
	GeminiModel  string

	// Webshare transcript proxy (optional; direct access when unset)
	WebshareProxyUsername string
	WebshareProxyPassword string

	// RevenueCat webhook (optional; signature check skipped when unset)
	RevenueCatWebhookSecret string

	// Frontend
	FrontendURL string
}

func Load() *Config {
	// Load .env file if it exists
	godotenv.Load()

	cfg := &Config{
		Port:                    getEnvOrDefault("PORT", "8080"),
		Env:                     getEnvOrDefault("ENV", "development"),
		DatabaseURL:             mustGetEnv("DATABASE_URL"),
		RedisURL:                getEnvOrDefault("REDIS_URL", ""),
		ClerkSecretKey:          mustGetEnv("CLERK_SECRET_KEY"),
		GeminiAPIKey:            mustGetEnv("GEMINI_API_KEY"),
		GeminiModel:             getEnvOrDefault("GEMINI_MODEL", "gemini-3-flash-preview"),
		WebshareProxyUsername:   getEnvOrDefault("WEBSHARE_PROXY_USERNAME", ""),
		WebshareProxyPassword:   getEnvOrDefault("WEBSHARE_PROXY_PASSWORD", ""),
		RevenueCatWebhookSecret: getEnvOrDefault("REVENUECAT_WEBHOOK_SECRET", ""),
		FrontendURL:             getEnvOrDefault("FRONTEND_URL", "http://localhost:3000"),
	}

	return cfg
}

func mustGetEnv(key string) string {
	val := os.Getenv(key)
	if val == "" {
		panic(fmt.Sprintf("required environment variable %s is not set", key))
	}
	return val
}

func getEnvOrDefault(key, defaultVal string) string {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	return val
}
