package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"youapi-backend/internal/handlers"
	"youapi-backend/internal/middleware"
)

func New(
	jwtAuth *middleware.JWTAuth,
	subGate *middleware.SubscriptionGate,
	youtubeHandler *handlers.YouTubeHandler,
	aiHandler *handlers.AIHandler,
	historyHandler *handlers.HistoryHandler,
	subscriptionHandler *handlers.SubscriptionHandler,
	webhookHandler *handlers.WebhookHandler,
	frontendURL string,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.CORS(frontendURL))

	// Webhook rate limiter (60 req/min per IP)
	webhookLimiter := middleware.NewRateLimiter(60, time.Minute)

	// ──── Public Routes ────
	r.Get("/", handlers.Root)
	r.Get("/health", handlers.Health)

	r.Group(func(r chi.Router) {
		r.Use(webhookLimiter.Middleware)
		r.Post("/webhooks/revenuecat", webhookHandler.HandleRevenueCat)
	})

	// ──── Authenticated Routes ────
	r.Group(func(r chi.Router) {
		r.Use(jwtAuth.Middleware)

		r.Get("/history", historyHandler.List)
		r.Get("/subscription/status", subscriptionHandler.Status)

		// ──── Premium Routes (active subscription required) ────
		r.Group(func(r chi.Router) {
			r.Use(subGate.Middleware)

			r.Get("/youtube/info", youtubeHandler.Info)
			r.Get("/youtube/transcript", youtubeHandler.Transcript)
			r.Get("/youtube/languages", youtubeHandler.Languages)
			r.Post("/summarize", aiHandler.Summarize)
			r.Post("/chat", aiHandler.Chat)
			r.Post("/youtube/suggest-questions", aiHandler.SuggestQuestions)
			r.Post("/youtube/generate-chapters", aiHandler.GenerateChapters)
		})
	})

	return r
}
