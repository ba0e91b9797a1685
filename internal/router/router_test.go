package router

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"youapi-backend/internal/handlers"
	"youapi-backend/internal/middleware"
	"youapi-backend/internal/models"
)

const testSecret = "router-test-secret"

type stubYouTube struct{}

func (stubYouTube) GetVideoInfo(ctx context.Context, videoID string) (*models.VideoInfoResponse, error) {
	return &models.VideoInfoResponse{VideoID: videoID, Title: "Stub"}, nil
}

func (stubYouTube) GetTranscript(ctx context.Context, videoID, requestedLang string) (*models.TranscriptResponse, error) {
	return &models.TranscriptResponse{VideoID: videoID}, nil
}

func (stubYouTube) GetPlainTranscript(ctx context.Context, videoID string) (string, error) {
	return "stub transcript", nil
}

func (stubYouTube) ListCaptionTracks(ctx context.Context, videoID string) ([]models.CaptionTrack, error) {
	return nil, nil
}

type stubAI struct{}

func (stubAI) StreamText(ctx context.Context, modelName, prompt string, fn func(string) error) error {
	return fn("chunk")
}

func (stubAI) StreamChat(ctx context.Context, modelName, systemPrompt string, messages []models.ChatMessage, fn func(string) error) error {
	return fn("chunk")
}

func (stubAI) GenerateQuestions(ctx context.Context, modelName, prompt string) ([]string, error) {
	return []string{"q"}, nil
}

func (stubAI) GenerateChapters(ctx context.Context, modelName, prompt string) ([]models.Chapter, error) {
	return []models.Chapter{{Title: "c", Start: 0}}, nil
}

type stubHistory struct{}

func (stubHistory) Upsert(ctx context.Context, rec *models.SummaryRequest) error { return nil }
func (stubHistory) ListByUser(ctx context.Context, userID string) ([]*models.SummaryRequest, error) {
	return nil, nil
}

type stubSubStore struct {
	sub *models.Subscription
}

func (s *stubSubStore) Upsert(ctx context.Context, sub *models.Subscription, eventType string, rawEvent []byte) error {
	return nil
}

func (s *stubSubStore) GetByUser(ctx context.Context, userID string) (*models.Subscription, error) {
	return s.sub, nil
}

type noopCache struct{}

func (noopCache) Get(ctx context.Context, videoID, requestedLang string) (*models.TranscriptResponse, bool) {
	return nil, false
}
func (noopCache) Set(ctx context.Context, requestedLang string, t *models.TranscriptResponse) {}

func buildRouter(subStore *stubSubStore) http.Handler {
	jwtAuth := middleware.NewJWTAuth(testSecret)
	gate := middleware.NewSubscriptionGate(subStore)

	youtubeHandler := handlers.NewYouTubeHandler(stubYouTube{}, stubHistory{}, noopCache{})
	aiHandler := handlers.NewAIHandler(stubYouTube{}, stubAI{})
	historyHandler := handlers.NewHistoryHandler(stubHistory{})
	subscriptionHandler := handlers.NewSubscriptionHandler(subStore)
	webhookHandler := handlers.NewWebhookHandler(subStore, "")

	return New(jwtAuth, gate, youtubeHandler, aiHandler, historyHandler,
		subscriptionHandler, webhookHandler, "http://localhost:3000")
}

func bearer(t *testing.T, userID string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": userID,
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("Failed to sign token: %v", err)
	}
	return "Bearer " + signed
}

func TestRouter_PublicRoutes(t *testing.T) {
	r := buildRouter(&stubSubStore{})

	for _, path := range []string{"/", "/health"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, req)

		if rr.Code != http.StatusOK {
			t.Errorf("Expected 200 for %s without credentials, got %d", path, rr.Code)
		}
	}
}

func TestRouter_PremiumRouteRequiresAuth(t *testing.T) {
	r := buildRouter(&stubSubStore{sub: &models.Subscription{Status: models.SubscriptionActive}})

	req := httptest.NewRequest(http.MethodGet, "/youtube/info?video_id=dQw4w9WgXcQ", nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Errorf("Expected 401 without token, got %d", rr.Code)
	}
}

func TestRouter_PremiumRouteRequiresSubscription(t *testing.T) {
	r := buildRouter(&stubSubStore{})

	req := httptest.NewRequest(http.MethodGet, "/youtube/info?video_id=dQw4w9WgXcQ", nil)
	req.Header.Set("Authorization", bearer(t, "user_2abc"))
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusForbidden {
		t.Errorf("Expected 403 without subscription, got %d", rr.Code)
	}
}

func TestRouter_PremiumRouteWithActiveSubscription(t *testing.T) {
	r := buildRouter(&stubSubStore{sub: &models.Subscription{Status: models.SubscriptionActive}})

	req := httptest.NewRequest(http.MethodGet, "/youtube/info?video_id=dQw4w9WgXcQ", nil)
	req.Header.Set("Authorization", bearer(t, "user_2abc"))
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Errorf("Expected 200 with active subscription, got %d: %s", rr.Code, rr.Body.String())
	}
}

func TestRouter_AuthenticatedRoutesSkipGate(t *testing.T) {
	// History and subscription status only need a valid token, not an active
	// subscription.
	r := buildRouter(&stubSubStore{})

	for _, path := range []string{"/history", "/subscription/status"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		req.Header.Set("Authorization", bearer(t, "user_2abc"))
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, req)

		if rr.Code != http.StatusOK {
			t.Errorf("Expected 200 for %s without subscription, got %d", path, rr.Code)
		}
	}
}

func TestRouter_WebhookIsPublic(t *testing.T) {
	r := buildRouter(&stubSubStore{})

	req := httptest.NewRequest(http.MethodPost, "/webhooks/revenuecat",
		nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	// No auth gate in front; the handler itself rejects the empty body.
	if rr.Code == http.StatusUnauthorized {
		t.Errorf("Expected webhook route to bypass auth, got 401")
	}
}

func TestRouter_RequestIDHeader(t *testing.T) {
	r := buildRouter(&stubSubStore{})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Header().Get("X-Request-ID") == "" {
		t.Error("Expected X-Request-ID header on responses")
	}
}
