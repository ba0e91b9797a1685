package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"youapi-backend/internal/models"
	"youapi-backend/internal/services"
)

// Collaborator interfaces. Handlers depend on these seams so tests can swap
// in fakes for the external services.

type youtubeProvider interface {
	GetVideoInfo(ctx context.Context, videoID string) (*models.VideoInfoResponse, error)
	GetTranscript(ctx context.Context, videoID, requestedLang string) (*models.TranscriptResponse, error)
	GetPlainTranscript(ctx context.Context, videoID string) (string, error)
	ListCaptionTracks(ctx context.Context, videoID string) ([]models.CaptionTrack, error)
}

type aiProvider interface {
	StreamText(ctx context.Context, modelName, prompt string, fn func(chunk string) error) error
	StreamChat(ctx context.Context, modelName, systemPrompt string, messages []models.ChatMessage, fn func(chunk string) error) error
	GenerateQuestions(ctx context.Context, modelName, prompt string) ([]string, error)
	GenerateChapters(ctx context.Context, modelName, prompt string) ([]models.Chapter, error)
}

type historyStore interface {
	Upsert(ctx context.Context, rec *models.SummaryRequest) error
	ListByUser(ctx context.Context, userID string) ([]*models.SummaryRequest, error)
}

type subscriptionStore interface {
	Upsert(ctx context.Context, sub *models.Subscription, eventType string, rawEvent []byte) error
	GetByUser(ctx context.Context, userID string) (*models.Subscription, error)
}

type transcriptCache interface {
	Get(ctx context.Context, videoID, requestedLang string) (*models.TranscriptResponse, bool)
	Set(ctx context.Context, requestedLang string, t *models.TranscriptResponse)
}

// Shared helpers

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func errorResp(code, message string, r *http.Request) models.ErrorResponse {
	return models.ErrorResponse{
		Error: models.APIError{
			Code:      code,
			Message:   message,
			RequestID: r.Header.Get("X-Request-ID"),
		},
	}
}

// resolveVideoID extracts the canonical video ID or writes a 400 and returns
// false.
func resolveVideoID(w http.ResponseWriter, r *http.Request, raw string) (string, bool) {
	videoID, err := services.ExtractVideoID(raw)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("INVALID_VIDEO_ID", err.Error(), r))
		return "", false
	}
	return videoID, true
}

// transcriptError maps transcript retrieval failures onto the HTTP taxonomy:
// disabled -> 400, missing/unavailable -> 404, anything else -> 500.
func transcriptError(w http.ResponseWriter, r *http.Request, videoID string, err error) {
	switch {
	case errors.Is(err, services.ErrTranscriptsDisabled):
		writeJSON(w, http.StatusBadRequest, errorResp("TRANSCRIPTS_DISABLED",
			fmt.Sprintf("Transcripts are disabled for video: %s", videoID), r))
	case errors.Is(err, services.ErrNoTranscript):
		writeJSON(w, http.StatusNotFound, errorResp("TRANSCRIPT_NOT_FOUND",
			fmt.Sprintf("No transcript found for video: %s", videoID), r))
	case errors.Is(err, services.ErrVideoUnavailable):
		writeJSON(w, http.StatusNotFound, errorResp("VIDEO_UNAVAILABLE",
			fmt.Sprintf("Video unavailable: %s", videoID), r))
	default:
		writeJSON(w, http.StatusInternalServerError, errorResp("UPSTREAM_ERROR",
			fmt.Sprintf("Failed to fetch transcript: %s", err.Error()), r))
	}
}
