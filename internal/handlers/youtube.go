package handlers

import (
	"log"
	"net/http"

	"youapi-backend/internal/middleware"
	"youapi-backend/internal/models"
)

// YouTubeHandler serves video metadata and transcript lookups. Successful
// metadata lookups are recorded in the caller's history.
type YouTubeHandler struct {
	youtube youtubeProvider
	history historyStore
	cache   transcriptCache
}

func NewYouTubeHandler(youtube youtubeProvider, history historyStore, cache transcriptCache) *YouTubeHandler {
	return &YouTubeHandler{youtube: youtube, history: history, cache: cache}
}

// Info handles GET /youtube/info?video_id=...
func (h *YouTubeHandler) Info(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("video_id")
	if raw == "" {
		writeJSON(w, http.StatusBadRequest, errorResp("MISSING_VIDEO_ID", "video_id query parameter is required", r))
		return
	}

	videoID, ok := resolveVideoID(w, r, raw)
	if !ok {
		return
	}

	info, err := h.youtube.GetVideoInfo(r.Context(), videoID)
	if err != nil {
		transcriptError(w, r, videoID, err)
		return
	}

	// Record the lookup for the caller's history. A failure here must not
	// break the response.
	if userID := middleware.GetUserID(r.Context()); userID != "" && h.history != nil {
		rec := &models.SummaryRequest{
			UserID:       userID,
			Source:       models.SourceYouTube,
			VideoID:      info.VideoID,
			Title:        info.Title,
			Author:       info.Author,
			ThumbnailURL: info.ThumbnailURL,
			Length:       info.Length,
		}
		if err := h.history.Upsert(r.Context(), rec); err != nil {
			log.Printf("history upsert failed for user %s video %s: %v", userID, info.VideoID, err)
		}
	}

	writeJSON(w, http.StatusOK, info)
}

// Languages handles GET /youtube/languages?video_id=... and lists the
// caption tracks available for a video.
func (h *YouTubeHandler) Languages(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("video_id")
	if raw == "" {
		writeJSON(w, http.StatusBadRequest, errorResp("MISSING_VIDEO_ID", "video_id query parameter is required", r))
		return
	}

	videoID, ok := resolveVideoID(w, r, raw)
	if !ok {
		return
	}

	tracks, err := h.youtube.ListCaptionTracks(r.Context(), videoID)
	if err != nil {
		transcriptError(w, r, videoID, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"video_id":  videoID,
		"languages": tracks,
	})
}

// Transcript handles GET /youtube/transcript?video_id=...&lang=...
func (h *YouTubeHandler) Transcript(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("video_id")
	if raw == "" {
		writeJSON(w, http.StatusBadRequest, errorResp("MISSING_VIDEO_ID", "video_id query parameter is required", r))
		return
	}

	videoID, ok := resolveVideoID(w, r, raw)
	if !ok {
		return
	}
	requestedLang := r.URL.Query().Get("lang")

	if h.cache != nil {
		if cached, ok := h.cache.Get(r.Context(), videoID, requestedLang); ok {
			writeJSON(w, http.StatusOK, cached)
			return
		}
	}

	transcript, err := h.youtube.GetTranscript(r.Context(), videoID, requestedLang)
	if err != nil {
		transcriptError(w, r, videoID, err)
		return
	}

	if h.cache != nil {
		h.cache.Set(r.Context(), requestedLang, transcript)
	}

	writeJSON(w, http.StatusOK, transcript)
}
