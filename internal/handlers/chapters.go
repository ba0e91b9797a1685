package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"youapi-backend/internal/models"
	"youapi-backend/internal/services"
)

// GenerateChapters handles POST /youtube/generate-chapters. Splits the
// supplied transcript segments into titled chapters.
func (h *AIHandler) GenerateChapters(w http.ResponseWriter, r *http.Request) {
	var req models.GenerateChaptersRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("INVALID_REQUEST", "Invalid request body", r))
		return
	}

	videoID, ok := resolveVideoID(w, r, req.VideoID)
	if !ok {
		return
	}

	if len(req.Segments) == 0 {
		writeJSON(w, http.StatusBadRequest, errorResp("INVALID_REQUEST", "segments must not be empty", r))
		return
	}

	prompt := services.BuildChaptersPrompt(req.Segments, services.LanguageName(req.Language))

	chapters, err := h.ai.GenerateChapters(r.Context(), req.Model, prompt)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("GENERATION_FAILED",
			fmt.Sprintf("Failed to generate chapters: %s", err.Error()), r))
		return
	}

	writeJSON(w, http.StatusOK, models.GenerateChaptersResponse{
		VideoID:  videoID,
		Chapters: chapters,
	})
}
