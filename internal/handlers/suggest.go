package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"youapi-backend/internal/models"
	"youapi-backend/internal/services"
)

// SuggestQuestions handles POST /youtube/suggest-questions. Returns up to
// three short starter questions about the video.
func (h *AIHandler) SuggestQuestions(w http.ResponseWriter, r *http.Request) {
	var req models.SuggestQuestionsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("INVALID_REQUEST", "Invalid request body", r))
		return
	}

	videoID, ok := resolveVideoID(w, r, req.VideoID)
	if !ok {
		return
	}

	transcriptText := req.Transcript
	if transcriptText == "" {
		var err error
		transcriptText, err = h.youtube.GetPlainTranscript(r.Context(), videoID)
		if err != nil {
			transcriptError(w, r, videoID, err)
			return
		}
	}

	prompt := services.BuildSuggestQuestionsPrompt(transcriptText, services.LanguageName(req.Language))

	questions, err := h.ai.GenerateQuestions(r.Context(), req.Model, prompt)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("GENERATION_FAILED",
			fmt.Sprintf("Failed to generate suggested questions: %s", err.Error()), r))
		return
	}

	writeJSON(w, http.StatusOK, models.SuggestQuestionsResponse{
		VideoID:   videoID,
		Questions: questions,
	})
}
