package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"youapi-backend/internal/models"
	"youapi-backend/internal/services"
)

// AIHandler serves the LLM-backed endpoints: streaming summaries and chat,
// plus the structured question and chapter generators.
type AIHandler struct {
	youtube youtubeProvider
	ai      aiProvider
}

func NewAIHandler(youtube youtubeProvider, ai aiProvider) *AIHandler {
	return &AIHandler{youtube: youtube, ai: ai}
}

// Summarize handles POST /summarize. The response is a server-sent-event
// stream of summary text chunks.
func (h *AIHandler) Summarize(w http.ResponseWriter, r *http.Request) {
	var req models.SummarizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("INVALID_REQUEST", "Invalid request body", r))
		return
	}

	videoID, ok := resolveVideoID(w, r, req.VideoID)
	if !ok {
		return
	}

	detailLevel := req.DetailLevel
	if detailLevel == "" {
		detailLevel = models.DetailSummary
	}
	if detailLevel != models.DetailTLDR && detailLevel != models.DetailSummary {
		writeJSON(w, http.StatusBadRequest, errorResp("INVALID_DETAIL_LEVEL", "detail_level must be one of: tldr, summary", r))
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

	prompt := services.BuildSummaryPrompt(detailLevel, transcriptText, services.LanguageName(req.Language))

	stream, ok := newSSEStream(w)
	if !ok {
		writeJSON(w, http.StatusInternalServerError, errorResp("STREAMING_UNSUPPORTED", "Response writer does not support streaming", r))
		return
	}

	err := h.ai.StreamText(r.Context(), req.Model, prompt, stream.SendChunk)
	if err != nil {
		// Headers are already gone out; all we can do is log and cut the
		// stream short of its [DONE] frame.
		log.Printf("summary stream failed for video %s: %v", videoID, err)
		return
	}
	stream.Done()
}
