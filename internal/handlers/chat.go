package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"youapi-backend/internal/models"
	"youapi-backend/internal/services"
)

// Chat handles POST /chat. Answers questions about a video's transcript as a
// server-sent-event stream.
func (h *AIHandler) Chat(w http.ResponseWriter, r *http.Request) {
	var req models.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("INVALID_REQUEST", "Invalid request body", r))
		return
	}

	videoID, ok := resolveVideoID(w, r, req.VideoID)
	if !ok {
		return
	}

	if len(req.Messages) == 0 {
		writeJSON(w, http.StatusBadRequest, errorResp("INVALID_REQUEST", "messages must not be empty", r))
		return
	}
	last := req.Messages[len(req.Messages)-1]
	if last.Role != "user" {
		writeJSON(w, http.StatusBadRequest, errorResp("INVALID_REQUEST", "last message must have role \"user\"", r))
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

	systemPrompt := services.BuildChatSystemPrompt(transcriptText)

	stream, ok := newSSEStream(w)
	if !ok {
		writeJSON(w, http.StatusInternalServerError, errorResp("STREAMING_UNSUPPORTED", "Response writer does not support streaming", r))
		return
	}

	err := h.ai.StreamChat(r.Context(), req.Model, systemPrompt, req.Messages, stream.SendChunk)
	if err != nil {
		log.Printf("chat stream failed for video %s: %v", videoID, err)
		return
	}
	stream.Done()
}
