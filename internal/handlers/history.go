package handlers

import (
	"fmt"
	"net/http"

	"youapi-backend/internal/middleware"
	"youapi-backend/internal/models"
)

// HistoryHandler serves the authenticated caller's video lookup history.
type HistoryHandler struct {
	history historyStore
}

func NewHistoryHandler(history historyStore) *HistoryHandler {
	return &HistoryHandler{history: history}
}

// List handles GET /history. Most recent first.
func (h *HistoryHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		writeJSON(w, http.StatusUnauthorized, errorResp("UNAUTHORIZED", "Invalid or missing authentication token", r))
		return
	}

	records, err := h.history.ListByUser(r.Context(), userID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR",
			fmt.Sprintf("Failed to load history: %s", err.Error()), r))
		return
	}
	if records == nil {
		records = []*models.SummaryRequest{}
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"history": records})
}
