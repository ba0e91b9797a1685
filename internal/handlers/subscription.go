package handlers

import (
	"fmt"
	"net/http"
	"time"

	"youapi-backend/internal/middleware"
	"youapi-backend/internal/models"
	"youapi-backend/internal/services"
)

// SubscriptionHandler serves the authenticated caller's subscription state.
type SubscriptionHandler struct {
	store subscriptionStore
	now   func() time.Time
}

func NewSubscriptionHandler(store subscriptionStore) *SubscriptionHandler {
	return &SubscriptionHandler{store: store, now: time.Now}
}

// Status handles GET /subscription/status. Users with no subscription record
// get the inactive zero-value shape rather than a 404.
func (h *SubscriptionHandler) Status(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		writeJSON(w, http.StatusUnauthorized, errorResp("UNAUTHORIZED", "Invalid or missing authentication token", r))
		return
	}

	sub, err := h.store.GetByUser(r.Context(), userID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR",
			fmt.Sprintf("Failed to load subscription: %s", err.Error()), r))
		return
	}

	if sub == nil {
		writeJSON(w, http.StatusOK, models.SubscriptionStatusResponse{})
		return
	}

	writeJSON(w, http.StatusOK, models.SubscriptionStatusResponse{
		IsActive:  services.IsSubscriptionActive(sub, h.now()),
		Status:    &sub.Status,
		ProductID: sub.ProductID,
		ExpiredAt: sub.ExpiredAt,
		IsTrial:   sub.IsTrial,
	})
}
