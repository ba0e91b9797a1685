package middleware

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"youapi-backend/internal/models"
	"youapi-backend/internal/services"
)

// SubscriptionStore fetches the persisted subscription record for a user.
// A missing record is (nil, nil).
type SubscriptionStore interface {
	GetByUser(ctx context.Context, userID string) (*models.Subscription, error)
}

// SubscriptionGate blocks premium routes for users without an active
// subscription. It must run after the auth middleware: when no principal is
// in context it passes the request through untouched so the auth gate's
// error stands alone.
type SubscriptionGate struct {
	store SubscriptionStore
	now   func() time.Time
}

func NewSubscriptionGate(store SubscriptionStore) *SubscriptionGate {
	return &SubscriptionGate{store: store, now: time.Now}
}

func (g *SubscriptionGate) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID := GetUserID(r.Context())
		if userID == "" {
			next.ServeHTTP(w, r)
			return
		}

		sub, err := g.store.GetByUser(r.Context(), userID)
		if err != nil {
			log.Printf("subscription lookup failed for user %s: %v", userID, err)
			writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to check subscription status", r)
			return
		}

		if !services.IsSubscriptionActive(sub, g.now()) {
			var status *models.SubscriptionStatus
			var expiredAt *time.Time
			if sub != nil {
				status = &sub.Status
				expiredAt = sub.ExpiredAt
			}

			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusForbidden)
			json.NewEncoder(w).Encode(map[string]interface{}{
				"error":               "subscription_required",
				"message":             "Active subscription required to access this feature.",
				"subscription_status": status,
				"expired_at":          expiredAt,
			})
			return
		}

		next.ServeHTTP(w, r)
	})
}
