package handlers

import (
	"crypto/hmac"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"time"

	"youapi-backend/internal/models"
	"youapi-backend/internal/services"
)

// proEntitlementKey is the RevenueCat entitlement identifier that gates
// premium access.
const proEntitlementKey = "pro"

// WebhookHandler ingests RevenueCat subscription lifecycle events.
type WebhookHandler struct {
	store  subscriptionStore
	secret string
}

func NewWebhookHandler(store subscriptionStore, secret string) *WebhookHandler {
	return &WebhookHandler{store: store, secret: secret}
}

// verifySignature checks the HMAC-SHA1 hex digest of the raw payload.
// Verification is skipped when no secret is configured.
func (h *WebhookHandler) verifySignature(payload []byte, signature string) bool {
	if h.secret == "" {
		return true
	}
	mac := hmac.New(sha1.New, []byte(h.secret))
	mac.Write(payload)
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(signature), []byte(expected))
}

// HandleRevenueCat handles POST /webhooks/revenuecat.
//
// Processing failures after a verified, well-formed payload still return 200
// so RevenueCat does not retry events that will never succeed.
func (h *WebhookHandler) HandleRevenueCat(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("INVALID_REQUEST", "Failed to read request body", r))
		return
	}

	if signature := r.Header.Get("X-RevenueCat-Signature"); h.secret != "" && signature != "" {
		if !h.verifySignature(body, signature) {
			writeJSON(w, http.StatusUnauthorized, errorResp("INVALID_SIGNATURE", "Invalid webhook signature", r))
			return
		}
	}

	var payload models.RevenueCatWebhook
	if err := json.Unmarshal(body, &payload); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("INVALID_REQUEST", "Invalid JSON payload", r))
		return
	}

	event := payload.Event
	if event.AppUserID == "" {
		log.Printf("webhook processing error: missing app_user_id in event")
		writeJSON(w, http.StatusOK, map[string]string{
			"status":  "error",
			"message": "Missing app_user_id in event",
		})
		return
	}

	sub := &models.Subscription{
		UserID:  event.AppUserID,
		Status:  services.MapEventToStatus(event.Type),
		IsTrial: event.PeriodType == "TRIAL",
	}

	if ent, ok := event.Subscriber.Entitlements[proEntitlementKey]; ok {
		sub.ProductID = ent.ProductIdentifier
		if ent.ExpiresDate != nil {
			if expiredAt, err := time.Parse(time.RFC3339, *ent.ExpiresDate); err == nil {
				sub.ExpiredAt = &expiredAt
			} else {
				log.Printf("webhook: unparseable expires_date %q for user %s: %v", *ent.ExpiresDate, event.AppUserID, err)
			}
		}
	}

	if err := h.store.Upsert(r.Context(), sub, event.Type, body); err != nil {
		log.Printf("webhook processing error: %v", err)
		writeJSON(w, http.StatusOK, map[string]string{
			"status":  "error",
			"message": err.Error(),
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"status":     "ok",
		"event_type": event.Type,
		"user_id":    event.AppUserID,
	})
}
