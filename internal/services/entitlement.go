package services

import (
	"time"

	"youapi-backend/internal/models"
)

// IsSubscriptionActive reports whether a subscription record grants access at
// the given time. A "cancelled" subscription stays active until it expires;
// a record with no expiration date never expires.
func IsSubscriptionActive(sub *models.Subscription, now time.Time) bool {
	if sub == nil {
		return false
	}

	if sub.Status != models.SubscriptionActive && sub.Status != models.SubscriptionCancelled {
		return false
	}

	if sub.ExpiredAt != nil && !sub.ExpiredAt.After(now) {
		return false
	}

	return true
}

// MapEventToStatus maps a RevenueCat webhook event type to the persisted
// subscription status. Unrecognized events map to "unknown".
func MapEventToStatus(eventType string) models.SubscriptionStatus {
	switch eventType {
	case "INITIAL_PURCHASE", "RENEWAL", "UNCANCELLATION", "PRODUCT_CHANGE":
		return models.SubscriptionActive
	case "CANCELLATION":
		return models.SubscriptionCancelled
	case "EXPIRATION":
		return models.SubscriptionExpired
	case "BILLING_ISSUE":
		return models.SubscriptionBillingIssue
	default:
		return models.SubscriptionUnknown
	}
}
