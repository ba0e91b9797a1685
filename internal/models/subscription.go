package models

import "time"

// SubscriptionStatus is the persisted subscription state. "cancelled" still
// grants access until the expiration date passes.
type SubscriptionStatus string

const (
	SubscriptionActive       SubscriptionStatus = "active"
	SubscriptionCancelled    SubscriptionStatus = "cancelled"
	SubscriptionExpired      SubscriptionStatus = "expired"
	SubscriptionBillingIssue SubscriptionStatus = "billing_issue"
	SubscriptionUnknown      SubscriptionStatus = "unknown"
)

// Subscription is the persisted record for one user, updated from RevenueCat
// webhook events and read by the entitlement gate.
type Subscription struct {
	UserID        string             `json:"user_id"`
	Status        SubscriptionStatus `json:"status"`
	ProductID     *string            `json:"product_id"`
	ExpiredAt     *time.Time         `json:"expired_at"`
	IsTrial       bool               `json:"is_trial"`
	LastEventType *string            `json:"last_event_type"`
	CreatedAt     time.Time          `json:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at"`
}

type SubscriptionStatusResponse struct {
	IsActive  bool                `json:"is_active"`
	Status    *SubscriptionStatus `json:"status"`
	ProductID *string             `json:"product_id"`
	ExpiredAt *time.Time          `json:"expired_at"`
	IsTrial   bool                `json:"is_trial"`
}

// RevenueCat webhook payload. Only the fields the gateway reads are mapped;
// the raw body is persisted alongside for audit.

type RevenueCatWebhook struct {
	Event RevenueCatEvent `json:"event"`
}

type RevenueCatEvent struct {
	Type       string               `json:"type"`
	AppUserID  string               `json:"app_user_id"`
	PeriodType string               `json:"period_type"`
	Subscriber RevenueCatSubscriber `json:"subscriber"`
}

type RevenueCatSubscriber struct {
	Entitlements map[string]RevenueCatEntitlement `json:"entitlements"`
}

type RevenueCatEntitlement struct {
	ExpiresDate       *string `json:"expires_date"`
	ProductIdentifier *string `json:"product_identifier"`
}
