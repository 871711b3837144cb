package identity

import (
	"time"

	"github.com/reelworks/backend/internal/domain/shared/rawrecord"
)

// Role is the category of the acting user. It determines which fee fields
// and which scope of records represent "their" revenue or expense.
type Role string

const (
	RoleEditor Role = "editor"
	RoleClient Role = "client"
	RoleAgency Role = "agency"
	RoleAdmin  Role = "admin"
)

// IsValid checks if the role is one of the known user categories.
func (r Role) IsValid() bool {
	switch r {
	case RoleEditor, RoleClient, RoleAgency, RoleAdmin:
		return true
	}
	return false
}

// String returns the string representation
func (r Role) String() string {
	return string(r)
}

// Profile is the current user's account record as reported by the workflow
// API. It is read-only here; subscription state is owned by the remote system.
type Profile struct {
	UserID             string     `json:"user_id"`
	Role               Role       `json:"user_category"`
	SubscriptionTier   string     `json:"subscription_tier"`
	SubscriptionActive bool       `json:"subscription_active"`
	SubscriptionEndsAt *time.Time `json:"subscription_end_date"`
}

// SubscriptionCurrent reports whether the subscription is active and, when an
// end date is present, not yet past it.
func (p Profile) SubscriptionCurrent(now time.Time) bool {
	if !p.SubscriptionActive {
		return false
	}
	if p.SubscriptionEndsAt != nil && p.SubscriptionEndsAt.Before(now) {
		return false
	}
	return true
}

// NormalizeProfile coerces a raw profile record into a typed Profile. An
// unknown or missing user_category is kept as-is; the financial classifier
// treats anything unrecognized as the generic default role.
func NormalizeProfile(raw rawrecord.Record) Profile {
	return Profile{
		UserID:             raw.StringOr("user_id", raw.String("id")),
		Role:               Role(raw.String("user_category")),
		SubscriptionTier:   raw.String("subscription_tier"),
		SubscriptionActive: raw.Bool("subscription_active"),
		SubscriptionEndsAt: raw.Time("subscription_end_date"),
	}
}
