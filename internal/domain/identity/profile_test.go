package identity

import (
	"testing"
	"time"

	"github.com/reelworks/backend/internal/domain/shared/rawrecord"
	"github.com/stretchr/testify/assert"
)

func TestNormalizeProfile(t *testing.T) {
	p := NormalizeProfile(rawrecord.Record{
		"user_id":               "u-1",
		"user_category":         "agency",
		"subscription_tier":     "studio",
		"subscription_active":   true,
		"subscription_end_date": "2025-12-31",
	})

	assert.Equal(t, "u-1", p.UserID)
	assert.Equal(t, RoleAgency, p.Role)
	assert.Equal(t, "studio", p.SubscriptionTier)
	assert.True(t, p.SubscriptionActive)
	assert.NotNil(t, p.SubscriptionEndsAt)
}

func TestNormalizeProfileFallsBackToID(t *testing.T) {
	p := NormalizeProfile(rawrecord.Record{"id": "u-2", "user_category": "editor"})
	assert.Equal(t, "u-2", p.UserID)
}

func TestNormalizeProfileKeepsUnknownRole(t *testing.T) {
	p := NormalizeProfile(rawrecord.Record{"user_id": "u-3", "user_category": "stakeholder"})
	assert.Equal(t, Role("stakeholder"), p.Role)
	assert.False(t, p.Role.IsValid())
}

func TestSubscriptionCurrent(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	past := now.AddDate(0, -1, 0)
	future := now.AddDate(0, 1, 0)

	tests := []struct {
		name    string
		profile Profile
		want    bool
	}{
		{"inactive", Profile{SubscriptionActive: false}, false},
		{"active without end date", Profile{SubscriptionActive: true}, true},
		{"active not yet ended", Profile{SubscriptionActive: true, SubscriptionEndsAt: &future}, true},
		{"active but expired", Profile{SubscriptionActive: true, SubscriptionEndsAt: &past}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.profile.SubscriptionCurrent(now))
		})
	}
}
