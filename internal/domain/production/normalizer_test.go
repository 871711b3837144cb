package production

import (
	"testing"

	"github.com/reelworks/backend/internal/domain/shared/rawrecord"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeProject(t *testing.T) {
	t.Run("coerces numeric strings and fills defaults", func(t *testing.T) {
		p := NormalizeProject(rawrecord.Record{
			"id":         "P1",
			"name":       "Launch video",
			"editor_fee": "1200.50",
			"client_fee": float64(2000),
			"deadline":   "2025-02-28",
		})

		assert.Equal(t, "P1", p.ID)
		assert.True(t, decimal.NewFromFloat(1200.50).Equal(p.EditorFee))
		assert.True(t, decimal.NewFromInt(2000).Equal(p.ClientFee))
		assert.True(t, p.Fee.IsZero())
		assert.Equal(t, ProjectStatusDraft, p.Status)
		require.NotNil(t, p.Deadline)
		assert.Nil(t, p.AssignedDate)
		assert.Empty(t, p.Warnings)
	})

	t.Run("flags unparsable fee without failing", func(t *testing.T) {
		p := NormalizeProject(rawrecord.Record{
			"id":  "P2",
			"fee": "twelve hundred",
		})

		assert.True(t, p.Fee.IsZero())
		assert.Equal(t, []string{"fee"}, p.Warnings)
	})

	t.Run("fee fallback applies when role fee is absent", func(t *testing.T) {
		p := NormalizeProject(rawrecord.Record{
			"id":  "P3",
			"fee": float64(900),
		})

		assert.True(t, decimal.NewFromInt(900).Equal(p.EditorRate()))
		assert.True(t, decimal.NewFromInt(900).Equal(p.ClientRate()))
	})

	t.Run("role fee wins over fallback when set", func(t *testing.T) {
		p := NormalizeProject(rawrecord.Record{
			"id":         "P4",
			"editor_fee": float64(1500),
			"fee":        float64(900),
		})

		assert.True(t, decimal.NewFromInt(1500).Equal(p.EditorRate()))
		assert.True(t, decimal.NewFromInt(900).Equal(p.ClientRate()))
	})
}

func TestDisplayRate(t *testing.T) {
	tests := []struct {
		name string
		raw  rawrecord.Record
		want int64
	}{
		{
			name: "client fee first",
			raw:  rawrecord.Record{"client_fee": float64(500), "editor_fee": float64(400), "fee": float64(300)},
			want: 500,
		},
		{
			name: "editor fee when no client fee",
			raw:  rawrecord.Record{"editor_fee": float64(400), "fee": float64(300)},
			want: 400,
		},
		{
			name: "legacy fee last",
			raw:  rawrecord.Record{"fee": float64(300)},
			want: 300,
		},
		{
			name: "no rates at all",
			raw:  rawrecord.Record{},
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NormalizeProject(tt.raw)
			assert.True(t, decimal.NewFromInt(tt.want).Equal(p.DisplayRate()))
		})
	}
}

func TestNormalizeSharedProject(t *testing.T) {
	sp := NormalizeSharedProject(rawrecord.Record{
		"id":   "S1",
		"name": "Shared cut",
		"share_info": map[string]any{
			"share_token": "tok-123",
		},
	})

	assert.Equal(t, "S1", sp.ID)
	assert.Equal(t, "tok-123", sp.ShareInfo.ShareToken)
	assert.Equal(t, "tok-123", sp.ShareToken)
	assert.True(t, sp.IsShared)
}
