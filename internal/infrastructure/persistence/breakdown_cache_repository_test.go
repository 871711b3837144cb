package persistence

import (
	"context"
	"testing"

	"github.com/reelworks/backend/internal/domain/finance"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestRepository(t *testing.T) *BreakdownCacheRepository {
	t.Helper()
	db, err := Open(":memory:", zap.NewNop(), "error")
	require.NoError(t, err)
	return NewBreakdownCacheRepository(db)
}

func sampleBuckets() []finance.MonthBucket {
	return []finance.MonthBucket{
		{
			Month:        "January 2025",
			ProjectCount: 3,
			Total:        decimal.NewFromInt(300),
			Paid:         decimal.NewFromInt(150),
			Pending:      decimal.NewFromInt(150),
		},
		{
			Month:        "February 2025",
			ProjectCount: 1,
			Total:        decimal.NewFromInt(50),
			Paid:         decimal.Zero,
			Pending:      decimal.NewFromInt(50),
		},
	}
}

func TestReplaceAndGetRoundTrip(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	require.NoError(t, repo.Replace(ctx, "u-1", sampleBuckets()))

	got, err := repo.Get(ctx, "u-1")
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, "January 2025", got[0].Month)
	assert.Equal(t, 3, got[0].ProjectCount)
	assert.True(t, got[0].Total.Equal(decimal.NewFromInt(300)))
	assert.True(t, got[0].Paid.Equal(decimal.NewFromInt(150)))
	assert.Equal(t, "February 2025", got[1].Month, "stored order is preserved")
}

func TestReplaceSwapsWholesale(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	require.NoError(t, repo.Replace(ctx, "u-1", sampleBuckets()))

	replacement := []finance.MonthBucket{
		{Month: "March 2025", ProjectCount: 1, Total: decimal.NewFromInt(10)},
	}
	require.NoError(t, repo.Replace(ctx, "u-1", replacement))

	got, err := repo.Get(ctx, "u-1")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "March 2025", got[0].Month)
}

func TestReplaceIsScopedToUser(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	require.NoError(t, repo.Replace(ctx, "u-1", sampleBuckets()))
	require.NoError(t, repo.Replace(ctx, "u-2", nil))

	got, err := repo.Get(ctx, "u-1")
	require.NoError(t, err)
	assert.Len(t, got, 2, "clearing one user's cache must not touch another's")

	empty, err := repo.Get(ctx, "u-2")
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestGetUnknownUserReturnsEmpty(t *testing.T) {
	repo := newTestRepository(t)

	got, err := repo.Get(context.Background(), "u-missing")
	require.NoError(t, err)
	assert.Empty(t, got)
}
