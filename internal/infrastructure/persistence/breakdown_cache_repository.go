package persistence

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/reelworks/backend/internal/domain/finance"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// MonthlyBreakdownCacheModel is one cached month of the invoice-item
// breakdown for one user. Rows are derived data, replaced wholesale on every
// recomputation; the remote system remains the source of truth.
type MonthlyBreakdownCacheModel struct {
	ID           uuid.UUID       `gorm:"column:id;type:uuid;primaryKey"`
	UserID       string          `gorm:"column:user_id;size:64;not null;index"`
	Month        string          `gorm:"column:month;size:32;not null"`
	Position     int             `gorm:"column:position;not null"`
	ProjectCount int             `gorm:"column:project_count;default:0"`
	Total        decimal.Decimal `gorm:"column:total;type:decimal(20,4);default:0"`
	Paid         decimal.Decimal `gorm:"column:paid;type:decimal(20,4);default:0"`
	Pending      decimal.Decimal `gorm:"column:pending;type:decimal(20,4);default:0"`
	ComputedAt   time.Time       `gorm:"column:computed_at"`
	CreatedAt    time.Time       `gorm:"column:created_at"`
}

func (MonthlyBreakdownCacheModel) TableName() string {
	return "monthly_breakdown_cache"
}

// BreakdownCacheRepository stores computed monthly breakdowns so screens can
// render the last known figures while a fresh snapshot is being fetched.
type BreakdownCacheRepository struct {
	db *gorm.DB
}

// NewBreakdownCacheRepository creates a new repository
func NewBreakdownCacheRepository(db *gorm.DB) *BreakdownCacheRepository {
	return &BreakdownCacheRepository{db: db}
}

// Replace atomically swaps the cached breakdown for one user.
func (r *BreakdownCacheRepository) Replace(ctx context.Context, userID string, buckets []finance.MonthBucket) error {
	now := time.Now()
	models := make([]MonthlyBreakdownCacheModel, len(buckets))
	for i, b := range buckets {
		models[i] = MonthlyBreakdownCacheModel{
			ID:           uuid.New(),
			UserID:       userID,
			Month:        b.Month,
			Position:     i,
			ProjectCount: b.ProjectCount,
			Total:        b.Total,
			Paid:         b.Paid,
			Pending:      b.Pending,
			ComputedAt:   now,
		}
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).Delete(&MonthlyBreakdownCacheModel{}).Error; err != nil {
			return err
		}
		if len(models) == 0 {
			return nil
		}
		return tx.Create(&models).Error
	})
}

// Get returns the cached breakdown for one user in stored order, or an empty
// slice when nothing has been cached yet.
func (r *BreakdownCacheRepository) Get(ctx context.Context, userID string) ([]finance.MonthBucket, error) {
	var models []MonthlyBreakdownCacheModel
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("position ASC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}

	buckets := make([]finance.MonthBucket, len(models))
	for i, m := range models {
		buckets[i] = finance.MonthBucket{
			Month:        m.Month,
			ProjectCount: m.ProjectCount,
			Total:        m.Total,
			Paid:         m.Paid,
			Pending:      m.Pending,
		}
	}
	return buckets, nil
}
