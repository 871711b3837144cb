package persistence

import (
	"fmt"

	applogger "github.com/reelworks/backend/internal/infrastructure/logger"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Open opens the local sqlite database used for cached derived summaries and
// runs migrations. The remote workflow system owns all source-of-truth
// entities; this database only ever stores recomputable derived rows.
func Open(path string, zapLogger *zap.Logger, logLevel string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: applogger.NewGormLogger(zapLogger, applogger.MapGormLogLevel(logLevel)),
	})
	if err != nil {
		return nil, fmt.Errorf("open sqlite database %q: %w", path, err)
	}

	if err := db.AutoMigrate(&MonthlyBreakdownCacheModel{}); err != nil {
		return nil, fmt.Errorf("migrate summary cache: %w", err)
	}

	return db, nil
}
