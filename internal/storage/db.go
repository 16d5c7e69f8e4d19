package storage

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var defaultCategories = []string{"Science", "Art", "Geography", "History", "Entertainment", "Sports"}

// Open wraps pool in a gorm handle. Closing the returned handle's sql.DB does
// not close pool.
func Open(pool *pgxpool.Pool, logLevel string) (*gorm.DB, error) {
	sqlDB := stdlib.OpenDBFromPool(pool)

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		TranslateError:         true,
		SkipDefaultTransaction: true,
		Logger:                 gormlogger.Default.LogMode(gormLogLevel(logLevel)),
	})
	if err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("open gorm: %w", err)
	}
	return db, nil
}

func gormLogLevel(level string) gormlogger.LogLevel {
	switch level {
	case "debug":
		return gormlogger.Info
	case "info", "":
		return gormlogger.Warn
	case "warn", "warning", "error":
		return gormlogger.Error
	default:
		return gormlogger.Silent
	}
}

func Migrate(ctx context.Context, db *gorm.DB) error {
	if err := db.WithContext(ctx).AutoMigrate(&categoryRow{}, &questionRow{}); err != nil {
		return fmt.Errorf("auto-migrate: %w", err)
	}
	return nil
}

// SeedCategories inserts the default categories into an empty table and
// reports how many rows it wrote.
func SeedCategories(ctx context.Context, db *gorm.DB) (int, error) {
	var count int64
	if err := db.WithContext(ctx).Model(&categoryRow{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("count categories: %w", err)
	}
	if count > 0 {
		return 0, nil
	}

	rows := make([]categoryRow, 0, len(defaultCategories))
	for _, t := range defaultCategories {
		rows = append(rows, categoryRow{Type: t})
	}
	if err := db.WithContext(ctx).Create(&rows).Error; err != nil {
		return 0, fmt.Errorf("seed categories: %w", err)
	}
	return len(rows), nil
}
