package db

import (
	"fmt"
	"log/slog"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"laundry-report-backend/config"
	"laundry-report-backend/internal/model"
)

// Init initializes the database connection, configures the pool and runs
// migrations. TranslateError is required so that constraint violations
// surface as gorm.ErrDuplicatedKey / gorm.ErrForeignKeyViolated, which the
// store layer folds into its own error taxonomy.
func Init(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DSN), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Warn),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(time.Duration(cfg.ConnMaxLifetimeMinutes) * time.Minute)

	slog.Info("running database migrations")
	if err := db.AutoMigrate(
		&model.Room{},
		&model.Machine{},
		&model.User{},
		&model.Report{},
		&model.PushSubscription{},
	); err != nil {
		return nil, fmt.Errorf("automigrate failed: %w", err)
	}

	slog.Info("database initialization complete")
	return db, nil
}
