package config

import (
	"context"
	"errors"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/AtharvaKhot17/QuickHireAI/internal/models"
)

var PostgresDB *gorm.DB

// ErrNotConfigured is returned by the Init functions when the backend's
// connection variable is unset.
var ErrNotConfigured = errors.New("not configured")

func InitPostgres() error {
	uri := os.Getenv("POSTGRES_URI")
	if uri == "" {
		return ErrNotConfigured
	}
	db, err := gorm.Open(postgres.Open(uri), &gorm.Config{
		// maps unique violations to gorm.ErrDuplicatedKey
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return err
	}

	// Connection Pooling settings
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(5 * time.Minute)

	PostgresDB = db
	return nil
}

// MigratePostgres creates the pgvector extension and the dashboard tables.
func MigratePostgres(ctx context.Context) error {
	if PostgresDB == nil {
		return errors.New("PostgresDB is nil; call InitPostgres() first")
	}
	db := PostgresDB.WithContext(ctx)
	if err := db.Exec("CREATE EXTENSION IF NOT EXISTS vector").Error; err != nil {
		return err
	}
	return db.AutoMigrate(&models.Company{}, &models.Candidate{}, &models.AnswerLog{})
}

func ClosePostgres() error {
	if PostgresDB == nil {
		return nil
	}
	sqlDB, err := PostgresDB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
