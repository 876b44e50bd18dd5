package database

import (
	"errors"

	"jobtracker-backend/pkg/config"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// NewPostgresConnection opens the row store. Callers tolerate a nil *gorm.DB:
// the repositories switch to their in-memory fallback when the store is
// unreachable, so a failed connection degrades the service instead of
// preventing startup.
func NewPostgresConnection(cfg *config.Config) (*gorm.DB, error) {
	if cfg.DatabaseURL == "" {
		return nil, errors.New("DATABASE_URL not configured")
	}

	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	return db, nil
}
