package database

import (
	"fmt"

	gormadapter "github.com/casbin/gorm-adapter/v3"
	"github.com/you/classhub/internal/infrastructure/repositories"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Open creates a new database connection
func Open(dsn string) (*gorm.DB, error) {
	config := &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Warn),
		TranslateError: true,
	}

	return gorm.Open(postgres.Open(dsn), config)
}

// AutoMigrate creates the application tables and the casbin_rule table used
// by the RBAC adapter.
func AutoMigrate(db *gorm.DB) error {
	if err := repositories.Migrate(db); err != nil {
		return fmt.Errorf("failed to migrate application tables: %w", err)
	}

	// NewAdapterByDB creates casbin_rule when it is missing
	if _, err := gormadapter.NewAdapterByDB(db); err != nil {
		return fmt.Errorf("failed to initialize Casbin GORM adapter: %w", err)
	}

	return nil
}
