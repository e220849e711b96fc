package config

import (
	"fmt"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	model "project-hub.com/project-hub/pkg/models"
)

func NewDatabaseClient(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
		// cascades are applied by the repositories inside transactions
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		return nil, fmt.Errorf("db open failed: %w", err)
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}

	return db, nil
}

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(model.All()...); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	// At most one owner per project.
	if err := db.Exec(
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_members_single_owner ON members (project_id) WHERE owner = 1",
	).Error; err != nil {
		return fmt.Errorf("owner index failed: %w", err)
	}

	return nil
}
