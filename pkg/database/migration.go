package database

import (
	"fmt"

	"github.com/edustack/academy-api/internal/model"
	"gorm.io/gorm"
)

// AutoMigrate runs schema migrations for all persisted models
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&model.User{}); err != nil {
		return fmt.Errorf("failed to migrate users: %w", err)
	}
	return nil
}
