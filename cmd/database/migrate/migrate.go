package migration

import (
	"fmt"

	"github.com/gofiber/fiber/v2/log"
	"gorm.io/gorm"

	"wastenot/entities"
)

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&entities.StoreEntry{}); err != nil {
		return fmt.Errorf("migrate store entries: %w", err)
	}

	log.Info("Database migration complete")
	return nil
}
