package database

import (
	"landmarket_backend/internal/logger"
	"landmarket_backend/internal/models"

	"gorm.io/gorm"
)

// AutoMigrate выполняет миграцию всех моделей
func AutoMigrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.Account{},
		&models.Session{},
		&models.Profile{},
		&models.SocialLink{},
		&models.Rating{},
	)
	if err != nil {
		return err
	}

	logger.Info("AutoMigrate completed")
	return nil
}
