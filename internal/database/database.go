package database

import (
	"fmt"
	"log"

	"github.com/Harshal-Pande/sepakTakraw-sub000/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// Connect establishes a connection to the PostgreSQL database
func Connect(dsn string) error {
	var err error

	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Error),
		TranslateError: true,
	})

	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	log.Println("Database connection established successfully")
	return nil
}

// GetDB returns the shared database handle
func GetDB() *gorm.DB {
	return DB
}

// AutoMigrate runs automatic migrations for all models
func AutoMigrate() error {
	// Migrate registration models first
	registrationModels := []interface{}{
		&models.ReferenceNumber{},
		&models.Registration{},
	}

	for _, model := range registrationModels {
		if err := DB.AutoMigrate(model); err != nil {
			return fmt.Errorf("migration failed for %T: %w", model, err)
		}
	}

	// Migrate content models
	contentModels := []interface{}{
		&models.News{},
		&models.Event{},
		&models.Result{},
		&models.Member{},
		&models.Document{},
		&models.SiteSetting{},
	}

	for _, model := range contentModels {
		if err := DB.AutoMigrate(model); err != nil {
			log.Printf("Warning: migration issue for %T: %v", model, err)
		}
	}

	// Migrate admin models
	adminModels := []interface{}{
		&models.AdminUser{},
		&models.AdminLog{},
	}

	for _, model := range adminModels {
		if err := DB.AutoMigrate(model); err != nil {
			log.Printf("Warning: migration issue for %T: %v", model, err)
		}
	}

	log.Println("Database migrations completed")
	return nil
}
