package main

import (
	"log"
	"os"

	"github.com/Harshal-Pande/sepakTakraw-sub000/internal/config"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Connect to database
	db, err := gorm.Open(postgres.Open(cfg.GetDSN()), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	file := "migrations/001_init.sql"
	if len(os.Args) > 1 {
		file = os.Args[1]
	}

	// Read migration file
	sqlBytes, err := os.ReadFile(file)
	if err != nil {
		log.Fatalf("Failed to read migration file: %v", err)
	}

	// Execute migration
	log.Printf("Applying migration: %s", file)
	if err := db.Exec(string(sqlBytes)).Error; err != nil {
		log.Fatalf("Failed to apply migration: %v", err)
	}

	log.Println("Migration applied successfully")
}
