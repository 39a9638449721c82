package database

import (
	"fmt"
	"log"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/nutrilens/backend/config"
	"github.com/nutrilens/backend/internal/models"
)

// New opens the SQLite analysis archive and runs migrations.
func New(cfg *config.Config) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(cfg.ArchivePath), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("error opening archive database: %w", err)
	}

	if err := db.AutoMigrate(&models.AnalysisRecord{}); err != nil {
		return nil, fmt.Errorf("error migrating archive database: %w", err)
	}

	log.Printf("Analysis archive ready at %s", cfg.ArchivePath)
	return db, nil
}
