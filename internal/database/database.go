package database

import (
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/princeprakhar/device-catalog/internal/models"
)

// Init connects to Postgres and migrates the record table.
func Init(databaseURL string, debug bool) (*gorm.DB, error) {
	level := logger.Warn
	if debug {
		level = logger.Info
	}
	db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{
		Logger: logger.Default.LogMode(level),
	})
	if err != nil {
		return nil, err
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

// Migrate creates or updates the tables the service owns.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&models.KVRecord{})
}
