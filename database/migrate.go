package database

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"buildlink/internal/config"
	"buildlink/internal/logger"
	"buildlink/internal/models"
)

// Migrate creates or updates the schema for every model.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.NationalID{},
		&models.User{},
		&models.RefreshToken{},
		&models.Trade{},
		&models.WorkerTrade{},
		&models.Job{},
		&models.Application{},
		&models.Portfolio{},
		&models.Rating{},
		&models.Notification{},
	)
}

// SeedNationalIDs loads the configured identity registry records, skipping
// the ones already present. Registration can only link IDs seeded here.
func SeedNationalIDs(db *gorm.DB, seeds []config.NationalIDSeed) error {
	for _, seed := range seeds {
		var existing models.NationalID
		err := db.Where("id_number = ?", seed.IDNumber).First(&existing).Error
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("failed to check national id %s: %w", seed.IDNumber, err)
		}

		record := models.NationalID{
			IDNumber: seed.IDNumber,
			FullName: seed.FullName,
			Gender:   seed.Gender,
		}
		if seed.DateOfBirth != "" {
			dob, err := time.Parse("2006-01-02", seed.DateOfBirth)
			if err != nil {
				return fmt.Errorf("invalid date_of_birth for national id %s: %w", seed.IDNumber, err)
			}
			record.DateOfBirth = dob
		}

		if err := db.Create(&record).Error; err != nil {
			return fmt.Errorf("failed to seed national id %s: %w", seed.IDNumber, err)
		}
		logger.Info("seeded national id record", "id_number", seed.IDNumber)
	}
	return nil
}
