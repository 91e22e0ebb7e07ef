package repositories

import (
	"errors"

	"buildlink/internal/models"

	"gorm.io/gorm"
)

type NationalIDRepository interface {
	FindByNumber(idNumber string) (*models.NationalID, error)
	// Create inserts a registry record. Only the seed loader calls this; the
	// public registration flow never creates identity records.
	Create(record *models.NationalID) error
}

type NationalIDRepositoryImpl struct {
	db *gorm.DB
}

func NewNationalIDRepository(db *gorm.DB) NationalIDRepository {
	return &NationalIDRepositoryImpl{db: db}
}

func (r *NationalIDRepositoryImpl) FindByNumber(idNumber string) (*models.NationalID, error) {
	var record models.NationalID
	err := r.db.First(&record, "id_number = ?", idNumber).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNationalIDNotFound
		}
		return nil, err
	}
	return &record, nil
}

func (r *NationalIDRepositoryImpl) Create(record *models.NationalID) error {
	if err := r.db.Create(record).Error; err != nil {
		return translateDuplicate(err)
	}
	return nil
}
