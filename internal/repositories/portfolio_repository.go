package repositories

import (
	"buildlink/internal/models"

	"gorm.io/gorm"
)

type PortfolioRepository interface {
	CreateBatch(entries []models.Portfolio) error
	ListByUser(userID string) ([]models.Portfolio, error)
}

type PortfolioRepositoryImpl struct {
	db *gorm.DB
}

func NewPortfolioRepository(db *gorm.DB) PortfolioRepository {
	return &PortfolioRepositoryImpl{db: db}
}

func (r *PortfolioRepositoryImpl) CreateBatch(entries []models.Portfolio) error {
	if len(entries) == 0 {
		return nil
	}
	return r.db.Create(&entries).Error
}

func (r *PortfolioRepositoryImpl) ListByUser(userID string) ([]models.Portfolio, error) {
	var entries []models.Portfolio
	err := r.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}
