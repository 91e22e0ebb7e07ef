package repositories

import (
	"buildlink/internal/models"

	"gorm.io/gorm"
)

type RatingRepository interface {
	Create(rating *models.Rating) error
	// AverageForUser returns the mean rating received by the user and the
	// number of ratings it is based on.
	AverageForUser(userID string) (float64, int64, error)
}

type RatingRepositoryImpl struct {
	db *gorm.DB
}

func NewRatingRepository(db *gorm.DB) RatingRepository {
	return &RatingRepositoryImpl{db: db}
}

func (r *RatingRepositoryImpl) Create(rating *models.Rating) error {
	if err := r.db.Create(rating).Error; err != nil {
		return translateDuplicate(err)
	}
	return nil
}

func (r *RatingRepositoryImpl) AverageForUser(userID string) (float64, int64, error) {
	var result struct {
		Avg   float64
		Count int64
	}
	err := r.db.Model(&models.Rating{}).
		Select("COALESCE(AVG(rating), 0) AS avg, COUNT(*) AS count").
		Where("rated_user_id = ?", userID).
		Scan(&result).Error
	if err != nil {
		return 0, 0, err
	}
	return result.Avg, result.Count, nil
}
