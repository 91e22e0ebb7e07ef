package services

import (
	"buildlink/internal/apperrors"
	"buildlink/internal/models"
	"buildlink/internal/repositories"
	"buildlink/internal/services/dto"
)

type RatingService interface {
	RateUser(raterID string, req *dto.RateUserRequest) (*models.Rating, error)
}

type RatingServiceImpl struct {
	ratingRepo repositories.RatingRepository
	jobRepo    repositories.JobRepository
	userRepo   repositories.UserRepository
}

func NewRatingService(
	ratingRepo repositories.RatingRepository,
	jobRepo repositories.JobRepository,
	userRepo repositories.UserRepository,
) RatingService {
	return &RatingServiceImpl{
		ratingRepo: ratingRepo,
		jobRepo:    jobRepo,
		userRepo:   userRepo,
	}
}

// RateUser records a rating tied to a job and refreshes the rated user's
// average. One rating per (job, rater, rated) triple, enforced by the unique
// index.
func (s *RatingServiceImpl) RateUser(raterID string, req *dto.RateUserRequest) (*models.Rating, error) {
	if req.Rating < 1 || req.Rating > 5 {
		return nil, apperrors.ErrInvalidRating
	}

	if _, err := s.jobRepo.FindByID(req.JobID); err != nil {
		if apperrors.Is(err, repositories.ErrJobNotFound) {
			return nil, apperrors.ErrJobNotFound
		}
		return nil, apperrors.InternalError(err)
	}

	rated, err := s.userRepo.FindByID(req.RatedUserID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.InternalError(err)
	}

	rating := &models.Rating{
		JobID:       req.JobID,
		RaterID:     raterID,
		RatedUserID: req.RatedUserID,
		Rating:      req.Rating,
		Comment:     req.Comment,
	}
	if err := s.ratingRepo.Create(rating); err != nil {
		if apperrors.Is(err, repositories.ErrDuplicateKey) {
			return nil, apperrors.ErrDuplicateRating
		}
		return nil, apperrors.InternalError(err)
	}

	avg, count, err := s.ratingRepo.AverageForUser(req.RatedUserID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if count > 0 {
		rated.AvgRating = &avg
		if err := s.userRepo.Update(rated); err != nil {
			return nil, apperrors.InternalError(err)
		}
	}

	return rating, nil
}
