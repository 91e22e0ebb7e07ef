package services

import (
	"buildlink/internal/apperrors"
	"buildlink/internal/models"
	"buildlink/internal/repositories"
)

type NotificationService interface {
	ListForUser(userID string) ([]models.Notification, error)
}

type NotificationServiceImpl struct {
	notificationRepo repositories.NotificationRepository
}

func NewNotificationService(notificationRepo repositories.NotificationRepository) NotificationService {
	return &NotificationServiceImpl{notificationRepo: notificationRepo}
}

func (s *NotificationServiceImpl) ListForUser(userID string) ([]models.Notification, error) {
	list, err := s.notificationRepo.ListByUser(userID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return list, nil
}
