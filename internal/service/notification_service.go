package service

import (
	"context"

	"warehouse/internal/model"
	"warehouse/internal/repository"
	"warehouse/pkg/apperror"
)

const notificationListLimit = 50

type NotificationService interface {
	ListForUser(ctx context.Context, userID uint) ([]model.Notification, error)
}

type notificationService struct {
	repo repository.NotificationRepository
}

func NewNotificationService(repo repository.NotificationRepository) NotificationService {
	return &notificationService{repo: repo}
}

func (s *notificationService) ListForUser(ctx context.Context, userID uint) ([]model.Notification, error) {
	notifications, err := s.repo.ListByUser(ctx, userID, notificationListLimit)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return notifications, nil
}
