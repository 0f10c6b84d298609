package service

import (
	"context"

	"rentaldesk-backend/internal/domain"
	"rentaldesk-backend/internal/repository"
)

type notificationService struct {
	store repository.Store
}

func NewNotificationService(store repository.Store) NotificationService {
	return &notificationService{store: store}
}

func (s *notificationService) GetNotifications(ctx context.Context, userID int32, page, pageSize int32) ([]domain.Notification, int32, error) {
	return s.store.Notifications().List(ctx, userID, page, pageSize)
}

func (s *notificationService) MarkAsRead(ctx context.Context, userID, notificationID int32) error {
	return s.store.Notifications().MarkAsRead(ctx, notificationID, userID)
}
