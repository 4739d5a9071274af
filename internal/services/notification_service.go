package services

import (
	"context"
	"strings"
	"time"

	"github.com/you/classhub/domain"
)

// NotificationServiceImpl implements domain.NotificationService. Sent
// notifications are pushed to the recipient's private room.
type NotificationServiceImpl struct {
	repo domain.NotificationRepository
	hub  domain.Broadcaster
}

// NewNotificationService creates a new notification service
func NewNotificationService(repo domain.NotificationRepository, hub domain.Broadcaster) domain.NotificationService {
	return &NotificationServiceImpl{repo: repo, hub: hub}
}

// Send implements domain.NotificationService
func (s *NotificationServiceImpl) Send(ctx context.Context, toUserID uint, message string) (*domain.Notification, error) {
	message = strings.TrimSpace(message)
	if toUserID == 0 || message == "" {
		return nil, domain.ErrInvalidRequest
	}

	n := &domain.Notification{
		ToUserID:  toUserID,
		Message:   message,
		CreatedAt: time.Now(),
	}
	if err := s.repo.Create(ctx, n); err != nil {
		return nil, err
	}

	s.hub.Broadcast(domain.UserRoom(toUserID), domain.EventNotification, n)
	return n, nil
}

// ListForUser implements domain.NotificationService, newest first
func (s *NotificationServiceImpl) ListForUser(ctx context.Context, userID uint) ([]*domain.Notification, error) {
	if userID == 0 {
		return nil, domain.ErrInvalidRequest
	}
	return s.repo.ListByUser(ctx, userID)
}

// MarkSeen implements domain.NotificationService
func (s *NotificationServiceImpl) MarkSeen(ctx context.Context, id uint) (*domain.Notification, error) {
	if id == 0 {
		return nil, domain.ErrInvalidRequest
	}
	return s.repo.MarkSeen(ctx, id)
}
