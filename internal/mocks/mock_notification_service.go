package mocks

import (
	"context"
	"time"

	"github.com/you/classhub/domain"
)

// MockNotificationService implements domain.NotificationService interface for testing
type MockNotificationService struct {
	SendFunc        func(ctx context.Context, toUserID uint, message string) (*domain.Notification, error)
	ListForUserFunc func(ctx context.Context, userID uint) ([]*domain.Notification, error)
	MarkSeenFunc    func(ctx context.Context, id uint) (*domain.Notification, error)
}

// NewMockNotificationService creates a new MockNotificationService with default behaviors
func NewMockNotificationService() *MockNotificationService {
	return &MockNotificationService{}
}

// Send returns the stored notification
func (m *MockNotificationService) Send(ctx context.Context, toUserID uint, message string) (*domain.Notification, error) {
	if m.SendFunc != nil {
		return m.SendFunc(ctx, toUserID, message)
	}
	return &domain.Notification{ID: 1, ToUserID: toUserID, Message: message, CreatedAt: time.Now()}, nil
}

// ListForUser returns no notifications
func (m *MockNotificationService) ListForUser(ctx context.Context, userID uint) ([]*domain.Notification, error) {
	if m.ListForUserFunc != nil {
		return m.ListForUserFunc(ctx, userID)
	}
	return []*domain.Notification{}, nil
}

// MarkSeen reports not found
func (m *MockNotificationService) MarkSeen(ctx context.Context, id uint) (*domain.Notification, error) {
	if m.MarkSeenFunc != nil {
		return m.MarkSeenFunc(ctx, id)
	}
	return nil, domain.ErrNotificationNotFound
}

// Compile-time interface compliance verification
var _ domain.NotificationService = (*MockNotificationService)(nil)
