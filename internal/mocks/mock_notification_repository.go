package mocks

import (
	"context"

	"github.com/you/classhub/domain"
)

// MockNotificationRepository implements domain.NotificationRepository for testing
type MockNotificationRepository struct {
	CreateFunc     func(ctx context.Context, n *domain.Notification) error
	ListByUserFunc func(ctx context.Context, userID uint) ([]*domain.Notification, error)
	MarkSeenFunc   func(ctx context.Context, id uint) (*domain.Notification, error)
}

// NewMockNotificationRepository creates a new MockNotificationRepository
func NewMockNotificationRepository() *MockNotificationRepository {
	return &MockNotificationRepository{}
}

func (m *MockNotificationRepository) Create(ctx context.Context, n *domain.Notification) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, n)
	}
	if n.ID == 0 {
		n.ID = 1
	}
	return nil
}

func (m *MockNotificationRepository) ListByUser(ctx context.Context, userID uint) ([]*domain.Notification, error) {
	if m.ListByUserFunc != nil {
		return m.ListByUserFunc(ctx, userID)
	}
	return []*domain.Notification{}, nil
}

func (m *MockNotificationRepository) MarkSeen(ctx context.Context, id uint) (*domain.Notification, error) {
	if m.MarkSeenFunc != nil {
		return m.MarkSeenFunc(ctx, id)
	}
	return nil, domain.ErrNotificationNotFound
}

// Compile-time interface compliance verification
var _ domain.NotificationRepository = (*MockNotificationRepository)(nil)
