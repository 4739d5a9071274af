package repositories

import (
	"context"
	"errors"

	"github.com/you/classhub/domain"
	"gorm.io/gorm"
)

// NotificationRepositoryImpl implements domain.NotificationRepository using GORM
type NotificationRepositoryImpl struct {
	db *gorm.DB
}

// NewNotificationRepository creates a new notification repository
func NewNotificationRepository(db *gorm.DB) domain.NotificationRepository {
	return &NotificationRepositoryImpl{db: db}
}

// Create implements domain.NotificationRepository
func (r *NotificationRepositoryImpl) Create(ctx context.Context, n *domain.Notification) error {
	row := &DBNotification{
		ToUserID: n.ToUserID,
		Message:  n.Message,
		Seen:     false,
	}
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		return err
	}
	*n = *notificationToDomain(row)
	return nil
}

// ListByUser implements domain.NotificationRepository, newest first
func (r *NotificationRepositoryImpl) ListByUser(ctx context.Context, userID uint) ([]*domain.Notification, error) {
	var rows []DBNotification
	err := r.db.WithContext(ctx).
		Where("to_user_id = ?", userID).
		Order("created_at DESC").
		Order("id DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make([]*domain.Notification, 0, len(rows))
	for i := range rows {
		out = append(out, notificationToDomain(&rows[i]))
	}
	return out, nil
}

// MarkSeen implements domain.NotificationRepository
func (r *NotificationRepositoryImpl) MarkSeen(ctx context.Context, id uint) (*domain.Notification, error) {
	var row DBNotification
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&row, id).Error; err != nil {
			return err
		}
		if err := tx.Model(&row).Update("seen", true).Error; err != nil {
			return err
		}
		row.Seen = true
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotificationNotFound
		}
		return nil, err
	}
	return notificationToDomain(&row), nil
}

func notificationToDomain(row *DBNotification) *domain.Notification {
	return &domain.Notification{
		ID:        row.ID,
		ToUserID:  row.ToUserID,
		Message:   row.Message,
		Seen:      row.Seen,
		CreatedAt: row.CreatedAt,
	}
}
