package notification

import (
	"blood-portal/entities"
	"context"
	"time"

	"gorm.io/gorm"
)

type (
	NotificationRepository interface {
		CreateNotification(ctx context.Context, notification *entities.Notification) error
		GetNotificationByID(ctx context.Context, id string) (*entities.Notification, error)
		GetNotifications(ctx context.Context, recipient string, unreadOnly bool, page, limit int) ([]*entities.Notification, int64, error)
		UpdateReadState(ctx context.Context, id string, read bool, readAt *time.Time) error
		MarkAllRead(ctx context.Context, recipient string, readAt time.Time) (int64, error)
		CountUnread(ctx context.Context, recipient string) (int64, error)
	}

	notificationRepository struct {
		db *gorm.DB
	}
)

func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) CreateNotification(ctx context.Context, notification *entities.Notification) error {
	return r.db.WithContext(ctx).Create(notification).Error
}

func (r *notificationRepository) GetNotificationByID(ctx context.Context, id string) (*entities.Notification, error) {
	var notification entities.Notification
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&notification).Error; err != nil {
		return nil, err
	}
	return &notification, nil
}

func (r *notificationRepository) GetNotifications(ctx context.Context, recipient string, unreadOnly bool, page, limit int) ([]*entities.Notification, int64, error) {
	var notifications []*entities.Notification
	var count int64
	offset := (page - 1) * limit

	query := r.db.WithContext(ctx).
		Model(&entities.Notification{}).
		Where("recipient_email = ?", recipient)
	if unreadOnly {
		query = query.Where("read = ?", false)
	}
	query = query.Session(&gorm.Session{})

	if err := query.Count(&count).Error; err != nil {
		return nil, 0, err
	}

	if err := query.
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&notifications).Error; err != nil {
		return nil, 0, err
	}

	return notifications, count, nil
}

func (r *notificationRepository) UpdateReadState(ctx context.Context, id string, read bool, readAt *time.Time) error {
	return r.db.WithContext(ctx).
		Model(&entities.Notification{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"read":    read,
			"read_at": readAt,
		}).Error
}

func (r *notificationRepository) MarkAllRead(ctx context.Context, recipient string, readAt time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&entities.Notification{}).
		Where("recipient_email = ? AND read = ?", recipient, false).
		Updates(map[string]interface{}{
			"read":    true,
			"read_at": readAt,
		})
	return result.RowsAffected, result.Error
}

func (r *notificationRepository) CountUnread(ctx context.Context, recipient string) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&entities.Notification{}).
		Where("recipient_email = ? AND read = ?", recipient, false).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
