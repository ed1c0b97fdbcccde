package notification

import (
	"blood-portal/domain"
	"blood-portal/entities"
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type (
	NotificationService interface {
		Append(ctx context.Context, notification *entities.Notification) error
		Publish(ctx context.Context, notification *entities.Notification)
		MarkRead(ctx context.Context, caller domain.Caller, id string, read bool) (*domain.Notification, error)
		MarkAllRead(ctx context.Context, caller domain.Caller) (int64, error)
		GetNotifications(ctx context.Context, caller domain.Caller, unreadOnly bool, page, limit int) ([]*domain.Notification, int64, error)
		UnreadCount(ctx context.Context, caller domain.Caller) (int64, error)
	}

	notificationService struct {
		notificationRepository NotificationRepository
		publisher              Publisher
		logger                 *zap.Logger
		now                    func() time.Time
	}
)

func NewNotificationService(notificationRepository NotificationRepository, publisher Publisher, logger *zap.Logger) NotificationService {
	if publisher == nil {
		publisher = NewNopPublisher()
	}
	return &notificationService{
		notificationRepository: notificationRepository,
		publisher:              publisher,
		logger:                 logger,
		now:                    time.Now,
	}
}

func (s *notificationService) Append(ctx context.Context, notification *entities.Notification) error {
	checked, err := New(
		notification.RecipientEmail,
		domain.NotificationType(notification.Type),
		notification.Title,
		notification.Message,
		notification.ActionURL,
	)
	if err != nil {
		return err
	}
	if notification.ID != uuid.Nil {
		checked.ID = notification.ID
	}
	if err := s.notificationRepository.CreateNotification(ctx, checked); err != nil {
		return err
	}
	*notification = *checked

	s.Publish(ctx, notification)
	return nil
}

// Publish fans a committed notification out to live consumers. Failures are
// logged and never reach the caller.
func (s *notificationService) Publish(ctx context.Context, notification *entities.Notification) {
	if err := s.publisher.Publish(ctx, notification); err != nil {
		s.logger.Warn("failed to publish notification",
			zap.String("notification_id", notification.ID.String()),
			zap.String("recipient", notification.RecipientEmail),
			zap.Error(err),
		)
	}
}

func (s *notificationService) MarkRead(ctx context.Context, caller domain.Caller, id string, read bool) (*domain.Notification, error) {
	if !caller.Authenticated() {
		return nil, domain.ErrUnauthorized
	}
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.ErrNotificationNotFound
	}

	notification, err := s.notificationRepository.GetNotificationByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotificationNotFound
		}
		return nil, err
	}

	if notification.RecipientEmail != caller.Email && !caller.IsAdmin {
		return nil, domain.ErrUnauthorizedNotification
	}

	var readAt *time.Time
	if read {
		now := s.now()
		readAt = &now
	}

	if err := s.notificationRepository.UpdateReadState(ctx, id, read, readAt); err != nil {
		return nil, err
	}

	notification.Read = read
	notification.ReadAt = readAt
	return ToDomain(notification), nil
}

func (s *notificationService) MarkAllRead(ctx context.Context, caller domain.Caller) (int64, error) {
	if !caller.Authenticated() {
		return 0, domain.ErrUnauthorized
	}
	return s.notificationRepository.MarkAllRead(ctx, caller.Email, s.now())
}

func (s *notificationService) GetNotifications(ctx context.Context, caller domain.Caller, unreadOnly bool, page, limit int) ([]*domain.Notification, int64, error) {
	if !caller.Authenticated() {
		return nil, 0, domain.ErrUnauthorized
	}

	notifications, count, err := s.notificationRepository.GetNotifications(ctx, caller.Email, unreadOnly, page, limit)
	if err != nil {
		return nil, 0, err
	}

	result := make([]*domain.Notification, 0, len(notifications))
	for _, n := range notifications {
		result = append(result, ToDomain(n))
	}
	return result, count, nil
}

func (s *notificationService) UnreadCount(ctx context.Context, caller domain.Caller) (int64, error) {
	if !caller.Authenticated() {
		return 0, domain.ErrUnauthorized
	}
	return s.notificationRepository.CountUnread(ctx, caller.Email)
}
