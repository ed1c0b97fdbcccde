package domain

import (
	"time"
)

var (
	MessageSuccessGetNotifications = "notifications retrieved successfully"
	MessageSuccessMarkNotification = "notification updated successfully"
	MessageFailedGetNotifications  = "failed to retrieve notifications"
	MessageFailedMarkNotification  = "failed to update notification"

	ErrNotificationNotFound     = NewError(KindNotFound, "notification not found")
	ErrNotificationRecipient    = NewError(KindValidation, "notification recipient is required")
	ErrNotificationContent      = NewError(KindValidation, "notification title and message are required")
	ErrInvalidNotificationType  = NewError(KindValidation, "notification type must be info, success or error")
	ErrUnauthorizedNotification = NewError(KindForbidden, "notification belongs to another user")
)

type NotificationType string

const (
	NotificationInfo    NotificationType = "info"
	NotificationSuccess NotificationType = "success"
	NotificationError   NotificationType = "error"
)

func (t NotificationType) Valid() bool {
	return t == NotificationInfo || t == NotificationSuccess || t == NotificationError
}

type (
	MarkNotificationRequest struct {
		Read *bool `json:"read"`
	}

	Notification struct {
		ID             string     `json:"id"`
		RecipientEmail string     `json:"recipient_email"`
		Type           string     `json:"type"`
		Title          string     `json:"title"`
		Message        string     `json:"message"`
		Read           bool       `json:"read"`
		ReadAt         *time.Time `json:"read_at,omitempty"`
		ActionURL      string     `json:"action_url,omitempty"`
		CreatedAt      time.Time  `json:"created_at"`
	}
)
