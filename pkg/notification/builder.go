package notification

import (
	"blood-portal/domain"
	"blood-portal/entities"
	"strings"

	"github.com/google/uuid"
)

// New validates and builds a notification row. Every writer of the
// notifications table goes through here, including writers that insert
// inside their own transaction.
func New(recipient string, typ domain.NotificationType, title, message, actionURL string) (*entities.Notification, error) {
	recipient = strings.TrimSpace(recipient)
	if recipient == "" {
		return nil, domain.ErrNotificationRecipient
	}
	if strings.TrimSpace(title) == "" || strings.TrimSpace(message) == "" {
		return nil, domain.ErrNotificationContent
	}
	if !typ.Valid() {
		return nil, domain.ErrInvalidNotificationType
	}

	return &entities.Notification{
		ID:             uuid.New(),
		RecipientEmail: recipient,
		Type:           string(typ),
		Title:          title,
		Message:        message,
		ActionURL:      actionURL,
	}, nil
}

func ToDomain(n *entities.Notification) *domain.Notification {
	return &domain.Notification{
		ID:             n.ID.String(),
		RecipientEmail: n.RecipientEmail,
		Type:           n.Type,
		Title:          n.Title,
		Message:        n.Message,
		Read:           n.Read,
		ReadAt:         n.ReadAt,
		ActionURL:      n.ActionURL,
		CreatedAt:      n.CreatedAt,
	}
}
