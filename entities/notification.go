package entities

import (
	"time"

	"github.com/google/uuid"
)

type Notification struct {
	ID             uuid.UUID  `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	RecipientEmail string     `gorm:"index;not null" json:"recipient_email"`
	Type           string     `gorm:"not null" json:"type"` // info, success, error
	Title          string     `gorm:"not null" json:"title"`
	Message        string     `gorm:"not null" json:"message"`
	Read           bool       `gorm:"not null;default:false" json:"read"`
	ReadAt         *time.Time `json:"read_at,omitempty"`
	ActionURL      string     `json:"action_url,omitempty"`
	CreatedAt      time.Time  `gorm:"index;autoCreateTime" json:"created_at"`
}
