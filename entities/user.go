package entities

import (
	"time"

	"github.com/google/uuid"
)

// User is the account record. Only donor accounts take part in assignments.
type User struct {
	ID             uuid.UUID  `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	Name           string     `json:"name"`
	Email          string     `gorm:"uniqueIndex;not null" json:"email"`
	Phone          string     `json:"phone"`
	Role           string     `gorm:"index;default:user" json:"role"` // user, donor, admin
	BloodGroup     string     `gorm:"index" json:"blood_group"`
	Division       string     `json:"division"`
	District       string     `json:"district"`
	Upazila        string     `json:"upazila"`
	TotalDonations int        `gorm:"not null;default:0;check:total_donations >= 0" json:"total_donations"`
	LastDonation   *time.Time `json:"last_donation,omitempty"`

	Timestamp
}
