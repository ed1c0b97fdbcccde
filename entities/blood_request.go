package entities

import (
	"time"

	"github.com/google/uuid"
)

type BloodRequest struct {
	ID             uuid.UUID  `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	PatientName    string     `gorm:"not null" json:"patient_name"`
	BloodGroup     string     `gorm:"index;not null" json:"blood_group"`
	Units          int        `gorm:"not null;check:units >= 1" json:"units"`
	Hospital       string     `json:"hospital"`
	Address        string     `json:"address"`
	Division       string     `gorm:"index" json:"division"`
	District       string     `gorm:"index" json:"district"`
	Upazila        string     `json:"upazila"`
	ContactPerson  string     `json:"contact_person"`
	ContactNumber  string     `gorm:"not null" json:"contact_number"`
	Urgency        string     `gorm:"default:normal" json:"urgency"` // normal, urgent
	Description    string     `json:"description"`
	RequiredDate   *time.Time `json:"required_date,omitempty"`
	RequesterEmail string     `gorm:"index;not null" json:"requester_email"`
	Status         string     `gorm:"index;not null;default:pending" json:"status"` // pending, active, fulfilled, cancelled
	FulfilledBy    *string    `json:"fulfilled_by,omitempty"`
	FulfilledAt    *time.Time `json:"fulfilled_at,omitempty"`

	Timestamp
}
