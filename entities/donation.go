package entities

import (
	"time"

	"github.com/google/uuid"
)

// Donation is the ledger entry written when a request is fulfilled. Rows are
// never updated after insert.
type Donation struct {
	ID              uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	RequestID       uuid.UUID `gorm:"type:uuid;uniqueIndex;not null" json:"request_id"`
	DonorEmail      string    `gorm:"index;not null" json:"donor_email"`
	DonorName       string    `json:"donor_name"`
	DonorPhone      string    `json:"donor_phone"`
	DonorBloodGroup string    `json:"donor_blood_group"`
	PatientName     string    `json:"patient_name"`
	BloodGroup      string    `gorm:"index;not null" json:"blood_group"`
	Units           int       `gorm:"not null" json:"units"`
	Hospital        string    `json:"hospital"`
	DonationDate    time.Time `json:"donation_date"`
	Status          string    `gorm:"index;not null;default:completed" json:"status"`
	AssignedBy      string    `json:"assigned_by"`
	CreatedAt       time.Time `gorm:"autoCreateTime" json:"created_at"`

	Request *BloodRequest `gorm:"foreignKey:RequestID"`
}
