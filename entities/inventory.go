package entities

import (
	"time"

	"github.com/google/uuid"
)

// Inventory holds the current stock for one blood group.
type Inventory struct {
	BloodGroup string    `gorm:"primaryKey" json:"blood_group"`
	Units      int       `gorm:"not null;default:0;check:units >= 0" json:"units"`
	UpdatedBy  string    `json:"updated_by"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

type InventoryHistory struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	BloodGroup    string    `gorm:"index;not null" json:"blood_group"`
	Units         int       `gorm:"not null" json:"units"`
	Type          string    `gorm:"not null" json:"type"` // add, remove, adjust
	Reason        string    `json:"reason,omitempty"`
	PreviousUnits int       `gorm:"not null" json:"previous_units"`
	NewUnits      int       `gorm:"not null" json:"new_units"`
	PerformedBy   string    `gorm:"not null" json:"performed_by"`
	CreatedAt     time.Time `gorm:"index;autoCreateTime" json:"created_at"`
}
