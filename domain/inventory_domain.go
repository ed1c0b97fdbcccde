package domain

import (
	"time"
)

var (
	MessageSuccessGetInventory    = "inventory retrieved successfully"
	MessageSuccessAdjustInventory = "inventory adjusted successfully"
	MessageSuccessGetInventoryLog = "inventory history retrieved successfully"
	MessageSuccessArchiveReport   = "inventory report archived successfully"

	MessageFailedGetInventory    = "failed to retrieve inventory"
	MessageFailedAdjustInventory = "failed to adjust inventory"
	MessageFailedGetInventoryLog = "failed to retrieve inventory history"
	MessageFailedExportReport    = "failed to export inventory report"
	MessageFailedArchiveReport   = "failed to archive inventory report"

	ErrInsufficientInventory      = NewError(KindInsufficientInventory, "insufficient units in inventory")
	ErrInvalidAdjustmentType      = NewError(KindValidation, "adjustment type must be add, remove or adjust")
	ErrInvalidAdjustmentUnits     = NewError(KindValidation, "adjustment units must be greater than zero")
	ErrReportStorageNotConfigured = NewError(KindInternal, "report storage is not configured")
)

const (
	InventorySeedReason          = "seeded from donation ledger"
	InventoryHistoryDefaultLimit = 50
	InventoryHistoryMaxLimit     = 500
)

type AdjustmentType string

const (
	AdjustAdd    AdjustmentType = "add"
	AdjustRemove AdjustmentType = "remove"
	AdjustSet    AdjustmentType = "adjust"
)

func (t AdjustmentType) Valid() bool {
	return t == AdjustAdd || t == AdjustRemove || t == AdjustSet
}

// Apply returns the stock level after applying the operation to current.
func (t AdjustmentType) Apply(current, units int) (int, error) {
	switch t {
	case AdjustAdd:
		return current + units, nil
	case AdjustRemove:
		if current < units {
			return current, ErrInsufficientInventory
		}
		return current - units, nil
	case AdjustSet:
		return units, nil
	}
	return current, ErrInvalidAdjustmentType
}

type (
	AdjustInventoryRequest struct {
		BloodGroup string `json:"blood_group" validate:"required,blood_group"`
		Units      int    `json:"units" validate:"required,min=1"`
		Type       string `json:"type" validate:"required,oneof=add remove adjust"`
		Reason     string `json:"reason" validate:"omitempty,max=255"`
	}

	AdjustInventoryResponse struct {
		BloodGroup    string `json:"blood_group"`
		PreviousUnits int    `json:"previous_units"`
		NewUnits      int    `json:"new_units"`
	}

	InventoryHistoryFilter struct {
		BloodGroup string
		Limit      int
	}

	InventoryHistoryEntry struct {
		ID            string    `json:"id"`
		BloodGroup    string    `json:"blood_group"`
		Units         int       `json:"units"`
		Type          string    `json:"type"`
		Reason        string    `json:"reason,omitempty"`
		PreviousUnits int       `json:"previous_units"`
		NewUnits      int       `json:"new_units"`
		PerformedBy   string    `json:"performed_by"`
		CreatedAt     time.Time `json:"created_at"`
	}

	InventoryGroupSummary struct {
		BloodGroup    string `json:"blood_group"`
		Units         int    `json:"units"`
		PendingDemand int    `json:"pending_demand"`
		Shortfall     int    `json:"shortfall"`
	}

	InventorySummary struct {
		Groups      []InventoryGroupSummary `json:"groups"`
		TotalUnits  int                     `json:"total_units"`
		TotalDemand int                     `json:"total_demand"`
		GeneratedAt time.Time               `json:"generated_at"`
	}
)
