package inventory

import (
	"blood-portal/domain"
	"blood-portal/entities"
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type (
	InventoryRepository interface {
		// Transaction runs fn against a repository bound to one database transaction.
		Transaction(ctx context.Context, fn func(repo InventoryRepository) error) error

		CountInventory(ctx context.Context) (int64, error)
		GetInventory(ctx context.Context) ([]*entities.Inventory, error)
		GetInventoryForUpdate(ctx context.Context, bloodGroup string) (*entities.Inventory, error)
		// CreateInventoryIfMissing reports whether the row was inserted.
		CreateInventoryIfMissing(ctx context.Context, inventory *entities.Inventory) (bool, error)
		UpdateInventory(ctx context.Context, inventory *entities.Inventory) error

		CreateHistory(ctx context.Context, history *entities.InventoryHistory) error
		GetHistory(ctx context.Context, filter domain.InventoryHistoryFilter) ([]*entities.InventoryHistory, error)

		CompletedDonationUnits(ctx context.Context) (map[string]int, error)
		FulfilledRequestUnits(ctx context.Context) (map[string]int, error)
		PendingRequestUnits(ctx context.Context) (map[string]int, error)
	}

	inventoryRepository struct {
		db *gorm.DB
	}
)

func NewInventoryRepository(db *gorm.DB) InventoryRepository {
	return &inventoryRepository{db: db}
}

func (r *inventoryRepository) Transaction(ctx context.Context, fn func(repo InventoryRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&inventoryRepository{db: tx})
	})
}

func (r *inventoryRepository) CountInventory(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&entities.Inventory{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *inventoryRepository) GetInventory(ctx context.Context) ([]*entities.Inventory, error) {
	var inventories []*entities.Inventory
	if err := r.db.WithContext(ctx).Order("blood_group ASC").Find(&inventories).Error; err != nil {
		return nil, err
	}
	return inventories, nil
}

func (r *inventoryRepository) GetInventoryForUpdate(ctx context.Context, bloodGroup string) (*entities.Inventory, error) {
	var inventory entities.Inventory
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("blood_group = ?", bloodGroup).
		First(&inventory).Error; err != nil {
		return nil, err
	}
	return &inventory, nil
}

func (r *inventoryRepository) CreateInventoryIfMissing(ctx context.Context, inventory *entities.Inventory) (bool, error) {
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "blood_group"}}, DoNothing: true}).
		Create(inventory)
	return result.RowsAffected > 0, result.Error
}

func (r *inventoryRepository) UpdateInventory(ctx context.Context, inventory *entities.Inventory) error {
	return r.db.WithContext(ctx).
		Model(&entities.Inventory{}).
		Where("blood_group = ?", inventory.BloodGroup).
		Updates(map[string]interface{}{
			"units":      inventory.Units,
			"updated_by": inventory.UpdatedBy,
			"updated_at": inventory.UpdatedAt,
		}).Error
}

func (r *inventoryRepository) CreateHistory(ctx context.Context, history *entities.InventoryHistory) error {
	return r.db.WithContext(ctx).Create(history).Error
}

func (r *inventoryRepository) GetHistory(ctx context.Context, filter domain.InventoryHistoryFilter) ([]*entities.InventoryHistory, error) {
	var histories []*entities.InventoryHistory

	query := r.db.WithContext(ctx).Model(&entities.InventoryHistory{})
	if filter.BloodGroup != "" {
		query = query.Where("blood_group = ?", filter.BloodGroup)
	}

	if err := query.
		Order("created_at DESC").
		Limit(filter.Limit).
		Find(&histories).Error; err != nil {
		return nil, err
	}
	return histories, nil
}

type groupUnits struct {
	BloodGroup string
	Units      int
}

func (r *inventoryRepository) sumUnits(ctx context.Context, table, where string, args ...interface{}) (map[string]int, error) {
	var rows []groupUnits
	if err := r.db.WithContext(ctx).
		Table(table).
		Select("blood_group, COALESCE(SUM(units), 0) AS units").
		Where(where, args...).
		Group("blood_group").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	result := make(map[string]int, len(rows))
	for _, row := range rows {
		result[row.BloodGroup] = row.Units
	}
	return result, nil
}

func (r *inventoryRepository) CompletedDonationUnits(ctx context.Context) (map[string]int, error) {
	return r.sumUnits(ctx, "donations", "status = ?", domain.DonationCompleted)
}

func (r *inventoryRepository) FulfilledRequestUnits(ctx context.Context) (map[string]int, error) {
	return r.sumUnits(ctx, "blood_requests", "status = ?", string(domain.RequestFulfilled))
}

func (r *inventoryRepository) PendingRequestUnits(ctx context.Context) (map[string]int, error) {
	open := make([]string, 0, len(domain.OpenStatuses))
	for _, s := range domain.OpenStatuses {
		open = append(open, string(s))
	}
	return r.sumUnits(ctx, "blood_requests", "status IN ?", open)
}
