package migration

import (
	"blood-portal/entities"
	"fmt"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`).Error; err != nil {
		return fmt.Errorf("error creating uuid-ossp extension: %w", err)
	}

	models := []struct {
		name  string
		model interface{}
	}{
		{"user", &entities.User{}},
		{"blood request", &entities.BloodRequest{}},
		{"donation", &entities.Donation{}},
		{"inventory", &entities.Inventory{}},
		{"inventory history", &entities.InventoryHistory{}},
		{"notification", &entities.Notification{}},
	}
	for _, m := range models {
		if err := db.AutoMigrate(m.model); err != nil {
			return fmt.Errorf("error migrating %s database: %w", m.name, err)
		}
	}

	fmt.Println("Database migration complete")
	return nil
}
