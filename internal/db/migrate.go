package db

import (
	"fmt"

	gormModels "flightdesk/airline/internal/models/gorm"

	"gorm.io/gorm"
)

// Migrate creates or updates the aircraft, flights and reservations tables.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&gormModels.Aircraft{},
		&gormModels.Flight{},
		&gormModels.Reservation{},
	); err != nil {
		return fmt.Errorf("failed to migrate: %w", err)
	}
	return nil
}
