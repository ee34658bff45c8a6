package repositories

import (
	"context"
	"fmt"

	gormModels "flightdesk/airline/internal/models/gorm"

	"gorm.io/gorm"
)

type FlightRepository struct {
	db *gorm.DB
}

// NewFlightRepository creates a new GORM-based flight repository
func NewFlightRepository(db *gorm.DB) *FlightRepository {
	return &FlightRepository{db: db}
}

func (r *FlightRepository) GetByID(ctx context.Context, id uint) (*gormModels.Flight, error) {
	var flight gormModels.Flight
	if err := r.db.WithContext(ctx).First(&flight, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &flight, nil
}

// GetForUpdate fetches a flight and locks its row on Postgres
func (r *FlightRepository) GetForUpdate(ctx context.Context, id uint) (*gormModels.Flight, error) {
	var flight gormModels.Flight
	if err := forUpdate(r.db.WithContext(ctx)).First(&flight, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &flight, nil
}

// FlightNumberTaken reports whether another flight (not excludeID) uses number.
func (r *FlightRepository) FlightNumberTaken(ctx context.Context, number string, excludeID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&gormModels.Flight{}).
		Where("flight_number = ? AND id <> ?", number, excludeID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check flight number: %w", err)
	}
	return count > 0, nil
}

// CountByAircraft returns how many flights reference aircraftID
func (r *FlightRepository) CountByAircraft(ctx context.Context, aircraftID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&gormModels.Flight{}).
		Where("aircraft_id = ?", aircraftID).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count flights: %w", err)
	}
	return count, nil
}

// IDsByAircraft lists the ids of every flight operated by aircraftID
func (r *FlightRepository) IDsByAircraft(ctx context.Context, aircraftID uint) ([]uint, error) {
	var ids []uint
	err := r.db.WithContext(ctx).
		Model(&gormModels.Flight{}).
		Where("aircraft_id = ?", aircraftID).
		Order("id").
		Pluck("id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list flight ids: %w", err)
	}
	return ids, nil
}

func (r *FlightRepository) Create(ctx context.Context, flight *gormModels.Flight) error {
	return r.db.WithContext(ctx).Create(flight).Error
}

func (r *FlightRepository) Save(ctx context.Context, flight *gormModels.Flight) error {
	return r.db.WithContext(ctx).Save(flight).Error
}

func (r *FlightRepository) Delete(ctx context.Context, id uint) (int64, error) {
	res := r.db.WithContext(ctx).Delete(&gormModels.Flight{}, id)
	if res.Error != nil {
		return 0, fmt.Errorf("failed to delete flight: %w", res.Error)
	}
	return res.RowsAffected, nil
}

// DeleteByAircraft removes every flight of aircraftID
func (r *FlightRepository) DeleteByAircraft(ctx context.Context, aircraftID uint) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("aircraft_id = ?", aircraftID).
		Delete(&gormModels.Flight{})
	if res.Error != nil {
		return 0, fmt.Errorf("failed to delete flights of aircraft: %w", res.Error)
	}
	return res.RowsAffected, nil
}
