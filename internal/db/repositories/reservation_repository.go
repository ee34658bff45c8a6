package repositories

import (
	"context"
	"fmt"

	gormModels "flightdesk/airline/internal/models/gorm"

	"gorm.io/gorm"
)

type ReservationRepository struct {
	db *gorm.DB
}

// NewReservationRepository creates a new GORM-based reservation repository
func NewReservationRepository(db *gorm.DB) *ReservationRepository {
	return &ReservationRepository{db: db}
}

func (r *ReservationRepository) GetByID(ctx context.Context, id uint) (*gormModels.Reservation, error) {
	var reservation gormModels.Reservation
	if err := r.db.WithContext(ctx).First(&reservation, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &reservation, nil
}

// CodeTaken reports whether another reservation (not excludeID) holds code.
func (r *ReservationRepository) CodeTaken(ctx context.Context, code string, excludeID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&gormModels.Reservation{}).
		Where("reservation_code = ? AND id <> ?", code, excludeID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check reservation code: %w", err)
	}
	return count > 0, nil
}

// CountByFlight returns how many reservations reference flightID
func (r *ReservationRepository) CountByFlight(ctx context.Context, flightID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&gormModels.Reservation{}).
		Where("flight_id = ?", flightID).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count reservations: %w", err)
	}
	return count, nil
}

func (r *ReservationRepository) Create(ctx context.Context, reservation *gormModels.Reservation) error {
	return r.db.WithContext(ctx).Create(reservation).Error
}

func (r *ReservationRepository) Save(ctx context.Context, reservation *gormModels.Reservation) error {
	return r.db.WithContext(ctx).Save(reservation).Error
}

func (r *ReservationRepository) Delete(ctx context.Context, id uint) (int64, error) {
	res := r.db.WithContext(ctx).Delete(&gormModels.Reservation{}, id)
	if res.Error != nil {
		return 0, fmt.Errorf("failed to delete reservation: %w", res.Error)
	}
	return res.RowsAffected, nil
}

// DeleteByFlights removes every reservation on the given flights
func (r *ReservationRepository) DeleteByFlights(ctx context.Context, flightIDs []uint) (int64, error) {
	if len(flightIDs) == 0 {
		return 0, nil
	}
	res := r.db.WithContext(ctx).
		Where("flight_id IN ?", flightIDs).
		Delete(&gormModels.Reservation{})
	if res.Error != nil {
		return 0, fmt.Errorf("failed to delete reservations: %w", res.Error)
	}
	return res.RowsAffected, nil
}
