package repositories

import (
	"context"
	"fmt"

	gormModels "flightdesk/airline/internal/models/gorm"

	"gorm.io/gorm"
)

type AircraftRepository struct {
	db *gorm.DB
}

// NewAircraftRepository creates a new GORM-based aircraft repository
func NewAircraftRepository(db *gorm.DB) *AircraftRepository {
	return &AircraftRepository{db: db}
}

// List returns every aircraft ordered by id
func (r *AircraftRepository) List(ctx context.Context) ([]gormModels.Aircraft, error) {
	aircraft := []gormModels.Aircraft{}
	if err := r.db.WithContext(ctx).Order("id").Find(&aircraft).Error; err != nil {
		return nil, fmt.Errorf("failed to list aircraft: %w", err)
	}
	return aircraft, nil
}

// GetByID fetches a single aircraft
func (r *AircraftRepository) GetByID(ctx context.Context, id uint) (*gormModels.Aircraft, error) {
	var aircraft gormModels.Aircraft
	if err := r.db.WithContext(ctx).First(&aircraft, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &aircraft, nil
}

// GetForUpdate fetches an aircraft and, on Postgres, locks its row until the
// surrounding transaction ends.
func (r *AircraftRepository) GetForUpdate(ctx context.Context, id uint) (*gormModels.Aircraft, error) {
	var aircraft gormModels.Aircraft
	if err := forUpdate(r.db.WithContext(ctx)).First(&aircraft, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &aircraft, nil
}

// TailNumberTaken reports whether another aircraft (not excludeID) uses tail.
func (r *AircraftRepository) TailNumberTaken(ctx context.Context, tail string, excludeID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&gormModels.Aircraft{}).
		Where("tail_number = ? AND id <> ?", tail, excludeID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check tail number: %w", err)
	}
	return count > 0, nil
}

func (r *AircraftRepository) Create(ctx context.Context, aircraft *gormModels.Aircraft) error {
	return r.db.WithContext(ctx).Create(aircraft).Error
}

func (r *AircraftRepository) Save(ctx context.Context, aircraft *gormModels.Aircraft) error {
	return r.db.WithContext(ctx).Save(aircraft).Error
}

// Delete removes one aircraft row. Dependents must already be gone.
func (r *AircraftRepository) Delete(ctx context.Context, id uint) (int64, error) {
	res := r.db.WithContext(ctx).Delete(&gormModels.Aircraft{}, id)
	if res.Error != nil {
		return 0, fmt.Errorf("failed to delete aircraft: %w", res.Error)
	}
	return res.RowsAffected, nil
}
