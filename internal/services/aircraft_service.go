package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"flightdesk/airline/internal/common"
	"flightdesk/airline/internal/constants"
	"flightdesk/airline/internal/db/repositories"
	"flightdesk/airline/internal/logging"
	"flightdesk/airline/internal/metrics"
	"flightdesk/airline/internal/models/dtos/requests"
	gormModels "flightdesk/airline/internal/models/gorm"
	"flightdesk/airline/internal/validation"

	"gorm.io/gorm"
)

type AircraftService struct {
	store   *repositories.Store
	cache   *common.CacheLoader
	metrics *metrics.MetricsRegistry
	now     func() time.Time
}

func NewAircraftService(store *repositories.Store, cache *common.CacheLoader, metricsReg *metrics.MetricsRegistry) *AircraftService {
	return &AircraftService{
		store:   store,
		cache:   cache,
		metrics: metricsReg,
		now:     time.Now,
	}
}

func (s *AircraftService) List(ctx context.Context) ([]gormModels.Aircraft, error) {
	return s.store.Aircraft.List(ctx)
}

func (s *AircraftService) Get(ctx context.Context, id uint) (*gormModels.Aircraft, error) {
	a, err := s.store.Aircraft.GetByID(ctx, id)
	if err != nil {
		return nil, mapNotFound(err, constants.ResourceAircraft, id)
	}
	return a, nil
}

// Create validates every field, reports all failures at once and inserts
// the aircraft. Status defaults to active.
func (s *AircraftService) Create(ctx context.Context, req requests.AircraftRequest) (*gormModels.Aircraft, error) {
	var errs validation.Errors
	aircraft := gormModels.Aircraft{Status: true}

	if tail, ok := requiredString(&errs, validation.FieldTailNumber, req.TailNumber, validation.TailNumber); ok {
		taken, err := s.store.Aircraft.TailNumberTaken(ctx, tail, 0)
		if err != nil {
			return nil, err
		}
		errs.Add(validation.TailNumberUnique(taken))
		aircraft.TailNumber = tail
	}
	if model, ok := requiredString(&errs, validation.FieldModel, req.Model, validation.Model); ok {
		aircraft.Model = model
	}
	if req.Capacity == nil {
		errs.Add(validation.Required(validation.FieldCapacity, false))
	} else if ferr := validation.Capacity(*req.Capacity); ferr != nil {
		errs.Add(ferr)
	} else {
		aircraft.Capacity = *req.Capacity
	}
	if req.ProductionYear == nil {
		errs.Add(validation.Required(validation.FieldProductionYear, false))
	} else if ferr := validation.ProductionYear(*req.ProductionYear, s.now()); ferr != nil {
		errs.Add(ferr)
	} else {
		aircraft.ProductionYear = *req.ProductionYear
	}
	if req.Status != nil {
		aircraft.Status = *req.Status
	}

	if len(errs) > 0 {
		return nil, reject(s.metrics, constants.ResourceAircraft, errs)
	}

	if err := s.store.Aircraft.Create(ctx, &aircraft); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, reject(s.metrics, constants.ResourceAircraft,
				validation.Errors{*validation.TailNumberUnique(true)})
		}
		return nil, fmt.Errorf("failed to create aircraft: %w", err)
	}

	logging.Info("Aircraft created", "id", aircraft.ID, "tail_number", aircraft.TailNumber)
	return &aircraft, nil
}

// Update applies the fields present in req. Nothing is written unless every
// present field is valid.
func (s *AircraftService) Update(ctx context.Context, id uint, req requests.AircraftRequest) (*gormModels.Aircraft, error) {
	aircraft, err := s.store.Aircraft.GetByID(ctx, id)
	if err != nil {
		return nil, mapNotFound(err, constants.ResourceAircraft, id)
	}

	var errs validation.Errors
	if tail, present := trimmed(req.TailNumber); present {
		if ferr := validation.TailNumber(tail); ferr != nil {
			errs.Add(ferr)
		} else if tail != aircraft.TailNumber {
			taken, err := s.store.Aircraft.TailNumberTaken(ctx, tail, aircraft.ID)
			if err != nil {
				return nil, err
			}
			errs.Add(validation.TailNumberUnique(taken))
			aircraft.TailNumber = tail
		}
	}
	if model, present := trimmed(req.Model); present {
		if ferr := validation.Model(model); ferr != nil {
			errs.Add(ferr)
		} else {
			aircraft.Model = model
		}
	}
	if req.Capacity != nil {
		if ferr := validation.Capacity(*req.Capacity); ferr != nil {
			errs.Add(ferr)
		} else {
			aircraft.Capacity = *req.Capacity
		}
	}
	if req.ProductionYear != nil {
		if ferr := validation.ProductionYear(*req.ProductionYear, s.now()); ferr != nil {
			errs.Add(ferr)
		} else {
			aircraft.ProductionYear = *req.ProductionYear
		}
	}
	if req.Status != nil {
		aircraft.Status = *req.Status
	}

	if len(errs) > 0 {
		return nil, reject(s.metrics, constants.ResourceAircraft, errs)
	}

	if err := s.store.Aircraft.Save(ctx, aircraft); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, reject(s.metrics, constants.ResourceAircraft,
				validation.Errors{*validation.TailNumberUnique(true)})
		}
		return nil, fmt.Errorf("failed to update aircraft: %w", err)
	}

	s.cache.Invalidate(ctx, flightsOfAircraftKey(aircraft.ID))
	logging.Info("Aircraft updated", "id", aircraft.ID)
	return aircraft, nil
}

// Delete removes the aircraft with its flights and their reservations in one
// transaction.
func (s *AircraftService) Delete(ctx context.Context, id uint) error {
	var (
		flightIDs    []uint
		flights      int64
		reservations int64
	)

	err := s.store.Transaction(ctx, func(tx *repositories.Store) error {
		if _, err := tx.Aircraft.GetForUpdate(ctx, id); err != nil {
			return err
		}
		ids, err := tx.Flights.IDsByAircraft(ctx, id)
		if err != nil {
			return err
		}
		if reservations, err = tx.Reservations.DeleteByFlights(ctx, ids); err != nil {
			return err
		}
		if flights, err = tx.Flights.DeleteByAircraft(ctx, id); err != nil {
			return err
		}
		if _, err = tx.Aircraft.Delete(ctx, id); err != nil {
			return err
		}
		flightIDs = ids
		return nil
	})
	if err != nil {
		return mapNotFound(err, constants.ResourceAircraft, id)
	}

	keys := []string{flightsOfAircraftKey(id)}
	for _, fid := range flightIDs {
		keys = append(keys, reservationsOfFlightKey(fid))
	}
	s.cache.Invalidate(ctx, keys...)

	s.metrics.CascadeDeleted(string(constants.ResourceFlight), flights)
	s.metrics.CascadeDeleted(string(constants.ResourceReservation), reservations)
	logging.Info("Aircraft deleted",
		"id", id,
		"flights_deleted", flights,
		"reservations_deleted", reservations,
	)
	return nil
}
