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

type FlightService struct {
	store   *repositories.Store
	query   *QueryService
	cache   *common.CacheLoader
	metrics *metrics.MetricsRegistry
}

func NewFlightService(store *repositories.Store, query *QueryService, cache *common.CacheLoader, metricsReg *metrics.MetricsRegistry) *FlightService {
	return &FlightService{
		store:   store,
		query:   query,
		cache:   cache,
		metrics: metricsReg,
	}
}

func (s *FlightService) List(ctx context.Context, filter repositories.FlightFilter) ([]gormModels.Flight, error) {
	return s.query.ListFlights(ctx, filter)
}

func (s *FlightService) Get(ctx context.Context, id uint) (*gormModels.Flight, error) {
	f, err := s.store.Flights.GetByID(ctx, id)
	if err != nil {
		return nil, mapNotFound(err, constants.ResourceFlight, id)
	}
	return f, nil
}

// Create validates the request and inserts the flight while holding a lock
// on the aircraft, so the flight count it checks cannot change underneath it.
func (s *FlightService) Create(ctx context.Context, req requests.FlightRequest) (*gormModels.Flight, error) {
	var errs validation.Errors
	flight := gormModels.Flight{}

	number, numberOK := requiredString(&errs, validation.FieldFlightNumber, req.FlightNumber, validation.FlightNumber)
	flight.FlightNumber = number
	if v, ok := requiredString(&errs, validation.FieldDeparture, req.Departure, locationRule(validation.FieldDeparture)); ok {
		flight.Departure = v
	}
	if v, ok := requiredString(&errs, validation.FieldDestination, req.Destination, locationRule(validation.FieldDestination)); ok {
		flight.Destination = v
	}

	dep, depOK := requiredTimestamp(&errs, validation.FieldDepartureTime, req.DepartureTime)
	arr, arrOK := requiredTimestamp(&errs, validation.FieldArrivalTime, req.ArrivalTime)
	if depOK && arrOK {
		errs.Add(validation.ArrivalAfterDeparture(dep, arr))
	}
	flight.DepartureTime, flight.ArrivalTime = dep, arr

	if req.AircraftID == nil {
		errs.Add(validation.Required(validation.FieldAircraft, false))
	}

	err := s.store.Transaction(ctx, func(tx *repositories.Store) error {
		if req.AircraftID != nil {
			ferr, err := s.checkAircraftRoom(ctx, tx, *req.AircraftID)
			if err != nil {
				return err
			}
			errs.Add(ferr)
			flight.AircraftID = *req.AircraftID
		}
		if numberOK {
			taken, err := tx.Flights.FlightNumberTaken(ctx, number, 0)
			if err != nil {
				return err
			}
			errs.Add(validation.FlightNumberUnique(taken))
		}
		if len(errs) > 0 {
			return reject(s.metrics, constants.ResourceFlight, errs)
		}
		return tx.Flights.Create(ctx, &flight)
	})
	if err != nil {
		return nil, s.writeError(err, "create")
	}

	s.cache.Invalidate(ctx, flightsOfAircraftKey(flight.AircraftID))
	logging.Info("Flight created", "id", flight.ID, "flight_number", flight.FlightNumber, "aircraft_id", flight.AircraftID)
	return &flight, nil
}

// Update applies the fields present in req. Time ordering is re-checked on
// the merged timestamps whenever either one is sent, and the aircraft
// capacity rule runs only when the flight moves to another aircraft.
func (s *FlightService) Update(ctx context.Context, id uint, req requests.FlightRequest) (*gormModels.Flight, error) {
	var (
		flight         *gormModels.Flight
		prevAircraftID uint
	)

	err := s.store.Transaction(ctx, func(tx *repositories.Store) error {
		var err error
		if flight, err = tx.Flights.GetForUpdate(ctx, id); err != nil {
			return err
		}
		prevAircraftID = flight.AircraftID

		var errs validation.Errors
		if number, present := trimmed(req.FlightNumber); present {
			if ferr := validation.FlightNumber(number); ferr != nil {
				errs.Add(ferr)
			} else if number != flight.FlightNumber {
				taken, err := tx.Flights.FlightNumberTaken(ctx, number, flight.ID)
				if err != nil {
					return err
				}
				errs.Add(validation.FlightNumberUnique(taken))
				flight.FlightNumber = number
			}
		}
		if v, present := trimmed(req.Departure); present {
			if ferr := validation.Location(validation.FieldDeparture, v); ferr != nil {
				errs.Add(ferr)
			} else {
				flight.Departure = v
			}
		}
		if v, present := trimmed(req.Destination); present {
			if ferr := validation.Location(validation.FieldDestination, v); ferr != nil {
				errs.Add(ferr)
			} else {
				flight.Destination = v
			}
		}

		timesOK := true
		if req.DepartureTime != nil {
			t, ferr := validation.ParseTimestamp(validation.FieldDepartureTime, *req.DepartureTime)
			if ferr != nil {
				errs.Add(ferr)
				timesOK = false
			} else {
				flight.DepartureTime = t
			}
		}
		if req.ArrivalTime != nil {
			t, ferr := validation.ParseTimestamp(validation.FieldArrivalTime, *req.ArrivalTime)
			if ferr != nil {
				errs.Add(ferr)
				timesOK = false
			} else {
				flight.ArrivalTime = t
			}
		}
		if timesOK && (req.DepartureTime != nil || req.ArrivalTime != nil) {
			errs.Add(validation.ArrivalAfterDeparture(flight.DepartureTime, flight.ArrivalTime))
		}

		if req.AircraftID != nil && *req.AircraftID != flight.AircraftID {
			ferr, err := s.checkAircraftRoom(ctx, tx, *req.AircraftID)
			if err != nil {
				return err
			}
			errs.Add(ferr)
			flight.AircraftID = *req.AircraftID
		}

		if len(errs) > 0 {
			return reject(s.metrics, constants.ResourceFlight, errs)
		}
		return tx.Flights.Save(ctx, flight)
	})
	if err != nil {
		return nil, mapNotFound(s.writeError(err, "update"), constants.ResourceFlight, id)
	}

	s.cache.Invalidate(ctx, flightsOfAircraftKey(prevAircraftID), flightsOfAircraftKey(flight.AircraftID))
	logging.Info("Flight updated", "id", flight.ID)
	return flight, nil
}

// Delete removes the flight and its reservations in one transaction.
func (s *FlightService) Delete(ctx context.Context, id uint) error {
	var (
		aircraftID   uint
		reservations int64
	)

	err := s.store.Transaction(ctx, func(tx *repositories.Store) error {
		flight, err := tx.Flights.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		aircraftID = flight.AircraftID
		if reservations, err = tx.Reservations.DeleteByFlights(ctx, []uint{id}); err != nil {
			return err
		}
		_, err = tx.Flights.Delete(ctx, id)
		return err
	})
	if err != nil {
		return mapNotFound(err, constants.ResourceFlight, id)
	}

	s.cache.Invalidate(ctx, flightsOfAircraftKey(aircraftID), reservationsOfFlightKey(id))
	s.metrics.CascadeDeleted(string(constants.ResourceReservation), reservations)
	logging.Info("Flight deleted", "id", id, "reservations_deleted", reservations)
	return nil
}

// checkAircraftRoom locks the aircraft and applies the capacity rule. A
// missing aircraft is reported as a field error.
func (s *FlightService) checkAircraftRoom(ctx context.Context, tx *repositories.Store, aircraftID uint) (*validation.FieldError, error) {
	aircraft, err := tx.Aircraft.GetForUpdate(ctx, aircraftID)
	if errors.Is(err, repositories.ErrNotFound) {
		return missingReference(validation.FieldAircraft, aircraftID), nil
	}
	if err != nil {
		return nil, err
	}
	count, err := tx.Flights.CountByAircraft(ctx, aircraftID)
	if err != nil {
		return nil, err
	}
	return validation.AircraftHasRoom(count, aircraft.Capacity), nil
}

// writeError passes domain errors through and maps a unique-index violation
// to the flight number rule.
func (s *FlightService) writeError(err error, op string) error {
	var verr *ValidationError
	switch {
	case errors.As(err, &verr), errors.Is(err, repositories.ErrNotFound):
		return err
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return reject(s.metrics, constants.ResourceFlight,
			validation.Errors{*validation.FlightNumberUnique(true)})
	default:
		return fmt.Errorf("failed to %s flight: %w", op, err)
	}
}

func locationRule(field string) func(string) *validation.FieldError {
	return func(v string) *validation.FieldError {
		return validation.Location(field, v)
	}
}

func requiredTimestamp(errs *validation.Errors, field string, raw *string) (time.Time, bool) {
	if raw == nil {
		errs.Add(validation.Required(field, false))
		return time.Time{}, false
	}
	t, ferr := validation.ParseTimestamp(field, *raw)
	if ferr != nil {
		errs.Add(ferr)
		return time.Time{}, false
	}
	return t, true
}
