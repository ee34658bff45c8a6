package services

import (
	"context"
	"errors"
	"fmt"

	"flightdesk/airline/internal/common"
	"flightdesk/airline/internal/constants"
	"flightdesk/airline/internal/db/repositories"
	"flightdesk/airline/internal/logging"
	"flightdesk/airline/internal/metrics"
	"flightdesk/airline/internal/models/dtos/requests"
	gormModels "flightdesk/airline/internal/models/gorm"
	"flightdesk/airline/internal/providers"
	"flightdesk/airline/internal/validation"

	"gorm.io/gorm"
)

// errCodeCollision signals that a generated code lost a race for the unique
// index; the caller retries with a fresh code.
var errCodeCollision = errors.New("reservation code collision")

const msgCodeExhausted = "Could not generate a unique reservation code. Try again."

type ReservationService struct {
	store    *repositories.Store
	query    *QueryService
	cache    *common.CacheLoader
	notifier providers.Notifier
	metrics  *metrics.MetricsRegistry
	newCode  func() string
}

func NewReservationService(
	store *repositories.Store,
	query *QueryService,
	cache *common.CacheLoader,
	notifier providers.Notifier,
	metricsReg *metrics.MetricsRegistry,
) *ReservationService {
	return &ReservationService{
		store:    store,
		query:    query,
		cache:    cache,
		notifier: notifier,
		metrics:  metricsReg,
		newCode: func() string {
			return common.GenerateReservationCode(common.DefaultReservationCodeLength)
		},
	}
}

func (s *ReservationService) List(ctx context.Context, flightID *uint) ([]gormModels.Reservation, error) {
	return s.query.ListReservations(ctx, flightID)
}

func (s *ReservationService) Get(ctx context.Context, id uint) (*gormModels.Reservation, error) {
	r, err := s.store.Reservations.GetByID(ctx, id)
	if err != nil {
		return nil, mapNotFound(err, constants.ResourceReservation, id)
	}
	return r, nil
}

// Create stores the reservation and then sends one confirmation. When the
// confirmation fails the reservation stays and is returned together with a
// *DeliveryError.
func (s *ReservationService) Create(ctx context.Context, req requests.ReservationRequest) (*gormModels.Reservation, error) {
	var errs validation.Errors
	base := gormModels.Reservation{Status: true}

	if v, ok := requiredString(&errs, validation.FieldPassengerName, req.PassengerName, validation.PassengerName); ok {
		base.PassengerName = v
	}
	if v, ok := requiredString(&errs, validation.FieldPassengerEmail, req.PassengerEmail, validation.Email); ok {
		base.PassengerEmail = v
	}

	explicitCode, generate := "", true
	if code, present := trimmed(req.ReservationCode); present && code != "" {
		generate = false
		if ferr := validation.ReservationCode(code); ferr != nil {
			errs.Add(ferr)
		} else {
			explicitCode = code
		}
	}

	if req.FlightID == nil {
		errs.Add(validation.Required(validation.FieldFlight, false))
	}
	if req.Status != nil {
		base.Status = *req.Status
	}

	var reservation gormModels.Reservation
	for attempt := 1; ; attempt++ {
		reservation = base
		reservation.ReservationCode = explicitCode
		if generate {
			reservation.ReservationCode = s.newCode()
		}

		err := s.store.Transaction(ctx, func(tx *repositories.Store) error {
			return s.insert(ctx, tx, &reservation, req.FlightID, generate, errs)
		})
		if err == nil {
			break
		}
		if errors.Is(err, errCodeCollision) {
			if attempt < constants.MaxReservationCodeAttempts {
				logging.Debug("Reservation code collision, retrying", "attempt", attempt)
				continue
			}
			return nil, reject(s.metrics, constants.ResourceReservation,
				validation.Errors{{Field: validation.FieldReservationCode, Message: msgCodeExhausted}})
		}
		var verr *ValidationError
		if errors.As(err, &verr) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to create reservation: %w", err)
	}

	s.metrics.ReservationCreated()
	s.cache.Invalidate(ctx, reservationsOfFlightKey(reservation.FlightID))
	logging.Info("Reservation created",
		"id", reservation.ID,
		"code", reservation.ReservationCode,
		"flight_id", reservation.FlightID,
	)

	if err := s.notifier.SendConfirmation(ctx, reservation.PassengerEmail, reservation.PassengerName, reservation.ReservationCode); err != nil {
		s.metrics.NotificationFailed()
		logging.Error("Reservation confirmation failed", "id", reservation.ID, "error", err.Error())
		return &reservation, &DeliveryError{ReservationID: reservation.ID, Err: err}
	}
	return &reservation, nil
}

// insert runs the checks that need the flight lock and writes the row. errs
// holds the field errors found before the transaction and is not modified.
func (s *ReservationService) insert(ctx context.Context, tx *repositories.Store, r *gormModels.Reservation, flightID *uint, generated bool, errs validation.Errors) error {
	errs = append(validation.Errors(nil), errs...)

	if flightID != nil {
		ferr, err := checkFlightRoom(ctx, tx, *flightID)
		if err != nil {
			return err
		}
		errs.Add(ferr)
		r.FlightID = *flightID
	}

	if r.ReservationCode != "" {
		taken, err := tx.Reservations.CodeTaken(ctx, r.ReservationCode, 0)
		if err != nil {
			return err
		}
		if taken && generated {
			return errCodeCollision
		}
		errs.Add(validation.ReservationCodeUnique(taken))
	}

	if len(errs) > 0 {
		return reject(s.metrics, constants.ResourceReservation, errs)
	}

	if err := tx.Reservations.Create(ctx, r); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			if generated {
				return errCodeCollision
			}
			return reject(s.metrics, constants.ResourceReservation,
				validation.Errors{*validation.ReservationCodeUnique(true)})
		}
		return err
	}
	return nil
}

// Update applies the fields present in req. Moving to another flight re-runs
// the capacity rule against that flight. created_at is never written.
func (s *ReservationService) Update(ctx context.Context, id uint, req requests.ReservationRequest) (*gormModels.Reservation, error) {
	var (
		reservation  *gormModels.Reservation
		prevFlightID uint
	)

	err := s.store.Transaction(ctx, func(tx *repositories.Store) error {
		var err error
		if reservation, err = tx.Reservations.GetByID(ctx, id); err != nil {
			return err
		}
		prevFlightID = reservation.FlightID

		var errs validation.Errors
		if v, present := trimmed(req.PassengerName); present {
			if ferr := validation.PassengerName(v); ferr != nil {
				errs.Add(ferr)
			} else {
				reservation.PassengerName = v
			}
		}
		if v, present := trimmed(req.PassengerEmail); present {
			if ferr := validation.Email(v); ferr != nil {
				errs.Add(ferr)
			} else {
				reservation.PassengerEmail = v
			}
		}
		if code, present := trimmed(req.ReservationCode); present {
			if ferr := validation.ReservationCode(code); ferr != nil {
				errs.Add(ferr)
			} else if code != reservation.ReservationCode {
				taken, err := tx.Reservations.CodeTaken(ctx, code, reservation.ID)
				if err != nil {
					return err
				}
				errs.Add(validation.ReservationCodeUnique(taken))
				reservation.ReservationCode = code
			}
		}
		if req.Status != nil {
			reservation.Status = *req.Status
		}
		if req.FlightID != nil && *req.FlightID != reservation.FlightID {
			ferr, err := checkFlightRoom(ctx, tx, *req.FlightID)
			if err != nil {
				return err
			}
			errs.Add(ferr)
			reservation.FlightID = *req.FlightID
		}

		if len(errs) > 0 {
			return reject(s.metrics, constants.ResourceReservation, errs)
		}
		if err := tx.Reservations.Save(ctx, reservation); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return reject(s.metrics, constants.ResourceReservation,
					validation.Errors{*validation.ReservationCodeUnique(true)})
			}
			return fmt.Errorf("failed to update reservation: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, mapNotFound(err, constants.ResourceReservation, id)
	}

	s.cache.Invalidate(ctx, reservationsOfFlightKey(prevFlightID), reservationsOfFlightKey(reservation.FlightID))
	logging.Info("Reservation updated", "id", reservation.ID)
	return reservation, nil
}

func (s *ReservationService) Delete(ctx context.Context, id uint) error {
	reservation, err := s.store.Reservations.GetByID(ctx, id)
	if err != nil {
		return mapNotFound(err, constants.ResourceReservation, id)
	}
	n, err := s.store.Reservations.Delete(ctx, id)
	if err != nil {
		return err
	}
	if n == 0 {
		return &NotFoundError{Resource: constants.ResourceReservation, ID: id}
	}

	s.cache.Invalidate(ctx, reservationsOfFlightKey(reservation.FlightID))
	logging.Info("Reservation deleted", "id", id, "code", reservation.ReservationCode)
	return nil
}

// checkFlightRoom locks the flight and compares its reservation count with
// the seats of its aircraft. A missing flight is reported as a field error.
func checkFlightRoom(ctx context.Context, tx *repositories.Store, flightID uint) (*validation.FieldError, error) {
	flight, err := tx.Flights.GetForUpdate(ctx, flightID)
	if errors.Is(err, repositories.ErrNotFound) {
		return missingReference(validation.FieldFlight, flightID), nil
	}
	if err != nil {
		return nil, err
	}
	aircraft, err := tx.Aircraft.GetByID(ctx, flight.AircraftID)
	if err != nil {
		return nil, err
	}
	count, err := tx.Reservations.CountByFlight(ctx, flightID)
	if err != nil {
		return nil, err
	}
	return validation.FlightHasRoom(count, aircraft.Capacity), nil
}
