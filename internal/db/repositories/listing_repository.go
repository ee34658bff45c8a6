package repositories

import (
	"context"
	"fmt"
	"strings"
	"time"

	"flightdesk/airline/internal/constants"
	"flightdesk/airline/internal/metrics"
	gormModels "flightdesk/airline/internal/models/gorm"

	"github.com/jmoiron/sqlx"
)

// FlightFilter holds the optional exact-match filters for flight listings.
type FlightFilter struct {
	Departure     *string
	Destination   *string
	DepartureTime *time.Time
	ArrivalTime   *time.Time
}

// ListingRepository serves the read side with plain SQL through sqlx
type ListingRepository struct {
	db      *sqlx.DB
	metrics *metrics.MetricsRegistry
}

func NewListingRepository(db *sqlx.DB, metricsReg *metrics.MetricsRegistry) *ListingRepository {
	return &ListingRepository{db: db, metrics: metricsReg}
}

func (r *ListingRepository) observe(queryType string, start time.Time) {
	r.metrics.ObserveQuery(queryType, time.Since(start).Seconds())
}

// Ping checks the read pool
func (r *ListingRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

func (r *ListingRepository) exists(ctx context.Context, query string, id uint) (bool, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, r.db.Rebind(query), id); err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *ListingRepository) AircraftExists(ctx context.Context, id uint) (bool, error) {
	defer r.observe("aircraft_exists", time.Now())
	ok, err := r.exists(ctx, constants.AircraftExists, id)
	if err != nil {
		return false, fmt.Errorf("failed to check aircraft: %w", err)
	}
	return ok, nil
}

func (r *ListingRepository) FlightExists(ctx context.Context, id uint) (bool, error) {
	defer r.observe("flight_exists", time.Now())
	ok, err := r.exists(ctx, constants.FlightExists, id)
	if err != nil {
		return false, fmt.Errorf("failed to check flight: %w", err)
	}
	return ok, nil
}

// Flights lists flights matching every non-nil filter field
func (r *ListingRepository) Flights(ctx context.Context, filter FlightFilter) ([]gormModels.Flight, error) {
	defer r.observe("list_flights", time.Now())

	var (
		where []string
		args  []any
	)
	if filter.Departure != nil {
		where = append(where, "departure = ?")
		args = append(args, *filter.Departure)
	}
	if filter.Destination != nil {
		where = append(where, "destination = ?")
		args = append(args, *filter.Destination)
	}
	if filter.DepartureTime != nil {
		where = append(where, "departure_time = ?")
		args = append(args, filter.DepartureTime.UTC())
	}
	if filter.ArrivalTime != nil {
		where = append(where, "arrival_time = ?")
		args = append(args, filter.ArrivalTime.UTC())
	}

	query := constants.SelectFlightColumns
	if len(where) > 0 {
		query += "WHERE " + strings.Join(where, " AND ") + " "
	}
	query += "ORDER BY departure_time, id"

	flights := []gormModels.Flight{}
	if err := r.db.SelectContext(ctx, &flights, r.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("failed to list flights: %w", err)
	}
	return flights, nil
}

// FlightsByAircraft lists the flights operated by aircraftID
func (r *ListingRepository) FlightsByAircraft(ctx context.Context, aircraftID uint) ([]gormModels.Flight, error) {
	defer r.observe("flights_by_aircraft", time.Now())

	flights := []gormModels.Flight{}
	if err := r.db.SelectContext(ctx, &flights, r.db.Rebind(constants.FlightsByAircraftID), aircraftID); err != nil {
		return nil, fmt.Errorf("failed to list flights of aircraft: %w", err)
	}
	return flights, nil
}

// Reservations lists all reservations, or those of flightID when given
func (r *ListingRepository) Reservations(ctx context.Context, flightID *uint) ([]gormModels.Reservation, error) {
	defer r.observe("list_reservations", time.Now())

	query := constants.AllReservations
	var args []any
	if flightID != nil {
		query = constants.ReservationsByFlightID
		args = append(args, *flightID)
	}

	reservations := []gormModels.Reservation{}
	if err := r.db.SelectContext(ctx, &reservations, r.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("failed to list reservations: %w", err)
	}
	return reservations, nil
}
