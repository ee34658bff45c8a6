package services

import (
	"context"

	"flightdesk/airline/internal/common"
	"flightdesk/airline/internal/constants"
	"flightdesk/airline/internal/db/repositories"
	"flightdesk/airline/internal/metrics"
	gormModels "flightdesk/airline/internal/models/gorm"
)

// QueryService answers the read-only listings. The two nested listings are
// cached; writers invalidate them by key.
type QueryService struct {
	listing *repositories.ListingRepository
	cache   *common.CacheLoader
	metrics *metrics.MetricsRegistry
}

func NewQueryService(listing *repositories.ListingRepository, cache *common.CacheLoader, metricsReg *metrics.MetricsRegistry) *QueryService {
	return &QueryService{
		listing: listing,
		cache:   cache,
		metrics: metricsReg,
	}
}

// FlightsOfAircraft lists the flights operated by one aircraft.
func (s *QueryService) FlightsOfAircraft(ctx context.Context, aircraftID uint) ([]gormModels.Flight, error) {
	exists, err := s.listing.AircraftExists(ctx, aircraftID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, &NotFoundError{Resource: constants.ResourceAircraft, ID: aircraftID}
	}

	flights, hit, err := common.Load(ctx, s.cache, flightsOfAircraftKey(aircraftID),
		func(ctx context.Context) ([]gormModels.Flight, error) {
			return s.listing.FlightsByAircraft(ctx, aircraftID)
		})
	if err != nil {
		return nil, err
	}
	s.metrics.ObserveCache(string(constants.CachePrefixFlightsOfAircraft), hit)
	return flights, nil
}

// ReservationsOfFlight lists the reservations held on one flight.
func (s *QueryService) ReservationsOfFlight(ctx context.Context, flightID uint) ([]gormModels.Reservation, error) {
	exists, err := s.listing.FlightExists(ctx, flightID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, &NotFoundError{Resource: constants.ResourceFlight, ID: flightID}
	}

	reservations, hit, err := common.Load(ctx, s.cache, reservationsOfFlightKey(flightID),
		func(ctx context.Context) ([]gormModels.Reservation, error) {
			return s.listing.Reservations(ctx, &flightID)
		})
	if err != nil {
		return nil, err
	}
	s.metrics.ObserveCache(string(constants.CachePrefixReservationsOfFlight), hit)
	return reservations, nil
}

// ListReservations returns every reservation, or those of flightID when set.
// An unknown flight yields an empty list.
func (s *QueryService) ListReservations(ctx context.Context, flightID *uint) ([]gormModels.Reservation, error) {
	return s.listing.Reservations(ctx, flightID)
}

// ListFlights returns flights matching every set field of filter.
func (s *QueryService) ListFlights(ctx context.Context, filter repositories.FlightFilter) ([]gormModels.Flight, error) {
	return s.listing.Flights(ctx, filter)
}
