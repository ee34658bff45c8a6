package api

import (
	"time"

	"flightdesk/airline/internal/common"
	"flightdesk/airline/internal/db/repositories"
	"flightdesk/airline/internal/metrics"
	"flightdesk/airline/internal/providers"
	"flightdesk/airline/internal/services"

	"github.com/jmoiron/sqlx"
	"gorm.io/gorm"
)

type Repositories struct {
	Store   *repositories.Store
	Listing *repositories.ListingRepository
}

type Services struct {
	Cache        common.CacheInterface
	Notifier     providers.Notifier
	Query        *services.QueryService
	Aircraft     *services.AircraftService
	Flights      *services.FlightService
	Reservations *services.ReservationService
}

type Dependencies struct {
	Repo     *Repositories
	Services *Services
	Metrics  *metrics.MetricsRegistry
}

// InitDependencies wires repositories and services over the given handles.
func InitDependencies(
	gdb *gorm.DB,
	reader *sqlx.DB,
	cache common.CacheInterface,
	cacheTTL time.Duration,
	notifier providers.Notifier,
	metricsReg *metrics.MetricsRegistry,
) *Dependencies {
	repos := &Repositories{
		Store:   repositories.NewStore(gdb),
		Listing: repositories.NewListingRepository(reader, metricsReg),
	}

	loader := common.NewCacheLoader(cache, cacheTTL)
	query := services.NewQueryService(repos.Listing, loader, metricsReg)

	svcs := &Services{
		Cache:        cache,
		Notifier:     notifier,
		Query:        query,
		Aircraft:     services.NewAircraftService(repos.Store, loader, metricsReg),
		Flights:      services.NewFlightService(repos.Store, query, loader, metricsReg),
		Reservations: services.NewReservationService(repos.Store, query, loader, notifier, metricsReg),
	}

	return &Dependencies{
		Repo:     repos,
		Services: svcs,
		Metrics:  metricsReg,
	}
}
