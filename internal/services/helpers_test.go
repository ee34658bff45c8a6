package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"flightdesk/airline/internal/common"
	"flightdesk/airline/internal/db/dbtest"
	"flightdesk/airline/internal/db/repositories"
	"flightdesk/airline/internal/metrics"
	"flightdesk/airline/internal/models/dtos/requests"
	gormModels "flightdesk/airline/internal/models/gorm"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
)

type sentConfirmation struct {
	To   string
	Name string
	Code string
}

// fakeNotifier records confirmations and fails when err is set
type fakeNotifier struct {
	mu   sync.Mutex
	sent []sentConfirmation
	err  error
}

func (f *fakeNotifier) SendConfirmation(_ context.Context, toEmail, passengerName, code string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, sentConfirmation{To: toEmail, Name: passengerName, Code: code})
	return f.err
}

func (f *fakeNotifier) calls() []sentConfirmation {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]sentConfirmation(nil), f.sent...)
}

type testEnv struct {
	store        *repositories.Store
	cache        *common.CacheService
	metrics      *metrics.MetricsRegistry
	notifier     *fakeNotifier
	query        *QueryService
	aircraft     *AircraftService
	flights      *FlightService
	reservations *ReservationService
}

var fixedNow = time.Date(2024, time.June, 1, 12, 0, 0, 0, time.UTC)

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	gdb, reader := dbtest.Open(t)
	store := repositories.NewStore(gdb)
	m := metrics.NewMetricsRegistry(prometheus.NewRegistry())
	cache := common.NewCacheService(time.Minute, time.Minute)
	loader := common.NewCacheLoader(cache, time.Minute)
	notifier := &fakeNotifier{}

	query := NewQueryService(repositories.NewListingRepository(reader, m), loader, m)
	aircraft := NewAircraftService(store, loader, m)
	aircraft.now = func() time.Time { return fixedNow }

	return &testEnv{
		store:        store,
		cache:        cache,
		metrics:      m,
		notifier:     notifier,
		query:        query,
		aircraft:     aircraft,
		flights:      NewFlightService(store, query, loader, m),
		reservations: NewReservationService(store, query, loader, notifier, m),
	}
}

func ptr[T any](v T) *T {
	return &v
}

func (e *testEnv) mustAircraft(t *testing.T, tail string, capacity int) *gormModels.Aircraft {
	t.Helper()
	a, err := e.aircraft.Create(context.Background(), requests.AircraftRequest{
		TailNumber:     ptr(tail),
		Model:          ptr("A320"),
		Capacity:       ptr(capacity),
		ProductionYear: ptr(2015),
	})
	require.NoError(t, err)
	return a
}

func (e *testEnv) mustFlight(t *testing.T, number string, aircraftID uint) *gormModels.Flight {
	t.Helper()
	f, err := e.flights.Create(context.Background(), flightRequest(number, aircraftID))
	require.NoError(t, err)
	return f
}

func (e *testEnv) mustReservation(t *testing.T, email string, flightID uint) *gormModels.Reservation {
	t.Helper()
	r, err := e.reservations.Create(context.Background(), requests.ReservationRequest{
		PassengerName:  ptr("Jane Doe"),
		PassengerEmail: ptr(email),
		FlightID:       ptr(flightID),
	})
	require.NoError(t, err)
	return r
}

func flightRequest(number string, aircraftID uint) requests.FlightRequest {
	return requests.FlightRequest{
		FlightNumber:  ptr(number),
		Departure:     ptr("Lisbon"),
		Destination:   ptr("Porto"),
		DepartureTime: ptr("2024-07-01T08:00:00Z"),
		ArrivalTime:   ptr("2024-07-01T09:00:00Z"),
		AircraftID:    ptr(aircraftID),
	}
}

// requireFieldError asserts err is a *ValidationError naming field.
func requireFieldError(t *testing.T, err error, field string) *ValidationError {
	t.Helper()
	var verr *ValidationError
	require.True(t, errors.As(err, &verr), "expected validation error, got %v", err)
	require.True(t, verr.Fields.Has(field), "expected error on %s, got %v", field, verr.Fields)
	return verr
}
