package services

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"flightdesk/airline/internal/models/dtos/requests"
	"flightdesk/airline/internal/validation"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var generatedCode = regexp.MustCompile(`^[A-Z0-9]{6}$`)

func TestReservationService_FullFlight(t *testing.T) {
	env := newTestEnv(t)
	a := env.mustAircraft(t, "CS-RA1", 2)
	f := env.mustFlight(t, "TP400", a.ID)

	env.mustReservation(t, "a@example.com", f.ID)
	env.mustReservation(t, "b@example.com", f.ID)

	_, err := env.reservations.Create(context.Background(), requests.ReservationRequest{
		PassengerName:  ptr("Third"),
		PassengerEmail: ptr("c@example.com"),
		FlightID:       ptr(f.ID),
	})
	requireFieldError(t, err, validation.FieldFlight)

	assert.Len(t, env.notifier.calls(), 2)
	assert.Equal(t, float64(2), testutil.ToFloat64(env.metrics.ReservationsCreatedTotal))
}

func TestReservationService_CancelledReservationsStillCount(t *testing.T) {
	env := newTestEnv(t)
	a := env.mustAircraft(t, "CS-RA2", 1)
	f := env.mustFlight(t, "TP401", a.ID)
	r := env.mustReservation(t, "a@example.com", f.ID)

	_, err := env.reservations.Update(context.Background(), r.ID, requests.ReservationRequest{Status: ptr(false)})
	require.NoError(t, err)

	_, err = env.reservations.Create(context.Background(), requests.ReservationRequest{
		PassengerName:  ptr("Second"),
		PassengerEmail: ptr("b@example.com"),
		FlightID:       ptr(f.ID),
	})
	requireFieldError(t, err, validation.FieldFlight)
}

func TestReservationService_MalformedEmailSendsNothing(t *testing.T) {
	env := newTestEnv(t)
	a := env.mustAircraft(t, "CS-RA3", 5)
	f := env.mustFlight(t, "TP402", a.ID)

	_, err := env.reservations.Create(context.Background(), requests.ReservationRequest{
		PassengerName:  ptr("Jane"),
		PassengerEmail: ptr("not-an-email"),
		FlightID:       ptr(f.ID),
	})
	requireFieldError(t, err, validation.FieldPassengerEmail)
	assert.Empty(t, env.notifier.calls())
}

func TestReservationService_ValidEmailSendsOneConfirmation(t *testing.T) {
	env := newTestEnv(t)
	a := env.mustAircraft(t, "CS-RA4", 5)
	f := env.mustFlight(t, "TP403", a.ID)

	r := env.mustReservation(t, "jane@example.com", f.ID)

	calls := env.notifier.calls()
	require.Len(t, calls, 1)
	assert.Equal(t, sentConfirmation{To: "jane@example.com", Name: "Jane Doe", Code: r.ReservationCode}, calls[0])
	assert.True(t, r.Status)
}

func TestReservationService_GeneratedAndPreservedCodes(t *testing.T) {
	env := newTestEnv(t)
	a := env.mustAircraft(t, "CS-RA5", 5)
	f := env.mustFlight(t, "TP404", a.ID)

	generated := env.mustReservation(t, "a@example.com", f.ID)
	assert.Regexp(t, generatedCode, generated.ReservationCode)

	explicit, err := env.reservations.Create(context.Background(), requests.ReservationRequest{
		PassengerName:   ptr("Jane"),
		PassengerEmail:  ptr("b@example.com"),
		ReservationCode: ptr("my-code"),
		FlightID:        ptr(f.ID),
	})
	require.NoError(t, err)
	assert.Equal(t, "my-code", explicit.ReservationCode)

	_, err = env.reservations.Create(context.Background(), requests.ReservationRequest{
		PassengerName:   ptr("Jane"),
		PassengerEmail:  ptr("c@example.com"),
		ReservationCode: ptr("my-code"),
		FlightID:        ptr(f.ID),
	})
	requireFieldError(t, err, validation.FieldReservationCode)

	_, err = env.reservations.Create(context.Background(), requests.ReservationRequest{
		PassengerName:   ptr("Jane"),
		PassengerEmail:  ptr("d@example.com"),
		ReservationCode: ptr("ELEVENCHARS"),
		FlightID:        ptr(f.ID),
	})
	requireFieldError(t, err, validation.FieldReservationCode)
}

func TestReservationService_GeneratedCodeRetriesOnCollision(t *testing.T) {
	env := newTestEnv(t)
	a := env.mustAircraft(t, "CS-RA6", 5)
	f := env.mustFlight(t, "TP405", a.ID)
	taken := env.mustReservation(t, "a@example.com", f.ID)

	codes := []string{taken.ReservationCode, taken.ReservationCode, "FRESH1"}
	env.reservations.newCode = func() string {
		c := codes[0]
		codes = codes[1:]
		return c
	}

	r := env.mustReservation(t, "b@example.com", f.ID)
	assert.Equal(t, "FRESH1", r.ReservationCode)
}

func TestReservationService_GeneratedCodeGivesUp(t *testing.T) {
	env := newTestEnv(t)
	a := env.mustAircraft(t, "CS-RA7", 5)
	f := env.mustFlight(t, "TP406", a.ID)
	taken := env.mustReservation(t, "a@example.com", f.ID)

	env.reservations.newCode = func() string { return taken.ReservationCode }

	_, err := env.reservations.Create(context.Background(), requests.ReservationRequest{
		PassengerName:  ptr("Jane"),
		PassengerEmail: ptr("b@example.com"),
		FlightID:       ptr(f.ID),
	})
	requireFieldError(t, err, validation.FieldReservationCode)
}

func TestReservationService_DeliveryFailureKeepsReservation(t *testing.T) {
	env := newTestEnv(t)
	a := env.mustAircraft(t, "CS-RA8", 5)
	f := env.mustFlight(t, "TP407", a.ID)
	env.notifier.err = errors.New("smtp down")

	r, err := env.reservations.Create(context.Background(), requests.ReservationRequest{
		PassengerName:  ptr("Jane"),
		PassengerEmail: ptr("jane@example.com"),
		FlightID:       ptr(f.ID),
	})

	var derr *DeliveryError
	require.True(t, errors.As(err, &derr))
	require.NotNil(t, r)
	assert.Equal(t, r.ID, derr.ReservationID)

	stored, err := env.reservations.Get(context.Background(), r.ID)
	require.NoError(t, err)
	assert.Equal(t, r.ReservationCode, stored.ReservationCode)
	assert.Equal(t, float64(1), testutil.ToFloat64(env.metrics.NotificationsFailedTotal))
}

func TestReservationService_UnknownFlight(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.reservations.Create(context.Background(), requests.ReservationRequest{
		PassengerName:  ptr("Jane"),
		PassengerEmail: ptr("jane@example.com"),
		FlightID:       ptr(uint(77)),
	})
	requireFieldError(t, err, validation.FieldFlight)
}

func TestReservationService_MissingFieldsAggregated(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.reservations.Create(context.Background(), requests.ReservationRequest{})
	verr := requireFieldError(t, err, validation.FieldPassengerName)
	assert.True(t, verr.Fields.Has(validation.FieldPassengerEmail))
	assert.True(t, verr.Fields.Has(validation.FieldFlight))
}

func TestReservationService_UpdateKeepsCreatedAt(t *testing.T) {
	env := newTestEnv(t)
	a := env.mustAircraft(t, "CS-RA9", 5)
	f := env.mustFlight(t, "TP408", a.ID)
	r := env.mustReservation(t, "jane@example.com", f.ID)

	before, err := env.reservations.Get(context.Background(), r.ID)
	require.NoError(t, err)

	updated, err := env.reservations.Update(context.Background(), r.ID, requests.ReservationRequest{
		PassengerEmail: ptr("new@example.com"),
		Status:         ptr(false),
	})
	require.NoError(t, err)
	assert.Equal(t, "new@example.com", updated.PassengerEmail)
	assert.False(t, updated.Status)

	after, err := env.reservations.Get(context.Background(), r.ID)
	require.NoError(t, err)
	assert.True(t, before.CreatedAt.Equal(after.CreatedAt))
	assert.False(t, after.Status)
}

func TestReservationService_UpdateRejectsBadEmail(t *testing.T) {
	env := newTestEnv(t)
	a := env.mustAircraft(t, "CS-RB1", 5)
	f := env.mustFlight(t, "TP409", a.ID)
	r := env.mustReservation(t, "jane@example.com", f.ID)

	_, err := env.reservations.Update(context.Background(), r.ID, requests.ReservationRequest{PassengerEmail: ptr("jane@")})
	requireFieldError(t, err, validation.FieldPassengerEmail)

	stored, err := env.reservations.Get(context.Background(), r.ID)
	require.NoError(t, err)
	assert.Equal(t, "jane@example.com", stored.PassengerEmail)
}

func TestReservationService_UpdateCodeUnique(t *testing.T) {
	env := newTestEnv(t)
	a := env.mustAircraft(t, "CS-RB7", 5)
	f := env.mustFlight(t, "TP420", a.ID)
	first := env.mustReservation(t, "a@example.com", f.ID)
	second := env.mustReservation(t, "b@example.com", f.ID)

	_, err := env.reservations.Update(context.Background(), second.ID, requests.ReservationRequest{
		ReservationCode: ptr(first.ReservationCode),
	})
	requireFieldError(t, err, validation.FieldReservationCode)

	stored, err := env.reservations.Get(context.Background(), second.ID)
	require.NoError(t, err)
	assert.Equal(t, second.ReservationCode, stored.ReservationCode)

	updated, err := env.reservations.Update(context.Background(), second.ID, requests.ReservationRequest{
		ReservationCode: ptr(second.ReservationCode),
		PassengerName:   ptr("Renamed"),
	})
	require.NoError(t, err)
	assert.Equal(t, second.ReservationCode, updated.ReservationCode)
	assert.Equal(t, "Renamed", updated.PassengerName)
}

func TestReservationService_MoveToFullFlight(t *testing.T) {
	env := newTestEnv(t)
	a := env.mustAircraft(t, "CS-RB2", 1)
	full := env.mustFlight(t, "TP410", a.ID)
	env.mustReservation(t, "a@example.com", full.ID)

	b := env.mustAircraft(t, "CS-RB3", 5)
	open := env.mustFlight(t, "TP411", b.ID)
	r := env.mustReservation(t, "b@example.com", open.ID)

	_, err := env.reservations.Update(context.Background(), r.ID, requests.ReservationRequest{FlightID: ptr(full.ID)})
	requireFieldError(t, err, validation.FieldFlight)
}

func TestReservationService_Delete(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	a := env.mustAircraft(t, "CS-RB4", 5)
	f := env.mustFlight(t, "TP412", a.ID)
	r := env.mustReservation(t, "a@example.com", f.ID)

	require.NoError(t, env.reservations.Delete(ctx, r.ID))
	assert.True(t, errors.Is(env.reservations.Delete(ctx, r.ID), ErrNotFound))

	_, err := env.flights.Get(ctx, f.ID)
	assert.NoError(t, err)
}
