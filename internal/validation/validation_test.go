package validation

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)

func TestAircraftRules(t *testing.T) {
	tests := []struct {
		name  string
		err   *FieldError
		field string
	}{
		{"blank tail", TailNumber("  "), FieldTailNumber},
		{"long tail", TailNumber(strings.Repeat("N", 21)), FieldTailNumber},
		{"taken tail", TailNumberUnique(true), FieldTailNumber},
		{"blank model", Model(""), FieldModel},
		{"long model", Model(strings.Repeat("A", 51)), FieldModel},
		{"zero capacity", Capacity(0), FieldCapacity},
		{"negative capacity", Capacity(-4), FieldCapacity},
		{"year too early", ProductionYear(1906, now), FieldProductionYear},
		{"year in future", ProductionYear(2027, now), FieldProductionYear},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.NotNil(t, tt.err)
			assert.Equal(t, tt.field, tt.err.Field)
			assert.NotEmpty(t, tt.err.Message)
		})
	}

	assert.Nil(t, TailNumber(strings.Repeat("N", 20)))
	assert.Nil(t, TailNumberUnique(false))
	assert.Nil(t, Model("A320neo"))
	assert.Nil(t, Capacity(1))
	assert.Nil(t, ProductionYear(1907, now))
	assert.Nil(t, ProductionYear(2026, now))
}

func TestProductionYearTracksClock(t *testing.T) {
	next := now.AddDate(1, 0, 0)
	assert.NotNil(t, ProductionYear(2027, now))
	assert.Nil(t, ProductionYear(2027, next))
}

func TestParseTimestamp(t *testing.T) {
	got, ferr := ParseTimestamp(FieldDepartureTime, "2024-05-01T10:30:00.000Z")
	require.Nil(t, ferr)
	assert.Equal(t, time.Date(2024, 5, 1, 10, 30, 0, 0, time.UTC), got)

	got, ferr = ParseTimestamp(FieldDepartureTime, "2024-05-01T12:30:00+02:00")
	require.Nil(t, ferr)
	assert.Equal(t, time.Date(2024, 5, 1, 10, 30, 0, 0, time.UTC), got)
	assert.Equal(t, time.UTC, got.Location())

	for _, raw := range []string{"", "tomorrow", "2024-05-01", "2024-05-01 10:30:00"} {
		_, ferr = ParseTimestamp(FieldArrivalTime, raw)
		require.NotNil(t, ferr, raw)
		assert.Equal(t, FieldArrivalTime, ferr.Field)
	}
}

func TestArrivalAfterDeparture(t *testing.T) {
	dep := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	assert.Nil(t, ArrivalAfterDeparture(dep, dep.Add(time.Minute)))
	assert.NotNil(t, ArrivalAfterDeparture(dep, dep))
	assert.NotNil(t, ArrivalAfterDeparture(dep, dep.Add(-time.Hour)))
}

func TestCapacityChecks(t *testing.T) {
	assert.Nil(t, AircraftHasRoom(1, 2))
	assert.NotNil(t, AircraftHasRoom(2, 2))
	assert.Equal(t, FieldAircraft, AircraftHasRoom(3, 2).Field)

	assert.Nil(t, FlightHasRoom(0, 1))
	assert.NotNil(t, FlightHasRoom(1, 1))
	assert.Equal(t, FieldFlight, FlightHasRoom(5, 1).Field)
}

func TestEmail(t *testing.T) {
	valid := []string{"jane@example.com", "j.doe+trip@mail.example.co.uk"}
	for _, v := range valid {
		assert.Nil(t, Email(v), v)
	}

	invalid := []string{"", "not-an-email", "jane@", "@example.com", "jane@localhost",
		"Jane <jane@example.com>", "jane@example.", "jane@example.com.", "jane doe@example.com",
		strings.Repeat("a", 250) + "@example.com"}
	for _, v := range invalid {
		ferr := Email(v)
		require.NotNil(t, ferr, v)
		assert.Equal(t, FieldPassengerEmail, ferr.Field)
	}
}

func TestReservationRules(t *testing.T) {
	assert.Nil(t, PassengerName("Ada Lovelace"))
	assert.NotNil(t, PassengerName(strings.Repeat("a", 101)))
	assert.Nil(t, ReservationCode("ABC123"))
	assert.NotNil(t, ReservationCode("ABCDEFGHIJK"))
	assert.NotNil(t, ReservationCodeUnique(true))
	assert.Nil(t, ReservationCodeUnique(false))
}

func TestErrorsAggregate(t *testing.T) {
	var errs Errors
	errs.Add(nil)
	assert.NoError(t, errs.Err())

	errs.Add(Capacity(0))
	errs.Add(TailNumberUnique(true))
	errs.Add(TailNumber(""))

	require.Error(t, errs.Err())
	assert.True(t, errs.Has(FieldTailNumber))
	assert.False(t, errs.Has(FieldModel))

	byField := errs.ByField()
	assert.Len(t, byField[FieldTailNumber], 2)
	assert.Len(t, byField[FieldCapacity], 1)
	assert.Contains(t, errs.Error(), "capacity: ")
}
