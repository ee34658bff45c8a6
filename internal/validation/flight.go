package validation

import (
	"strings"
	"time"
)

const (
	FieldFlightNumber  = "flight_number"
	FieldDeparture     = "departure"
	FieldDestination   = "destination"
	FieldDepartureTime = "departure_time"
	FieldArrivalTime   = "arrival_time"
	FieldAircraft      = "aircraft_id"

	MaxFlightNumberLength = 20
	MaxLocationLength     = 100
)

func FlightNumber(v string) *FieldError {
	return maxLength(FieldFlightNumber, v, MaxFlightNumberLength)
}

// FlightNumberUnique rejects a flight number already used by another flight.
func FlightNumberUnique(taken bool) *FieldError {
	if taken {
		return reject(FieldFlightNumber, "Flight number must be unique.")
	}
	return nil
}

// Location checks a departure or destination name.
func Location(field, v string) *FieldError {
	return maxLength(field, v, MaxLocationLength)
}

// ParseTimestamp is the only place flight timestamps are parsed. It accepts
// RFC 3339 with or without fractional seconds and returns UTC.
func ParseTimestamp(field, raw string) (time.Time, *FieldError) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, &FieldError{Field: field, Message: MsgRequired}
	}
	t, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		return time.Time{}, reject(field, "Datetime has wrong format. Use RFC 3339, e.g. 2024-05-01T10:30:00Z.")
	}
	return t.UTC(), nil
}

// ArrivalAfterDeparture requires arrival to be strictly later than departure.
func ArrivalAfterDeparture(departure, arrival time.Time) *FieldError {
	if !arrival.After(departure) {
		return reject(FieldArrivalTime, "Arrival time must be after departure time.")
	}
	return nil
}

// AircraftHasRoom compares the number of flights already assigned to an
// aircraft with its seating capacity.
// NOTE: this counts flights against seats, not passengers. Kept literal.
func AircraftHasRoom(flightCount int64, capacity int) *FieldError {
	if flightCount >= int64(capacity) {
		return reject(FieldAircraft, "This aircraft is already full.")
	}
	return nil
}
