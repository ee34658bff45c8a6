package validation

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

const (
	FieldPassengerName   = "passenger_name"
	FieldPassengerEmail  = "passenger_email"
	FieldReservationCode = "reservation_code"
	FieldFlight          = "flight_id"

	MaxPassengerNameLength   = 100
	MaxEmailLength           = 254
	MaxReservationCodeLength = 10
)

func PassengerName(v string) *FieldError {
	return maxLength(FieldPassengerName, v, MaxPassengerNameLength)
}

var validate = validator.New()

// Email accepts a bare address with a dotted domain. Display-name forms
// such as "Jane <jane@example.com>" are rejected.
func Email(v string) *FieldError {
	if strings.TrimSpace(v) == "" {
		return &FieldError{Field: FieldPassengerEmail, Message: MsgRequired}
	}
	if len(v) > MaxEmailLength || strings.HasSuffix(v, ".") || validate.Var(v, "required,email") != nil {
		return reject(FieldPassengerEmail, "Enter a valid email address.")
	}
	return nil
}

// ReservationCode checks an explicitly supplied code. Generated codes never
// reach this rule.
func ReservationCode(v string) *FieldError {
	return maxLength(FieldReservationCode, v, MaxReservationCodeLength)
}

// ReservationCodeUnique rejects a code held by another reservation.
func ReservationCodeUnique(taken bool) *FieldError {
	if taken {
		return reject(FieldReservationCode, "Reservation code must be unique.")
	}
	return nil
}

// FlightHasRoom rejects a reservation once the flight holds as many
// reservations as its aircraft has seats.
func FlightHasRoom(reservationCount int64, capacity int) *FieldError {
	if reservationCount >= int64(capacity) {
		return reject(FieldFlight, "This flight is already full.")
	}
	return nil
}
