package services

import (
	"errors"
	"fmt"

	"flightdesk/airline/internal/constants"
	"flightdesk/airline/internal/validation"
)

// ErrNotFound matches every NotFoundError via errors.Is.
var ErrNotFound = errors.New("not found")

// NotFoundError reports a missing aircraft, flight or reservation.
type NotFoundError struct {
	Resource constants.Resource
	ID       uint
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %d not found", e.Resource, e.ID)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// ValidationError carries every field-level rejection of one operation.
// Nothing was persisted.
type ValidationError struct {
	Resource constants.Resource
	Fields   validation.Errors
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Resource, e.Fields.Error())
}

// DeliveryError means the reservation was stored but its confirmation was
// not delivered. The reservation is not rolled back.
type DeliveryError struct {
	ReservationID uint
	Err           error
}

func (e *DeliveryError) Error() string {
	return fmt.Sprintf("reservation %d saved, confirmation not delivered: %v", e.ReservationID, e.Err)
}

func (e *DeliveryError) Unwrap() error {
	return e.Err
}

// NewFieldValidationError builds a ValidationError for a single field.
func NewFieldValidationError(resource constants.Resource, field, message string) *ValidationError {
	return &ValidationError{
		Resource: resource,
		Fields:   validation.Errors{{Field: field, Message: message}},
	}
}
