package services

import (
	"errors"
	"fmt"
	"strings"

	"flightdesk/airline/internal/constants"
	"flightdesk/airline/internal/db/repositories"
	"flightdesk/airline/internal/metrics"
	"flightdesk/airline/internal/validation"
)

func flightsOfAircraftKey(aircraftID uint) string {
	return fmt.Sprintf("%s%d", constants.CachePrefixFlightsOfAircraft, aircraftID)
}

func reservationsOfFlightKey(flightID uint) string {
	return fmt.Sprintf("%s%d", constants.CachePrefixReservationsOfFlight, flightID)
}

// trimmed returns the trimmed value of an optional string field.
func trimmed(v *string) (string, bool) {
	if v == nil {
		return "", false
	}
	return strings.TrimSpace(*v), true
}

// requiredString validates a mandatory string with rule, or reports it missing.
func requiredString(errs *validation.Errors, field string, v *string, rule func(string) *validation.FieldError) (string, bool) {
	s, ok := trimmed(v)
	if !ok {
		errs.Add(validation.Required(field, false))
		return "", false
	}
	if ferr := rule(s); ferr != nil {
		errs.Add(ferr)
		return "", false
	}
	return s, true
}

func missingReference(field string, id uint) *validation.FieldError {
	return &validation.FieldError{
		Field:   field,
		Message: fmt.Sprintf("Invalid pk \"%d\" - object does not exist.", id),
	}
}

// reject counts the failure and wraps errs.
func reject(m *metrics.MetricsRegistry, resource constants.Resource, errs validation.Errors) *ValidationError {
	m.ValidationFailed(string(resource))
	return &ValidationError{Resource: resource, Fields: errs}
}

// mapNotFound converts a repository miss into a NotFoundError.
func mapNotFound(err error, resource constants.Resource, id uint) error {
	if errors.Is(err, repositories.ErrNotFound) {
		return &NotFoundError{Resource: resource, ID: id}
	}
	return err
}
