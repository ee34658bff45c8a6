package api

import (
	"net/http"
	"strings"

	"flightdesk/airline/internal/constants"
	"flightdesk/airline/internal/db/repositories"
	"flightdesk/airline/internal/models/dtos/requests"
	"flightdesk/airline/internal/models/dtos/responses"
	"flightdesk/airline/internal/services"
	"flightdesk/airline/internal/validation"
)

// flightFilterFromQuery reads the optional exact-match filters.
func flightFilterFromQuery(r *http.Request) (repositories.FlightFilter, error) {
	var (
		filter repositories.FlightFilter
		errs   validation.Errors
	)
	q := r.URL.Query()

	if v := strings.TrimSpace(q.Get(validation.FieldDeparture)); v != "" {
		filter.Departure = &v
	}
	if v := strings.TrimSpace(q.Get(validation.FieldDestination)); v != "" {
		filter.Destination = &v
	}
	if v := q.Get(validation.FieldDepartureTime); v != "" {
		t, ferr := validation.ParseTimestamp(validation.FieldDepartureTime, v)
		errs.Add(ferr)
		if ferr == nil {
			filter.DepartureTime = &t
		}
	}
	if v := q.Get(validation.FieldArrivalTime); v != "" {
		t, ferr := validation.ParseTimestamp(validation.FieldArrivalTime, v)
		errs.Add(ferr)
		if ferr == nil {
			filter.ArrivalTime = &t
		}
	}

	if len(errs) > 0 {
		return filter, &services.ValidationError{Resource: constants.ResourceFlight, Fields: errs}
	}
	return filter, nil
}

// ListFlights handles GET /api/v1/flights
func (h *Handlers) ListFlights() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filter, err := flightFilterFromQuery(r)
		if err != nil {
			respondWithServiceError(w, r, err)
			return
		}
		flights, err := h.deps.Services.Flights.List(r.Context(), filter)
		if err != nil {
			respondWithServiceError(w, r, err)
			return
		}
		list := responses.NewFlightList(flights)
		respondWithSuccess(w, http.StatusOK, &list)
	}
}

// GetFlight handles GET /api/v1/flights/{id}
func (h *Handlers) GetFlight() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := parseID(r)
		if !ok {
			respondWithError(w, http.StatusBadRequest, constants.MsgInvalidID)
			return
		}
		flight, err := h.deps.Services.Flights.Get(r.Context(), id)
		if err != nil {
			respondWithServiceError(w, r, err)
			return
		}
		respondWithSuccess(w, http.StatusOK, responses.NewFlightResponse(flight))
	}
}

// CreateFlight handles POST /api/v1/flights
func (h *Handlers) CreateFlight() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req requests.FlightRequest
		if err := decodeJSON(r, &req, constants.ResourceFlight); err != nil {
			respondWithServiceError(w, r, err)
			return
		}
		flight, err := h.deps.Services.Flights.Create(r.Context(), req)
		if err != nil {
			respondWithServiceError(w, r, err)
			return
		}
		respondWithSuccess(w, http.StatusCreated, responses.NewFlightResponse(flight))
	}
}

// UpdateFlight handles PATCH and PUT /api/v1/flights/{id}
func (h *Handlers) UpdateFlight(full bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := parseID(r)
		if !ok {
			respondWithError(w, http.StatusBadRequest, constants.MsgInvalidID)
			return
		}
		var req requests.FlightRequest
		if err := decodeJSON(r, &req, constants.ResourceFlight); err != nil {
			respondWithServiceError(w, r, err)
			return
		}
		if full {
			err := requireAll(constants.ResourceFlight, map[string]bool{
				validation.FieldFlightNumber:  req.FlightNumber != nil,
				validation.FieldDeparture:     req.Departure != nil,
				validation.FieldDestination:   req.Destination != nil,
				validation.FieldDepartureTime: req.DepartureTime != nil,
				validation.FieldArrivalTime:   req.ArrivalTime != nil,
				validation.FieldAircraft:      req.AircraftID != nil,
			},
				validation.FieldFlightNumber, validation.FieldDeparture, validation.FieldDestination,
				validation.FieldDepartureTime, validation.FieldArrivalTime, validation.FieldAircraft,
			)
			if err != nil {
				respondWithServiceError(w, r, err)
				return
			}
		}
		flight, err := h.deps.Services.Flights.Update(r.Context(), id, req)
		if err != nil {
			respondWithServiceError(w, r, err)
			return
		}
		respondWithSuccess(w, http.StatusOK, responses.NewFlightResponse(flight))
	}
}

// DeleteFlight handles DELETE /api/v1/flights/{id}
func (h *Handlers) DeleteFlight() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := parseID(r)
		if !ok {
			respondWithError(w, http.StatusBadRequest, constants.MsgInvalidID)
			return
		}
		if err := h.deps.Services.Flights.Delete(r.Context(), id); err != nil {
			respondWithServiceError(w, r, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// ReservationsOfFlight handles GET /api/v1/flights/{id}/reservations
func (h *Handlers) ReservationsOfFlight() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := parseID(r)
		if !ok {
			respondWithError(w, http.StatusBadRequest, constants.MsgInvalidID)
			return
		}
		reservations, err := h.deps.Services.Query.ReservationsOfFlight(r.Context(), id)
		if err != nil {
			respondWithServiceError(w, r, err)
			return
		}
		list := responses.NewReservationList(reservations)
		respondWithSuccess(w, http.StatusOK, &list)
	}
}
