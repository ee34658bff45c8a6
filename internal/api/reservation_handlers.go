package api

import (
	"errors"
	"net/http"
	"strconv"

	"flightdesk/airline/internal/constants"
	"flightdesk/airline/internal/models/dtos/requests"
	"flightdesk/airline/internal/models/dtos/responses"
	"flightdesk/airline/internal/services"
	"flightdesk/airline/internal/validation"
)

// ListReservations handles GET /api/v1/reservations with an optional
// flight_id filter.
func (h *Handlers) ListReservations() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var flightID *uint
		if raw := r.URL.Query().Get(validation.FieldFlight); raw != "" {
			id, err := strconv.ParseUint(raw, 10, 64)
			if err != nil {
				respondWithServiceError(w, r, services.NewFieldValidationError(
					constants.ResourceReservation, validation.FieldFlight, validation.MsgInvalid))
				return
			}
			v := uint(id)
			flightID = &v
		}

		reservations, err := h.deps.Services.Reservations.List(r.Context(), flightID)
		if err != nil {
			respondWithServiceError(w, r, err)
			return
		}
		list := responses.NewReservationList(reservations)
		respondWithSuccess(w, http.StatusOK, &list)
	}
}

// GetReservation handles GET /api/v1/reservations/{id}
func (h *Handlers) GetReservation() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := parseID(r)
		if !ok {
			respondWithError(w, http.StatusBadRequest, constants.MsgInvalidID)
			return
		}
		reservation, err := h.deps.Services.Reservations.Get(r.Context(), id)
		if err != nil {
			respondWithServiceError(w, r, err)
			return
		}
		respondWithSuccess(w, http.StatusOK, responses.NewReservationResponse(reservation))
	}
}

// CreateReservation handles POST /api/v1/reservations. A stored reservation
// whose confirmation failed is returned with 502.
func (h *Handlers) CreateReservation() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req requests.ReservationRequest
		if err := decodeJSON(r, &req, constants.ResourceReservation); err != nil {
			respondWithServiceError(w, r, err)
			return
		}
		reservation, err := h.deps.Services.Reservations.Create(r.Context(), req)
		var derr *services.DeliveryError
		if errors.As(err, &derr) && reservation != nil {
			writeJSON(w, http.StatusBadGateway, responses.APIResponse[responses.ReservationResponse]{
				Status: string(constants.APIStatusError),
				Error:  constants.MsgDeliveryFailed,
				Data:   responses.NewReservationResponse(reservation),
			})
			return
		}
		if err != nil {
			respondWithServiceError(w, r, err)
			return
		}
		respondWithSuccess(w, http.StatusCreated, responses.NewReservationResponse(reservation))
	}
}

// UpdateReservation handles PATCH and PUT /api/v1/reservations/{id}
func (h *Handlers) UpdateReservation(full bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := parseID(r)
		if !ok {
			respondWithError(w, http.StatusBadRequest, constants.MsgInvalidID)
			return
		}
		var req requests.ReservationRequest
		if err := decodeJSON(r, &req, constants.ResourceReservation); err != nil {
			respondWithServiceError(w, r, err)
			return
		}
		if full {
			err := requireAll(constants.ResourceReservation, map[string]bool{
				validation.FieldPassengerName:  req.PassengerName != nil,
				validation.FieldPassengerEmail: req.PassengerEmail != nil,
				validation.FieldFlight:         req.FlightID != nil,
			}, validation.FieldPassengerName, validation.FieldPassengerEmail, validation.FieldFlight)
			if err != nil {
				respondWithServiceError(w, r, err)
				return
			}
		}
		reservation, err := h.deps.Services.Reservations.Update(r.Context(), id, req)
		if err != nil {
			respondWithServiceError(w, r, err)
			return
		}
		respondWithSuccess(w, http.StatusOK, responses.NewReservationResponse(reservation))
	}
}

// DeleteReservation handles DELETE /api/v1/reservations/{id}
func (h *Handlers) DeleteReservation() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := parseID(r)
		if !ok {
			respondWithError(w, http.StatusBadRequest, constants.MsgInvalidID)
			return
		}
		if err := h.deps.Services.Reservations.Delete(r.Context(), id); err != nil {
			respondWithServiceError(w, r, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
