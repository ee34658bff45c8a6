package api

import (
	"net/http"

	"flightdesk/airline/internal/constants"
	"flightdesk/airline/internal/models/dtos/requests"
	"flightdesk/airline/internal/models/dtos/responses"
	"flightdesk/airline/internal/validation"
)

// ListAircraft handles GET /api/v1/aircraft
func (h *Handlers) ListAircraft() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		aircraft, err := h.deps.Services.Aircraft.List(r.Context())
		if err != nil {
			respondWithServiceError(w, r, err)
			return
		}
		list := responses.NewAircraftList(aircraft)
		respondWithSuccess(w, http.StatusOK, &list)
	}
}

// GetAircraft handles GET /api/v1/aircraft/{id}
func (h *Handlers) GetAircraft() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := parseID(r)
		if !ok {
			respondWithError(w, http.StatusBadRequest, constants.MsgInvalidID)
			return
		}
		aircraft, err := h.deps.Services.Aircraft.Get(r.Context(), id)
		if err != nil {
			respondWithServiceError(w, r, err)
			return
		}
		respondWithSuccess(w, http.StatusOK, responses.NewAircraftResponse(aircraft))
	}
}

// CreateAircraft handles POST /api/v1/aircraft
func (h *Handlers) CreateAircraft() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req requests.AircraftRequest
		if err := decodeJSON(r, &req, constants.ResourceAircraft); err != nil {
			respondWithServiceError(w, r, err)
			return
		}
		aircraft, err := h.deps.Services.Aircraft.Create(r.Context(), req)
		if err != nil {
			respondWithServiceError(w, r, err)
			return
		}
		respondWithSuccess(w, http.StatusCreated, responses.NewAircraftResponse(aircraft))
	}
}

// UpdateAircraft handles PATCH and PUT /api/v1/aircraft/{id}. PUT requires
// every mandatory field.
func (h *Handlers) UpdateAircraft(full bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := parseID(r)
		if !ok {
			respondWithError(w, http.StatusBadRequest, constants.MsgInvalidID)
			return
		}
		var req requests.AircraftRequest
		if err := decodeJSON(r, &req, constants.ResourceAircraft); err != nil {
			respondWithServiceError(w, r, err)
			return
		}
		if full {
			err := requireAll(constants.ResourceAircraft, map[string]bool{
				validation.FieldTailNumber:     req.TailNumber != nil,
				validation.FieldModel:          req.Model != nil,
				validation.FieldCapacity:       req.Capacity != nil,
				validation.FieldProductionYear: req.ProductionYear != nil,
			}, validation.FieldTailNumber, validation.FieldModel, validation.FieldCapacity, validation.FieldProductionYear)
			if err != nil {
				respondWithServiceError(w, r, err)
				return
			}
		}
		aircraft, err := h.deps.Services.Aircraft.Update(r.Context(), id, req)
		if err != nil {
			respondWithServiceError(w, r, err)
			return
		}
		respondWithSuccess(w, http.StatusOK, responses.NewAircraftResponse(aircraft))
	}
}

// DeleteAircraft handles DELETE /api/v1/aircraft/{id}
func (h *Handlers) DeleteAircraft() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := parseID(r)
		if !ok {
			respondWithError(w, http.StatusBadRequest, constants.MsgInvalidID)
			return
		}
		if err := h.deps.Services.Aircraft.Delete(r.Context(), id); err != nil {
			respondWithServiceError(w, r, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// FlightsOfAircraft handles GET /api/v1/aircraft/{id}/flights
func (h *Handlers) FlightsOfAircraft() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := parseID(r)
		if !ok {
			respondWithError(w, http.StatusBadRequest, constants.MsgInvalidID)
			return
		}
		flights, err := h.deps.Services.Query.FlightsOfAircraft(r.Context(), id)
		if err != nil {
			respondWithServiceError(w, r, err)
			return
		}
		list := responses.NewFlightList(flights)
		respondWithSuccess(w, http.StatusOK, &list)
	}
}
