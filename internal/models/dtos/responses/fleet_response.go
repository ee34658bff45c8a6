package responses

import (
	"time"

	gormModels "flightdesk/airline/internal/models/gorm"
)

type AircraftResponse struct {
	ID             uint      `json:"id"`
	TailNumber     string    `json:"tail_number"`
	Model          string    `json:"model"`
	Capacity       int       `json:"capacity"`
	ProductionYear int       `json:"production_year"`
	Status         bool      `json:"status"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

type FlightResponse struct {
	ID            uint      `json:"id"`
	FlightNumber  string    `json:"flight_number"`
	Departure     string    `json:"departure"`
	Destination   string    `json:"destination"`
	DepartureTime time.Time `json:"departure_time"`
	ArrivalTime   time.Time `json:"arrival_time"`
	AircraftID    uint      `json:"aircraft_id"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type ReservationResponse struct {
	ID              uint      `json:"id"`
	PassengerName   string    `json:"passenger_name"`
	PassengerEmail  string    `json:"passenger_email"`
	ReservationCode string    `json:"reservation_code"`
	FlightID        uint      `json:"flight_id"`
	Status          bool      `json:"status"`
	CreatedAt       time.Time `json:"created_at"`
}

func NewAircraftResponse(a *gormModels.Aircraft) *AircraftResponse {
	return &AircraftResponse{
		ID:             a.ID,
		TailNumber:     a.TailNumber,
		Model:          a.Model,
		Capacity:       a.Capacity,
		ProductionYear: a.ProductionYear,
		Status:         a.Status,
		CreatedAt:      a.CreatedAt.UTC(),
		UpdatedAt:      a.UpdatedAt.UTC(),
	}
}

func NewFlightResponse(f *gormModels.Flight) *FlightResponse {
	return &FlightResponse{
		ID:            f.ID,
		FlightNumber:  f.FlightNumber,
		Departure:     f.Departure,
		Destination:   f.Destination,
		DepartureTime: f.DepartureTime.UTC(),
		ArrivalTime:   f.ArrivalTime.UTC(),
		AircraftID:    f.AircraftID,
		CreatedAt:     f.CreatedAt.UTC(),
		UpdatedAt:     f.UpdatedAt.UTC(),
	}
}

func NewReservationResponse(r *gormModels.Reservation) *ReservationResponse {
	return &ReservationResponse{
		ID:              r.ID,
		PassengerName:   r.PassengerName,
		PassengerEmail:  r.PassengerEmail,
		ReservationCode: r.ReservationCode,
		FlightID:        r.FlightID,
		Status:          r.Status,
		CreatedAt:       r.CreatedAt.UTC(),
	}
}

func NewAircraftList(in []gormModels.Aircraft) []AircraftResponse {
	out := make([]AircraftResponse, 0, len(in))
	for i := range in {
		out = append(out, *NewAircraftResponse(&in[i]))
	}
	return out
}

func NewFlightList(in []gormModels.Flight) []FlightResponse {
	out := make([]FlightResponse, 0, len(in))
	for i := range in {
		out = append(out, *NewFlightResponse(&in[i]))
	}
	return out
}

func NewReservationList(in []gormModels.Reservation) []ReservationResponse {
	out := make([]ReservationResponse, 0, len(in))
	for i := range in {
		out = append(out, *NewReservationResponse(&in[i]))
	}
	return out
}
