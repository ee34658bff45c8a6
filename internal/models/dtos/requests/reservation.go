package requests

type ReservationRequest struct {
	PassengerName   *string `json:"passenger_name"`
	PassengerEmail  *string `json:"passenger_email"`
	ReservationCode *string `json:"reservation_code"`
	FlightID        *uint   `json:"flight_id"`
	Status          *bool   `json:"status"`
}
