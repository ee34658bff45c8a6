package requests

// FlightRequest carries timestamps as RFC 3339 strings; they are parsed by
// the validation package.
type FlightRequest struct {
	FlightNumber  *string `json:"flight_number"`
	Departure     *string `json:"departure"`
	Destination   *string `json:"destination"`
	DepartureTime *string `json:"departure_time"`
	ArrivalTime   *string `json:"arrival_time"`
	AircraftID    *uint   `json:"aircraft_id"`
}
