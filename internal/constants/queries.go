package constants

// Read-side queries for sqlx. Placeholders are '?' and are rebound per driver.
const (
	SelectFlightColumns = `
	SELECT id, flight_number, departure, destination, departure_time, arrival_time,
	       aircraft_id, created_at, updated_at
	FROM flights
	`

	SelectReservationColumns = `
	SELECT id, passenger_name, passenger_email, reservation_code, flight_id, status, created_at
	FROM reservations
	`

	FlightsByAircraftID = SelectFlightColumns + `WHERE aircraft_id = ? ORDER BY departure_time, id`

	ReservationsByFlightID = SelectReservationColumns + `WHERE flight_id = ? ORDER BY id`

	AllReservations = SelectReservationColumns + `ORDER BY id`

	AircraftExists = `SELECT COUNT(1) FROM aircraft WHERE id = ?`

	FlightExists = `SELECT COUNT(1) FROM flights WHERE id = ?`
)
