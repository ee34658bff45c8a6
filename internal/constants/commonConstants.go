package constants

type (
	APIStatus   string
	CachePrefix string
	Resource    string
)

const (
	APIStatusOk    APIStatus = "ok"
	APIStatusError APIStatus = "error"

	CachePrefixFlightsOfAircraft    CachePrefix = "FOA_"
	CachePrefixReservationsOfFlight CachePrefix = "ROF_"

	ResourceAircraft    Resource = "aircraft"
	ResourceFlight      Resource = "flight"
	ResourceReservation Resource = "reservation"
)

// MaxReservationCodeAttempts bounds the generate-and-retry loop for codes.
const MaxReservationCodeAttempts = 5
