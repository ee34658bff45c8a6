package requests

// AircraftRequest is used for create and for partial update. A nil field was
// not sent.
type AircraftRequest struct {
	TailNumber     *string `json:"tail_number"`
	Model          *string `json:"model"`
	Capacity       *int    `json:"capacity"`
	ProductionYear *int    `json:"production_year"`
	Status         *bool   `json:"status"`
}
