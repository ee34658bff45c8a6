package constants

const (
	MsgInvalidBody      = "Invalid request body"
	MsgInvalidID        = "Invalid id"
	MsgValidationFailed = "Validation failed"
	MsgInternal         = "Internal server error"
	MsgDeliveryFailed   = "Reservation saved but the confirmation could not be delivered"
)
