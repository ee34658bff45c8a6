package providers

import (
	"context"
	"fmt"
)

const ConfirmationSubject = "Reservation Confirmation"

// Notifier delivers reservation confirmations. Implementations must not retry.
type Notifier interface {
	SendConfirmation(ctx context.Context, toEmail, passengerName, code string) error
}

// ConfirmationBody renders the plain-text confirmation message.
func ConfirmationBody(passengerName, code string) string {
	return fmt.Sprintf("Hello %s,\n\nYour reservation with code %s has been confirmed.", passengerName, code)
}

// ProviderError represents a delivery failure
type ProviderError struct {
	StatusCode int
	Message    string
	Err        error
}

func (e *ProviderError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s (status %d)", e.Message, e.StatusCode)
	}
	return e.Message
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}
