package providers

import (
	"context"
	"strings"

	"flightdesk/airline/internal/logging"
)

// LogNotifier writes confirmations to the log instead of sending them. The
// address is masked at info level; the message body is logged at debug only.
type LogNotifier struct{}

func NewLogNotifier() *LogNotifier {
	return &LogNotifier{}
}

func (LogNotifier) SendConfirmation(_ context.Context, toEmail, passengerName, code string) error {
	logging.Info("Reservation confirmation",
		"to", maskEmail(toEmail),
		"subject", ConfirmationSubject,
	)
	logging.Debug("Reservation confirmation body",
		"to", maskEmail(toEmail),
		"body", ConfirmationBody(passengerName, code),
	)
	return nil
}

// maskEmail keeps the first character of the local part and the domain.
func maskEmail(addr string) string {
	local, domain, ok := strings.Cut(addr, "@")
	if !ok || local == "" {
		return "***"
	}
	return local[:1] + "***@" + domain
}
