package providers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"flightdesk/airline/internal/common"
	"flightdesk/airline/internal/logging"
)

const defaultSendGridBaseURL = "https://api.sendgrid.com"

// SendGridNotifier sends confirmations through the SendGrid v3 mail API
type SendGridNotifier struct {
	BaseURL   string
	APIKey    string
	FromEmail string
	Client    *http.Client
	// Debug dumps each outbound request to the log
	Debug bool
}

func NewSendGridNotifier(baseURL, apiKey, fromEmail string) *SendGridNotifier {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		baseURL = defaultSendGridBaseURL
	}
	return &SendGridNotifier{
		BaseURL:   baseURL,
		APIKey:    apiKey,
		FromEmail: fromEmail,
		Client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

type emailAddress struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

type personalization struct {
	To []emailAddress `json:"to"`
}

type mailContent struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

type mailSendRequest struct {
	Personalizations []personalization `json:"personalizations"`
	From             emailAddress      `json:"from"`
	Subject          string            `json:"subject"`
	Content          []mailContent     `json:"content"`
}

// SendConfirmation makes exactly one POST to /v3/mail/send
func (n *SendGridNotifier) SendConfirmation(ctx context.Context, toEmail, passengerName, code string) error {
	if n.APIKey == "" {
		return &ProviderError{Message: "SENDGRID_API_KEY is not set"}
	}

	wire := mailSendRequest{
		Personalizations: []personalization{{To: []emailAddress{{Email: toEmail, Name: passengerName}}}},
		From:             emailAddress{Email: n.FromEmail},
		Subject:          ConfirmationSubject,
		Content:          []mailContent{{Type: "text/plain", Value: ConfirmationBody(passengerName, code)}},
	}
	payload, err := json.Marshal(wire)
	if err != nil {
		return &ProviderError{Message: "Failed to marshal mail request", Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.BaseURL+"/v3/mail/send", bytes.NewReader(payload))
	if err != nil {
		return &ProviderError{Message: "Failed to create request", Err: err}
	}
	req.Header.Set("Authorization", "Bearer "+n.APIKey)
	req.Header.Set("Content-Type", "application/json")
	if n.Debug {
		common.LogHTTPRequest(req)
	}

	resp, err := n.Client.Do(req)
	if err != nil {
		return &ProviderError{Message: "Mail provider unreachable", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		logging.Warn("SendGrid rejected confirmation",
			"status", resp.StatusCode,
			"body", strings.TrimSpace(string(body)),
		)
		return &ProviderError{StatusCode: resp.StatusCode, Message: "Mail provider rejected the message"}
	}

	logging.Debug("Confirmation sent", "code", code, "message_id", resp.Header.Get("X-Message-Id"))
	return nil
}
