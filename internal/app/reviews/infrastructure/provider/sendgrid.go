package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"vipreviews/pkg/logger"
)

// SendGridSender отправляет email через REST API SendGrid (v3 /mail/send).
// При Simulate=true отправка не выполняется, вызов журналируется
// и считается успешным.
type SendGridSender struct {
	apiKey     string
	fromEmail  string
	fromName   string
	baseURL    string
	httpClient *http.Client
	simulate   bool
}

type sendGridAddress struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

type sendGridPayload struct {
	Personalizations []struct {
		To []sendGridAddress `json:"to"`
	} `json:"personalizations"`
	From    sendGridAddress `json:"from"`
	Subject string          `json:"subject"`
	Content []struct {
		Type  string `json:"type"`
		Value string `json:"value"`
	} `json:"content"`
}

// NewSendGridSender создает email-канал. simulate включает режим симуляции.
func NewSendGridSender(apiKey, fromEmail, fromName string, simulate bool) *SendGridSender {
	return &SendGridSender{
		apiKey:     apiKey,
		fromEmail:  fromEmail,
		fromName:   fromName,
		baseURL:    "https://api.sendgrid.com",
		httpClient: &http.Client{Timeout: 15 * time.Second},
		simulate:   simulate,
	}
}

// Send выполняет одну попытку отправки письма
func (s *SendGridSender) Send(ctx context.Context, destination string, subject string, body string) error {
	if s.simulate {
		logger.Warn().
			Str("channel", "email").
			Str("to", destination).
			Msg("SendGrid not configured, simulating email send")
		return nil
	}

	payload := sendGridPayload{
		From:    sendGridAddress{Email: s.fromEmail, Name: s.fromName},
		Subject: subject,
	}
	payload.Personalizations = []struct {
		To []sendGridAddress `json:"to"`
	}{
		{To: []sendGridAddress{{Email: destination}}},
	}
	payload.Content = []struct {
		Type  string `json:"type"`
		Value string `json:"value"`
	}{
		{Type: "text/html", Value: body},
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal sendgrid payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/v3/mail/send", bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("failed to build sendgrid request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("sendgrid request failed: %w", err)
	}
	defer resp.Body.Close()

	// SendGrid отвечает 202 на принятое письмо
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return errors.New("sendgrid send failed: status " + resp.Status)
	}

	return nil
}

// Mode возвращает режим работы канала
func (s *SendGridSender) Mode() string {
	if s.simulate {
		return "simulated"
	}
	return "live"
}
