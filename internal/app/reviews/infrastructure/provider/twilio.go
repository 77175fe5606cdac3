package provider

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"vipreviews/pkg/logger"
)

// TwilioSender отправляет SMS через REST API Twilio.
// При Simulate=true (нет учётных данных) отправка не выполняется,
// вызов журналируется и считается успешным.
type TwilioSender struct {
	accountSID string
	authToken  string
	from       string
	baseURL    string
	httpClient *http.Client
	simulate   bool
}

type twilioResponse struct {
	Sid     string `json:"sid"`
	Status  string `json:"status"`
	Message string `json:"message"`
}

// NewTwilioSender создает SMS-канал. simulate включает режим симуляции.
func NewTwilioSender(accountSID, authToken, from string, simulate bool) *TwilioSender {
	return &TwilioSender{
		accountSID: accountSID,
		authToken:  authToken,
		from:       from,
		baseURL:    "https://api.twilio.com",
		httpClient: &http.Client{Timeout: 15 * time.Second},
		simulate:   simulate,
	}
}

// Send выполняет одну попытку отправки SMS. Subject для SMS не используется.
func (s *TwilioSender) Send(ctx context.Context, destination string, _ string, body string) error {
	if s.simulate {
		logger.Warn().
			Str("channel", "sms").
			Str("to", destination).
			Msg("Twilio not configured, simulating SMS send")
		return nil
	}

	form := url.Values{}
	form.Set("To", normalizePhone(destination))
	form.Set("From", s.from)
	form.Set("Body", body)

	endpoint := s.baseURL + "/2010-04-01/Accounts/" + s.accountSID + "/Messages.json"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("failed to build twilio request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.SetBasicAuth(s.accountSID, s.authToken)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("twilio request failed: %w", err)
	}
	defer resp.Body.Close()

	// Twilio отвечает 201 на создание; принимаем любой 2xx
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(resp.Body)
		var out twilioResponse
		_ = json.Unmarshal(b, &out)
		if out.Message != "" {
			return fmt.Errorf("twilio send failed: %s", out.Message)
		}
		return errors.New("twilio send failed: status " + resp.Status)
	}

	return nil
}

// Mode возвращает режим работы канала
func (s *TwilioSender) Mode() string {
	if s.simulate {
		return "simulated"
	}
	return "live"
}

// normalizePhone приводит номер к E.164; номера без кода страны считаются US
func normalizePhone(phone string) string {
	if strings.HasPrefix(phone, "+") {
		return phone
	}

	var digits strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}

	return "+1" + digits.String()
}
