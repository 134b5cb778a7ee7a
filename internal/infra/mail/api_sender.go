package mail

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/xavierca1/lead-relay/internal/entity"
	"github.com/xavierca1/lead-relay/internal/infra/http/middleware"
)

const defaultAPIBaseURL = "https://api.resend.com"

// APISender delivers through a transactional email HTTP API. It exposes the
// same contract as the SMTP backend.
type APISender struct {
	baseURL string
	apiKey  string
	from    string
	to      string
	http    *http.Client
}

func NewAPISender(cfg Config) *APISender {
	baseURL := cfg.APIBaseURL
	if baseURL == "" {
		baseURL = defaultAPIBaseURL
	}
	return &APISender{
		baseURL: baseURL,
		apiKey:  cfg.APIKey,
		from:    cfg.From,
		to:      cfg.To,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

func (s *APISender) Send(body string, lead *entity.Lead) error {
	url := fmt.Sprintf("%s/emails", s.baseURL)

	payload := apiEmailRequest{
		From:    fmt.Sprintf("ManyChat Leads <%s>", s.from),
		To:      []string{s.to},
		Subject: leadSubject(lead),
		Text:    body,
	}

	jsonBody, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal email payload: %w", err)
	}

	req, err := http.NewRequest("POST", url, bytes.NewBuffer(jsonBody))
	if err != nil {
		return err
	}
	s.setHeaders(req)

	resp, err := s.http.Do(req)
	if err != nil {
		middleware.RecordEmailSend("api", "error")
		return &entity.DeliveryError{Cause: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		respBody, _ := io.ReadAll(resp.Body)
		middleware.RecordEmailSend("api", "error")
		return &entity.DeliveryError{
			Cause: fmt.Errorf("mail API rejected the message (status %d): %s", resp.StatusCode, string(respBody)),
		}
	}

	var response apiEmailResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		// Message was accepted; a bad response body is not a delivery failure.
		middleware.RecordEmailSend("api", "ok")
		return nil
	}

	middleware.RecordEmailSend("api", "ok")
	return nil
}

// Verify probes the API with the configured key.
func (s *APISender) Verify() error {
	req, err := http.NewRequest("GET", fmt.Sprintf("%s/domains", s.baseURL), nil)
	if err != nil {
		return err
	}
	s.setHeaders(req)

	resp, err := s.http.Do(req)
	if err != nil {
		return &entity.DeliveryError{Cause: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return &entity.DeliveryError{Cause: fmt.Errorf("mail API rejected the credentials (status %d)", resp.StatusCode)}
	}

	return nil
}

func (s *APISender) setHeaders(req *http.Request) {
	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	req.Header.Set("Content-Type", "application/json")
}
