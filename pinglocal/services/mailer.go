package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Mailer sends transactional email through an HTTP email API.
type Mailer struct {
	http     *http.Client
	endpoint string
	apiKey   string
	from     string
}

func NewMailer(endpoint, apiKey, from string) *Mailer {
	return &Mailer{
		http:     &http.Client{Timeout: 15 * time.Second},
		endpoint: endpoint,
		apiKey:   apiKey,
		from:     from,
	}
}

// Enabled reports whether the mailer is configured. An unconfigured mailer
// is normal in development; callers skip the email leg.
func (m *Mailer) Enabled() bool {
	return m != nil && m.endpoint != "" && m.apiKey != ""
}

func (m *Mailer) Send(ctx context.Context, to, subject, body string) error {
	payload, err := json.Marshal(map[string]string{
		"from":    m.from,
		"to":      to,
		"subject": subject,
		"text":    body,
	})
	if err != nil {
		return fmt.Errorf("encoding email: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.endpoint, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+m.apiKey)

	resp, err := m.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("email API returned status %d: %s", resp.StatusCode, msg)
	}
	return nil
}
