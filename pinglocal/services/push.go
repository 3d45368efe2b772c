package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"
)

// DefaultPushEndpoint is the Expo push gateway.
const DefaultPushEndpoint = "https://exp.host/--/api/v2/push/send"

// PushMessage is one notification for a single device token.
type PushMessage struct {
	To    string            `json:"to"`
	Title string            `json:"title"`
	Body  string            `json:"body"`
	Data  map[string]string `json:"data,omitempty"`
}

// PushSender sends a push notification to a device token.
type PushSender interface {
	Send(ctx context.Context, msg PushMessage) error
}

// ExpoPushClient talks to the Expo push HTTP API.
type ExpoPushClient struct {
	http     *http.Client
	endpoint string
}

func NewExpoPushClient(endpoint string) *ExpoPushClient {
	if endpoint == "" {
		endpoint = DefaultPushEndpoint
	}
	return &ExpoPushClient{
		http:     &http.Client{Timeout: 10 * time.Second},
		endpoint: endpoint,
	}
}

func (c *ExpoPushClient) Send(ctx context.Context, msg PushMessage) error {
	payload, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("encoding push message: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("push gateway returned status %d: %s", resp.StatusCode, body)
	}
	return nil
}

// TokenRegistry maps user ids to their current device push token. The
// consumer app re-registers its token on every launch, so the newest write
// wins and stale tokens age out naturally.
type TokenRegistry struct {
	tokens sync.Map // userID -> device token
}

func NewTokenRegistry() *TokenRegistry {
	return &TokenRegistry{}
}

func (r *TokenRegistry) Register(userID, token string) {
	if userID == "" || token == "" {
		return
	}
	r.tokens.Store(userID, token)
}

func (r *TokenRegistry) Lookup(userID string) (string, bool) {
	v, ok := r.tokens.Load(userID)
	if !ok {
		return "", false
	}
	return v.(string), true
}

func (r *TokenRegistry) Remove(userID string) {
	r.tokens.Delete(userID)
}
