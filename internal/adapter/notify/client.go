package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/avelora/shopfront/internal/domain/model"
)

// Client pushes order state changes to the UI layer.
type Client interface {
	OrderTransitioned(ctx context.Context, orderID string, displayID int64, from, to model.OrderStatus) error
}

// event is the JSON payload delivered to the webhook.
type event struct {
	OrderID   string `json:"orderId"`
	DisplayID int64  `json:"displayId"`
	From      string `json:"from"`
	To        string `json:"to"`
}

// HTTPClient implements Client via a webhook POST. A client constructed with
// an empty URL is a no-op, for deployments without a UI webhook.
type HTTPClient struct {
	endpoint   *url.URL
	httpClient *http.Client
	logger     *slog.Logger
}

// NewHTTPClient creates the webhook client with default timeout.
func NewHTTPClient(webhookURL string, logger *slog.Logger) (*HTTPClient, error) {
	client := &HTTPClient{
		logger: logger,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
	if webhookURL == "" {
		return client, nil
	}

	parsed, err := url.Parse(webhookURL)
	if err != nil {
		return nil, fmt.Errorf("parse notify url: %w", err)
	}
	if !parsed.IsAbs() {
		return nil, fmt.Errorf("notify url must be absolute")
	}
	client.endpoint = parsed
	return client, nil
}

// OrderTransitioned delivers one transition event.
func (c *HTTPClient) OrderTransitioned(ctx context.Context, orderID string, displayID int64, from, to model.OrderStatus) error {
	if c.endpoint == nil {
		return nil
	}

	payload, err := json.Marshal(event{
		OrderID:   orderID,
		DisplayID: displayID,
		From:      string(from),
		To:        string(to),
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint.String(), bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusMultipleChoices {
		body, _ := io.ReadAll(resp.Body)
		c.logger.Error("notify request failed", slog.Int("status", resp.StatusCode), slog.String("body", string(body)))
		return fmt.Errorf("notify error: %s", resp.Status)
	}
	return nil
}
