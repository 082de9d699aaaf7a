package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"guild-hub-api/internal/metrics"
)

// EventEnvelope is the wire shape of a domain event delivered to the webhook
type EventEnvelope struct {
	Name       string      `json:"name"`
	OccurredAt string      `json:"occurredAt"`
	Payload    interface{} `json:"payload,omitempty"`
}

// EventWebhookClient delivers domain events to an external HTTP endpoint.
// Delivery is best-effort: transport failures and non-2xx responses are
// logged and swallowed so they can never fail the originating write.
type EventWebhookClient interface {
	PostEvent(ctx context.Context, envelope EventEnvelope) error
}

// eventWebhookClient implements EventWebhookClient
type eventWebhookClient struct {
	url        string
	apiKey     string
	httpClient *http.Client
	logger     *zap.Logger
	metrics    *metrics.Metrics
}

// NewEventWebhookClient creates a webhook client posting to url
func NewEventWebhookClient(url, apiKey string, timeout time.Duration, logger *zap.Logger, m *metrics.Metrics) EventWebhookClient {
	return &eventWebhookClient{
		url:    url,
		apiKey: apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger:  logger,
		metrics: m,
	}
}

// PostEvent delivers one event envelope
func (c *eventWebhookClient) PostEvent(ctx context.Context, envelope EventEnvelope) error {
	if envelope.OccurredAt == "" {
		envelope.OccurredAt = time.Now().UTC().Format(time.RFC3339)
	}

	jsonBody, err := json.Marshal(envelope)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(jsonBody))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("X-Internal-API-Key", c.apiKey)
	}

	startTime := time.Now()
	resp, err := c.httpClient.Do(req)
	duration := time.Since(startTime)

	statusCode := 0
	if resp != nil {
		statusCode = resp.StatusCode
	}
	if c.metrics != nil {
		c.metrics.RecordWebhookDelivery(statusCode, duration, err)
	}

	if err != nil {
		c.logger.Warn("Failed to deliver event webhook",
			zap.String("event", envelope.Name),
			zap.Duration("duration", duration),
			zap.Error(err),
		)
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		c.logger.Debug("Event webhook delivered",
			zap.String("event", envelope.Name),
			zap.Duration("duration", duration),
		)
		return nil
	}

	c.logger.Warn("Event webhook returned non-success status",
		zap.String("event", envelope.Name),
		zap.Int("status_code", resp.StatusCode),
		zap.Duration("duration", duration),
	)
	return nil
}
