package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"guild-hub-api/internal/metrics"
)

func webhookTestMetrics() *metrics.Metrics {
	return metrics.NewWithRegistry(prometheus.NewRegistry(), zap.NewNop())
}

func TestEventWebhookClient_PostEvent(t *testing.T) {
	var received EventEnvelope
	var apiKey string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		apiKey = r.Header.Get("X-Internal-API-Key")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	c := NewEventWebhookClient(srv.URL, "secret-key", 2*time.Second, zap.NewNop(), webhookTestMetrics())

	err := c.PostEvent(context.Background(), EventEnvelope{
		Name:    "guild.master_changed",
		Payload: map[string]string{"guildId": "g-1"},
	})
	require.NoError(t, err)

	assert.Equal(t, "secret-key", apiKey)
	assert.Equal(t, "guild.master_changed", received.Name)
	assert.NotEmpty(t, received.OccurredAt)
	_, parseErr := time.Parse(time.RFC3339, received.OccurredAt)
	assert.NoError(t, parseErr)
}

func TestEventWebhookClient_KeepsCallerSuppliedTimestamp(t *testing.T) {
	var received EventEnvelope
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
	}))
	defer srv.Close()

	c := NewEventWebhookClient(srv.URL, "", 2*time.Second, zap.NewNop(), webhookTestMetrics())

	err := c.PostEvent(context.Background(), EventEnvelope{
		Name:       "company.created",
		OccurredAt: "2026-08-01T10:00:00Z",
	})
	require.NoError(t, err)
	assert.Equal(t, "2026-08-01T10:00:00Z", received.OccurredAt)
}

func TestEventWebhookClient_SwallowsServerErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewEventWebhookClient(srv.URL, "", 2*time.Second, zap.NewNop(), webhookTestMetrics())
	err := c.PostEvent(context.Background(), EventEnvelope{Name: "company.created"})
	assert.NoError(t, err)
}

func TestEventWebhookClient_SwallowsTransportErrors(t *testing.T) {
	// nothing listens on this address
	c := NewEventWebhookClient("http://127.0.0.1:1", "", 500*time.Millisecond, zap.NewNop(), webhookTestMetrics())
	err := c.PostEvent(context.Background(), EventEnvelope{Name: "company.created"})
	assert.NoError(t, err)
}
