package repository

import (
	"context"

	"go.uber.org/zap"

	"guild-hub-api/internal/client"
	"guild-hub-api/internal/domain"
)

// EventPublisher receives domain events after the owning write has committed
type EventPublisher interface {
	Publish(ctx context.Context, event domain.Event) error
}

// LoggingEventPublisher writes events to the structured log. It stands in for
// a real message bus and keeps the after-commit contract exercised.
type LoggingEventPublisher struct {
	logger *zap.Logger
}

// NewLoggingEventPublisher creates a publisher that logs each event
func NewLoggingEventPublisher(logger *zap.Logger) *LoggingEventPublisher {
	return &LoggingEventPublisher{logger: logger}
}

func (p *LoggingEventPublisher) Publish(ctx context.Context, event domain.Event) error {
	p.logger.Info("domain event published", zap.String("event", event.EventName()))
	return nil
}

// WebhookEventPublisher forwards events to an external HTTP endpoint. The
// underlying client swallows delivery failures, keeping publishing best-effort.
type WebhookEventPublisher struct {
	webhook client.EventWebhookClient
}

// NewWebhookEventPublisher creates a publisher backed by the webhook client
func NewWebhookEventPublisher(webhook client.EventWebhookClient) *WebhookEventPublisher {
	return &WebhookEventPublisher{webhook: webhook}
}

func (p *WebhookEventPublisher) Publish(ctx context.Context, event domain.Event) error {
	return p.webhook.PostEvent(ctx, client.EventEnvelope{
		Name:    event.EventName(),
		Payload: event,
	})
}

// eventSource is satisfied by every aggregate embedding EventRecorder
type eventSource interface {
	DrainEvents() []domain.Event
}

// EventDispatcher drains pending events from aggregates once their write has
// committed and hands them to the publisher. Delivery is at most once: a
// publish failure is logged and dropped, never retried or rolled back, so
// events must only drive best-effort side effects.
type EventDispatcher struct {
	publisher EventPublisher
	logger    *zap.Logger
}

// NewEventDispatcher creates a dispatcher over publisher
func NewEventDispatcher(publisher EventPublisher, logger *zap.Logger) *EventDispatcher {
	return &EventDispatcher{publisher: publisher, logger: logger}
}

// Dispatch publishes all pending events of the given aggregates. Call only
// after the corresponding repository write has returned successfully.
func (d *EventDispatcher) Dispatch(ctx context.Context, sources ...eventSource) {
	for _, src := range sources {
		if src == nil {
			continue
		}
		for _, event := range src.DrainEvents() {
			if err := d.publisher.Publish(ctx, event); err != nil {
				d.logger.Warn("failed to publish domain event",
					zap.String("event", event.EventName()),
					zap.Error(err))
			}
		}
	}
}
