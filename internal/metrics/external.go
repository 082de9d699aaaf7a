package metrics

import "time"

// RecordWebhookDelivery records one domain event webhook delivery attempt
func (m *Metrics) RecordWebhookDelivery(statusCode int, duration time.Duration, err error) {
	m.safeExecute("RecordWebhookDelivery", func() {
		status := "success"
		if err != nil || statusCode < 200 || statusCode >= 300 {
			status = "error"
		}
		m.WebhookDeliveriesTotal.WithLabelValues(status).Inc()
		m.WebhookDeliveryDuration.Observe(duration.Seconds())
	})
}
