// Package notify delivers operational alerts to a configured webhook.
package notify

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/thuanlv/eelfarm/internal/metrics"
)

// Notifier delivers alert messages to farm staff.
type Notifier interface {
	SendAlert(ctx context.Context, alert Alert) error
}

// Alert kinds delivered by the stock sweep.
const (
	KindLowStock = "low_stock"
	KindExpiry   = "expiry"
)

// Alert is one webhook payload.
type Alert struct {
	Kind     string    `json:"kind"`
	ItemKind string    `json:"itemKind"`
	ItemID   string    `json:"itemId"`
	ItemName string    `json:"itemName"`
	Message  string    `json:"message"`
	SentAt   time.Time `json:"sentAt"`
}

// WebhookClient is a resty-backed Notifier posting JSON alerts.
type WebhookClient struct {
	httpClient *resty.Client
	url        string
}

// NewWebhookClient builds a webhook notifier for the given URL.
func NewWebhookClient(url string) *WebhookClient {
	restyClient := resty.New()
	restyClient.
		SetHeader("Content-Type", "application/json").
		SetTimeout(15 * time.Second).
		SetRetryCount(2).
		SetRetryWaitTime(2 * time.Second)

	return &WebhookClient{
		httpClient: restyClient,
		url:        url,
	}
}

// SendAlert posts one alert. Non-2xx responses are reported as errors so the
// caller can log and move on; alerts are best-effort.
func (c *WebhookClient) SendAlert(ctx context.Context, alert Alert) error {
	if alert.SentAt.IsZero() {
		alert.SentAt = time.Now()
	}

	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(alert).
		Post(c.url)
	if err != nil {
		return fmt.Errorf("post alert webhook: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("alert webhook rejected with status %d: %s", resp.StatusCode(), resp.String())
	}

	metrics.ObserveAlertSent()
	return nil
}
