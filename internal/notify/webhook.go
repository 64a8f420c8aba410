package notify

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

// WebhookNotifier sends events to an HTTP endpoint as JSON.
type WebhookNotifier struct {
	URL    string
	Method string

	client *resty.Client
}

// NewWebhookNotifier creates a webhook notifier for the given URL and method.
func NewWebhookNotifier(url, method string, timeout time.Duration) *WebhookNotifier {
	return &WebhookNotifier{
		URL:    url,
		Method: method,
		client: resty.New().SetTimeout(timeout).SetAllowGetMethodPayload(true),
	}
}

func (w *WebhookNotifier) Type() string { return "webhook" }

func (w *WebhookNotifier) Validate() error {
	if w.URL == "" {
		return errors.New("webhook: url is required")
	}
	if w.Method == "" {
		return errors.New("webhook: method is required")
	}
	return nil
}

func (w *WebhookNotifier) Send(ctx context.Context, event Event) error {
	payload := map[string]interface{}{
		"kind":      event.Kind,
		"device":    event.Device,
		"text":      event.Text,
		"timestamp": event.Timestamp,
	}
	if event.Kind == EventThreshold {
		payload["celsius"] = event.Celsius
	}

	resp, err := w.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(payload).
		Execute(w.Method, w.URL)
	if err != nil {
		return fmt.Errorf("webhook: send request: %w", err)
	}
	if !resp.IsSuccess() {
		return fmt.Errorf("webhook: unexpected status %d", resp.StatusCode())
	}
	return nil
}
