package notify

import (
	"context"
	"time"

	"go.uber.org/zap"

	"tempmon/internal/config"
)

// Dispatcher fans events out to every configured notifier. Failures are
// logged and absorbed: one channel failing never stops the others, and
// never fails the monitoring pass.
type Dispatcher struct {
	notifiers []Notifier
	timeout   time.Duration
	device    string
	log       *zap.Logger
}

// NewDispatcher creates a dispatcher over a fixed set of notifiers. Events
// dispatched without a device name are stamped with device.
func NewDispatcher(notifiers []Notifier, timeout time.Duration, device string, log *zap.Logger) *Dispatcher {
	return &Dispatcher{notifiers: notifiers, timeout: timeout, device: device, log: log}
}

// Dispatch sends the event to all notifiers. Each send gets a fresh context
// so a shutdown notice still goes out after the run context is canceled.
func (d *Dispatcher) Dispatch(event Event) {
	if event.Device == "" {
		event.Device = d.device
	}
	if event.Timestamp == 0 {
		event.Timestamp = time.Now().Unix()
	}

	for _, n := range d.notifiers {
		ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
		if err := n.Send(ctx, event); err != nil {
			d.log.Error("notification send failed",
				zap.String("type", n.Type()),
				zap.String("kind", event.Kind),
				zap.Error(err),
			)
		} else {
			d.log.Info("notification sent",
				zap.String("type", n.Type()),
				zap.String("kind", event.Kind),
			)
		}
		cancel()
	}
}

// BuildNotifiers constructs the notifier set for a config: Telegram always,
// plus the webhook when one is configured.
func BuildNotifiers(cfg config.Config) []Notifier {
	notifiers := []Notifier{
		NewTelegramNotifier(TelegramAPIBase, cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Monitor.HTTPTimeout),
	}
	if cfg.Webhook != nil {
		notifiers = append(notifiers, NewWebhookNotifier(cfg.Webhook.URL, cfg.Webhook.Method, cfg.Monitor.HTTPTimeout))
	}
	return notifiers
}
