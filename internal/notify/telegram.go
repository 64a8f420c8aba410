package notify

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
)

// TelegramAPIBase is the production Bot API endpoint. Tests point the
// notifier at a local server instead.
const TelegramAPIBase = "https://api.telegram.org"

// TelegramNotifier sends alerts via the Telegram Bot API.
type TelegramNotifier struct {
	BotToken string
	ChatID   string

	client *resty.Client
}

// NewTelegramNotifier creates a Telegram notifier talking to the Bot API at
// baseURL.
func NewTelegramNotifier(baseURL, botToken, chatID string, timeout time.Duration) *TelegramNotifier {
	return &TelegramNotifier{
		BotToken: botToken,
		ChatID:   chatID,
		client:   resty.New().SetBaseURL(baseURL).SetTimeout(timeout),
	}
}

func (t *TelegramNotifier) Type() string { return "telegram" }

func (t *TelegramNotifier) Validate() error {
	if t.BotToken == "" {
		return errors.New("telegram: bot_token is required")
	}
	if t.ChatID == "" {
		return errors.New("telegram: chat_id is required")
	}
	return nil
}

// Send delivers the rendered event text as a Markdown message. Only HTTP
// 200 counts as delivered; the Bot API reports failures with other statuses.
func (t *TelegramNotifier) Send(ctx context.Context, event Event) error {
	resp, err := t.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"chat_id":    t.ChatID,
			"parse_mode": "Markdown",
			"text":       event.Text,
		}).
		Get("/bot" + t.BotToken + "/sendMessage")
	if err != nil {
		return fmt.Errorf("telegram: send request: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return fmt.Errorf("telegram: unexpected status %d", resp.StatusCode())
	}
	return nil
}
