package notify

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestTelegramSend(t *testing.T) {
	var gotPath string
	var gotQuery map[string]string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		gotPath = r.URL.Path
		gotQuery = map[string]string{
			"chat_id":    r.URL.Query().Get("chat_id"),
			"parse_mode": r.URL.Query().Get("parse_mode"),
			"text":       r.URL.Query().Get("text"),
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	n := NewTelegramNotifier(srv.URL, "123456:ABC", "-1009876", 5*time.Second)
	text := "*TEMPERATURE IS VERY HIGH > 80c:*\nCurrent Temp: *82.0c*!"

	err := n.Send(context.Background(), Event{Kind: EventThreshold, Text: text, Celsius: 82})
	require.NoError(t, err)

	require.Equal(t, "/bot123456:ABC/sendMessage", gotPath)
	require.Equal(t, "-1009876", gotQuery["chat_id"])
	require.Equal(t, "Markdown", gotQuery["parse_mode"])
	require.Equal(t, text, gotQuery["text"], "text must survive URL encoding intact")
}

func TestTelegramSendNon200(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"ok":false,"error_code":400}`, http.StatusBadRequest)
	}))
	defer srv.Close()

	n := NewTelegramNotifier(srv.URL, "tok", "42", 5*time.Second)

	err := n.Send(context.Background(), Event{Kind: EventThreshold, Text: "hot"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "400")
}

func TestTelegramSendServerUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	n := NewTelegramNotifier(srv.URL, "tok", "42", time.Second)

	err := n.Send(context.Background(), Event{Kind: EventStopped, Text: "Temp monitor stopped."})
	require.Error(t, err)
}

func TestTelegramValidate(t *testing.T) {
	n := NewTelegramNotifier(TelegramAPIBase, "tok", "42", time.Second)
	require.NoError(t, n.Validate())

	n = NewTelegramNotifier(TelegramAPIBase, "", "42", time.Second)
	require.Error(t, n.Validate())

	n = NewTelegramNotifier(TelegramAPIBase, "tok", "", time.Second)
	require.Error(t, n.Validate())
}
