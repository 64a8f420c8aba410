package notify

import "context"

// Event kinds.
const (
	EventThreshold = "threshold" // a threshold limit was exceeded
	EventStopped   = "stopped"   // the process is shutting down on a signal
)

// Event represents a temperature alert to be sent via notifiers.
type Event struct {
	Kind      string  // "threshold" or "stopped"
	Device    string  // name of the device the reading came from
	Text      string  // fully rendered message body
	Celsius   float64 // reading that triggered the event, threshold events only
	Timestamp int64
}

// Notifier is the interface that all notification channel implementations must satisfy.
type Notifier interface {
	// Type returns the notifier type identifier (e.g., "telegram", "webhook").
	Type() string

	// Send delivers an event. It should return an error if delivery fails.
	Send(ctx context.Context, event Event) error

	// Validate checks whether the notifier configuration is valid.
	Validate() error
}
