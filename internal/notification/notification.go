package notification

import (
	"context"
	"log/slog"
)

const (
	// KindVisitorRegistered indicates a new walk-in registration.
	KindVisitorRegistered = "visitor_registered"
)

// Message describes a notification payload.
type Message struct {
	Kind      string
	VisitorID string
	Origem    string
}

// Notifier delivers registration events to downstream systems, such as a
// follow-up team channel.
type Notifier interface {
	Send(ctx context.Context, message Message) error
}

// LoggerNotifier is a stub implementation that writes notifications to the logger.
type LoggerNotifier struct {
	logger *slog.Logger
}

// NewLoggerNotifier constructs a logging notifier stub.
func NewLoggerNotifier(logger *slog.Logger) *LoggerNotifier {
	return &LoggerNotifier{logger: logger}
}

// Send writes the message to the structured logger.
func (n *LoggerNotifier) Send(_ context.Context, message Message) error {
	if n == nil || n.logger == nil {
		return nil
	}
	n.logger.Info("notification", "kind", message.Kind, "visitor_id", message.VisitorID, "origem", message.Origem)
	return nil
}
