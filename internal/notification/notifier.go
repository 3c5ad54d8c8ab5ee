// Package notification delivers outbound messages to the Telegram channel
// and answers the /status command.
package notification

import (
	"context"
	"log/slog"
)

// Notifier is the interface for all notification backends.
type Notifier interface {
	// Send delivers a message. Returns error if delivery fails.
	Send(ctx context.Context, text string) error
}

// LogNotifier logs messages instead of sending them (useful for development
// and for running without Telegram credentials).
type LogNotifier struct{}

func (LogNotifier) Send(ctx context.Context, text string) error {
	slog.Info("notify", "text", text)
	return nil
}

// Fanout delivers every message to all backends. A failing backend is
// logged and skipped — never retried, never fatal to the others.
type Fanout struct {
	backends []Notifier
}

// NewFanout creates a Fanout over the given backends.
func NewFanout(backends ...Notifier) *Fanout {
	return &Fanout{backends: backends}
}

func (f *Fanout) Send(ctx context.Context, text string) error {
	for _, n := range f.backends {
		if err := n.Send(ctx, text); err != nil {
			slog.Warn("notification send failed", "err", err)
		}
	}
	return nil
}
