package notification

import (
	"context"
	"log/slog"
	"strings"
	"time"
)

// StatusFunc renders the current status snapshot for a /status reply.
type StatusFunc func() string

// Listener long-polls the Bot API for the /status command and replies with
// a formatted snapshot. Runs alongside the scheduler in its own goroutine.
type Listener struct {
	tg       *TelegramNotifier
	status   StatusFunc
	pollWait time.Duration
}

// NewListener creates a command listener on top of a Telegram notifier.
func NewListener(tg *TelegramNotifier, status StatusFunc) *Listener {
	return &Listener{tg: tg, status: status, pollWait: 25 * time.Second}
}

// Run polls for updates until ctx is cancelled. Poll errors are logged and
// retried after a short backoff — never fatal.
func (l *Listener) Run(ctx context.Context) {
	var offset int64
	for {
		if ctx.Err() != nil {
			return
		}
		updates, err := l.tg.getUpdates(ctx, offset, l.pollWait)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			slog.Warn("command poll failed", "err", err)
			select {
			case <-ctx.Done():
				return
			case <-time.After(5 * time.Second):
			}
			continue
		}
		for _, u := range updates {
			if u.UpdateID >= offset {
				offset = u.UpdateID + 1
			}
			l.handle(ctx, u)
		}
	}
}

func (l *Listener) handle(ctx context.Context, u update) {
	if u.Message == nil {
		return
	}
	cmd := strings.TrimSpace(u.Message.Text)
	// Commands in groups arrive as "/status@botname".
	if cmd != "/status" && !strings.HasPrefix(cmd, "/status@") {
		return
	}
	if err := l.tg.ReplyTo(ctx, u.Message.Chat.ID, l.status()); err != nil {
		slog.Warn("status reply failed", "err", err)
	}
}
