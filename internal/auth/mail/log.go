package mail

import (
	"context"
	"log/slog"

	"github.com/hibritu/hirehub/pkg/slogx"
)

// LogSender writes messages to the log instead of sending them. It is meant
// for local development: the logged body carries the verification code.
type LogSender struct {
	Logger *slog.Logger
}

func (s LogSender) Send(ctx context.Context, msg Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	l := s.Logger
	if l == nil {
		l = slogx.FromContext(ctx)
	}
	l.Info("mail (not sent)",
		"to", msg.To,
		"subject", msg.Subject,
		"body", msg.HTMLBody,
	)
	return nil
}
