package email

import (
	"context"
	"log/slog"

	"github.com/dmitrymomot/memberkit/pkg/logger"
)

type logSender struct {
	log *slog.Logger
}

// NewLogSender returns a Sender that writes messages to the log instead of
// delivering them. Used in development and when Postmark is not configured.
func NewLogSender(log *slog.Logger) Sender {
	if log == nil {
		log = logger.Discard()
	}
	return &logSender{log: log.With(logger.Component("email"))}
}

func (s *logSender) Send(ctx context.Context, msg Message) error {
	if err := msg.Validate(); err != nil {
		return err
	}
	s.log.InfoContext(ctx, "email not delivered, logging instead",
		slog.String("to", msg.To),
		slog.String("subject", msg.Subject),
		slog.String("tag", msg.Tag),
		slog.String("body", msg.TextBody),
	)
	return nil
}

// New picks the Postmark sender when configured, the log sender otherwise.
func New(cfg Config, log *slog.Logger) (Sender, error) {
	if !cfg.Enabled() {
		return NewLogSender(log), nil
	}
	return NewPostmarkSender(cfg)
}
