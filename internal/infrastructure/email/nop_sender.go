package email

import (
	"context"

	"go.uber.org/zap"
)

// NopSender satisfies the email port without sending anything. Used when
// email is disabled in configuration; each suppressed send is logged at
// debug level so the workflow remains observable.
type NopSender struct {
	logger *zap.Logger
}

// NewNopSender creates a no-op sender
func NewNopSender(logger *zap.Logger) *NopSender {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NopSender{logger: logger}
}

// Send logs and drops the message
func (s *NopSender) Send(ctx context.Context, to, subject, body string) error {
	s.logger.Debug("email disabled, dropping message",
		zap.String("to", to),
		zap.String("subject", subject))
	return nil
}
