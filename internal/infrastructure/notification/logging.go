package notification

import (
	"context"

	"go.uber.org/zap"
)

// LoggingNotifier logs notifications instead of delivering them.
// Used in development and when SMTP is disabled in configuration.
type LoggingNotifier struct {
	logger *zap.Logger
}

// NewLoggingNotifier creates a notifier that only logs
func NewLoggingNotifier(logger *zap.Logger) *LoggingNotifier {
	return &LoggingNotifier{logger: logger}
}

// Send logs the message and reports success
func (n *LoggingNotifier) Send(ctx context.Context, msg Message) error {
	n.logger.Info("notification (smtp disabled)",
		zap.String("to", msg.To),
		zap.String("subject", msg.Subject),
	)
	return nil
}

// Ensure LoggingNotifier implements Notifier
var _ Notifier = (*LoggingNotifier)(nil)
