// Package notify holds the delivery channels and subscribers that sit on the
// edges of the catalog: console delivery, rate limiting and in-memory
// recording.
package notify

import (
	"context"
	"log/slog"
)

// LogNotifier delivers messages by writing them to a logger. It stands in
// for an email channel and never fails.
type LogNotifier struct {
	logger *slog.Logger
}

func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) Notify(ctx context.Context, recipientID, message string) error {
	n.logger.InfoContext(ctx, "sending notification", "recipient", recipientID, "message", message)
	return nil
}
