package notify

import (
	"context"
	"errors"
	"log/slog"

	"golang.org/x/time/rate"

	"librarycatalog/internal/library"
)

// ErrThrottled is returned when a message is dropped because the send budget
// is exhausted.
var ErrThrottled = errors.New("notification throttled")

// ThrottledNotifier caps the rate at which messages reach the wrapped
// Notifier. Messages over budget are dropped rather than queued so that
// callers are never blocked.
type ThrottledNotifier struct {
	next    library.Notifier
	limiter *rate.Limiter
	logger  *slog.Logger
}

func NewThrottledNotifier(next library.Notifier, rps float64, burst int, logger *slog.Logger) *ThrottledNotifier {
	if burst < 1 {
		burst = 1
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &ThrottledNotifier{
		next:    next,
		limiter: rate.NewLimiter(rate.Limit(rps), burst),
		logger:  logger,
	}
}

func (t *ThrottledNotifier) Notify(ctx context.Context, recipientID, message string) error {
	if !t.limiter.Allow() {
		t.logger.WarnContext(ctx, "notification dropped", "recipient", recipientID)
		return ErrThrottled
	}
	return t.next.Notify(ctx, recipientID, message)
}
