package library

import "context"

//go:generate mockgen -source=ports.go -destination=mock_ports.go -package=library

// Notifier delivers a message to a single recipient. The Manager uses it for
// loan and return confirmations and never retries a failed delivery.
type Notifier interface {
	Notify(ctx context.Context, recipientID, message string) error
}

// Subscriber is told about every book added to the catalog.
type Subscriber interface {
	Update(ctx context.Context, book Book) error
}

// SubscriberFunc adapts a plain function to the Subscriber interface.
type SubscriberFunc func(ctx context.Context, book Book) error

func (f SubscriberFunc) Update(ctx context.Context, book Book) error {
	return f(ctx, book)
}
