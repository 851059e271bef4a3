package notify

import (
	"context"
	"sync"

	"librarycatalog/internal/library"
)

type Message struct {
	RecipientID string
	Text        string
}

// Recorder keeps every message and announced book in memory. It satisfies
// both library.Notifier and library.Subscriber.
type Recorder struct {
	mu       sync.Mutex
	messages []Message
	books    []library.Book
}

func (r *Recorder) Notify(_ context.Context, recipientID, message string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages = append(r.messages, Message{RecipientID: recipientID, Text: message})
	return nil
}

func (r *Recorder) Update(_ context.Context, book library.Book) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.books = append(r.books, book)
	return nil
}

func (r *Recorder) Messages() []Message {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Message(nil), r.messages...)
}

func (r *Recorder) Books() []library.Book {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]library.Book(nil), r.books...)
}
