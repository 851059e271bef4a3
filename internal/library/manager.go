package library

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
)

// ErrNotFound reports a missing book or loan in layers that surface errors.
// The Manager itself treats not-found as a no-op and returns false instead.
var ErrNotFound = errors.New("not found")

// Manager owns the catalog, the open loans and the subscriber list.
//
// Duplicate ISBNs are accepted and removing a book with open loans is allowed;
// both are left to callers. Operations that look up by ISBN act on the first
// match in insertion order.
type Manager struct {
	mu          sync.RWMutex
	books       []Book
	loans       []Loan
	subscribers []Subscriber

	// dispatchMu keeps subscriber fan-out in catalog order.
	dispatchMu sync.Mutex

	notifier Notifier
	logger   *slog.Logger
	clock    Clock
	ids      IDGenerator
}

type Option func(*Manager)

func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) {
		if logger != nil {
			m.logger = logger
		}
	}
}

func WithClock(clock Clock) Option {
	return func(m *Manager) {
		if clock != nil {
			m.clock = clock
		}
	}
}

func WithIDGenerator(ids IDGenerator) Option {
	return func(m *Manager) {
		if ids != nil {
			m.ids = ids
		}
	}
}

// NewManager creates a Manager that sends loan and return confirmations
// through notifier. A nil notifier disables confirmations.
func NewManager(notifier Notifier, opts ...Option) *Manager {
	m := &Manager{
		notifier: notifier,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		clock:    realClock{},
		ids:      ulidGen{},
	}
	for _, opt := range opts {
		opt(m)
	}
	if notifier == nil {
		m.logger.Warn("no notifier configured, loan and return confirmations are disabled")
	}
	return m
}

// AddBook appends a new book to the catalog and then notifies every
// subscriber in registration order. It returns once all subscribers have been
// called.
func (m *Manager) AddBook(ctx context.Context, title, author, isbn string) Book {
	book := NewBuilder().WithTitle(title).WithAuthor(author).WithISBN(isbn).Build()

	m.dispatchMu.Lock()
	defer m.dispatchMu.Unlock()

	m.mu.Lock()
	m.books = append(m.books, book)
	subscribers := append([]Subscriber(nil), m.subscribers...)
	m.mu.Unlock()

	m.logger.Info("book added", "isbn", book.ISBN, "title", book.Title, "subscribers", len(subscribers))
	for i, s := range subscribers {
		m.deliver(ctx, i, s, book)
	}
	return book
}

// deliver calls one subscriber, containing both errors and panics.
func (m *Manager) deliver(ctx context.Context, idx int, s Subscriber, book Book) {
	defer func() {
		if r := recover(); r != nil {
			m.logger.Error("subscriber panicked", "subscriber", idx, "isbn", book.ISBN, "panic", fmt.Sprint(r))
		}
	}()
	if err := s.Update(ctx, book); err != nil {
		m.logger.Warn("subscriber update failed", "subscriber", idx, "isbn", book.ISBN, "error", err)
	}
}

// RemoveBook removes the first catalog entry with the given ISBN. It reports
// whether an entry was removed.
func (m *Manager) RemoveBook(isbn string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	idx := m.indexOfBookLocked(isbn)
	if idx < 0 {
		return false
	}
	m.books = append(m.books[:idx], m.books[idx+1:]...)
	m.logger.Info("book removed", "isbn", isbn)
	return true
}

// Search returns, in catalog order, every book whose title or author
// contains query or whose ISBN equals it. Matching is case-sensitive.
func (m *Manager) Search(query string) []Book {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]Book, 0)
	for _, b := range m.books {
		if strings.Contains(b.Title, query) || strings.Contains(b.Author, query) || b.ISBN == query {
			out = append(out, b)
		}
	}
	return out
}

// LoanBook opens a loan on the first catalog entry with the given ISBN and
// sends a confirmation to the borrower. ok is false when no book matches, in
// which case nothing changes.
func (m *Manager) LoanBook(ctx context.Context, isbn, borrowerID string) (loan Loan, ok bool) {
	m.mu.Lock()
	idx := m.indexOfBookLocked(isbn)
	if idx < 0 {
		m.mu.Unlock()
		return Loan{}, false
	}
	now := m.clock.Now()
	loan = Loan{
		ID:         m.ids.New(now),
		Book:       m.books[idx],
		BorrowerID: borrowerID,
		LoanedAt:   now,
	}
	m.loans = append(m.loans, loan)
	m.mu.Unlock()

	m.logger.Info("book loaned", "loan_id", loan.ID, "isbn", isbn, "borrower", borrowerID)
	m.notify(ctx, borrowerID, fmt.Sprintf("You have borrowed the book %s", loan.Book.Title))
	return loan, true
}

// ReturnBook closes the first open loan matching both ISBN and borrower and
// sends a return confirmation. ok is false when no such loan exists.
func (m *Manager) ReturnBook(ctx context.Context, isbn, borrowerID string) (loan Loan, ok bool) {
	m.mu.Lock()
	idx := -1
	for i, l := range m.loans {
		if l.Book.ISBN == isbn && l.BorrowerID == borrowerID {
			idx = i
			break
		}
	}
	if idx < 0 {
		m.mu.Unlock()
		return Loan{}, false
	}
	loan = m.loans[idx]
	m.loans = append(m.loans[:idx], m.loans[idx+1:]...)
	m.mu.Unlock()

	m.logger.Info("book returned", "loan_id", loan.ID, "isbn", isbn, "borrower", borrowerID)
	m.notify(ctx, borrowerID, fmt.Sprintf("You have returned the book with ISBN %s. Thank you!", loan.Book.ISBN))
	return loan, true
}

func (m *Manager) notify(ctx context.Context, recipientID, message string) {
	if m.notifier == nil {
		return
	}
	if err := m.notifier.Notify(ctx, recipientID, message); err != nil {
		m.logger.Warn("notification failed", "recipient", recipientID, "error", err)
	}
}

// RegisterObserver appends s to the subscriber list. Registering the same
// subscriber twice makes it receive every notification twice.
func (m *Manager) RegisterObserver(s Subscriber) {
	if s == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.subscribers = append(m.subscribers, s)
}

// Books returns a copy of the catalog in insertion order.
func (m *Manager) Books() []Book {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append(make([]Book, 0, len(m.books)), m.books...)
}

// Loans returns a copy of the open loans in the order they were made.
func (m *Manager) Loans() []Loan {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append(make([]Loan, 0, len(m.loans)), m.loans...)
}

func (m *Manager) SubscriberCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.subscribers)
}

func (m *Manager) indexOfBookLocked(isbn string) int {
	for i, b := range m.books {
		if b.ISBN == isbn {
			return i
		}
	}
	return -1
}
