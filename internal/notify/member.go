package notify

import (
	"context"
	"log/slog"

	"librarycatalog/internal/library"
)

// Member is a library member who wants to hear about new arrivals.
type Member struct {
	ID     string
	logger *slog.Logger
}

func NewMember(id string, logger *slog.Logger) *Member {
	if logger == nil {
		logger = slog.Default()
	}
	return &Member{ID: id, logger: logger}
}

func (m *Member) Update(ctx context.Context, book library.Book) error {
	m.logger.InfoContext(ctx, "member notified of new book", "member", m.ID, "title", book.Title, "isbn", book.ISBN)
	return nil
}
