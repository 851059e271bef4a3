// Command demo runs a short catalog session against console notifications:
// two members subscribe, three books arrive, and one copy is loaned and
// returned.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	"librarycatalog/internal/library"
	"librarycatalog/internal/logging"
	"librarycatalog/internal/notify"
	"librarycatalog/internal/seed"
)

const defaultSeed = `
members: [user01, user02]
books:
  - {title: El Gran Gatsby, author: F. Scott Fitzgerald, isbn: "123456789"}
  - {title: "1984", author: George Orwell, isbn: "987654321"}
  - {title: El Señor de los Anillos, author: J.R.R. Tolkien, isbn: "555555555"}
loans:
  - {isbn: "123456789", borrower_id: user01}
`

func main() {
	seedPath := flag.String("seed", "", "YAML seed file (defaults to the built-in scenario)")
	format := flag.String("log-format", "text", "Log format: text or json")
	flag.Parse()

	logger := logging.New(logging.Config{Level: "info", Format: *format})
	if err := run(context.Background(), logger, *seedPath); err != nil {
		logger.Error("demo failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, logger *slog.Logger, seedPath string) error {
	f, err := loadSeed(seedPath)
	if err != nil {
		return err
	}

	manager := library.NewRegistry(notify.NewLogNotifier(logger)).Manager()
	newMember := func(id string) library.Subscriber { return notify.NewMember(id, logger) }
	if err := seed.Apply(ctx, manager, f, newMember); err != nil {
		return err
	}

	for _, b := range manager.Search("El") {
		logger.Info("search hit", "query", "El", "title", b.Title, "isbn", b.ISBN)
	}

	for _, l := range f.Loans {
		manager.ReturnBook(ctx, l.ISBN, l.BorrowerID)
	}
	logger.Info("demo finished", "books", len(manager.Books()), "open_loans", len(manager.Loans()))
	return nil
}

func loadSeed(path string) (seed.File, error) {
	if path == "" {
		return seed.Parse([]byte(defaultSeed))
	}
	return seed.Load(path)
}
