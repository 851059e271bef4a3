// Package seed loads an initial catalog from a YAML file.
//
// A seed file looks like:
//
//	members: [user01, user02]
//	books:
//	  - {title: "1984", author: George Orwell, isbn: "987654321"}
//	loans:
//	  - {isbn: "987654321", borrower_id: user01}
//
// Members are registered before books are added so they hear about every
// seeded book.
package seed

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"librarycatalog/internal/library"
)

type File struct {
	Members []string `yaml:"members"`
	Books   []Book   `yaml:"books"`
	Loans   []Loan   `yaml:"loans"`
}

type Book struct {
	Title  string `yaml:"title"`
	Author string `yaml:"author"`
	ISBN   string `yaml:"isbn"`
}

type Loan struct {
	ISBN       string `yaml:"isbn"`
	BorrowerID string `yaml:"borrower_id"`
}

func Load(path string) (File, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return File{}, fmt.Errorf("read seed %s: %w", path, err)
	}
	return Parse(b)
}

func Parse(b []byte) (File, error) {
	var f File
	if err := yaml.Unmarshal(b, &f); err != nil {
		return File{}, fmt.Errorf("parse seed: %w", err)
	}
	return f, nil
}

// Apply replays f against m. A loan whose ISBN is not in the catalog stops
// the replay with an error wrapping library.ErrNotFound; everything applied
// before it stays.
func Apply(ctx context.Context, m *library.Manager, f File, newMember func(id string) library.Subscriber) error {
	for _, id := range f.Members {
		m.RegisterObserver(newMember(id))
	}
	for _, b := range f.Books {
		m.AddBook(ctx, b.Title, b.Author, b.ISBN)
	}
	for _, l := range f.Loans {
		if _, ok := m.LoanBook(ctx, l.ISBN, l.BorrowerID); !ok {
			return fmt.Errorf("seed loan %s for %s: %w", l.ISBN, l.BorrowerID, library.ErrNotFound)
		}
	}
	return nil
}
