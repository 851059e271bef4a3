package library

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuilder(t *testing.T) {
	t.Run("chained fields", func(t *testing.T) {
		b := NewBuilder().
			WithISBN("987654321").
			WithTitle("1984").
			WithAuthor("George Orwell").
			Build()

		assert.Equal(t, Book{Title: "1984", Author: "George Orwell", ISBN: "987654321"}, b)
	})

	t.Run("unset fields are empty", func(t *testing.T) {
		b := NewBuilder().WithTitle("Untitled draft").Build()

		assert.Equal(t, "Untitled draft", b.Title)
		assert.Empty(t, b.Author)
		assert.Empty(t, b.ISBN)
	})

	t.Run("last write wins", func(t *testing.T) {
		b := NewBuilder().WithISBN("111").WithISBN("222").Build()
		assert.Equal(t, "222", b.ISBN)
	})

	t.Run("built books are independent of the builder", func(t *testing.T) {
		builder := NewBuilder().WithTitle("first")
		first := builder.Build()
		second := builder.WithTitle("second").Build()

		assert.Equal(t, "first", first.Title)
		assert.Equal(t, "second", second.Title)
	})

	t.Run("no validation", func(t *testing.T) {
		b := NewBuilder().WithISBN("not-an-isbn").Build()
		assert.Equal(t, "not-an-isbn", b.ISBN)
	})
}
