package library

// Book is an immutable catalog entry. Values are copied in and out of the
// Manager, so holding a Book never aliases catalog state.
type Book struct {
	Title  string `json:"title"`
	Author string `json:"author"`
	ISBN   string `json:"isbn"`
}

// Builder stages the fields of a Book. Unset fields stay empty and no
// validation is performed.
type Builder struct {
	title  string
	author string
	isbn   string
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{}
}

func (b *Builder) WithTitle(title string) *Builder {
	b.title = title
	return b
}

func (b *Builder) WithAuthor(author string) *Builder {
	b.author = author
	return b
}

func (b *Builder) WithISBN(isbn string) *Builder {
	b.isbn = isbn
	return b
}

// Build returns a Book from the staged fields. The builder may be reused;
// later changes do not affect books already built.
func (b *Builder) Build() Book {
	return Book{
		Title:  b.title,
		Author: b.author,
		ISBN:   b.isbn,
	}
}
