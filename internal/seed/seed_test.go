package seed

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"librarycatalog/internal/library"
	"librarycatalog/internal/notify"
)

const sample = `
members: [user01, user02]
books:
  - title: El Gran Gatsby
    author: F. Scott Fitzgerald
    isbn: "123456789"
  - title: "1984"
    author: George Orwell
    isbn: "987654321"
loans:
  - isbn: "123456789"
    borrower_id: user01
`

func TestParse(t *testing.T) {
	f, err := Parse([]byte(sample))
	require.NoError(t, err)

	assert.Equal(t, []string{"user01", "user02"}, f.Members)
	require.Len(t, f.Books, 2)
	assert.Equal(t, "1984", f.Books[1].Title)
	assert.Equal(t, Loan{ISBN: "123456789", BorrowerID: "user01"}, f.Loans[0])
}

func TestParse_Invalid(t *testing.T) {
	_, err := Parse([]byte("books: [unclosed"))
	assert.Error(t, err)
}

func TestLoad(t *testing.T) {
	p := filepath.Join(t.TempDir(), "seed.yaml")
	require.NoError(t, os.WriteFile(p, []byte(sample), 0o644))

	f, err := Load(p)
	require.NoError(t, err)
	assert.Len(t, f.Books, 2)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestApply(t *testing.T) {
	rec := &notify.Recorder{}
	m := library.NewManager(rec)
	f, err := Parse([]byte(sample))
	require.NoError(t, err)

	var members []string
	err = Apply(context.Background(), m, f, func(id string) library.Subscriber {
		members = append(members, id)
		return rec
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"user01", "user02"}, members)
	assert.Len(t, m.Books(), 2)
	assert.Len(t, rec.Books(), 4, "two members hear about two books")
	require.Len(t, m.Loans(), 1)
	assert.Equal(t, "user01", rec.Messages()[0].RecipientID)
}

func TestApply_UnknownLoan(t *testing.T) {
	m := library.NewManager(&notify.Recorder{})
	f := File{
		Books: []Book{{Title: "Dune", ISBN: "42"}},
		Loans: []Loan{{ISBN: "43", BorrowerID: "user01"}},
	}

	err := Apply(context.Background(), m, f, nil)

	assert.True(t, errors.Is(err, library.ErrNotFound))
	assert.Len(t, m.Books(), 1)
}
