package library

import (
	"time"

	"github.com/oklog/ulid/v2"
)

// Loan associates a catalog book with a borrower. Book is a copy taken when
// the loan was opened; the catalog keeps ownership of the entry itself.
type Loan struct {
	ID         string    `json:"id"`
	Book       Book      `json:"book"`
	BorrowerID string    `json:"borrower_id"`
	LoanedAt   time.Time `json:"loaned_at"`
}

type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time {
	return time.Now()
}

// IDGenerator produces loan identifiers. t is the time the loan is opened.
type IDGenerator interface {
	New(t time.Time) string
}

type ulidGen struct{}

func (ulidGen) New(t time.Time) string {
	return ulid.MustNew(ulid.Timestamp(t), ulid.DefaultEntropy()).String()
}
