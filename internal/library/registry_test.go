package library

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegistry_Manager(t *testing.T) {
	t.Run("returns the same instance", func(t *testing.T) {
		r := NewRegistry(nopNotifier{})
		a := r.Manager()
		b := r.Manager()

		assert.Same(t, a, b)
	})

	t.Run("state is shared through the registry", func(t *testing.T) {
		r := NewRegistry(nopNotifier{})
		r.Manager().AddBook(context.Background(), "1984", "George Orwell", "987654321")

		assert.Len(t, r.Manager().Search("Orwell"), 1)
	})

	t.Run("separate registries do not share state", func(t *testing.T) {
		a := NewRegistry(nopNotifier{})
		b := NewRegistry(nopNotifier{})
		a.Manager().AddBook(context.Background(), "1984", "George Orwell", "987654321")

		assert.NotSame(t, a.Manager(), b.Manager())
		assert.Empty(t, b.Manager().Books())
	})

	t.Run("concurrent first use builds one manager", func(t *testing.T) {
		r := NewRegistry(nopNotifier{})
		got := make([]*Manager, 16)
		var wg sync.WaitGroup
		for i := range got {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				got[i] = r.Manager()
			}(i)
		}
		wg.Wait()

		for _, m := range got {
			assert.Same(t, got[0], m)
		}
	})

	t.Run("options are applied", func(t *testing.T) {
		r := NewRegistry(nopNotifier{}, WithClock(fixedClock{loanTime}), WithIDGenerator(&seqIDs{}))
		m := r.Manager()
		m.AddBook(context.Background(), "1984", "George Orwell", "987654321")

		loan, ok := m.LoanBook(context.Background(), "987654321", "user01")

		assert.True(t, ok)
		assert.Equal(t, "loan-1", loan.ID)
		assert.Equal(t, loanTime, loan.LoanedAt)
	})
}
