package notify

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"librarycatalog/internal/library"
)

type mockNotifier struct {
	mock.Mock
}

func (m *mockNotifier) Notify(ctx context.Context, recipientID, message string) error {
	args := m.Called(ctx, recipientID, message)
	return args.Error(0)
}

func bufferLogger() (*slog.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	return slog.New(slog.NewTextHandler(&buf, nil)), &buf
}

func TestLogNotifier_Notify(t *testing.T) {
	logger, buf := bufferLogger()
	n := NewLogNotifier(logger)

	err := n.Notify(context.Background(), "user01", "You have borrowed the book 1984")

	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "recipient=user01")
	assert.Contains(t, buf.String(), "You have borrowed the book 1984")
}

func TestMember_Update(t *testing.T) {
	logger, buf := bufferLogger()
	m := NewMember("user02", logger)

	err := m.Update(context.Background(), library.Book{Title: "Dune", ISBN: "42"})

	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "member=user02")
	assert.Contains(t, buf.String(), "title=Dune")
}

func TestThrottledNotifier_Notify(t *testing.T) {
	ctx := context.Background()

	t.Run("forwards within budget", func(t *testing.T) {
		next := new(mockNotifier)
		next.On("Notify", ctx, "user01", "hello").Return(nil).Once()
		n := NewThrottledNotifier(next, 1, 1, slog.Default())

		assert.NoError(t, n.Notify(ctx, "user01", "hello"))
		next.AssertExpectations(t)
	})

	t.Run("drops over budget", func(t *testing.T) {
		logger, buf := bufferLogger()
		next := new(mockNotifier)
		next.On("Notify", ctx, "user01", mock.Anything).Return(nil).Once()
		n := NewThrottledNotifier(next, 0.001, 1, logger)

		require.NoError(t, n.Notify(ctx, "user01", "first"))
		err := n.Notify(ctx, "user01", "second")

		assert.True(t, errors.Is(err, ErrThrottled))
		next.AssertNumberOfCalls(t, "Notify", 1)
		assert.Contains(t, buf.String(), "notification dropped")
	})

	t.Run("propagates downstream errors", func(t *testing.T) {
		next := new(mockNotifier)
		next.On("Notify", ctx, "user01", "hello").Return(errors.New("down"))
		n := NewThrottledNotifier(next, 10, 0, nil)

		assert.EqualError(t, n.Notify(ctx, "user01", "hello"), "down")
	})
}

func TestRecorder_WithManager(t *testing.T) {
	rec := &Recorder{}
	m := library.NewManager(rec)
	m.RegisterObserver(rec)
	ctx := context.Background()

	m.AddBook(ctx, "El Gran Gatsby", "F. Scott Fitzgerald", "123456789")
	_, ok := m.LoanBook(ctx, "123456789", "user01")
	require.True(t, ok)
	_, ok = m.ReturnBook(ctx, "123456789", "user01")
	require.True(t, ok)

	require.Len(t, rec.Books(), 1)
	assert.Equal(t, "123456789", rec.Books()[0].ISBN)

	msgs := rec.Messages()
	require.Len(t, msgs, 2)
	assert.Equal(t, "user01", msgs[0].RecipientID)
	assert.Contains(t, msgs[0].Text, "El Gran Gatsby")
	assert.Contains(t, msgs[1].Text, "123456789")
}

func TestThrottledNotifier_InManagerDoesNotBlockLoans(t *testing.T) {
	rec := &Recorder{}
	m := library.NewManager(NewThrottledNotifier(rec, 0.001, 1, slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))))
	ctx := context.Background()
	m.AddBook(ctx, "1984", "George Orwell", "987654321")

	_, ok1 := m.LoanBook(ctx, "987654321", "user01")
	_, ok2 := m.LoanBook(ctx, "987654321", "user02")

	assert.True(t, ok1)
	assert.True(t, ok2)
	assert.Len(t, m.Loans(), 2)
	assert.Len(t, rec.Messages(), 1)
}
