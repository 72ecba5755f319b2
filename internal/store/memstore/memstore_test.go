package memstore

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/johndosdos/escola/internal/model"
	"github.com/johndosdos/escola/internal/store"
)

const parent = "joao.silva@exemplo.com"

func TestInboxSeeded(t *testing.T) {
	s := New(0)
	msgs, err := s.Inbox(context.Background(), parent)
	require.NoError(t, err)

	require.Len(t, msgs, 5)
	assert.Equal(t, "1", msgs[0].ID)
	assert.Equal(t, "5", msgs[4].ID)

	// Callers get copies.
	msgs[0].Title = "changed"
	again, err := s.Inbox(context.Background(), parent)
	require.NoError(t, err)
	assert.NotEqual(t, "changed", again[0].Title)
}

func TestInboxDelayHonoursContext(t *testing.T) {
	s := New(time.Hour)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := s.Inbox(ctx, parent)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestInboxConcurrentLoad(t *testing.T) {
	s := New(20 * time.Millisecond)

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			msgs, err := s.Inbox(context.Background(), parent)
			assert.NoError(t, err)
			assert.Len(t, msgs, 5)
		}()
	}
	wg.Wait()
}

func TestInboxSharedLoadSurvivesCancel(t *testing.T) {
	s := New(100 * time.Millisecond)

	first, cancel := context.WithCancel(context.Background())
	firstErr := make(chan error, 1)
	go func() {
		_, err := s.Inbox(first, parent)
		firstErr <- err
	}()

	// Join the load the first caller started, then abandon that caller.
	time.Sleep(20 * time.Millisecond)
	type result struct {
		msgs []model.Message
		err  error
	}
	second := make(chan result, 1)
	go func() {
		msgs, err := s.Inbox(context.Background(), parent)
		second <- result{msgs, err}
	}()
	time.Sleep(20 * time.Millisecond)
	cancel()

	assert.ErrorIs(t, <-firstErr, context.Canceled)

	got := <-second
	require.NoError(t, got.err)
	assert.Len(t, got.msgs, 5)
}

func TestMarkRead(t *testing.T) {
	ctx := context.Background()
	s := New(0)

	require.NoError(t, s.MarkRead(ctx, parent, "1"))
	msgs, err := s.Inbox(ctx, parent)
	require.NoError(t, err)
	assert.True(t, msgs[0].Read)

	sent, err := s.Sent(ctx)
	require.NoError(t, err)
	assert.Equal(t, 146, sent[0].ReadCount)

	// Reading twice does not count twice.
	require.NoError(t, s.MarkRead(ctx, parent, "1"))
	sent, err = s.Sent(ctx)
	require.NoError(t, err)
	assert.Equal(t, 146, sent[0].ReadCount)

	// Other parents are unaffected.
	other, err := s.Inbox(ctx, "maria@exemplo.com")
	require.NoError(t, err)
	assert.False(t, other[0].Read)

	assert.ErrorIs(t, s.MarkRead(ctx, parent, "404"), store.ErrNotFound)
}

func TestSendGeneral(t *testing.T) {
	ctx := context.Background()
	s := New(0)

	// One inbox loaded before sending, one after.
	_, err := s.Inbox(ctx, parent)
	require.NoError(t, err)

	got, err := s.Send(ctx, model.SentMessage{
		Title:    "Passeio",
		Content:  "Passeio ao museu",
		Type:     model.TypeGeneral,
		Category: model.Category("Evento Escolar"),
	}, "Secretaria Escolar")
	require.NoError(t, err)
	assert.NotEmpty(t, got.ID)
	assert.Equal(t, 420, got.TotalRecipients)
	assert.Zero(t, got.ReadCount)
	assert.False(t, got.Date.IsZero())

	for _, owner := range []string{parent, "later@exemplo.com"} {
		msgs, err := s.Inbox(ctx, owner)
		require.NoError(t, err)
		require.Len(t, msgs, 6)
		assert.Equal(t, got.ID, msgs[0].ID)
		assert.Equal(t, "Secretaria Escolar", msgs[0].Sender)
		assert.False(t, msgs[0].Read)
	}

	sent, err := s.Sent(ctx)
	require.NoError(t, err)
	assert.Equal(t, got.ID, sent[0].ID)

	stats, err := s.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 129, stats.Messages.Total)
	assert.Equal(t, 46, stats.Messages.General)
}

func TestSendIndividual(t *testing.T) {
	ctx := context.Background()
	s := New(0)

	to := store.SeedRecipients()[0].Email
	got, err := s.Send(ctx, model.SentMessage{
		Title:     "Conversa",
		Content:   "Podemos conversar?",
		Type:      model.TypeIndividual,
		Recipient: to,
	}, "Secretaria Escolar")
	require.NoError(t, err)
	assert.Equal(t, 1, got.TotalRecipients)

	msgs, err := s.Inbox(ctx, to)
	require.NoError(t, err)
	assert.Len(t, msgs, 6)

	msgs, err = s.Inbox(ctx, parent)
	require.NoError(t, err)
	assert.Len(t, msgs, 5)

	_, err = s.Send(ctx, model.SentMessage{
		Title: "x", Content: "y", Type: model.TypeIndividual, Recipient: "nobody@exemplo.com",
	}, "Secretaria Escolar")
	assert.ErrorIs(t, err, store.ErrNotFound)

	_, err = s.Send(ctx, model.SentMessage{Title: "x", Content: "y", Type: "broadcast"}, "")
	assert.Error(t, err)
}

func TestOverview(t *testing.T) {
	o, err := New(0).Overview(context.Background(), parent)
	require.NoError(t, err)
	assert.Equal(t, "Joao", o.Name)
	assert.Equal(t, 85, o.Attendance)
}
