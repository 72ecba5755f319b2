package pgstore

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/johndosdos/escola/internal/database"
	"github.com/johndosdos/escola/internal/model"
	"github.com/johndosdos/escola/internal/store"
	"github.com/johndosdos/escola/internal/testutil"
)

const parent = "joao.silva@exemplo.com"

func newStore(t *testing.T) *Store {
	pool := testutil.DbInit(t, Migrate)
	s := New(pool)

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	require.NoError(t, s.Seed(ctx))
	// Seeding twice is harmless.
	require.NoError(t, s.Seed(ctx))
	return s
}

func TestInboxAndMarkRead(t *testing.T) {
	s := newStore(t)
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	msgs, err := s.Inbox(ctx, parent)
	require.NoError(t, err)
	require.Len(t, msgs, 5)
	assert.Equal(t, "1", msgs[0].ID)
	assert.False(t, msgs[0].Read)
	assert.True(t, msgs[1].Read)
	assert.Nil(t, msgs[1].Category)

	require.NoError(t, s.MarkRead(ctx, parent, "1"))
	require.NoError(t, s.MarkRead(ctx, parent, "1"))

	msgs, err = s.Inbox(ctx, parent)
	require.NoError(t, err)
	assert.True(t, msgs[0].Read)

	sent, err := s.Sent(ctx)
	require.NoError(t, err)
	assert.Equal(t, 146, sent[0].ReadCount)

	assert.ErrorIs(t, s.MarkRead(ctx, parent, "404"), store.ErrNotFound)
}

func TestSend(t *testing.T) {
	s := newStore(t)
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	to := store.SeedRecipients()[1].Email
	got, err := s.Send(ctx, model.SentMessage{
		Title:     "Conversa",
		Content:   "Podemos conversar?",
		Type:      model.TypeIndividual,
		Recipient: to,
		Date:      time.Now().Add(time.Hour),
	}, "Secretaria Escolar")
	require.NoError(t, err)
	assert.Equal(t, 1, got.TotalRecipients)

	msgs, err := s.Inbox(ctx, to)
	require.NoError(t, err)
	require.Len(t, msgs, 6)
	assert.Equal(t, got.ID, msgs[0].ID)

	msgs, err = s.Inbox(ctx, parent)
	require.NoError(t, err)
	assert.Len(t, msgs, 5)

	stats, err := s.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 129, stats.Messages.Total)
	assert.Equal(t, 84, stats.Messages.Individual)

	_, err = s.Send(ctx, model.SentMessage{
		Title: "x", Content: "y", Type: model.TypeIndividual, Recipient: "nobody@exemplo.com",
	}, "Secretaria Escolar")
	assert.ErrorIs(t, err, store.ErrNotFound)

	recipients, err := s.Recipients(ctx)
	require.NoError(t, err)
	assert.Len(t, recipients, 5)
}

func TestQueriesWithTx(t *testing.T) {
	s := newStore(t)
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	queries := database.New(s.pool)

	tx, err := s.pool.Begin(ctx)
	require.NoError(t, err)
	qtx := queries.WithTx(tx)
	require.NoError(t, qtx.InsertRecipient(ctx, database.InsertRecipientParams{
		Email: "nova@exemplo.com", Label: "Nova Responsável",
	}))
	require.NoError(t, qtx.IncrementSentStats(ctx, string(model.TypeIndividual)))
	require.NoError(t, tx.Rollback(ctx))

	recipients, err := queries.ListRecipients(ctx)
	require.NoError(t, err)
	assert.Len(t, recipients, 5)

	exists, err := queries.RecipientExists(ctx, "nova@exemplo.com")
	require.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, queries.IncrementSentStats(ctx, string(model.TypeGeneral)))
	stats, err := queries.GetSchoolStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int32(129), stats.Total)
	assert.Equal(t, int32(83), stats.Individual)
}
